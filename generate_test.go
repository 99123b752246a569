package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

type failingProvider struct{ err error }

func (p failingProvider) Load() ([]string, error) { return nil, p.err }

func newTestGenerator(t *testing.T) (*Generator, *bytes.Buffer) {
	t.Helper()
	stdout := &bytes.Buffer{}
	return &Generator{
		OutputPath: filepath.Join(t.TempDir(), "tlds.txt"),
		DumpList:   true,
		Stdout:     stdout,
	}, stdout
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	return string(content)
}

func TestGenerate_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		domains []string
		want    string
		count   int
	}{
		{"dedup", []string{"a.com", "b.com", "a.com"}, `\*.a.com` + "\n" + `\*.b.com`, 2},
		{"empty", []string{}, "", 0},
		{"sorted", []string{"z.org", "a.org"}, `\*.a.org` + "\n" + `\*.z.org`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, stdout := newTestGenerator(t)
			count, err := g.Generate(StaticProvider(tt.domains))
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if count != tt.count {
				t.Errorf("Expected count %d, got %d", tt.count, count)
			}
			if got := readOutput(t, g.OutputPath); got != tt.want {
				t.Errorf("Expected output %q, got %q", tt.want, got)
			}
			summary := fmt.Sprintf("It contains %d subdomains.", tt.count)
			if !strings.Contains(stdout.String(), summary) {
				t.Errorf("Summary %q missing from stdout %q", summary, stdout.String())
			}
		})
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	g, _ := newTestGenerator(t)
	provider := StaticProvider{"example.com", "ads.example.net", "example.com"}

	if _, err := g.Generate(provider); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	first := readOutput(t, g.OutputPath)
	if _, err := g.Generate(provider); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if second := readOutput(t, g.OutputPath); first != second {
		t.Errorf("Runs differ:\n%q\n%q", first, second)
	}
}

func TestGenerate_OverwritesPreviousContent(t *testing.T) {
	g, _ := newTestGenerator(t)
	if err := os.WriteFile(g.OutputPath, []byte("old\nlonger\ncontent\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Generate(StaticProvider{"x.io"}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got := readOutput(t, g.OutputPath); got != `\*.x.io` {
		t.Errorf("Expected overwrite, got %q", got)
	}
	entries, _ := os.ReadDir(filepath.Dir(g.OutputPath))
	if len(entries) != 1 {
		t.Errorf("Expected only the output file in dir, found %d entries", len(entries))
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	g, stdout := newTestGenerator(t)
	if err := os.WriteFile(g.OutputPath, []byte("previous"), 0644); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")

	_, err := g.Generate(failingProvider{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected provider error, got %v", err)
	}
	if got := readOutput(t, g.OutputPath); got != "previous" {
		t.Errorf("Output touched after provider error: %q", got)
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected no stdout, got %q", stdout.String())
	}
}

func TestGenerate_MissingDirectory(t *testing.T) {
	g, _ := newTestGenerator(t)
	g.OutputPath = filepath.Join(t.TempDir(), "missing", "tlds.txt")

	if _, err := g.Generate(StaticProvider{"a.com"}); err == nil {
		t.Fatal("Expected error for missing output directory")
	}
}

func TestGenerate_DumpList(t *testing.T) {
	g, stdout := newTestGenerator(t)
	if _, err := g.Generate(StaticProvider{"b.com", "a.com"}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 stdout lines, got %d: %q", len(lines), stdout.String())
	}
	if lines[0] != `[\*.a.com \*.b.com]` {
		t.Errorf("Unexpected dump line %q", lines[0])
	}

	g.DumpList = false
	stdout.Reset()
	if _, err := g.Generate(StaticProvider{"a.com"}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stdout.String(), "[") {
		t.Errorf("List dumped with DumpList off: %q", stdout.String())
	}
}

func TestBuildWildcardList_KeepsDomainVerbatim(t *testing.T) {
	got := BuildWildcardList([]string{" Mixed.Case ", "b.com", "A.com", "b.com"})
	want := []string{`\*. Mixed.Case `, `\*.A.com`, `\*.b.com`}
	if !slices.Equal(got, want) {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestBuildWildcardList_OrderIndependent(t *testing.T) {
	a := BuildWildcardList([]string{"c.net", "a.org", "b.com", "a.org"})
	b := BuildWildcardList([]string{"a.org", "b.com", "c.net"})
	if !slices.Equal(a, b) {
		t.Errorf("Input order changed output: %q vs %q", a, b)
	}
	if len(a) != 3 {
		t.Errorf("Expected one line per distinct domain, got %d", len(a))
	}
}
