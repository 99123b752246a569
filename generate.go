package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const wildcardPrefix = `\*.`

// Generator builds the wildcard subdomain list and writes it to OutputPath.
type Generator struct {
	OutputPath string
	// DumpList prints the whole generated list before writing it.
	DumpList bool
	Stdout   io.Writer
}

func NewGenerator(cfg Config) *Generator {
	return &Generator{
		OutputPath: cfg.Output,
		DumpList:   cfg.DumpList,
		Stdout:     os.Stdout,
	}
}

// WildcardPattern returns `\*.` followed by domain, unchanged.
func WildcardPattern(domain string) string {
	return wildcardPrefix + domain
}

// BuildWildcardList returns the sorted, deduplicated wildcard patterns for domains.
func BuildWildcardList(domains []string) []string {
	patterns := make(DomainSet, len(domains))
	for _, d := range domains {
		patterns.Add(WildcardPattern(d))
	}
	return patterns.ToSortedList()
}

// FormatList joins patterns with "\n" and no trailing newline.
func FormatList(patterns []string) string {
	return strings.Join(patterns, "\n")
}

// Generate loads the domains from provider and replaces OutputPath with their wildcard
// list. It returns the number of entries written.
func (g *Generator) Generate(provider DomainProvider) (int, error) {
	final_tlds, err := provider.Load()
	if err != nil {
		return 0, fmt.Errorf("failed to load domains: %w", err)
	}

	wildcard_subdomains := BuildWildcardList(final_tlds)
	if g.DumpList {
		fmt.Fprintln(g.stdout(), wildcard_subdomains)
	}

	if err := WriteFileAtomic(g.OutputPath, []byte(FormatList(wildcard_subdomains))); err != nil {
		return 0, err
	}
	fmt.Fprintf(g.stdout(), "> DONE. List of subdomains generated. It contains %d subdomains.\n", len(wildcard_subdomains))
	return len(wildcard_subdomains), nil
}

func (g *Generator) stdout() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// WriteFileAtomic writes data to a temp file next to path and renames it over path, so
// readers see either the old or the new content. The directory must already exist.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	committed = true
	return nil
}
