package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputPath     = "lists/tlds.txt"
	DefaultSourcesFile    = "lists/sources.txt"
	DefaultExclusionsFile = "lists/exclusions.txt"
	DefaultConfigFile     = "lists/config.yaml"
)

var ErrNoSources = errors.New("no domain sources configured")

type Config struct {
	Output          string   `yaml:"output"`
	Sources         []string `yaml:"sources"`
	Exclusions      []string `yaml:"exclusions"`
	SourcesFile     string   `yaml:"sources_file"`
	ExclusionsFile  string   `yaml:"exclusions_file"`
	PruneSubdomains bool     `yaml:"prune_subdomains"`
	DumpList        bool     `yaml:"dump_list"`
}

func DefaultConfig() Config {
	return Config{
		Output:         DefaultOutputPath,
		SourcesFile:    DefaultSourcesFile,
		ExclusionsFile: DefaultExclusionsFile,
		DumpList:       true,
	}
}

// LoadConfig reads the optional YAML file at path on top of DefaultConfig, then fills
// Sources and Exclusions from SourcesFile and ExclusionsFile when the YAML did not list them.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if cfg.Output == "" {
		cfg.Output = DefaultOutputPath
	}

	if len(cfg.Sources) == 0 {
		cfg.Sources, err = readListFile(cfg.SourcesFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	if len(cfg.Sources) == 0 {
		return Config{}, fmt.Errorf("%w: add entries to %s or %s", ErrNoSources, cfg.SourcesFile, path)
	}

	if len(cfg.Exclusions) == 0 {
		cfg.Exclusions, err = readListFile(cfg.ExclusionsFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	return cfg, nil
}

// readListFile reads one entry per line, skipping blanks and # comments.
func readListFile(file_name string) ([]string, error) {
	content, err := os.ReadFile(file_name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file_name, err)
	}
	return splitListLines(string(content)), nil
}

func splitListLines(content string) []string {
	lines := strings.Split(content, "\n")
	filtered_line := []string{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}
		filtered_line = append(filtered_line, line)
	}
	return filtered_line
}
