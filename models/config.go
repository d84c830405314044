// Package models defines data structures for configuration, messages and reports.
package models

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultRole         = "user"
	DefaultMaxRecords   = 10000
	DefaultPhraseWindow = 5
	DefaultPhraseLimit  = 20
	DefaultDumpLength   = 1000
)

// SourceConfig names one transcript file and its record bound.
type SourceConfig struct {
	ID         string `yaml:"id" json:"id"`
	Path       string `yaml:"path" json:"path"`
	MaxRecords int    `yaml:"max_records,omitempty" json:"max_records,omitempty"`
}

// CategoryDefinition is the data form of a classification rule.
// Kind selects how Keywords, Prefixes and Markers are interpreted.
type CategoryDefinition struct {
	Name          string   `yaml:"name" json:"name"`
	Kind          string   `yaml:"kind" json:"kind"`
	Keywords      []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Prefixes      []string `yaml:"prefixes,omitempty" json:"prefixes,omitempty"`
	Markers       []string `yaml:"markers,omitempty" json:"markers,omitempty"`
	DisplayLimit  int      `yaml:"display_limit" json:"display_limit"`
	ExcerptLength int      `yaml:"excerpt_length" json:"excerpt_length"`
}

// FacetDefinition groups related categories under one heading.
type FacetDefinition struct {
	Name       string               `yaml:"name" json:"name"`
	Categories []CategoryDefinition `yaml:"categories" json:"categories"`
}

// AnalysisConfig holds everything one run needs. Values come from a YAML
// file and are then overridden by CLI flags.
type AnalysisConfig struct {
	Role           string            `yaml:"role,omitempty"`
	MaxRecords     int               `yaml:"max_records,omitempty"`
	PhraseWindow   int               `yaml:"phrase_window,omitempty"`
	PhraseLimit    int               `yaml:"phrase_limit,omitempty"`
	DumpSource     string            `yaml:"dump_source,omitempty"`
	DumpLength     int               `yaml:"dump_length,omitempty"`
	DetectLanguage bool              `yaml:"detect_language,omitempty"`
	Languages      []string          `yaml:"languages,omitempty"`
	Sources        []SourceConfig    `yaml:"sources"`
	Facets         []FacetDefinition `yaml:"facets,omitempty"`
}

// LoadConfig reads a YAML config file and fills in defaults.
func LoadConfig(path string) (*AnalysisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &AnalysisConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults sets zero-valued knobs to their defaults.
// PhraseLimit is left alone since 0 means "all phrases".
func (c *AnalysisConfig) ApplyDefaults() {
	if c.Role == "" {
		c.Role = DefaultRole
	}
	if c.MaxRecords <= 0 {
		c.MaxRecords = DefaultMaxRecords
	}
	if c.PhraseWindow <= 0 {
		c.PhraseWindow = DefaultPhraseWindow
	}
	if c.DumpLength <= 0 {
		c.DumpLength = DefaultDumpLength
	}
}

// RecordLimit is the number of records examined for src: its own bound when
// set, the config-wide bound otherwise.
func (c *AnalysisConfig) RecordLimit(src SourceConfig) int {
	if src.MaxRecords > 0 {
		return src.MaxRecords
	}
	if c.MaxRecords > 0 {
		return c.MaxRecords
	}
	return DefaultMaxRecords
}

// Validate checks the source list. Facets are validated when the taxonomy
// is compiled.
func (c *AnalysisConfig) Validate() error {
	if len(c.Sources) == 0 {
		return errors.New("no transcript sources configured")
	}
	if c.PhraseLimit < 0 {
		return fmt.Errorf("phrase_limit must not be negative, got %d", c.PhraseLimit)
	}

	seen := make(map[string]bool, len(c.Sources))
	for i, s := range c.Sources {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("source #%d has no id", i+1)
		}
		if strings.TrimSpace(s.Path) == "" {
			return fmt.Errorf("source %q has no path", s.ID)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate source id %q", s.ID)
		}
		seen[s.ID] = true
	}

	if c.DumpSource != "" && !seen[c.DumpSource] {
		return fmt.Errorf("dump source %q is not a configured source", c.DumpSource)
	}
	return nil
}

// ParseSourceFlag parses "id=path" or "id=path@max" as given on the command line.
func ParseSourceFlag(raw string) (SourceConfig, error) {
	id, rest, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(id) == "" || strings.TrimSpace(rest) == "" {
		return SourceConfig{}, fmt.Errorf("invalid source %q, expected id=path[@max]", raw)
	}

	src := SourceConfig{ID: strings.TrimSpace(id), Path: strings.TrimSpace(rest)}
	if at := strings.LastIndex(src.Path, "@"); at > 0 {
		if n, err := strconv.Atoi(src.Path[at+1:]); err == nil {
			if n <= 0 {
				return SourceConfig{}, fmt.Errorf("invalid source %q, max_records must be positive", raw)
			}
			src.MaxRecords = n
			src.Path = src.Path[:at]
		}
	}
	return src, nil
}
