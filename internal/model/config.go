package model

import (
	"fmt"
	"strings"
)

// Output formats understood by the writer
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the settings of a single extraction run.
// It is built once at startup and never mutated afterwards.
type Config struct {
	InputFile       string   `yaml:"input_file" mapstructure:"input_file"`               // Path to the Telegram export (result.json)
	OutputFile      string   `yaml:"output_file" mapstructure:"output_file"`             // Output path without extension
	Keywords        []string `yaml:"keywords" mapstructure:"keywords"`                   // Substrings that select a message
	CaseSensitive   bool     `yaml:"case_sensitive" mapstructure:"case_sensitive"`       // Match keywords case-sensitively
	OutputFormat    string   `yaml:"output_format" mapstructure:"output_format"`         // "text" or "json"
	DateFormat      string   `yaml:"date_format" mapstructure:"date_format"`             // strftime pattern for the date field
	FieldsToInclude []string `yaml:"fields_to_include" mapstructure:"fields_to_include"` // Projected fields, in output order
	Dedupe          bool     `yaml:"dedupe" mapstructure:"dedupe"`                       // Skip repeated cleaned texts
	Verbose         bool     `yaml:"-" mapstructure:"verbose"`
}

// DefaultConfig returns the defaults used when nothing else is configured
func DefaultConfig() *Config {
	return &Config{
		InputFile:       "result.json",
		OutputFile:      "out",
		Keywords:        []string{},
		CaseSensitive:   false,
		OutputFormat:    FormatText,
		DateFormat:      "%Y-%m-%d %H:%M:%S",
		FieldsToInclude: []string{"date", "text"},
	}
}

// Validate reports the first setting that cannot drive a run
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q (want %q or %q)", c.OutputFormat, FormatText, FormatJSON)
	}
	if strings.TrimSpace(c.InputFile) == "" {
		return fmt.Errorf("input file must be set")
	}
	if strings.TrimSpace(c.OutputFile) == "" {
		return fmt.Errorf("output file must be set")
	}
	if len(c.FieldsToInclude) == 0 {
		return fmt.Errorf("at least one field to include is required")
	}
	if c.DateFormat == "" {
		return fmt.Errorf("date format must not be empty")
	}
	return nil
}

// OutputPath returns the stem with the extension of the configured format
func (c *Config) OutputPath() string {
	if c.OutputFormat == FormatJSON {
		return c.OutputFile + ".json"
	}
	return c.OutputFile + ".txt"
}
