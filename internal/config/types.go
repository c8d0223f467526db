// Package config loads Helios project configuration.
//
// Values are layered, highest precedence first: explicitly set command-line
// flags, HELIOS_* environment variables, helios.yaml, built-in defaults.
// The package has no CLI dependencies beyond pflag so the language server and
// tests can load the same configuration.
package config

import (
	"log/slog"
	"strings"

	"github.com/leapstack-labs/helios/pkg/parser"
	"github.com/leapstack-labs/helios/pkg/scanner"
)

// Config holds the resolved configuration.
type Config struct {
	// Parser settings
	MaxDepth    int    `koanf:"max_depth"`
	Layout      string `koanf:"layout"` // indent, keyword
	TabWidth    int    `koanf:"tab_width"`
	DocComments bool   `koanf:"doc_comments"`

	// Source discovery
	Include []string `koanf:"include"` // glob patterns relative to ProjectRoot

	// Presentation
	Output   string `koanf:"output"`    // auto, text, markdown, json
	LogLevel string `koanf:"log_level"` // debug, info, warn, error
	Verbose  bool   `koanf:"verbose"`
	NoColor  bool   `koanf:"no_color"`

	// Resolved at load time, never read from sources.
	ConfigFile  string   `koanf:"-"`
	ProjectRoot string   `koanf:"-"`
	UnknownKeys []string `koanf:"-"`
}

// ParserOptions converts the parser settings into parser options.
func (c *Config) ParserOptions() []parser.Option {
	return []parser.Option{
		parser.WithMaxDepth(c.MaxDepth),
		parser.WithLayout(scanner.LayoutKind(c.Layout)),
		parser.WithTabWidth(c.TabWidth),
		parser.WithDocComments(c.DocComments),
	}
}

// SlogLevel returns the configured log level. Verbose forces debug.
func (c *Config) SlogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "", "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelWarn, false
}
