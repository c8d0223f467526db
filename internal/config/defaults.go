package config

import "github.com/leapstack-labs/helios/pkg/scanner"

// Default configuration values.
const (
	DefaultLayout   = string(scanner.LayoutIndent)
	DefaultOutput   = "auto"
	DefaultLogLevel = "warn"
	DefaultInclude  = "**/*.hl"
)

// Defaults returns the lowest configuration layer as a flat key map.
func Defaults() map[string]any {
	return map[string]any{
		"max_depth":    scanner.DefaultMaxDepth,
		"layout":       DefaultLayout,
		"tab_width":    scanner.DefaultTabWidth,
		"doc_comments": true,
		"include":      []string{DefaultInclude},
		"output":       DefaultOutput,
		"log_level":    DefaultLogLevel,
		"verbose":      false,
		"no_color":     false,
	}
}

// Default returns a Config holding only the defaults.
func Default() *Config {
	return &Config{
		MaxDepth:    scanner.DefaultMaxDepth,
		Layout:      DefaultLayout,
		TabWidth:    scanner.DefaultTabWidth,
		DocComments: true,
		Include:     []string{DefaultInclude},
		Output:      DefaultOutput,
		LogLevel:    DefaultLogLevel,
	}
}

func isKnownKey(key string) bool {
	_, ok := Defaults()[key]
	return ok
}
