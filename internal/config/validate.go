package config

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/leapstack-labs/helios/pkg/scanner"
)

// Output modes accepted by the output key.
var validOutputs = []string{"auto", "text", "markdown", "json"}

// Validate checks that the configuration is usable. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth))
	}
	if c.TabWidth <= 0 {
		errs = append(errs, fmt.Errorf("tab_width must be positive, got %d", c.TabWidth))
	}

	switch scanner.LayoutKind(c.Layout) {
	case scanner.LayoutIndent, scanner.LayoutKeyword:
	default:
		errs = append(errs, fmt.Errorf("unknown layout %q (valid: indent, keyword)", c.Layout))
	}

	if !contains(validOutputs, c.Output) {
		errs = append(errs, fmt.Errorf("unknown output mode %q (valid: %s)", c.Output, strings.Join(validOutputs, ", ")))
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if len(c.Include) == 0 {
		errs = append(errs, errors.New("include must list at least one pattern"))
	}
	for _, pattern := range c.Include {
		if err := ValidatePattern(pattern); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// ValidatePattern reports whether pattern is a well-formed include glob.
// A "**" segment matches any number of directories.
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return errors.New("include pattern must not be empty")
	}
	for _, seg := range strings.Split(pattern, "/") {
		if seg == "**" {
			continue
		}
		if _, err := path.Match(seg, ""); err != nil {
			return fmt.Errorf("malformed include pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// MatchPattern reports whether the slash-separated relative path name
// matches pattern. The pattern must already be valid.
func MatchPattern(pattern, name string) bool {
	return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(name); i++ {
				if matchSegments(rest, name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if ok, _ := path.Match(pattern[0], name[0]); !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
