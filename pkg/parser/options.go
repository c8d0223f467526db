package parser

import (
	"log/slog"

	"github.com/leapstack-labs/helios/pkg/scanner"
)

// Option configures a parse.
type Option func(*config)

type config struct {
	maxDepth    int
	layout      scanner.LayoutKind
	tabWidth    int
	docComments bool
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		maxDepth:    scanner.DefaultMaxDepth,
		layout:      scanner.LayoutIndent,
		tabWidth:    scanner.DefaultTabWidth,
		docComments: true,
	}
}

// WithMaxDepth sets the nesting limit shared by the scanner and the parser.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithLayout selects the block-boundary strategy.
func WithLayout(kind scanner.LayoutKind) Option {
	return func(c *config) { c.layout = kind }
}

// WithTabWidth sets the tab stop used to measure indentation.
func WithTabWidth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.tabWidth = n
		}
	}
}

// WithDocComments controls whether /// comments are attached to declarations.
func WithDocComments(enabled bool) Option {
	return func(c *config) { c.docComments = enabled }
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}
