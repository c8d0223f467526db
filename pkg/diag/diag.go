// Package diag defines the structured diagnostics produced while scanning and
// parsing, and the append-only sink that collects them for one parse.
package diag

import (
	"fmt"

	"github.com/leapstack-labs/helios/pkg/token"
)

// Severity classifies how serious a diagnostic is.
type Severity int

// Severities.
const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// ParseSeverity parses a severity name.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "error":
		return Error, true
	case "warning", "warn":
		return Warning, true
	}
	return Error, false
}

// Category is the error taxonomy a diagnostic belongs to.
type Category int

// Categories.
const (
	LexError             Category = iota // malformed literal, unterminated construct, bad escape, bad indentation
	SyntaxError                          // unexpected token, missing required element
	StructuralLimitError                 // nesting depth exceeded
)

func (c Category) String() string {
	switch c {
	case LexError:
		return "lex error"
	case SyntaxError:
		return "syntax error"
	case StructuralLimitError:
		return "structural limit"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Related is a secondary span with its own message.
type Related struct {
	Span    token.Span
	Message string
}

// Fix is a suggested edit: replace the text at Span with Replacement.
type Fix struct {
	Message     string
	Span        token.Span
	Replacement string
}

// Diagnostic is a span-located error or warning. Diagnostics are values and
// are never modified after they are reported.
type Diagnostic struct {
	Severity Severity
	Category Category
	Code     Code
	Message  string
	Span     token.Span
	Related  []Related
	Fix      *Fix
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Span.Start, d.Category, d.Message)
}

// IsError reports whether the diagnostic has error severity.
func (d Diagnostic) IsError() bool {
	return d.Severity == Error
}
