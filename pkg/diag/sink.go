package diag

import (
	"fmt"

	"github.com/leapstack-labs/helios/pkg/token"
)

// Sink accumulates diagnostics for the duration of one parse. It is
// append-only and not safe for concurrent use; each parse owns its sink.
type Sink struct {
	diags  []Diagnostic
	errors int
}

// Report appends a diagnostic.
func (s *Sink) Report(d Diagnostic) {
	s.diags = append(s.diags, d)
	if d.Severity == Error {
		s.errors++
	}
}

// Errorf reports an error-severity diagnostic.
func (s *Sink) Errorf(cat Category, code Code, span token.Span, format string, args ...any) {
	s.Report(Diagnostic{
		Severity: Error,
		Category: cat,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	})
}

// Warnf reports a warning-severity diagnostic.
func (s *Sink) Warnf(cat Category, code Code, span token.Span, format string, args ...any) {
	s.Report(Diagnostic{
		Severity: Warning,
		Category: cat,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	})
}

// Len returns the number of diagnostics reported so far.
func (s *Sink) Len() int {
	return len(s.diags)
}

// HasErrors reports whether any error-severity diagnostic was reported.
func (s *Sink) HasErrors() bool {
	return s.errors > 0
}

// Last returns the most recently reported diagnostic.
func (s *Sink) Last() (Diagnostic, bool) {
	if len(s.diags) == 0 {
		return Diagnostic{}, false
	}
	return s.diags[len(s.diags)-1], true
}

// All returns a copy of the diagnostics in report order.
func (s *Sink) All() []Diagnostic {
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	return out
}

// Filter returns the diagnostics at or above the given severity.
// Error is the most severe.
func Filter(diags []Diagnostic, min Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Severity <= min {
			out = append(out, d)
		}
	}
	return out
}

// CountErrors returns the number of error-severity diagnostics.
func CountErrors(diags []Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == Error {
			n++
		}
	}
	return n
}
