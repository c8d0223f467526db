package lsp

import (
	"github.com/leapstack-labs/helios/internal/provider"
	"github.com/leapstack-labs/helios/pkg/diag"
)

// DiagnosticSource is the source name attached to every published diagnostic.
const DiagnosticSource = "helios"

// ToProtocol converts core diagnostics to LSP diagnostics with zero-based
// ranges measured in doc. The result is never nil.
func ToProtocol(doc *Document, diags []diag.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, convertDiagnostic(doc, d))
	}
	return out
}

func convertDiagnostic(doc *Document, d diag.Diagnostic) Diagnostic {
	result := Diagnostic{
		Range:    doc.SpanToRange(d.Span),
		Severity: convertSeverity(d.Severity),
		Code:     string(d.Code),
		Source:   DiagnosticSource,
		Message:  d.Message,
	}
	for _, rel := range d.Related {
		result.RelatedInformation = append(result.RelatedInformation, DiagnosticRelatedInformation{
			Location: Location{URI: doc.URI, Range: doc.SpanToRange(rel.Span)},
			Message:  rel.Message,
		})
	}
	return result
}

func convertSeverity(s diag.Severity) DiagnosticSeverity {
	switch s {
	case diag.Error:
		return DiagnosticSeverityError
	case diag.Warning:
		return DiagnosticSeverityWarning
	}
	return DiagnosticSeverityInformation
}

// Publish parses doc through p, reusing a cached parse of the same version,
// and returns the notification payload for its diagnostics.
func Publish(p *provider.Provider, doc *Document) PublishDiagnosticsParams {
	parsed := p.GetOrParse(doc.URI, doc.Content, doc.Version)
	return PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     doc.Version,
		Diagnostics: ToProtocol(doc, parsed.Diagnostics),
	}
}
