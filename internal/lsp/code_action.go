package lsp

import (
	"sort"

	"github.com/leapstack-labs/helios/pkg/diag"
)

// CodeActions returns quick fixes for the diagnostics in doc that carry a
// suggested fix and overlap r.
func CodeActions(doc *Document, diags []diag.Diagnostic, r Range) []CodeAction {
	var actions []CodeAction

	for _, d := range diags {
		if d.Fix == nil {
			continue
		}
		converted := convertDiagnostic(doc, d)
		if !converted.Range.Overlaps(r) {
			continue
		}

		actions = append(actions, CodeAction{
			Title:       d.Fix.Message,
			Kind:        CodeActionKindQuickFix,
			Diagnostics: []Diagnostic{converted},
			IsPreferred: true, // one fix per diagnostic
			Edit: &WorkspaceEdit{
				Changes: map[string][]TextEdit{
					doc.URI: {convertFix(doc, d.Fix)},
				},
			},
		})
	}

	return actions
}

// convertFix converts a suggested fix to an LSP TextEdit.
func convertFix(doc *Document, fix *diag.Fix) TextEdit {
	return TextEdit{
		Range:   doc.SpanToRange(fix.Span),
		NewText: fix.Replacement,
	}
}

// ApplyEdits applies non-overlapping edits to doc and returns the new content.
func ApplyEdits(doc *Document, edits []TextEdit) string {
	type span struct {
		start, end int
		text       string
	}
	spans := make([]span, 0, len(edits))
	for _, e := range edits {
		spans = append(spans, span{doc.PositionToOffset(e.Range.Start), doc.PositionToOffset(e.Range.End), e.NewText})
	}
	// Apply from the end so earlier offsets stay valid.
	sort.Slice(spans, func(i, j int) bool { return spans[i].start > spans[j].start })
	content := doc.Content
	for _, s := range spans {
		content = content[:s.start] + s.text + content[s.end:]
	}
	return content
}
