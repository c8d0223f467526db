package lsp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/helios/internal/provider"
	"github.com/leapstack-labs/helios/internal/testutil"
	"github.com/leapstack-labs/helios/pkg/diag"
	"github.com/leapstack-labs/helios/pkg/token"
)

func span(startLine, startCol, startOff, endLine, endCol, endOff int) token.Span {
	return token.Span{
		Start: token.Position{Line: startLine, Column: startCol, Offset: startOff},
		End:   token.Position{Line: endLine, Column: endCol, Offset: endOff},
	}
}

func TestToProtocol(t *testing.T) {
	doc := newDocument("file:///x.hl", "fun f()\n    a\n  b\n", 1)
	diags := []diag.Diagnostic{
		{
			Severity: diag.Error,
			Category: diag.LexError,
			Code:     diag.CodeBadIndent,
			Message:  "inconsistent indentation",
			Span:     span(3, 1, 14, 3, 3, 16),
			Related: []diag.Related{{
				Span:    span(3, 1, 14, 3, 3, 16),
				Message: "expected indentation at column 5, not at 3",
			}},
		},
		{
			Severity: diag.Warning,
			Category: diag.SyntaxError,
			Code:     diag.CodeUnexpectedToken,
			Message:  "something odd",
			Span:     span(1, 1, 0, 1, 4, 3),
		},
	}

	got := ToProtocol(doc, diags)
	require.Len(t, got, 2)

	assert.Equal(t, Diagnostic{
		Range:    Range{Start: Position{Line: 2, Character: 0}, End: Position{Line: 2, Character: 2}},
		Severity: DiagnosticSeverityError,
		Code:     "E0009",
		Source:   "helios",
		Message:  "inconsistent indentation",
		RelatedInformation: []DiagnosticRelatedInformation{{
			Location: Location{
				URI:   "file:///x.hl",
				Range: Range{Start: Position{Line: 2, Character: 0}, End: Position{Line: 2, Character: 2}},
			},
			Message: "expected indentation at column 5, not at 3",
		}},
	}, got[0])
	assert.Equal(t, DiagnosticSeverityWarning, got[1].Severity)
	assert.Empty(t, got[1].RelatedInformation)
}

func TestToProtocol_EmptyIsNotNull(t *testing.T) {
	doc := newDocument("file:///x.hl", "x", 1)
	out, err := json.Marshal(PublishDiagnosticsParams{URI: doc.URI, Diagnostics: ToProtocol(doc, nil)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"uri":"file:///x.hl","diagnostics":[]}`, string(out))
}

func TestPublish(t *testing.T) {
	p := provider.New(testutil.NewTestLogger(t))
	store := NewDocumentStore()
	doc := store.Open("file:///f.hl", "fun f(: Int) => 1\n", 3)

	params := Publish(p, doc)
	assert.Equal(t, "file:///f.hl", params.URI)
	assert.Equal(t, 3, params.Version)
	require.Len(t, params.Diagnostics, 1)

	d := params.Diagnostics[0]
	assert.Equal(t, "expected parameter name, found `:`", d.Message)
	assert.Equal(t, Range{Start: Position{Character: 6}, End: Position{Character: 7}}, d.Range)
	assert.Equal(t, string(diag.CodeUnexpectedToken), d.Code)

	// A second publish of the same version reuses the cached parse.
	cached := p.Get(doc.URI)
	Publish(p, doc)
	assert.Same(t, cached, p.Get(doc.URI))

	require.True(t, store.Update(doc.URI, "fun f(x: Int) => 1\n", 4))
	params = Publish(p, store.Get(doc.URI))
	assert.Empty(t, params.Diagnostics)
	assert.Equal(t, 4, p.Get(doc.URI).Version)
}

func TestCodeActions_KeywordFix(t *testing.T) {
	p := provider.New(nil)
	doc := newDocument("file:///f.hl", "fn f() => 1\n", 1)
	parsed := p.GetOrParse(doc.URI, doc.Content, doc.Version)
	require.NotEmpty(t, parsed.Diagnostics)

	actions := CodeActions(doc, parsed.Diagnostics, Range{Start: Position{Character: 1}, End: Position{Character: 1}})
	require.Len(t, actions, 1)

	action := actions[0]
	assert.Equal(t, CodeActionKindQuickFix, action.Kind)
	assert.Equal(t, "did you mean `fun`?", action.Title)
	assert.True(t, action.IsPreferred)
	require.NotNil(t, action.Edit)

	edits := action.Edit.Changes[doc.URI]
	require.Len(t, edits, 1)
	assert.Equal(t, "fun f() => 1\n", ApplyEdits(doc, edits))

	// Outside the diagnostic's range there is nothing to offer.
	assert.Empty(t, CodeActions(doc, parsed.Diagnostics, Range{Start: Position{Line: 5}, End: Position{Line: 5}}))
}

func TestApplyEdits(t *testing.T) {
	doc := newDocument("", "ab\ncd", 1)
	edits := []TextEdit{
		{Range: Range{Start: Position{Line: 0, Character: 0}, End: Position{Line: 0, Character: 1}}, NewText: "A"},
		{Range: Range{Start: Position{Line: 1, Character: 1}, End: Position{Line: 1, Character: 2}}, NewText: "DD"},
	}
	assert.Equal(t, "Ab\ncDD", ApplyEdits(doc, edits))
}

func labels(list CompletionList) []string {
	var out []string
	for _, item := range list.Items {
		out = append(out, item.Label)
	}
	return out
}

func TestComplete(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		pos      Position
		contains []string
		excludes []string
	}{
		{
			name:     "prefix",
			content:  "fu",
			pos:      Position{Character: 2},
			contains: []string{"fun", "fun (expression body)", "fun (block body)"},
			excludes: []string{"let", "type enum"},
		},
		{
			name:     "fuzzy",
			content:  "mdl",
			pos:      Position{Character: 3},
			contains: []string{"module"},
			excludes: []string{"fun"},
		},
		{
			name:     "empty prefix offers everything",
			content:  "let x = 1\n",
			pos:      Position{Line: 1},
			contains: []string{"as", "while", "type struct", "match"},
		},
		{
			name:     "inside comment",
			content:  "x // ty",
			pos:      Position{Character: 7},
			excludes: []string{"type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labels(Complete(newDocument("", tt.content, 1), tt.pos))
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestComplete_ReplacesPrefix(t *testing.T) {
	doc := newDocument("", "let v = whi", 1)
	list := Complete(doc, Position{Character: 11})
	require.NotEmpty(t, list.Items)

	first := list.Items[0]
	assert.Equal(t, "while", first.Label)
	require.NotNil(t, first.TextEdit)
	assert.Equal(t, Range{Start: Position{Character: 8}, End: Position{Character: 11}}, first.TextEdit.Range)
	assert.Equal(t, "let v = while", ApplyEdits(doc, []TextEdit{*first.TextEdit}))
}

func TestComplete_NilDocument(t *testing.T) {
	list := Complete(nil, Position{})
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)
}
