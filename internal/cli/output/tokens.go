package output

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/helios/pkg/token"
)

// TokenJSON is the JSON shape of one token.
type TokenJSON struct {
	Kind   string `json:"kind"`
	Lexeme string `json:"lexeme,omitempty"`
	Value  string `json:"value,omitempty"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// Tokens renders a token stream.
func (r *Renderer) Tokens(toks []token.Token) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		out := make([]TokenJSON, 0, len(toks))
		for _, tok := range toks {
			out = append(out, TokenJSON{
				Kind:   tok.Kind.String(),
				Lexeme: tok.Lexeme,
				Value:  valueColumn(tok),
				Start:  tok.Span.Start.String(),
				End:    tok.Span.End.String(),
			})
		}
		return r.JSON(out)
	case ModeMarkdown:
		r.tokenTable(toks).RenderMarkdown()
	default:
		r.tokenTable(toks).Render()
	}
	return nil
}

func (r *Renderer) tokenTable(toks []token.Token) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Kind", "Lexeme", "Value", "Span"})
	for i, tok := range toks {
		t.AppendRow(table.Row{
			i,
			tok.Kind.String(),
			strconv.Quote(tok.Lexeme),
			valueColumn(tok),
			fmt.Sprintf("%s-%s", tok.Span.Start, tok.Span.End),
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d tokens", len(toks))})
	return t
}

// valueColumn shows the decoded value only when it differs from the lexeme.
func valueColumn(tok token.Token) string {
	if !tok.Kind.IsLiteral() || tok.Value == tok.Lexeme {
		return ""
	}
	return strconv.Quote(tok.Value)
}
