package scanner

import (
	"fmt"

	"github.com/leapstack-labs/helios/pkg/diag"
	"github.com/leapstack-labs/helios/pkg/token"
)

// LayoutKind names a block-boundary strategy.
type LayoutKind string

// Layout kinds.
const (
	LayoutIndent  LayoutKind = "indent"  // indentation-sensitive INDENT/OUTDENT
	LayoutKeyword LayoutKind = "keyword" // begin/end keywords produce INDENT/OUTDENT
)

// Line describes the first significant character of a physical line that
// starts outside any delimiter.
type Line struct {
	Width  int        // indentation width with tabs expanded
	Indent token.Span // the leading whitespace; zero-width when Width is 0
}

// Layout decides where blocks begin and end. It is the only component that
// produces INDENT and OUTDENT tokens, so swapping indentation-based blocks for
// keyword-delimited blocks touches nothing else in the scanner or parser.
type Layout interface {
	// Kind returns the layout's name.
	Kind() LayoutKind
	// LineStart is called for each non-blank line that starts outside any
	// delimiter and returns the layout tokens to emit before the line's first token.
	LineStart(line Line, sink *diag.Sink) []token.Token
	// Keyword reports whether an identifier is claimed by the layout.
	Keyword(word string) (token.Kind, bool)
	// Finish returns the tokens that close every open block at end of input.
	Finish(at token.Position) []token.Token
	// Depth returns the number of open blocks.
	Depth() int
}

// NewLayout creates a layout by kind.
func NewLayout(kind LayoutKind, tabWidth int) (Layout, error) {
	switch kind {
	case LayoutIndent, "":
		return NewIndentLayout(tabWidth), nil
	case LayoutKeyword:
		return &KeywordLayout{}, nil
	}
	return nil, fmt.Errorf("unknown layout %q (expected %q or %q)", kind, LayoutIndent, LayoutKeyword)
}

// level is one entry of the indentation stack. alias is an extra width that
// was mapped onto this level after an inconsistent dedent, or -1.
type level struct {
	width int
	alias int
}

func (l level) matches(width int) bool {
	return width == l.width || width == l.alias
}

// widest is the largest width that belongs to the level.
func (l level) widest() int {
	return max(l.width, l.alias)
}

// IndentLayout implements indentation-sensitive blocks with a stack of widths.
type IndentLayout struct {
	TabWidth int
	stack    []level
}

// NewIndentLayout creates an IndentLayout with the base level at width 0.
func NewIndentLayout(tabWidth int) *IndentLayout {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return &IndentLayout{
		TabWidth: tabWidth,
		stack:    []level{{width: 0, alias: -1}},
	}
}

// Kind implements Layout.
func (l *IndentLayout) Kind() LayoutKind { return LayoutIndent }

// Keyword implements Layout; indentation layout claims no identifiers.
func (l *IndentLayout) Keyword(string) (token.Kind, bool) { return token.ILLEGAL, false }

// Depth implements Layout.
func (l *IndentLayout) Depth() int { return len(l.stack) - 1 }

// Widths returns a copy of the indentation stack widths, base level first.
func (l *IndentLayout) Widths() []int {
	out := make([]int, len(l.stack))
	for i, lv := range l.stack {
		out[i] = lv.width
	}
	return out
}

// LineStart implements Layout.
func (l *IndentLayout) LineStart(line Line, sink *diag.Sink) []token.Token {
	top := l.stack[len(l.stack)-1]
	if top.matches(line.Width) {
		return nil
	}

	if line.Width > top.widest() {
		l.stack = append(l.stack, level{width: line.Width, alias: -1})
		return []token.Token{{Kind: token.INDENT, Span: line.Indent}}
	}

	// Dedent: one OUTDENT per popped level.
	at := token.Span{Start: line.Indent.End, End: line.Indent.End}
	var toks []token.Token
	for len(l.stack) > 1 {
		top = l.stack[len(l.stack)-1]
		if top.matches(line.Width) || top.width < line.Width {
			break
		}
		l.stack = l.stack[:len(l.stack)-1]
		toks = append(toks, token.Token{Kind: token.OUTDENT, Span: at})
	}

	top = l.stack[len(l.stack)-1]
	if !top.matches(line.Width) {
		// Width lies between two levels: treat it as the enclosing level and
		// remember it so later lines at this width stay quiet. The first alias
		// sticks; a narrower width under it is reported again.
		if top.alias < 0 {
			l.stack[len(l.stack)-1].alias = line.Width
		}
		span := line.Indent
		if span.Len() == 0 {
			span.End.Offset++
			span.End.Column++
		}
		sink.Report(diag.Diagnostic{
			Severity: diag.Error,
			Category: diag.LexError,
			Code:     diag.CodeBadIndent,
			Message:  "inconsistent indentation",
			Span:     span,
			Related: []diag.Related{{
				Span:    span,
				Message: expectedIndentMessage(top.width, line.Width),
			}},
		})
	}
	return toks
}

func expectedIndentMessage(expected, found int) string {
	if expected == 0 {
		return "expected no indentation"
	}
	return fmt.Sprintf("expected indentation at column %d, not at %d", expected+1, found+1)
}

// Finish implements Layout.
func (l *IndentLayout) Finish(at token.Position) []token.Token {
	var toks []token.Token
	for len(l.stack) > 1 {
		l.stack = l.stack[:len(l.stack)-1]
		toks = append(toks, token.Token{Kind: token.OUTDENT, Span: token.Span{Start: at, End: at}})
	}
	return toks
}

// KeywordLayout implements blocks delimited by the soft keywords begin and end.
// Indentation is insignificant.
type KeywordLayout struct {
	depth int
}

// Kind implements Layout.
func (l *KeywordLayout) Kind() LayoutKind { return LayoutKeyword }

// LineStart implements Layout.
func (l *KeywordLayout) LineStart(Line, *diag.Sink) []token.Token { return nil }

// Keyword implements Layout.
func (l *KeywordLayout) Keyword(word string) (token.Kind, bool) {
	switch word {
	case "begin":
		l.depth++
		return token.INDENT, true
	case "end":
		if l.depth > 0 {
			l.depth--
		}
		return token.OUTDENT, true
	}
	return token.ILLEGAL, false
}

// Finish implements Layout. Unclosed begin blocks are reported by the parser.
func (l *KeywordLayout) Finish(token.Position) []token.Token { return nil }

// Depth implements Layout.
func (l *KeywordLayout) Depth() int { return l.depth }
