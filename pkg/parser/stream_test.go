package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/helios/pkg/token"
)

// sliceSource yields a fixed token list followed by EOF.
type sliceSource struct {
	toks  []token.Token
	pulls int
}

func (s *sliceSource) Next() token.Token {
	s.pulls++
	if len(s.toks) == 0 {
		return token.Token{Kind: token.EOF}
	}
	tok := s.toks[0]
	s.toks = s.toks[1:]
	return tok
}

func idents(n int) *sliceSource {
	src := &sliceSource{}
	for i := 0; i < n; i++ {
		off := i * 2
		src.toks = append(src.toks, token.Token{
			Kind:   token.IDENT,
			Lexeme: string(rune('a' + i%26)),
			Span: token.Span{
				Start: token.Position{Line: 1, Column: off + 1, Offset: off},
				End:   token.Position{Line: 1, Column: off + 2, Offset: off + 1},
			},
		})
	}
	return src
}

func TestStream_PeekAndAdvance(t *testing.T) {
	src := idents(3)
	ts := newStream(src)

	assert.Equal(t, "a", ts.Peek(0).Lexeme)
	assert.Equal(t, "c", ts.Peek(2).Lexeme)
	assert.Equal(t, 3, src.pulls, "peek pulls lazily up to the requested index")

	assert.Equal(t, "a", ts.Advance().Lexeme)
	assert.Equal(t, "b", ts.Peek(0).Lexeme)
	assert.Equal(t, token.EOF, ts.Peek(2).Kind)
	assert.Equal(t, 1, ts.Pos())
}

func TestStream_PeekOutOfRange(t *testing.T) {
	ts := newStream(idents(1))
	assert.Panics(t, func() { ts.Peek(3) })
	assert.Panics(t, func() { ts.Peek(-1) })
}

func TestStream_EOFRepeats(t *testing.T) {
	ts := newStream(idents(1))
	ts.Advance()
	for i := 0; i < 3; i++ {
		assert.Equal(t, token.EOF, ts.Advance().Kind)
	}
	assert.Equal(t, 1, ts.Pos())
}

func TestStream_MarkReset(t *testing.T) {
	src := idents(5)
	ts := newStream(src)
	ts.Advance()

	m := ts.Mark()
	ts.Advance()
	ts.Advance()
	assert.Equal(t, "d", ts.Peek(0).Lexeme)
	pulls := src.pulls

	ts.Reset(m)
	ts.Release(m)
	assert.Equal(t, "b", ts.Peek(0).Lexeme)
	assert.Equal(t, 1, ts.Pos())
	assert.Equal(t, pulls, src.pulls, "reset does not re-read tokens")
}

func TestStream_Compaction(t *testing.T) {
	ts := newStream(idents(200))
	for i := 0; i < 150; i++ {
		ts.Advance()
	}
	assert.Equal(t, 150, ts.Pos())
	assert.Less(t, len(ts.buf), compactThreshold+maxPeek+1)
	assert.Equal(t, string(rune('a'+150%26)), ts.Peek(0).Lexeme)
}

func TestStream_NoCompactionWhileMarked(t *testing.T) {
	ts := newStream(idents(200))
	m := ts.Mark()
	for i := 0; i < 150; i++ {
		ts.Advance()
	}
	assert.GreaterOrEqual(t, len(ts.buf), 150)

	ts.Reset(m)
	ts.Release(m)
	assert.Equal(t, 0, ts.Pos())
	assert.Equal(t, "a", ts.Peek(0).Lexeme)
}

func TestStream_Abort(t *testing.T) {
	ts := newStream(idents(5))
	ts.Advance()
	at := ts.Peek(0).Span.Start

	ts.Abort()
	for i := 0; i < 3; i++ {
		tok := ts.Advance()
		require.Equal(t, token.EOF, tok.Kind)
		assert.Equal(t, at, tok.Span.Start)
	}
	assert.Equal(t, token.EOF, ts.Peek(2).Kind)
}
