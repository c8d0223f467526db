package parser

import "github.com/leapstack-labs/helios/pkg/token"

// maxPeek is the largest lookahead the grammar needs.
const maxPeek = 2

// compactThreshold is how many consumed tokens may accumulate before the
// buffer is compacted.
const compactThreshold = 64

// tokenSource produces tokens on demand. It must keep returning EOF once
// input is exhausted.
type tokenSource interface {
	Next() token.Token
}

// Mark is a saved stream position.
type Mark int

// stream buffers tokens pulled lazily from a tokenSource. It supports bounded
// lookahead and speculative parsing through Mark and Reset; positions are
// buffer indices, so restoring a mark never re-scans.
type stream struct {
	src     tokenSource
	buf     []token.Token
	pos     int // index of the current token in buf
	base    int // absolute index of buf[0]
	marks   int // outstanding marks
	aborted bool
	eof     token.Token
}

func newStream(src tokenSource) *stream {
	return &stream{src: src}
}

// fill ensures buf holds index i.
func (s *stream) fill(i int) {
	for len(s.buf) <= i {
		tok := s.src.Next()
		if tok.Kind == token.EOF {
			s.eof = tok
		}
		s.buf = append(s.buf, tok)
	}
}

// Peek returns the token k positions ahead of the current one, 0 <= k <= 2.
func (s *stream) Peek(k int) token.Token {
	if k < 0 || k > maxPeek {
		panic("parser: lookahead out of range")
	}
	if s.aborted {
		return s.eof
	}
	s.fill(s.pos + k)
	return s.buf[s.pos+k]
}

// Advance consumes and returns the current token.
func (s *stream) Advance() token.Token {
	tok := s.Peek(0)
	if s.aborted || tok.Kind == token.EOF {
		return tok
	}
	s.pos++
	if s.marks == 0 && s.pos >= compactThreshold {
		n := copy(s.buf, s.buf[s.pos:])
		s.buf = s.buf[:n]
		s.base += s.pos
		s.pos = 0
	}
	return tok
}

// Pos returns the absolute index of the current token.
func (s *stream) Pos() int {
	return s.base + s.pos
}

// Mark saves the current position. Every Mark must be released.
func (s *stream) Mark() Mark {
	s.marks++
	return Mark(s.Pos())
}

// Reset returns to a saved position.
func (s *stream) Reset(m Mark) {
	s.pos = int(m) - s.base
}

// Release discards a mark.
func (s *stream) Release(Mark) {
	if s.marks > 0 {
		s.marks--
	}
}

// Abort makes the stream yield EOF from now on.
func (s *stream) Abort() {
	if s.aborted {
		return
	}
	s.fill(s.pos)
	at := s.buf[s.pos].Span.Start
	s.eof = token.Token{Kind: token.EOF, Span: token.Span{Start: at, End: at}}
	s.aborted = true
}
