package scanner

import (
	"strings"

	"github.com/leapstack-labs/helios/pkg/diag"
	"github.com/leapstack-labs/helios/pkg/token"
)

// skipSpace skips blanks and comments up to the next line break or token.
func (s *Scanner) skipSpace() {
	for !s.done {
		switch {
		case s.ch == ' ' || s.ch == '\t' || s.ch == '\r':
			s.readChar()
		case s.ch == '/' && s.peekChar() == '/':
			s.scanLineComment()
		case s.ch == '(' && s.peekChar() == '*':
			s.scanBlockComment()
		default:
			return
		}
	}
}

func (s *Scanner) scanLineComment() {
	start := s.currentPos()
	for !s.atEOF() && s.ch != '\n' {
		s.readChar()
	}
	span := s.spanFrom(start)
	text := strings.TrimRight(s.src[start.Offset:span.End.Offset], "\r")

	kind := token.LineComment
	if s.docs && strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////") {
		kind = token.DocComment
	}
	c := &token.Comment{Kind: kind, Text: text, Span: span}
	s.comments = append(s.comments, c)
	if kind == token.DocComment {
		s.pendingDoc = append(s.pendingDoc, c)
	}
}

// scanBlockComment consumes a (* ... *) comment. Block comments nest.
func (s *Scanner) scanBlockComment() {
	start := s.currentPos()
	depth := 0
	for {
		switch {
		case s.atEOF():
			span := s.spanFrom(start)
			s.errorf(diag.CodeUnterminatedComment, span, "unterminated block comment")
			s.comments = append(s.comments, &token.Comment{
				Kind: token.BlockComment,
				Text: s.src[start.Offset:],
				Span: span,
			})
			return
		case s.ch == '(' && s.peekChar() == '*':
			open := s.currentPos()
			s.readChar()
			s.readChar()
			depth++
			if depth > s.maxDepth {
				s.abort(s.spanFrom(open))
				return
			}
		case s.ch == '*' && s.peekChar() == ')':
			s.readChar()
			s.readChar()
			depth--
			if depth == 0 {
				span := s.spanFrom(start)
				s.comments = append(s.comments, &token.Comment{
					Kind: token.BlockComment,
					Text: s.src[start.Offset:span.End.Offset],
					Span: span,
				})
				return
			}
		default:
			s.readChar()
		}
	}
}
