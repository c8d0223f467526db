package scanner

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/helios/pkg/diag"
	"github.com/leapstack-labs/helios/pkg/token"
)

func (s *Scanner) scanNumber(start token.Position) {
	kind := token.INT
	base := 10
	valid := true
	sepOK := true

	if p := s.peekChar(); s.ch == '0' && isBasePrefix(p) {
		base = baseOf(p)
		s.readChar()
		s.readChar()
		n, ok := s.readDigits(baseDigit(p))
		sepOK = ok
		if n == 0 {
			valid = false
			s.errorf(diag.CodeInvalidNumber, s.spanFrom(start), "missing digits after %q prefix", s.src[start.Offset:s.pos])
		}
	} else {
		_, sepOK = s.readDigits(isDigit)
		if s.ch == '.' && isDigit(s.peekChar()) {
			kind = token.FLOAT
			s.readChar()
			_, ok := s.readDigits(isDigit)
			sepOK = sepOK && ok
		}
		if s.ch == 'e' || s.ch == 'E' {
			p := s.peekChar()
			if isDigit(p) || ((p == '+' || p == '-') && isDigit(s.peekAt(2))) {
				kind = token.FLOAT
				s.readChar()
				if s.ch == '+' || s.ch == '-' {
					s.readChar()
				}
				_, ok := s.readDigits(isDigit)
				sepOK = sepOK && ok
			}
		}
	}

	if isIdentChar(s.ch) {
		bad := s.currentPos()
		for isIdentChar(s.ch) {
			s.readChar()
		}
		if valid {
			valid = false
			s.errorf(diag.CodeInvalidNumber, s.spanFrom(start), "invalid character %q in number literal", s.src[bad.Offset])
		}
	}

	span := s.spanFrom(start)
	lexeme := s.src[start.Offset:span.End.Offset]
	value := strings.ReplaceAll(lexeme, "_", "")
	if valid && !sepOK {
		valid = false
		s.errorf(diag.CodeInvalidNumber, span, "`_` must separate digits in number literal %s", lexeme)
	}
	if valid {
		valid = s.checkRange(kind, base, value, span)
	}
	if !valid {
		kind = token.ILLEGAL
	}
	s.emit(token.Token{
		Kind:   kind,
		Lexeme: lexeme,
		Value:  value,
		Span:   span,
	})
}

// checkRange reports literals that do not fit a 64-bit integer or float.
func (s *Scanner) checkRange(kind token.Kind, base int, value string, span token.Span) bool {
	if kind == token.FLOAT {
		if _, err := strconv.ParseFloat(value, 64); errors.Is(err, strconv.ErrRange) {
			s.errorf(diag.CodeFloatOverflow, span, "float literal %s is out of range", value)
			return false
		}
		return true
	}
	digits := value
	if base != 10 {
		digits = value[2:]
	}
	if _, err := strconv.ParseUint(digits, base, 64); errors.Is(err, strconv.ErrRange) {
		s.errorf(diag.CodeIntegerOverflow, span, "integer literal %s overflows 64 bits", value)
		return false
	}
	return true
}

// readDigits consumes digits accepted by ok, and '_' separators, returning
// the number of digits read and whether every separator sat between two
// digits.
func (s *Scanner) readDigits(ok func(byte) bool) (int, bool) {
	n := 0
	sepOK := true
	for ok(s.ch) || s.ch == '_' {
		if s.ch == '_' {
			if n == 0 || !ok(s.peekChar()) {
				sepOK = false
			}
		} else {
			n++
		}
		s.readChar()
	}
	return n, sepOK
}

func isBasePrefix(ch byte) bool {
	switch ch {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}

func baseOf(prefix byte) int {
	switch prefix {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	}
	return 2
}

func baseDigit(prefix byte) func(byte) bool {
	switch prefix {
	case 'x', 'X':
		return isHex
	case 'o', 'O':
		return func(ch byte) bool { return ch >= '0' && ch <= '7' }
	}
	return func(ch byte) bool { return ch == '0' || ch == '1' }
}

func isHex(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func hexVal(ch byte) int {
	switch {
	case isDigit(ch):
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	}
	return int(ch-'A') + 10
}

// scanString scans a static "..." literal.
func (s *Scanner) scanString(start token.Position) {
	s.readChar()
	var sb strings.Builder
	ok := true
	for {
		if s.atEOF() || s.ch == '\n' {
			s.unterminated(start, diag.CodeUnterminatedString, "unterminated string literal")
			return
		}
		if s.ch == '"' {
			s.readChar()
			break
		}
		if s.ch == '\\' {
			if !s.readEscape(&sb) {
				ok = false
			}
			continue
		}
		sb.WriteByte(s.ch)
		s.readChar()
	}
	kind := token.STRING
	if !ok {
		kind = token.ILLEGAL
	}
	span := s.spanFrom(start)
	s.emit(token.Token{Kind: kind, Lexeme: s.src[start.Offset:span.End.Offset], Value: sb.String(), Span: span})
}

// scanRawString scans r"...": no escape processing, and a backslash keeps the
// following character verbatim, so \" does not end the literal.
func (s *Scanner) scanRawString(start token.Position) {
	s.readChar()
	s.readChar()
	content := s.pos
	for {
		if s.atEOF() || s.ch == '\n' {
			s.unterminated(start, diag.CodeUnterminatedString, "unterminated string literal")
			return
		}
		if s.ch == '"' {
			break
		}
		if s.ch == '\\' {
			s.readChar()
			if s.atEOF() || s.ch == '\n' {
				continue
			}
		}
		s.readChar()
	}
	value := s.src[content:s.pos]
	s.readChar()
	span := s.spanFrom(start)
	s.emit(token.Token{Kind: token.RAW_STRING, Lexeme: s.src[start.Offset:span.End.Offset], Value: value, Span: span})
}

// scanChar scans a '...' literal holding exactly one character or escape.
func (s *Scanner) scanChar(start token.Position) {
	s.readChar()
	if s.ch == '\'' {
		s.readChar()
		s.errorf(diag.CodeEmptyChar, s.spanFrom(start), "empty character literal")
		s.emitText(token.ILLEGAL, start)
		return
	}
	if s.atEOF() {
		s.unterminated(start, diag.CodeUnterminatedChar, "unterminated character literal")
		return
	}
	if s.ch == '\n' {
		s.unterminated(start, diag.CodeMultiLineChar, "character literal may not contain a line break")
		return
	}

	var sb strings.Builder
	ok := true
	if s.ch == '\\' {
		ok = s.readEscape(&sb)
	} else {
		_, w := utf8.DecodeRuneInString(s.src[s.pos:])
		sb.WriteString(s.src[s.pos : s.pos+w])
		s.readRune()
	}

	if s.ch != '\'' {
		i := strings.IndexAny(s.src[s.pos:], "'\n")
		if i < 0 || s.src[s.pos+i] == '\n' {
			s.unterminated(start, diag.CodeUnterminatedChar, "unterminated character literal")
			return
		}
		for s.ch != '\'' {
			s.readChar()
		}
		s.readChar()
		s.errorf(diag.CodeMultiCharLiteral, s.spanFrom(start), "character literal may only contain one character")
		s.emitText(token.ILLEGAL, start)
		return
	}
	s.readChar()

	kind := token.CHAR
	if !ok {
		kind = token.ILLEGAL
	}
	span := s.spanFrom(start)
	s.emit(token.Token{Kind: kind, Lexeme: s.src[start.Offset:span.End.Offset], Value: sb.String(), Span: span})
}

// unterminated reports a literal cut off by a line break or end of input and
// queues it as ILLEGAL. The line break itself is left for the next token.
func (s *Scanner) unterminated(start token.Position, code diag.Code, msg string) {
	for !s.atEOF() && s.ch != '\n' {
		s.readChar()
	}
	span := s.spanFrom(start)
	s.errorf(code, span, "%s", msg)
	s.emitText(token.ILLEGAL, start)
}

// readEscape decodes the escape sequence at the current backslash into sb.
// Invalid escapes are reported, decode to U+FFFD, and return false.
func (s *Scanner) readEscape(sb *strings.Builder) bool {
	start := s.currentPos()
	s.readChar()
	if s.atEOF() || s.ch == '\n' {
		// the enclosing literal reports itself as unterminated
		return true
	}

	switch s.ch {
	case '\\', '\'', '"':
		sb.WriteByte(s.ch)
	case '0':
		sb.WriteByte(0)
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'x':
		return s.readHexEscape(start, sb)
	case 'u':
		return s.readUnicodeEscape(start, sb)
	default:
		s.readRune()
		s.errorf(diag.CodeUnknownEscape, s.spanFrom(start), "unknown escape sequence `%s`", s.src[start.Offset:s.pos])
		sb.WriteRune(utf8.RuneError)
		return false
	}
	s.readChar()
	return true
}

// readHexEscape decodes \xH or \xHH.
func (s *Scanner) readHexEscape(start token.Position, sb *strings.Builder) bool {
	s.readChar()
	n, v := 0, 0
	for n < 2 && isHex(s.ch) {
		v = v*16 + hexVal(s.ch)
		n++
		s.readChar()
	}
	if n == 0 {
		s.errorf(diag.CodeInvalidHexEscape, s.spanFrom(start), "invalid hex escape: expected 1 or 2 hex digits after `\\x`")
		sb.WriteRune(utf8.RuneError)
		return false
	}
	sb.WriteRune(rune(v))
	return true
}

// readUnicodeEscape decodes \u{H...} with 1 to 6 hex digits naming a
// Unicode scalar value.
func (s *Scanner) readUnicodeEscape(start token.Position, sb *strings.Builder) bool {
	s.readChar()
	fail := func(format string, args ...any) bool {
		s.errorf(diag.CodeInvalidUnicodeEscape, s.spanFrom(start), format, args...)
		sb.WriteRune(utf8.RuneError)
		return false
	}
	if s.ch != '{' {
		return fail("invalid unicode escape: expected `{` after `\\u`")
	}
	s.readChar()
	n, v := 0, 0
	for isHex(s.ch) {
		if n < 6 {
			v = v*16 + hexVal(s.ch)
		}
		n++
		s.readChar()
	}
	if s.ch != '}' {
		return fail("invalid unicode escape: missing closing `}`")
	}
	s.readChar()
	if n == 0 || n > 6 {
		return fail("invalid unicode escape: expected 1 to 6 hex digits")
	}
	if !utf8.ValidRune(rune(v)) {
		return fail("invalid unicode escape: U+%X is not a Unicode scalar value", v)
	}
	sb.WriteRune(rune(v))
	return true
}

// scanFString scans the opening segment of f"...".
func (s *Scanner) scanFString(start token.Position) {
	s.readChar()
	s.readChar()
	s.scanFStringText(start, true)
}

// scanFStringText scans literal text up to the next hole or the closing
// quote. first is true for the segment that follows f" and false for the
// segment that follows a closing '}', which the caller has already consumed.
func (s *Scanner) scanFStringText(start token.Position, first bool) {
	var sb strings.Builder
	for {
		if s.atEOF() || s.ch == '\n' {
			span := s.spanFrom(start)
			s.errorf(diag.CodeUnterminatedString, span, "unterminated string literal")
			kind := token.FSTRING_END
			if first {
				kind = token.ILLEGAL
			}
			s.emit(token.Token{Kind: kind, Lexeme: s.src[start.Offset:span.End.Offset], Value: sb.String(), Span: span})
			return
		}

		switch s.ch {
		case '"':
			quote := s.currentPos()
			if first {
				s.emit(token.Token{
					Kind:   token.FSTRING_START,
					Lexeme: s.src[start.Offset:quote.Offset],
					Value:  sb.String(),
					Span:   token.Span{Start: start, End: quote},
				})
				s.readChar()
				s.emitText(token.FSTRING_END, quote)
				return
			}
			s.readChar()
			span := s.spanFrom(start)
			s.emit(token.Token{Kind: token.FSTRING_END, Lexeme: s.src[start.Offset:span.End.Offset], Value: sb.String(), Span: span})
			return
		case '{':
			if s.peekChar() == '{' {
				sb.WriteByte('{')
				s.readChar()
				s.readChar()
				continue
			}
			open := s.currentPos()
			s.readChar()
			span := s.spanFrom(start)
			kind := token.FSTRING_MID
			if first {
				kind = token.FSTRING_START
			}
			if !s.push(frameHole, s.spanFrom(open)) {
				return
			}
			s.emit(token.Token{Kind: kind, Lexeme: s.src[start.Offset:span.End.Offset], Value: sb.String(), Span: span})
			return
		case '}':
			if s.peekChar() == '}' {
				sb.WriteByte('}')
				s.readChar()
				s.readChar()
				continue
			}
			at := s.currentPos()
			s.readChar()
			s.errorf(diag.CodeUnbalancedInterp, s.spanFrom(at), "unbalanced `}` in interpolated string (write `}}` for a literal brace)")
			sb.WriteByte('}')
		case '\\':
			s.readEscape(&sb)
		default:
			sb.WriteByte(s.ch)
			s.readChar()
		}
	}
}
