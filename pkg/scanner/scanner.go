// Package scanner converts Helios source text into a stream of tokens.
//
// The scanner is pull-based and never fails: malformed input produces an
// ILLEGAL token and a diagnostic in the sink, and scanning continues. Block
// structure is delegated to a Layout, which is the only producer of INDENT
// and OUTDENT tokens.
package scanner

import (
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/leapstack-labs/helios/pkg/diag"
	"github.com/leapstack-labs/helios/pkg/token"
)

// Defaults.
const (
	DefaultMaxDepth = 256
	DefaultTabWidth = 4
)

// Config configures a Scanner. The zero value uses the defaults.
type Config struct {
	MaxDepth    int          // open delimiter and comment nesting limit
	Layout      Layout       // block-boundary strategy; IndentLayout when nil
	TabWidth    int          // used when Layout is nil
	DocComments bool         // attach /// comments to the following token
	Logger      *slog.Logger // debug events; discarded when nil
}

type frameKind uint8

const (
	frameParen frameKind = iota
	frameBracket
	frameBrace
	frameHole // interpolation hole inside an f-string
)

func (k frameKind) String() string {
	switch k {
	case frameParen:
		return "paren"
	case frameBracket:
		return "bracket"
	case frameBrace:
		return "brace"
	}
	return "hole"
}

type frame struct {
	kind frameKind
	open token.Span
}

// Scanner tokenizes one source unit.
type Scanner struct {
	src     string
	pos     int  // offset of ch
	readPos int  // offset after ch
	ch      byte // current byte; 0 at end of input
	line    int  // line of ch (1-based)
	col     int  // column of ch in bytes (1-based)

	sink     *diag.Sink
	layout   Layout
	logger   *slog.Logger
	maxDepth int
	docs     bool

	frames      []frame
	queue       []token.Token
	pendingDoc  []*token.Comment
	comments    []*token.Comment
	lastKind    token.Kind
	atLineStart bool
	done        bool
	aborted     bool
}

// New creates a Scanner over src that reports into sink.
func New(src string, sink *diag.Sink, cfg Config) *Scanner {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Layout == nil {
		cfg.Layout = NewIndentLayout(cfg.TabWidth)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Scanner{
		src:         src,
		line:        1,
		col:         1,
		sink:        sink,
		layout:      cfg.Layout,
		logger:      cfg.Logger,
		maxDepth:    cfg.MaxDepth,
		docs:        cfg.DocComments,
		lastKind:    token.NEWLINE,
		atLineStart: true,
	}
	s.load()
	return s
}

// Comments returns every comment seen so far in source order.
func (s *Scanner) Comments() []*token.Comment {
	return s.comments
}

// Aborted reports whether scanning stopped at the nesting limit.
func (s *Scanner) Aborted() bool {
	return s.aborted
}

// Layout returns the scanner's layout component.
func (s *Scanner) Layout() Layout {
	return s.layout
}

// All scans the remaining input, EOF included.
func (s *Scanner) All() []token.Token {
	var toks []token.Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next token. After EOF it keeps returning EOF.
func (s *Scanner) Next() token.Token {
	for len(s.queue) == 0 {
		s.scan()
	}
	tok := s.queue[0]
	s.queue = s.queue[1:]
	return tok
}

// load sets ch from pos.
func (s *Scanner) load() {
	if s.pos >= len(s.src) {
		s.ch = 0
		s.readPos = len(s.src)
		return
	}
	s.ch = s.src[s.pos]
	s.readPos = s.pos + 1
}

// readChar advances one byte.
func (s *Scanner) readChar() {
	if s.pos >= len(s.src) {
		return
	}
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos = s.readPos
	s.load()
}

// readRune advances past one UTF-8 encoded character.
func (s *Scanner) readRune() {
	_, w := utf8.DecodeRuneInString(s.src[s.pos:])
	for i := 0; i < w; i++ {
		s.readChar()
	}
}

func (s *Scanner) peekChar() byte {
	if s.readPos >= len(s.src) {
		return 0
	}
	return s.src[s.readPos]
}

func (s *Scanner) peekAt(n int) byte {
	if s.pos+n >= len(s.src) {
		return 0
	}
	return s.src[s.pos+n]
}

func (s *Scanner) atEOF() bool {
	return s.pos >= len(s.src)
}

func (s *Scanner) currentPos() token.Position {
	return token.Position{Line: s.line, Column: s.col, Offset: s.pos}
}

func (s *Scanner) spanFrom(start token.Position) token.Span {
	return token.Span{Start: start, End: s.currentPos()}
}

func (s *Scanner) errorf(code diag.Code, span token.Span, format string, args ...any) {
	s.sink.Errorf(diag.LexError, code, span, format, args...)
}

// emit queues a token. Doc comments collected since the previous content
// token are attached to it.
func (s *Scanner) emit(tok token.Token) {
	if !tok.Kind.IsLayout() && tok.Kind != token.EOF && len(s.pendingDoc) > 0 {
		tok.Doc = s.pendingDoc
		s.pendingDoc = nil
	}
	s.lastKind = tok.Kind
	s.queue = append(s.queue, tok)
}

func (s *Scanner) emitText(kind token.Kind, start token.Position) {
	span := s.spanFrom(start)
	s.emit(token.Token{Kind: kind, Lexeme: s.src[start.Offset:span.End.Offset], Span: span})
}

// scan queues at least one token.
func (s *Scanner) scan() {
	if s.done {
		at := s.currentPos()
		s.queue = append(s.queue, token.Token{Kind: token.EOF, Span: token.Span{Start: at, End: at}})
		return
	}
	for {
		if s.atLineStart && len(s.frames) == 0 {
			if !s.startLine() {
				continue
			}
		}
		s.skipSpace()
		if s.done {
			return
		}
		if s.atEOF() {
			s.finish()
			return
		}
		if s.ch == '\n' {
			if s.newline() {
				return
			}
			continue
		}
		s.scanToken()
		return
	}
}

// startLine measures the indentation of a line that begins outside any
// delimiter. It returns false when the line was blank and has been consumed.
func (s *Scanner) startLine() bool {
	start := s.currentPos()
	width := 0
	tab := s.tabWidth()
	for s.ch == ' ' || s.ch == '\t' {
		if s.ch == '\t' {
			width = (width/tab + 1) * tab
		} else {
			width++
		}
		s.readChar()
	}
	indent := s.spanFrom(start)

	s.skipSpace()
	if s.done {
		return true
	}
	if s.atEOF() {
		s.atLineStart = false
		return true
	}
	if s.ch == '\n' {
		s.readChar()
		return false
	}
	// A block comment may have carried us onto a later line; its remainder
	// is part of the line that started here.
	s.atLineStart = false
	toks := s.layout.LineStart(Line{Width: width, Indent: indent}, s.sink)
	for _, t := range toks {
		s.logger.Debug("scanner: layout", "kind", t.Kind, "width", width, "depth", s.layout.Depth())
		s.emit(t)
	}
	if s.layout.Depth() > s.maxDepth {
		s.abort(indent)
	}
	return true
}

func (s *Scanner) tabWidth() int {
	if il, ok := s.layout.(*IndentLayout); ok {
		return il.TabWidth
	}
	return DefaultTabWidth
}

// newline handles a line break at a token boundary. It reports whether a
// token was queued.
func (s *Scanner) newline() bool {
	start := s.currentPos()
	if i := s.outermostHole(); i >= 0 {
		s.closeHoles(i, start)
	}
	s.readChar()
	span := s.spanFrom(start)

	if n := len(s.frames); n > 0 {
		if s.frames[n-1].kind != frameBrace || s.lastKind == token.NEWLINE {
			return false
		}
		s.emit(token.Token{Kind: token.NEWLINE, Lexeme: "\n", Span: span})
		return true
	}

	s.atLineStart = true
	if !s.lastKind.IsLayout() {
		s.emit(token.Token{Kind: token.NEWLINE, Lexeme: "\n", Span: span})
		return true
	}
	return false
}

// finish closes everything that is still open at end of input.
func (s *Scanner) finish() {
	at := s.currentPos()
	zero := token.Span{Start: at, End: at}
	if i := s.outermostHole(); i >= 0 {
		s.closeHoles(i, at)
	}
	s.frames = nil
	if !s.lastKind.IsLayout() {
		s.emit(token.Token{Kind: token.NEWLINE, Span: zero})
	}
	for _, t := range s.layout.Finish(at) {
		s.emit(t)
	}
	s.done = true
	s.emit(token.Token{Kind: token.EOF, Span: zero})
}

// abort stops scanning after the nesting limit is exceeded.
func (s *Scanner) abort(span token.Span) {
	s.sink.Errorf(diag.StructuralLimitError, diag.CodeNestingLimit, span,
		"nesting depth exceeds limit of %d", s.maxDepth)
	s.logger.Debug("scanner: aborted", "offset", span.Start.Offset, "limit", s.maxDepth)
	s.aborted = true
	s.done = true
	s.frames = nil
	at := span.End
	s.emit(token.Token{Kind: token.EOF, Span: token.Span{Start: at, End: at}})
}

func (s *Scanner) push(kind frameKind, open token.Span) bool {
	if len(s.frames) >= s.maxDepth {
		s.abort(open)
		return false
	}
	s.frames = append(s.frames, frame{kind: kind, open: open})
	s.logger.Debug("scanner: push frame", "kind", kind, "depth", len(s.frames))
	return true
}

// pop closes the innermost frame of the given kind without crossing an
// interpolation hole. A '}' also closes the innermost hole, in which case
// pop reports true.
func (s *Scanner) pop(kind frameKind) (closedHole bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		if f.kind == kind {
			s.frames = s.frames[:i]
			s.logger.Debug("scanner: pop frame", "kind", kind, "depth", len(s.frames))
			return false
		}
		if f.kind == frameHole {
			if kind == frameBrace {
				s.frames = s.frames[:i]
				s.logger.Debug("scanner: close hole", "depth", len(s.frames))
				return true
			}
			return false
		}
	}
	return false
}

func (s *Scanner) outermostHole() int {
	for i, f := range s.frames {
		if f.kind == frameHole {
			return i
		}
	}
	return -1
}

// closeHoles reports an unterminated interpolation and closes every hole
// from frames[i] upwards, one synthetic FSTRING_END each.
func (s *Scanner) closeHoles(i int, at token.Position) {
	s.errorf(diag.CodeUnterminatedInterp, s.frames[i].open, "unterminated interpolation")
	holes := 0
	for _, f := range s.frames[i:] {
		if f.kind == frameHole {
			holes++
		}
	}
	s.frames = s.frames[:i]
	for ; holes > 0; holes-- {
		s.emit(token.Token{Kind: token.FSTRING_END, Span: token.Span{Start: at, End: at}})
	}
}

func (s *Scanner) scanToken() {
	start := s.currentPos()

	switch ch := s.ch; {
	case (ch == 'r' || ch == 'f') && s.peekChar() == '"':
		if ch == 'r' {
			s.scanRawString(start)
		} else {
			s.scanFString(start)
		}
		return
	case isIdentStart(ch):
		s.scanIdent(start)
		return
	case isDigit(ch):
		s.scanNumber(start)
		return
	case ch == '"':
		s.scanString(start)
		return
	case ch == '\'':
		s.scanChar(start)
		return
	}

	kind := token.ILLEGAL
	two := func(next byte, long, short token.Kind) {
		s.readChar()
		if s.ch == next {
			s.readChar()
			kind = long
		} else {
			kind = short
		}
	}

	switch s.ch {
	case '+':
		s.readChar()
		kind = token.PLUS
	case '*':
		s.readChar()
		kind = token.STAR
	case '/':
		s.readChar()
		kind = token.SLASH
	case '%':
		s.readChar()
		kind = token.PERCENT
	case ':':
		s.readChar()
		kind = token.COLON
	case ',':
		s.readChar()
		kind = token.COMMA
	case ';':
		s.readChar()
		kind = token.SEMI
	case '.':
		s.readChar()
		kind = token.DOT
	case '-':
		two('>', token.ARROW, token.MINUS)
	case '!':
		two('=', token.NE, token.BANG)
	case '<':
		two('=', token.LE, token.LT)
	case '>':
		two('=', token.GE, token.GT)
	case '=':
		s.readChar()
		switch s.ch {
		case '=':
			s.readChar()
			kind = token.EQ
		case '>':
			s.readChar()
			kind = token.FATARROW
		default:
			kind = token.ASSIGN
		}
	case '&', '|':
		c := s.ch
		s.readChar()
		if s.ch == c {
			s.readChar()
			kind = token.AND
			if c == '|' {
				kind = token.OR
			}
		} else {
			s.errorf(diag.CodeIllegalChar, s.spanFrom(start), "unexpected character %q (did you mean %q?)", c, string([]byte{c, c}))
		}
	case '(', '[', '{':
		c := s.ch
		s.readChar()
		fk, tk := frameParen, token.LPAREN
		switch c {
		case '[':
			fk, tk = frameBracket, token.LBRACKET
		case '{':
			fk, tk = frameBrace, token.LBRACE
		}
		if !s.push(fk, s.spanFrom(start)) {
			return
		}
		kind = tk
	case ')':
		s.readChar()
		s.pop(frameParen)
		kind = token.RPAREN
	case ']':
		s.readChar()
		s.pop(frameBracket)
		kind = token.RBRACKET
	case '}':
		if s.pop(frameBrace) {
			s.readChar()
			s.scanFStringText(start, false)
			return
		}
		s.readChar()
		kind = token.RBRACE
	default:
		r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
		s.readRune()
		s.errorf(diag.CodeIllegalChar, s.spanFrom(start), "unexpected character %q", r)
	}
	s.emitText(kind, start)
}

func (s *Scanner) scanIdent(start token.Position) {
	for isIdentChar(s.ch) {
		s.readChar()
	}
	span := s.spanFrom(start)
	word := s.src[start.Offset:span.End.Offset]
	kind := token.Lookup(word)
	if kind == token.IDENT {
		if k, ok := s.layout.Keyword(word); ok {
			kind = k
			if s.layout.Depth() > s.maxDepth {
				s.abort(span)
				return
			}
		}
	}
	s.emit(token.Token{Kind: kind, Lexeme: word, Value: word, Span: span})
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
