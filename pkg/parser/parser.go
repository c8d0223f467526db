// Package parser turns Helios source text into a syntax tree and diagnostics.
//
// # Usage
//
//	res := parser.Parse(token.NewSource("main.hl", text))
//	for _, d := range res.Diagnostics {
//	    // render d
//	}
//
// Parsing never fails: malformed input produces diagnostics and placeholder
// nodes, and the returned tree is always usable.
//
// # Grammar Overview
//
//	file       → { item sep } EOF
//	item       → decl | expr
//	decl       → [visibility] ( fun_decl | module_decl | type_decl | using_decl )
//	expr       → binding | for | while | or_expr
//	or_expr    → and_expr { "||" and_expr }
//	and_expr   → equality { "&&" equality }
//	equality   → comparison { ("==" | "!=") comparison }
//	comparison → additive { ("<" | "<=" | ">" | ">=") additive }
//	additive   → term { ("+" | "-") term }
//	term       → unary { ("*" | "/" | "%") unary }
//	unary      → ("-" | "!") unary | postfix
//	postfix    → primary { "(" args ")" | "." IDENT }
//	block      → NEWLINE? INDENT { item sep } OUTDENT | "{" { item sep } "}"
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/helios/pkg/ast"
	"github.com/leapstack-labs/helios/pkg/diag"
	"github.com/leapstack-labs/helios/pkg/scanner"
	"github.com/leapstack-labs/helios/pkg/token"
)

// Result is the outcome of parsing one source unit.
type Result struct {
	File        *ast.File
	Diagnostics []diag.Diagnostic
	Comments    []*token.Comment
	Aborted     bool
}

// HasErrors reports whether any error-severity diagnostic was produced.
func (r *Result) HasErrors() bool {
	return diag.CountErrors(r.Diagnostics) > 0
}

// Err returns ErrAborted if the parse stopped early, the first error
// diagnostic if there is one, and nil otherwise.
func (r *Result) Err() error {
	if r.Aborted {
		return ErrAborted
	}
	for _, d := range r.Diagnostics {
		if d.IsError() {
			return d
		}
	}
	return nil
}

// Parser parses one source unit. It is not safe for concurrent use; create
// one per document.
type Parser struct {
	src      token.Source
	scanner  *scanner.Scanner
	ts       *stream
	sink     *diag.Sink
	logger   *slog.Logger
	maxDepth int

	depth   int
	aborted bool
	lastErr int            // offset of the last reported error, -1 if none
	prev    token.Token    // last consumed token
	end     token.Position // end of the last consumed non-layout token
}

// New creates a parser for src.
func New(src token.Source, opts ...Option) *Parser {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	layout, err := scanner.NewLayout(cfg.layout, cfg.tabWidth)
	if err != nil {
		cfg.logger.Warn("parser: using indentation layout", "error", err)
		layout = scanner.NewIndentLayout(cfg.tabWidth)
	}

	sink := &diag.Sink{}
	sc := scanner.New(src.Text, sink, scanner.Config{
		MaxDepth:    cfg.maxDepth,
		Layout:      layout,
		DocComments: cfg.docComments,
		Logger:      cfg.logger,
	})
	return &Parser{
		src:      src,
		scanner:  sc,
		ts:       newStream(sc),
		sink:     sink,
		logger:   cfg.logger,
		maxDepth: cfg.maxDepth,
		lastErr:  -1,
		end:      token.Position{Line: 1, Column: 1},
	}
}

// Parse parses src and returns the tree, diagnostics and comments.
func Parse(src token.Source, opts ...Option) *Result {
	p := New(src, opts...)
	file, diags := p.ParseProgram()
	return &Result{
		File:        file,
		Diagnostics: diags,
		Comments:    p.scanner.Comments(),
		Aborted:     p.Aborted(),
	}
}

// ParseProgram parses the whole source unit.
func (p *Parser) ParseProgram() (*ast.File, []diag.Diagnostic) {
	file := &ast.File{URI: p.src.URI}
	p.parseSeq(token.EOF, func() {
		file.Items = append(file.Items, p.parseItem())
	}, nil)

	eof := p.tok().Span.End
	file.Span = token.Span{Start: token.Position{Line: 1, Column: 1}, End: eof}

	if p.Aborted() {
		p.sink.Report(diag.Diagnostic{
			Severity: diag.Error,
			Category: diag.StructuralLimitError,
			Code:     diag.CodeAborted,
			Message:  ErrAborted.Error(),
			Span:     token.Span{Start: eof, End: eof},
		})
	}
	p.logger.Debug("parser: done",
		"uri", p.src.URI,
		"items", len(file.Items),
		"diagnostics", p.sink.Len(),
		"aborted", p.Aborted())
	return file, p.sink.All()
}

// Aborted reports whether parsing stopped at the nesting limit.
func (p *Parser) Aborted() bool {
	return p.aborted || p.scanner.Aborted()
}

// ---------- Token Helpers ----------

func (p *Parser) tok() token.Token {
	return p.ts.Peek(0)
}

func (p *Parser) peek(k int) token.Token {
	return p.ts.Peek(k)
}

// at returns true if the current token has one of the given kinds.
func (p *Parser) at(kinds ...token.Kind) bool {
	return p.tok().Is(kinds...)
}

// next consumes the current token.
func (p *Parser) next() token.Token {
	tok := p.ts.Advance()
	p.prev = tok
	if !tok.Kind.IsLayout() && tok.Kind != token.EOF {
		p.end = tok.Span.End
	}
	return tok
}

// accept consumes the current token if it has the given kind.
func (p *Parser) accept(k token.Kind) bool {
	if p.at(k) {
		p.next()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise reports an error.
func (p *Parser) expect(k token.Kind, what string) bool {
	if p.accept(k) {
		return true
	}
	p.errorExpected(what)
	return false
}

// spanFrom returns the span from start to the end of the last consumed token.
func (p *Parser) spanFrom(start token.Position) token.Span {
	end := p.end
	if end.Offset < start.Offset {
		end = start
	}
	return token.Span{Start: start, End: end}
}

// here returns a zero-width span at the start of the current token.
func (p *Parser) here() token.Span {
	at := p.tok().Span.Start
	return token.Span{Start: at, End: at}
}

// atBlockStart reports whether a block begins at the current token.
func (p *Parser) atBlockStart() bool {
	switch p.tok().Kind {
	case token.LBRACE, token.INDENT:
		return true
	case token.NEWLINE:
		return p.peek(1).Kind == token.INDENT
	}
	return false
}

// ---------- Diagnostics ----------

func (p *Parser) report(d diag.Diagnostic) {
	if p.Aborted() || d.Span.Start.Offset == p.lastErr {
		return
	}
	p.lastErr = d.Span.Start.Offset
	p.sink.Report(d)
}

func (p *Parser) errorAt(span token.Span, code diag.Code, format string, args ...any) {
	p.report(diag.Diagnostic{
		Severity: diag.Error,
		Category: diag.SyntaxError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	})
}

// errorExpected reports that what was required at the current token.
// ILLEGAL tokens were already reported by the scanner.
func (p *Parser) errorExpected(what string) {
	tok := p.tok()
	if tok.Kind == token.ILLEGAL {
		return
	}
	code := diag.CodeUnexpectedToken
	switch tok.Kind {
	case token.EOF, token.NEWLINE, token.OUTDENT:
		code = diag.CodeMissingElement
	}
	p.errorAt(tok.Span, code, ErrExpected, what, tok.Describe())
}

// ---------- Depth ----------

// enter increments the nesting depth. Past the limit it reports once and
// aborts the stream; callers must still call leave.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth <= p.maxDepth {
		return true
	}
	// Peeking may reach the scanner's own limit, which is then the one reported.
	at := p.tok().Span
	if !p.Aborted() {
		p.sink.Errorf(diag.StructuralLimitError, diag.CodeNestingLimit, at, ErrNestingLimit, p.maxDepth)
		p.logger.Debug("parser: aborted", "depth", p.depth, "offset", p.tok().Span.Start.Offset)
		p.aborted = true
		p.ts.Abort()
	}
	return false
}

func (p *Parser) leave() {
	p.depth--
}

// ---------- Sequences ----------

// parseSeq parses elements separated by NEWLINE or ';' until closer, which is
// left unconsumed. An element that ended with an indented block needs no
// separator, nor one followed by a token for which startsElem is true.
// It reports whether the last element was followed by ';'.
func (p *Parser) parseSeq(closer token.Kind, elem func(), startsElem func(token.Token) bool) (semi bool) {
	for {
		for p.at(token.NEWLINE, token.SEMI) {
			if p.next().Kind == token.SEMI {
				semi = true
			}
		}
		if p.at(closer, token.EOF) {
			return semi
		}
		if p.at(token.INDENT) {
			p.errorAt(p.tok().Span, diag.CodeUnexpectedToken, ErrUnexpectedIndent)
			p.skipGroup(token.INDENT, token.OUTDENT)
			continue
		}

		before := p.ts.Pos()
		elem()
		semi = false

		switch {
		case p.at(token.SEMI):
			p.next()
			semi = true
		case p.at(token.NEWLINE):
			p.next()
		case p.at(closer, token.EOF):
		case p.prev.Kind == token.OUTDENT, p.prev.Kind == token.NEWLINE:
		case startsElem != nil && startsElem(p.tok()):
		default:
			p.errorExpected("newline or `;`")
			p.sync()
		}
		if p.ts.Pos() == before {
			p.next()
		}
	}
}

type blockInfo struct {
	ok     bool
	braced bool
	semi   bool // last element followed by ';'
	span   token.Span
}

// parseBlockOf parses an indented or braced block, calling elem for each element.
func (p *Parser) parseBlockOf(what string, elem func(), startsElem func(token.Token) bool) blockInfo {
	start := p.tok().Span.Start
	closer := token.OUTDENT
	switch {
	case p.at(token.LBRACE):
		closer = token.RBRACE
		p.next()
	case p.at(token.INDENT):
		p.next()
	case p.at(token.NEWLINE) && p.peek(1).Kind == token.INDENT:
		p.next()
		start = p.tok().Span.Start
		p.next()
	default:
		p.errorExpected(what)
		return blockInfo{span: p.tok().Span}
	}

	info := blockInfo{ok: true, braced: closer == token.RBRACE}
	ok := p.enter()
	defer p.leave()
	if !ok {
		info.span = p.spanFrom(start)
		return info
	}

	info.semi = p.parseSeq(closer, elem, startsElem)
	if closer == token.RBRACE {
		p.expect(token.RBRACE, "`}`")
	} else if !p.accept(token.OUTDENT) {
		p.errorExpected("end of block")
	}
	info.span = p.spanFrom(start)
	return info
}

// ---------- Recovery ----------

// sync skips to a synchronizing token: past a NEWLINE, or up to an OUTDENT,
// closing delimiter or declaration keyword. Indented blocks and bracketed
// groups are skipped whole.
func (p *Parser) sync() {
	for {
		tok := p.tok()
		switch tok.Kind {
		case token.EOF, token.OUTDENT, token.RBRACE, token.RPAREN, token.RBRACKET:
			return
		case token.NEWLINE:
			p.next()
			return
		case token.INDENT:
			p.skipGroup(token.INDENT, token.OUTDENT)
		case token.LPAREN:
			p.skipGroup(token.LPAREN, token.RPAREN)
		case token.LBRACKET:
			p.skipGroup(token.LBRACKET, token.RBRACKET)
		case token.LBRACE:
			p.skipGroup(token.LBRACE, token.RBRACE)
		default:
			if tok.Kind.StartsDecl() {
				return
			}
			p.next()
		}
	}
}

// syncList skips to the next ',' or the list's closing delimiter.
func (p *Parser) syncList(closer token.Kind) {
	for {
		switch p.tok().Kind {
		case token.EOF, token.COMMA, closer,
			token.RPAREN, token.RBRACKET, token.RBRACE, token.OUTDENT:
			return
		case token.LPAREN:
			p.skipGroup(token.LPAREN, token.RPAREN)
		case token.LBRACKET:
			p.skipGroup(token.LBRACKET, token.RBRACKET)
		case token.LBRACE:
			p.skipGroup(token.LBRACE, token.RBRACE)
		case token.INDENT:
			p.skipGroup(token.INDENT, token.OUTDENT)
		default:
			p.next()
		}
	}
}

// skipGroup consumes a balanced open ... close group starting at open.
func (p *Parser) skipGroup(open, closer token.Kind) {
	depth := 0
	for !p.at(token.EOF) {
		switch p.next().Kind {
		case open:
			depth++
		case closer:
			depth--
			if depth <= 0 {
				return
			}
		}
	}
}
