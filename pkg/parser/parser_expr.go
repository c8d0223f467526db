package parser

import (
	"strings"

	"github.com/leapstack-labs/helios/pkg/ast"
	"github.com/leapstack-labs/helios/pkg/diag"
	"github.com/leapstack-labs/helios/pkg/token"
)

// Expression parsing using precedence climbing.
//
// Precedence levels (from the token package):
//
//	PrecedenceNone       = 0
//	PrecedenceOr         = 1  (||)
//	PrecedenceAnd        = 2  (&&)
//	PrecedenceEquality   = 3  (==, !=)
//	PrecedenceComparison = 4  (<, <=, >, >=)
//	PrecedenceAddition   = 5  (+, -)
//	PrecedenceMultiply   = 6  (*, /, %)
//
// All binary operators are left-associative. Prefix operators bind tighter
// than any binary operator, and calls and member access tighter still.

// parseExpr parses an expression, including bindings and loops.
func (p *Parser) parseExpr() ast.Expr {
	ok := p.enter()
	defer p.leave()
	if !ok {
		return p.badExpr()
	}

	switch p.tok().Kind {
	case token.LET, token.VAR:
		return p.parseBinding()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	}
	return p.parseBinary(token.PrecedenceNone + 1)
}

// parseBinary parses operators whose precedence is at least minPrec.
func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		op := p.tok().Kind
		prec := op.Precedence()
		if prec == token.PrecedenceNone || prec < minPrec {
			return left
		}
		p.next()
		right := p.parseBinary(prec + 1)
		left = &ast.BinaryExpr{
			NodeInfo: ast.NodeInfo{Span: p.spanFrom(left.GetSpan().Start)},
			Op:       op,
			Left:     left,
			Right:    right,
		}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	if !p.at(token.MINUS, token.BANG) {
		return p.parsePostfix()
	}
	op := p.next()
	ok := p.enter()
	defer p.leave()
	if !ok {
		return p.badExpr()
	}
	x := p.parseUnary()
	return &ast.UnaryExpr{NodeInfo: ast.NodeInfo{Span: p.spanFrom(op.Span.Start)}, Op: op.Kind, X: x}
}

func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch p.tok().Kind {
		case token.LPAREN:
			args := p.parseExprList(token.RPAREN, "`)`")
			x = &ast.CallExpr{NodeInfo: ast.NodeInfo{Span: p.spanFrom(x.GetSpan().Start)}, Fun: x, Args: args}
		case token.DOT:
			p.next()
			name := p.parseIdent("member name")
			x = &ast.MemberExpr{NodeInfo: ast.NodeInfo{Span: p.spanFrom(x.GetSpan().Start)}, X: x, Name: name}
		default:
			return x
		}
	}
}

// ---------- Primary ----------

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.tok()
	switch tok.Kind {
	case token.INT, token.FLOAT, token.CHAR, token.STRING, token.RAW_STRING, token.TRUE, token.FALSE:
		p.next()
		return &ast.LiteralExpr{NodeInfo: ast.NodeInfo{Span: tok.Span}, Kind: tok.Kind, Raw: tok.Lexeme, Value: tok.Value}
	case token.FSTRING_START:
		return p.parseInterpolated()
	case token.IDENT:
		p.next()
		return &ast.Ident{NodeInfo: ast.NodeInfo{Span: tok.Span}, Name: tok.Lexeme}
	case token.LPAREN:
		return p.parseParenExpr()
	case token.LBRACKET:
		start := tok.Span.Start
		elems := p.parseExprList(token.RBRACKET, "`]`")
		return &ast.ArrayExpr{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}, Elems: elems}
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIf()
	case token.MATCH:
		return p.parseMatch()
	case token.ILLEGAL:
		p.next()
		return &ast.BadExpr{NodeInfo: ast.NodeInfo{Span: tok.Span}}
	}
	p.errorExpected("expression")
	return p.badExpr()
}

// parseParenExpr parses (), (e), (e,) and (a, b, ...).
func (p *Parser) parseParenExpr() ast.Expr {
	start := p.next().Span.Start // (
	if p.accept(token.RPAREN) {
		return &ast.TupleExpr{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}}
	}

	first := p.parseExpr()
	if p.accept(token.RPAREN) {
		return &ast.GroupExpr{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}, X: first}
	}

	tuple := p.at(token.COMMA)
	elems := []ast.Expr{first}
	for p.accept(token.COMMA) {
		if p.at(token.RPAREN) {
			break
		}
		elems = append(elems, p.parseExpr())
	}
	if !p.at(token.RPAREN) {
		p.errorExpected("`,` or `)`")
		p.syncList(token.RPAREN)
	}
	p.accept(token.RPAREN)
	if !tuple {
		return &ast.GroupExpr{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}, X: first}
	}
	return &ast.TupleExpr{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}, Elems: elems}
}

// parseExprList parses open [expr {"," expr} [","]] closer, with the
// opening delimiter at the current token.
func (p *Parser) parseExprList(closer token.Kind, what string) []ast.Expr {
	p.next() // opener
	list := []ast.Expr{}
	for !p.at(closer, token.EOF) {
		list = append(list, p.parseExpr())
		if p.accept(token.COMMA) {
			continue
		}
		if !p.at(closer) {
			p.errorExpected("`,` or " + what)
			p.syncList(closer)
			if !p.accept(token.COMMA) {
				break
			}
		}
	}
	p.expect(closer, what)
	return list
}

// parseInterpolated parses an interpolated string:
//
//	FSTRING_START { expr (FSTRING_MID | FSTRING_END) } | FSTRING_START FSTRING_END
func (p *Parser) parseInterpolated() ast.Expr {
	first := p.next()
	n := &ast.InterpolatedExpr{
		Texts:  []string{fstringText(first)},
		Values: []string{first.Value},
	}
	hole := opensHole(first)
	if !hole {
		p.accept(token.FSTRING_END)
	}

	for hole {
		if p.at(token.FSTRING_MID, token.FSTRING_END) {
			p.errorAt(p.tok().Span, diag.CodeEmptyInterpHole, ErrEmptyInterpHole)
			n.Holes = append(n.Holes, p.badExpr())
		} else {
			n.Holes = append(n.Holes, p.parseExpr())
		}

		if !p.at(token.FSTRING_MID, token.FSTRING_END) {
			p.errorExpected("`}`")
			for !p.at(token.FSTRING_MID, token.FSTRING_END, token.NEWLINE, token.EOF) {
				p.next()
			}
			if !p.at(token.FSTRING_MID, token.FSTRING_END) {
				n.Texts = append(n.Texts, "")
				n.Values = append(n.Values, "")
				break
			}
		}
		tok := p.next()
		n.Texts = append(n.Texts, fstringText(tok))
		n.Values = append(n.Values, tok.Value)
		hole = tok.Kind == token.FSTRING_MID
	}
	n.Span = p.spanFrom(first.Span.Start)
	return n
}

// opensHole reports whether an interpolation piece ends with an opening '{'.
// An even run of braces is escaped text.
func opensHole(tok token.Token) bool {
	if tok.Kind == token.FSTRING_MID {
		return true
	}
	n := len(tok.Lexeme) - len(strings.TrimRight(tok.Lexeme, "{"))
	return n%2 == 1
}

// fstringText returns the raw source text of an interpolation piece without
// its delimiters.
func fstringText(tok token.Token) string {
	s := tok.Lexeme
	switch tok.Kind {
	case token.FSTRING_START:
		s = strings.TrimPrefix(s, `f"`)
		if opensHole(tok) {
			s = s[:len(s)-1]
		}
	case token.FSTRING_MID:
		s = strings.TrimSuffix(strings.TrimPrefix(s, "}"), "{")
	case token.FSTRING_END:
		s = strings.TrimSuffix(strings.TrimPrefix(s, "}"), `"`)
	}
	return s
}

// ---------- Blocks and Control Flow ----------

// parseBlock parses an indented or braced block of items.
func (p *Parser) parseBlock() *ast.BlockExpr {
	blk := &ast.BlockExpr{}
	info := p.parseBlockOf("block", func() {
		blk.Stmts = append(blk.Stmts, p.parseItem())
	}, nil)
	blk.Braced = info.braced
	if n := len(blk.Stmts); n > 0 && !info.semi {
		if tail, ok := blk.Stmts[n-1].(ast.Expr); ok {
			blk.Tail = tail
			blk.Stmts = blk.Stmts[:n-1]
		}
	}
	if len(blk.Stmts) == 0 {
		blk.Stmts = nil
	}
	blk.Span = info.span
	return blk
}

func (p *Parser) parseBinding() *ast.BindingExpr {
	kw := p.next()
	b := &ast.BindingExpr{Mutable: kw.Kind == token.VAR}
	b.Pattern = p.parsePattern()
	if p.accept(token.COLON) {
		b.Type = p.parseType()
	}
	if p.expect(token.ASSIGN, "`=`") {
		b.Value = p.parseExpr()
	} else {
		b.Value = p.badExpr()
	}
	b.Span = p.spanFrom(kw.Span.Start)
	return b
}

// parseIf parses if cond (then expr | block) [else ...]. The else branch may
// start on the line after the then branch.
func (p *Parser) parseIf() *ast.IfExpr {
	start := p.next().Span.Start // if
	n := &ast.IfExpr{Cond: p.parseExpr()}

	switch {
	case p.accept(token.THEN):
		n.ThenKeyword = true
		if p.atBlockStart() {
			n.Then = p.parseBlock()
		} else {
			n.Then = p.parseExpr()
		}
	case p.atBlockStart():
		n.Then = p.parseBlock()
	default:
		p.errorExpected("`then` or block")
		n.Then = p.badExpr()
	}

	if p.at(token.NEWLINE) && p.peek(1).Kind == token.ELSE {
		p.next()
	}
	if p.accept(token.ELSE) {
		if p.atBlockStart() {
			n.Else = p.parseBlock()
		} else {
			n.Else = p.parseExpr()
		}
	}
	n.Span = p.spanFrom(start)
	return n
}

func (p *Parser) parseMatch() *ast.MatchExpr {
	kw := p.next()
	m := &ast.MatchExpr{Subject: p.parseExpr()}
	info := p.parseBlockOf("match cases", func() {
		m.Cases = append(m.Cases, p.parseCase())
	}, func(tok token.Token) bool { return tok.Kind == token.CASE })
	m.Braced = info.braced
	if info.ok && len(m.Cases) == 0 {
		p.errorAt(kw.Span.To(info.span), diag.CodeEmptyMatch, ErrEmptyMatch)
	}
	m.Span = p.spanFrom(kw.Span.Start)
	return m
}

// parseCase parses ["case"] pattern ["if" guard] ("=>" expr | "->" block).
func (p *Parser) parseCase() *ast.CaseClause {
	start := p.tok().Span.Start
	c := &ast.CaseClause{Keyword: p.accept(token.CASE)}
	c.Pattern = p.parsePattern()
	if p.accept(token.IF) {
		c.Guard = p.parseExpr()
	}
	switch {
	case p.accept(token.FATARROW):
		c.Body = p.parseExpr()
	case p.accept(token.ARROW):
		c.BlockBody = true
		c.Body = p.parseBlock()
	default:
		p.errorExpected("`=>` or `->`")
		c.Body = p.badExpr()
		p.sync()
	}
	c.Span = p.spanFrom(start)
	return c
}

func (p *Parser) parseFor() *ast.ForExpr {
	start := p.next().Span.Start // for
	f := &ast.ForExpr{Pattern: p.parsePattern()}
	if _, bad := f.Pattern.(*ast.BadPattern); bad {
		p.skipToIn()
	}
	if p.expect(token.IN, "`in`") {
		f.Iter = p.parseExpr()
	} else {
		f.Iter = p.badExpr()
	}
	f.Body = p.parseBlock()
	f.Span = p.spanFrom(start)
	return f
}

// skipToIn skips the rest of a malformed loop pattern, stopping at `in`, a
// block start or the end of the line.
func (p *Parser) skipToIn() {
	for !p.at(token.IN, token.EOF, token.NEWLINE, token.OUTDENT) && !p.atBlockStart() {
		switch p.tok().Kind {
		case token.LPAREN:
			p.skipGroup(token.LPAREN, token.RPAREN)
		case token.LBRACKET:
			p.skipGroup(token.LBRACKET, token.RBRACKET)
		default:
			p.next()
		}
	}
}

func (p *Parser) parseWhile() *ast.WhileExpr {
	start := p.next().Span.Start // while
	w := &ast.WhileExpr{Cond: p.parseExpr()}
	w.Body = p.parseBlock()
	w.Span = p.spanFrom(start)
	return w
}

// badExpr returns a zero-width placeholder at the current token.
func (p *Parser) badExpr() *ast.BadExpr {
	return &ast.BadExpr{NodeInfo: ast.NodeInfo{Span: p.here()}}
}
