package parser

import (
	"github.com/leapstack-labs/helios/pkg/ast"
	"github.com/leapstack-labs/helios/pkg/token"
)

// Type parsing.
//
// Grammar:
//
//	type → atom ["->" type]
//	atom → path ["<" type {"," type} ">"]
//	     | "[" type "]"
//	     | "(" ")"
//	     | "(" type ")"
//	     | "(" type "," [type {"," type}] [","] ")"
//
// The arrow is right-associative: A -> B -> C is A -> (B -> C).

func (p *Parser) parseType() ast.TypeExpr {
	ok := p.enter()
	defer p.leave()
	if !ok {
		return p.badType()
	}

	start := p.tok().Span.Start
	atom := p.parseTypeAtom()
	if !p.accept(token.ARROW) {
		return atom
	}
	result := p.parseType()
	return &ast.FuncType{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}, Param: atom, Result: result}
}

func (p *Parser) parseTypeAtom() ast.TypeExpr {
	tok := p.tok()
	switch tok.Kind {
	case token.IDENT:
		named := &ast.NamedType{Path: p.parsePath("type")}
		if p.at(token.LT) {
			named.Args = p.parseTypeArgs()
		}
		named.Span = p.spanFrom(tok.Span.Start)
		return named
	case token.LBRACKET:
		p.next()
		arr := &ast.ArrayType{Elem: p.parseType()}
		p.expect(token.RBRACKET, "`]`")
		arr.Span = p.spanFrom(tok.Span.Start)
		return arr
	case token.LPAREN:
		return p.parseParenType()
	case token.ILLEGAL:
		p.next()
		return &ast.BadType{NodeInfo: ast.NodeInfo{Span: tok.Span}}
	}
	p.errorExpected("type")
	return p.badType()
}

func (p *Parser) parseTypeArgs() []ast.TypeExpr {
	p.next() // <
	args := []ast.TypeExpr{}
	for !p.at(token.GT, token.EOF) {
		args = append(args, p.parseType())
		if !p.accept(token.COMMA) {
			break
		}
	}
	if len(args) == 0 {
		p.errorExpected("type argument")
	}
	if !p.at(token.GT) {
		p.errorExpected("`,` or `>`")
		p.syncList(token.GT)
	}
	p.accept(token.GT)
	return args
}

// parseParenType parses (), (T), (T,) and (A, B, ...). A parenthesized
// single type is the type itself.
func (p *Parser) parseParenType() ast.TypeExpr {
	start := p.next().Span.Start // (
	if p.accept(token.RPAREN) {
		return &ast.TupleType{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}}
	}
	first := p.parseType()
	if p.accept(token.RPAREN) {
		return first
	}

	tuple := p.at(token.COMMA)
	elems := []ast.TypeExpr{first}
	for p.accept(token.COMMA) {
		if p.at(token.RPAREN) {
			break
		}
		elems = append(elems, p.parseType())
	}
	if !p.at(token.RPAREN) {
		p.errorExpected("`,` or `)`")
		p.syncList(token.RPAREN)
	}
	p.accept(token.RPAREN)
	if !tuple {
		return first
	}
	return &ast.TupleType{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}, Elems: elems}
}

func (p *Parser) badType() *ast.BadType {
	return &ast.BadType{NodeInfo: ast.NodeInfo{Span: p.here()}}
}
