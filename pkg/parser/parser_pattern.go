package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/helios/pkg/ast"
	"github.com/leapstack-labs/helios/pkg/token"
)

// Pattern parsing.
//
// Grammar:
//
//	pattern → "_"
//	        | literal
//	        | "-" (INT | FLOAT)
//	        | path "(" [pattern {"," pattern} [","]] ")"
//	        | path                    (enum case when qualified or capitalized)
//	        | IDENT                   (binding)

func (p *Parser) parsePattern() ast.Pattern {
	ok := p.enter()
	defer p.leave()
	if !ok {
		return &ast.BadPattern{NodeInfo: ast.NodeInfo{Span: p.here()}}
	}

	tok := p.tok()
	switch tok.Kind {
	case token.IDENT:
		if tok.Lexeme == "_" {
			p.next()
			return &ast.WildcardPattern{NodeInfo: ast.NodeInfo{Span: tok.Span}}
		}
		return p.parsePathPattern()
	case token.INT, token.FLOAT, token.CHAR, token.STRING, token.RAW_STRING, token.TRUE, token.FALSE:
		p.next()
		return &ast.LiteralPattern{NodeInfo: ast.NodeInfo{Span: tok.Span}, Kind: tok.Kind, Raw: tok.Lexeme, Value: tok.Value}
	case token.MINUS:
		if num := p.peek(1); num.Kind == token.INT || num.Kind == token.FLOAT {
			p.next()
			p.next()
			return &ast.LiteralPattern{
				NodeInfo: ast.NodeInfo{Span: p.spanFrom(tok.Span.Start)},
				Negative: true,
				Kind:     num.Kind,
				Raw:      num.Lexeme,
				Value:    num.Value,
			}
		}
	case token.ILLEGAL:
		p.next()
		return &ast.BadPattern{NodeInfo: ast.NodeInfo{Span: tok.Span}}
	}
	p.errorExpected("pattern")
	return &ast.BadPattern{NodeInfo: ast.NodeInfo{Span: p.here()}}
}

func (p *Parser) parsePathPattern() ast.Pattern {
	path := p.parsePath("pattern")
	if p.at(token.LPAREN) {
		pat := &ast.EnumCasePattern{Path: path, Parens: true, Args: p.parsePatternArgs()}
		pat.Span = p.spanFrom(path.Span.Start)
		return pat
	}
	if len(path.Parts) > 1 || isUpper(path.Parts[0].Name) {
		return &ast.EnumCasePattern{NodeInfo: ast.NodeInfo{Span: path.Span}, Path: path}
	}
	return &ast.BindingPattern{NodeInfo: ast.NodeInfo{Span: path.Span}, Name: path.Parts[0]}
}

func (p *Parser) parsePatternArgs() []ast.Pattern {
	p.next() // (
	args := []ast.Pattern{}
	for !p.at(token.RPAREN, token.EOF) {
		args = append(args, p.parsePattern())
		if p.accept(token.COMMA) {
			continue
		}
		if !p.at(token.RPAREN) {
			p.errorExpected("`,` or `)`")
			p.syncList(token.RPAREN)
			if !p.accept(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN, "`)`")
	return args
}

// isUpper reports whether name starts with an upper-case letter.
func isUpper(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
