package format

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/helios/pkg/ast"
	"github.com/leapstack-labs/helios/pkg/token"
)

func (p *Printer) formatExpr(e ast.Expr) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *ast.Ident:
		p.write(expr.Name)
	case *ast.LiteralExpr:
		p.write(expr.Raw)
	case *ast.InterpolatedExpr:
		p.formatInterpolated(expr)
	case *ast.BinaryExpr:
		p.formatBinaryExpr(expr)
	case *ast.UnaryExpr:
		p.write(expr.Op.String())
		p.formatOperand(expr.X, isBinary(expr.X) || statementLike(expr.X))
	case *ast.CallExpr:
		p.formatOperand(expr.Fun, needsParensPostfix(expr.Fun))
		p.formatExprList("(", expr.Args, ")")
	case *ast.MemberExpr:
		p.formatOperand(expr.X, needsParensPostfix(expr.X))
		p.write(".")
		p.formatIdent(expr.Name)
	case *ast.GroupExpr:
		p.delimited("(", func() { p.formatExpr(expr.X) }, ")")
	case *ast.TupleExpr:
		p.delimited("(", func() {
			p.formatList(len(expr.Elems), func(i int) { p.formatExpr(expr.Elems[i]) }, ", ")
			if len(expr.Elems) == 1 {
				p.write(",")
			}
		}, ")")
	case *ast.ArrayExpr:
		p.formatExprList("[", expr.Elems, "]")
	case *ast.BlockExpr:
		p.formatBlock(expr)
	case *ast.BindingExpr:
		p.formatBindingExpr(expr)
	case *ast.IfExpr:
		p.formatIfExpr(expr)
	case *ast.MatchExpr:
		p.formatMatchExpr(expr)
	case *ast.ForExpr:
		p.kw(token.FOR)
		p.space()
		p.formatPattern(expr.Pattern)
		p.write(" in ")
		p.formatExpr(expr.Iter)
		p.formatBlock(expr.Body)
	case *ast.WhileExpr:
		p.kw(token.WHILE)
		p.space()
		p.formatExpr(expr.Cond)
		p.formatBlock(expr.Body)
	case *ast.BadExpr:
	}
}

func (p *Printer) formatExprList(open string, elems []ast.Expr, closer string) {
	p.delimited(open, func() {
		p.formatList(len(elems), func(i int) { p.formatExpr(elems[i]) }, ", ")
	}, closer)
}

// formatOperand prints e, parenthesized when paren is true.
func (p *Printer) formatOperand(e ast.Expr, paren bool) {
	if paren {
		p.delimited("(", func() { p.formatExpr(e) }, ")")
		return
	}
	p.formatExpr(e)
}

func (p *Printer) formatBinaryExpr(expr *ast.BinaryExpr) {
	prec := expr.Op.Precedence()
	p.formatOperand(expr.Left, needsParensLeft(expr.Left, prec))
	p.gap()
	p.write(expr.Op.String() + " ")
	p.formatOperand(expr.Right, needsParensRight(expr.Right, prec))
}

func needsParensLeft(e ast.Expr, prec int) bool {
	if statementLike(e) || openEnded(e) {
		return true
	}
	bin, ok := e.(*ast.BinaryExpr)
	return ok && bin.Op.Precedence() < prec
}

func needsParensRight(e ast.Expr, prec int) bool {
	if statementLike(e) {
		return true
	}
	bin, ok := e.(*ast.BinaryExpr)
	return ok && bin.Op.Precedence() <= prec
}

func needsParensPostfix(e ast.Expr) bool {
	switch e.(type) {
	case *ast.BinaryExpr, *ast.UnaryExpr:
		return true
	}
	return statementLike(e) || openEnded(e)
}

func isBinary(e ast.Expr) bool {
	_, ok := e.(*ast.BinaryExpr)
	return ok
}

// statementLike reports expressions that only parse where a full expression
// is expected, never as an operand.
func statementLike(e ast.Expr) bool {
	switch e.(type) {
	case *ast.BindingExpr, *ast.ForExpr, *ast.WhileExpr:
		return true
	}
	return false
}

// openEnded reports whether e ends in a bare expression that would absorb a
// following operator, as in `if c then a else b`.
func openEnded(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.IfExpr:
		last := e.Else
		if last == nil {
			if !e.ThenKeyword {
				return false
			}
			last = e.Then
		}
		_, block := last.(*ast.BlockExpr)
		return !block
	case *ast.BinaryExpr:
		return openEnded(e.Right)
	case *ast.UnaryExpr:
		return openEnded(e.X)
	}
	return statementLike(e)
}

// absorbsElse reports whether a following `else` would attach inside e.
func absorbsElse(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.IfExpr:
		if e.Else == nil {
			return true
		}
		return absorbsElse(e.Else)
	case *ast.BinaryExpr:
		return absorbsElse(e.Right)
	case *ast.UnaryExpr:
		return absorbsElse(e.X)
	case *ast.BindingExpr:
		return absorbsElse(e.Value)
	}
	return false
}

// formatInterpolated prints f"..." from the raw text segments.
func (p *Printer) formatInterpolated(expr *ast.InterpolatedExpr) {
	p.write(`f"`)
	if len(expr.Texts) > 0 {
		p.write(expr.Texts[0])
	}
	for i, hole := range expr.Holes {
		sub := &Printer{output: &bytes.Buffer{}, inline: 1}
		sub.formatExpr(hole)
		text := sub.output.String()

		p.write("{")
		if strings.HasPrefix(text, "{") {
			// {{ would read as an escaped brace.
			p.write(" ")
		}
		p.write(text)
		p.write("}")
		if i+1 < len(expr.Texts) {
			p.write(expr.Texts[i+1])
		}
	}
	p.write(`"`)
}

// ---------- Blocks and Control Flow ----------

func (p *Printer) formatBlock(blk *ast.BlockExpr) {
	items := blk.Stmts
	if blk.Tail != nil {
		items = append(items[:len(items):len(items)], blk.Tail)
	}
	semi := false
	if blk.Tail == nil && len(blk.Stmts) > 0 {
		_, semi = blk.Stmts[len(blk.Stmts)-1].(ast.Expr)
	}
	p.formatBody(body{
		braced:    blk.Braced,
		count:     len(items),
		elem:      func(i int) { p.formatItem(items[i]) },
		sep:       "; ",
		multiline: anyDoc(len(items), func(i int) []*token.Comment { return docOf(items[i]) }),
		semi:      semi,
	})
}

func (p *Printer) formatBindingExpr(b *ast.BindingExpr) {
	if b.Mutable {
		p.kw(token.VAR)
	} else {
		p.kw(token.LET)
	}
	p.space()
	p.formatPattern(b.Pattern)
	if b.Type != nil {
		p.write(": ")
		p.formatType(b.Type)
	}
	p.write(" = ")
	p.formatExpr(b.Value)
}

func (p *Printer) formatIfExpr(n *ast.IfExpr) {
	p.kw(token.IF)
	p.space()
	p.formatExpr(n.Cond)

	thenBlock, isBlock := n.Then.(*ast.BlockExpr)
	switch {
	case n.ThenKeyword && isBlock && !thenBlock.Braced:
		p.write(" then")
		p.formatBlock(thenBlock)
	case n.ThenKeyword:
		p.write(" then ")
		p.formatOperand(n.Then, n.Else != nil && absorbsElse(n.Then))
	case isBlock:
		p.formatBlock(thenBlock)
	default:
		p.write(" then ")
		p.formatExpr(n.Then)
	}

	if n.Else == nil {
		return
	}
	p.gap()
	p.kw(token.ELSE)
	if blk, ok := n.Else.(*ast.BlockExpr); ok {
		p.formatBlock(blk)
		return
	}
	p.space()
	p.formatExpr(n.Else)
}

func (p *Printer) formatMatchExpr(m *ast.MatchExpr) {
	p.kw(token.MATCH)
	p.space()
	p.formatExpr(m.Subject)
	sep := " "
	for _, c := range m.Cases {
		if !c.Keyword {
			sep = "; "
		}
	}
	p.formatBody(body{
		braced: m.Braced,
		count:  len(m.Cases),
		elem:   func(i int) { p.formatCase(m.Cases[i]) },
		sep:    sep,
	})
}

func (p *Printer) formatCase(c *ast.CaseClause) {
	p.formatLeadingComments(c.Span.Start.Offset)
	if c.Keyword {
		p.kw(token.CASE)
		p.space()
	}
	p.formatPattern(c.Pattern)
	if c.Guard != nil {
		p.write(" if ")
		p.formatExpr(c.Guard)
	}
	if blk, ok := c.Body.(*ast.BlockExpr); ok && c.BlockBody {
		p.write(" ->")
		p.formatBlock(blk)
		return
	}
	p.write(" => ")
	p.formatExpr(c.Body)
}
