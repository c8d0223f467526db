package format

import "github.com/leapstack-labs/helios/pkg/ast"

func (p *Printer) formatType(t ast.TypeExpr) {
	switch t := t.(type) {
	case *ast.NamedType:
		p.formatPath(t.Path)
		if len(t.Args) > 0 {
			p.delimited("<", func() {
				p.formatList(len(t.Args), func(i int) { p.formatType(t.Args[i]) }, ", ")
			}, ">")
		}
	case *ast.ArrayType:
		p.delimited("[", func() { p.formatType(t.Elem) }, "]")
	case *ast.FuncType:
		// The arrow is right-associative, so only a function parameter needs parentheses.
		if _, ok := t.Param.(*ast.FuncType); ok {
			p.delimited("(", func() { p.formatType(t.Param) }, ")")
		} else {
			p.formatType(t.Param)
		}
		p.write(" -> ")
		p.formatType(t.Result)
	case *ast.TupleType:
		p.delimited("(", func() {
			p.formatList(len(t.Elems), func(i int) { p.formatType(t.Elems[i]) }, ", ")
			if len(t.Elems) == 1 {
				p.write(",")
			}
		}, ")")
	case *ast.BadType:
	}
}

func (p *Printer) formatPattern(pat ast.Pattern) {
	switch pat := pat.(type) {
	case *ast.WildcardPattern:
		p.write("_")
	case *ast.BindingPattern:
		p.formatIdent(pat.Name)
	case *ast.LiteralPattern:
		if pat.Negative {
			p.write("-")
		}
		p.write(pat.Raw)
	case *ast.EnumCasePattern:
		p.formatPath(pat.Path)
		if pat.Parens {
			p.delimited("(", func() {
				p.formatList(len(pat.Args), func(i int) { p.formatPattern(pat.Args[i]) }, ", ")
			}, ")")
		}
	case *ast.BadPattern:
		p.write("_")
	}
}
