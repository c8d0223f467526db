package format

import (
	"github.com/leapstack-labs/helios/pkg/ast"
	"github.com/leapstack-labs/helios/pkg/token"
)

func (p *Printer) formatDecl(d ast.Decl) {
	switch d := d.(type) {
	case *ast.FunDecl:
		p.formatFunDecl(d)
	case *ast.ModuleDecl:
		p.formatModuleDecl(d)
	case *ast.TypeDecl:
		p.formatTypeDecl(d)
	case *ast.UsingDecl:
		p.formatUsingDecl(d)
	case *ast.BadDecl:
	}
}

func (p *Printer) formatVisibility(v ast.Visibility) {
	if v != ast.Private {
		p.write(v.String())
		p.space()
	}
}

// ---------- Functions ----------

func (p *Printer) formatFunDecl(fn *ast.FunDecl) {
	p.formatDoc(fn.Doc)
	p.formatVisibility(fn.Visibility)
	if fn.Def {
		p.kw(token.DEF)
	} else {
		p.kw(token.FUN)
	}
	p.space()
	p.formatIdent(fn.Name)
	p.formatGenerics(fn.Generics)
	p.formatParams(fn.Params)
	if fn.Result != nil {
		p.write(": ")
		p.formatType(fn.Result)
	}
	p.formatFunBody(fn.Body, fn.ExprBody)
}

// formatFunBody prints "=> expr" or a block.
func (p *Printer) formatFunBody(body ast.Expr, exprBody bool) {
	if blk, ok := body.(*ast.BlockExpr); ok && !exprBody {
		p.formatBlock(blk)
		return
	}
	p.write(" => ")
	p.formatExpr(body)
}

func (p *Printer) formatGenerics(g *ast.GenericList) {
	if g == nil {
		return
	}
	p.delimited("<", func() {
		p.formatList(len(g.Params), func(i int) {
			param := g.Params[i]
			p.formatIdent(param.Name)
			if len(param.Bounds) > 0 {
				p.write(": ")
				p.formatList(len(param.Bounds), func(j int) { p.formatType(param.Bounds[j]) }, " + ")
			}
		}, ", ")
	}, ">")
}

func (p *Printer) formatParams(list *ast.ParamList) {
	var params []*ast.Param
	if list != nil {
		params = list.Params
	}
	p.delimited("(", func() {
		p.formatList(len(params), func(i int) {
			p.formatIdent(params[i].Name)
			if params[i].Type != nil {
				p.write(": ")
				p.formatType(params[i].Type)
			}
		}, ", ")
	}, ")")
}

// ---------- Modules ----------

func (p *Printer) formatModuleDecl(mod *ast.ModuleDecl) {
	p.formatDoc(mod.Doc)
	p.formatVisibility(mod.Visibility)
	p.kw(token.MODULE)
	p.space()
	p.formatPath(mod.Path)
	if mod.Body == nil {
		return
	}
	decls := mod.Body.Decls
	p.formatBody(body{
		braced:    mod.Body.Braced,
		count:     len(decls),
		elem:      func(i int) { p.formatItem(decls[i]) },
		sep:       "; ",
		multiline: anyDoc(len(decls), func(i int) []*token.Comment { return docOf(decls[i]) }),
	})
}

// ---------- Types ----------

func (p *Printer) formatTypeDecl(td *ast.TypeDecl) {
	p.formatDoc(td.Doc)
	p.formatVisibility(td.Visibility)
	p.kw(token.TYPE)
	p.space()
	p.formatIdent(td.Name)
	p.formatGenerics(td.Generics)
	p.write(" = ")

	switch def := td.Def.(type) {
	case *ast.AliasDef:
		p.formatType(def.Type)
	case *ast.EnumDef:
		p.formatEnumDef(def)
	case *ast.StructDef:
		p.formatStructDef(def)
	}
}

func (p *Printer) formatEnumDef(def *ast.EnumDef) {
	p.kw(token.ENUM)
	sep := " "
	for _, c := range def.Cases {
		if !c.Keyword {
			sep = "; "
		}
	}
	p.formatBody(body{
		braced:    def.Braced,
		count:     len(def.Cases),
		elem:      func(i int) { p.formatEnumCase(def.Cases[i]) },
		sep:       sep,
		multiline: anyDoc(len(def.Cases), func(i int) []*token.Comment { return def.Cases[i].Doc }),
	})
}

func (p *Printer) formatEnumCase(c *ast.EnumCase) {
	p.formatLeadingComments(c.Span.Start.Offset)
	p.formatDoc(c.Doc)
	if c.Keyword {
		p.kw(token.CASE)
		p.space()
	}
	p.formatIdent(c.Name)
	if c.Fields != nil {
		p.delimited("(", func() {
			p.formatList(len(c.Fields), func(i int) { p.formatType(c.Fields[i]) }, ", ")
		}, ")")
	}
}

func (p *Printer) formatStructDef(def *ast.StructDef) {
	p.kw(token.STRUCT)
	p.formatBody(body{
		braced:    def.Braced,
		count:     len(def.Fields),
		elem:      func(i int) { p.formatField(def.Fields[i]) },
		sep:       "; ",
		multiline: anyDoc(len(def.Fields), func(i int) []*token.Comment { return def.Fields[i].Doc }),
	})
}

func (p *Printer) formatField(f *ast.Field) {
	p.formatLeadingComments(f.Span.Start.Offset)
	p.formatDoc(f.Doc)
	p.formatVisibility(f.Visibility)
	p.formatIdent(f.Name)
	if f.Type != nil {
		p.write(": ")
		p.formatType(f.Type)
	}
	if f.Default != nil {
		p.write(" = ")
		p.formatExpr(f.Default)
	}
	if f.Accessors != nil {
		accs := f.Accessors.Accessors
		p.formatBody(body{
			braced: f.Accessors.Braced,
			count:  len(accs),
			elem:   func(i int) { p.formatAccessor(accs[i]) },
			sep:    "; ",
		})
	}
}

func (p *Printer) formatAccessor(acc *ast.Accessor) {
	p.formatVisibility(acc.Visibility)
	p.write(acc.Kind.String())
	if acc.Param != nil {
		p.delimited("(", func() { p.formatIdent(acc.Param) }, ")")
	}
	p.formatFunBody(acc.Body, acc.ExprBody)
}

// ---------- Using ----------

func (p *Printer) formatUsingDecl(u *ast.UsingDecl) {
	p.formatDoc(u.Doc)
	p.formatVisibility(u.Visibility)
	if u.Import {
		p.kw(token.IMPORT)
	} else {
		p.kw(token.USING)
	}
	p.space()
	p.formatPath(u.Path)

	switch {
	case u.Members != nil:
		p.delimited(".{", func() {
			p.formatList(len(u.Members), func(i int) {
				m := u.Members[i]
				p.formatIdent(m.Name)
				if m.Alias != nil {
					p.write(" as ")
					p.formatIdent(m.Alias)
				}
			}, ", ")
		}, "}")
	case u.Alias != nil:
		p.write(" as ")
		p.formatIdent(u.Alias)
	}
}

// ---------- Names ----------

func (p *Printer) formatIdent(id *ast.Ident) {
	if id != nil {
		p.write(id.Name)
	}
}

func (p *Printer) formatPath(path *ast.Path) {
	if path != nil {
		p.write(path.String())
	}
}

func anyDoc(n int, doc func(i int) []*token.Comment) bool {
	for i := 0; i < n; i++ {
		if len(doc(i)) > 0 {
			return true
		}
	}
	return false
}
