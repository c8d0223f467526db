package format

import (
	"github.com/leapstack-labs/helios/pkg/ast"
	"github.com/leapstack-labs/helios/pkg/token"
)

// Source formats a parsed file. Doc comments attached to declarations are
// kept; other comments are dropped.
func Source(file *ast.File) string {
	p := newPrinter(nil)
	p.formatFile(file)
	return p.String()
}

// WithComments formats a file with comment preservation. Comments that are
// not declaration docs are moved onto their own line before the item that
// follows them.
func WithComments(file *ast.File, comments []*token.Comment) string {
	p := newPrinter(newDecorator(file, comments))
	p.formatFile(file)
	return p.String()
}

func (p *Printer) formatFile(file *ast.File) {
	for i, item := range file.Items {
		if i > 0 && (isDecl(item) || isDecl(file.Items[i-1])) {
			p.writeln()
		}
		p.formatItem(item)
		p.endLine()
	}
	p.formatTrailingComments()
}

func (p *Printer) formatItem(item ast.Item) {
	p.formatLeadingComments(item.GetSpan().Start.Offset)
	switch item := item.(type) {
	case ast.Decl:
		p.formatDecl(item)
	case ast.Expr:
		p.formatExpr(item)
	}
}

func isDecl(item ast.Item) bool {
	_, ok := item.(ast.Decl)
	return ok
}
