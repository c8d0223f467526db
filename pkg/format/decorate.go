package format

import (
	"github.com/leapstack-labs/helios/pkg/ast"
	"github.com/leapstack-labs/helios/pkg/token"
)

// decorator hands out standalone comments in source order. Doc comments
// already attached to a declaration are excluded; the printer emits those
// with the declaration.
type decorator struct {
	comments []*token.Comment
	next     int
}

func newDecorator(file *ast.File, comments []*token.Comment) *decorator {
	attached := make(map[*token.Comment]bool)
	ast.Inspect(file, func(n ast.Node) bool {
		for _, c := range docOf(n) {
			attached[c] = true
		}
		return true
	})

	d := &decorator{}
	for _, c := range comments {
		if !attached[c] {
			d.comments = append(d.comments, c)
		}
	}
	return d
}

// take returns the pending comments that end at or before offset.
func (d *decorator) take(offset int) []*token.Comment {
	start := d.next
	for d.next < len(d.comments) && d.comments[d.next].Span.End.Offset <= offset {
		d.next++
	}
	return d.comments[start:d.next]
}

// rest returns every comment not yet taken.
func (d *decorator) rest() []*token.Comment {
	out := d.comments[d.next:]
	d.next = len(d.comments)
	return out
}

func docOf(n ast.Node) []*token.Comment {
	switch n := n.(type) {
	case *ast.FunDecl:
		return n.Doc
	case *ast.ModuleDecl:
		return n.Doc
	case *ast.TypeDecl:
		return n.Doc
	case *ast.UsingDecl:
		return n.Doc
	case *ast.EnumCase:
		return n.Doc
	case *ast.Field:
		return n.Doc
	}
	return nil
}
