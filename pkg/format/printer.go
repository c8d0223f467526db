// Package format prints Helios syntax trees in canonical form.
//
// The output re-parses to the same tree: block styles, optional keywords and
// parentheses written in the source are kept, and parentheses are added
// where a hand-built tree would otherwise print ambiguously.
package format

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/helios/pkg/token"
)

const indentSize = 4

// Printer handles formatting with proper indentation and style.
type Printer struct {
	output      *bytes.Buffer
	depth       int
	atLineStart bool
	inline      int // > 0 inside delimiters, where every block is braced and newlines are avoided
	comments    *decorator
}

func newPrinter(comments *decorator) *Printer {
	return &Printer{
		output:      &bytes.Buffer{},
		atLineStart: true,
		comments:    comments,
	}
}

// String returns the formatted output.
func (p *Printer) String() string {
	out := strings.TrimRight(p.output.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

// endLine ends the current line unless it is empty.
func (p *Printer) endLine() {
	if !p.atLineStart {
		p.writeln()
	}
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// gap writes a space unless the line is empty or already ends in a space or
// an opening delimiter.
func (p *Printer) gap() {
	if p.atLineStart {
		return
	}
	b := p.output.Bytes()
	if len(b) == 0 {
		return
	}
	switch b[len(b)-1] {
	case ' ', '(', '[', '{':
		return
	}
	p.space()
}

// kw prints keywords separated by spaces.
func (p *Printer) kw(kinds ...token.Kind) {
	for i, k := range kinds {
		if i > 0 {
			p.space()
		}
		p.write(k.String())
	}
}

func (p *Printer) formatDoc(doc []*token.Comment) {
	for _, c := range doc {
		p.write(c.Text)
		p.writeln()
	}
}

// formatLeadingComments emits standalone comments that precede offset.
// Comments are only placed on lines of their own.
func (p *Printer) formatLeadingComments(offset int) {
	if p.comments == nil || p.inline > 0 {
		return
	}
	for _, c := range p.comments.take(offset) {
		p.endLine()
		p.write(c.Text)
		p.writeln()
	}
}

func (p *Printer) formatTrailingComments() {
	if p.comments == nil {
		return
	}
	for _, c := range p.comments.rest() {
		p.endLine()
		p.write(c.Text)
		p.writeln()
	}
}

// formatList prints a list of items with separators.
// count is the number of items, format is called for each index,
// sep is the separator string.
func (p *Printer) formatList(count int, format func(i int), sep string) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
		}
	}
}

// delimited prints open, the body produced by format, and closer, with
// blocks inside forced onto one line.
func (p *Printer) delimited(open string, format func(), closer string) {
	p.write(open)
	p.inline++
	format()
	p.inline--
	p.write(closer)
}

// body describes the elements of a braced or indented block.
type body struct {
	braced    bool
	count     int
	elem      func(i int)
	sep       string // between elements of a one-line braced body
	multiline bool   // put a braced body's elements on lines of their own
	semi      bool   // ';' after the last element
}

// formatBody prints a block after its header. Braced bodies stay on the
// header line unless multiline is set; indented bodies start on the next line
// one level deeper, and printing resumes on a fresh line after them.
func (p *Printer) formatBody(b body) {
	braced := b.braced || p.inline > 0
	switch {
	case braced && b.count == 0:
		p.gap()
		p.write("{}")
	case braced && !b.multiline:
		p.gap()
		p.delimited("{ ", func() {
			p.formatList(b.count, b.elem, b.sep)
			if b.semi {
				p.write(";")
			}
		}, " }")
	case braced:
		p.gap()
		p.write("{")
		p.writeln()
		p.indent()
		p.inline++
		p.formatLines(b)
		p.inline--
		p.dedent()
		p.write("}")
	default:
		p.endLine()
		p.indent()
		p.formatLines(b)
		p.dedent()
	}
}

func (p *Printer) formatLines(b body) {
	for i := 0; i < b.count; i++ {
		b.elem(i)
		if i == b.count-1 && b.semi {
			p.write(";")
		}
		p.endLine()
	}
}
