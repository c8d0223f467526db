package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/helios/pkg/diag"
	"github.com/leapstack-labs/helios/pkg/token"
)

// FileDiagnostics groups the diagnostics of one source file.
type FileDiagnostics struct {
	Path        string
	Source      string
	Diagnostics []diag.Diagnostic
}

// DiagnosticJSON is the JSON shape of one diagnostic.
type DiagnosticJSON struct {
	File     string        `json:"file"`
	Severity string        `json:"severity"`
	Category string        `json:"category"`
	Code     string        `json:"code,omitempty"`
	Message  string        `json:"message"`
	Line     int           `json:"line"`
	Column   int           `json:"column"`
	EndLine  int           `json:"end_line"`
	EndCol   int           `json:"end_column"`
	Related  []RelatedJSON `json:"related,omitempty"`
	Fix      *FixJSON      `json:"fix,omitempty"`
}

// RelatedJSON is a secondary span.
type RelatedJSON struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// FixJSON is a suggested replacement.
type FixJSON struct {
	Message     string `json:"message"`
	Replacement string `json:"replacement"`
}

// Summary counts diagnostics across files.
type Summary struct {
	Files    int `json:"files"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Summarize counts the diagnostics in files.
func Summarize(files []FileDiagnostics) Summary {
	s := Summary{Files: len(files)}
	for _, f := range files {
		for _, d := range f.Diagnostics {
			if d.IsError() {
				s.Errors++
			} else {
				s.Warnings++
			}
		}
	}
	return s
}

// Diagnostics renders diagnostics for all files in the effective mode.
func (r *Renderer) Diagnostics(files []FileDiagnostics) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.diagnosticsJSON(files)
	case ModeMarkdown:
		r.diagnosticsMarkdown(files)
	default:
		r.diagnosticsText(files)
	}
	return nil
}

func (r *Renderer) diagnosticsJSON(files []FileDiagnostics) error {
	out := struct {
		Diagnostics []DiagnosticJSON `json:"diagnostics"`
		Summary     Summary          `json:"summary"`
	}{
		Diagnostics: []DiagnosticJSON{},
		Summary:     Summarize(files),
	}
	for _, f := range files {
		for _, d := range f.Diagnostics {
			out.Diagnostics = append(out.Diagnostics, toJSON(f.Path, d))
		}
	}
	return r.JSON(out)
}

func toJSON(path string, d diag.Diagnostic) DiagnosticJSON {
	j := DiagnosticJSON{
		File:     path,
		Severity: d.Severity.String(),
		Category: d.Category.String(),
		Code:     string(d.Code),
		Message:  d.Message,
		Line:     d.Span.Start.Line,
		Column:   d.Span.Start.Column,
		EndLine:  d.Span.End.Line,
		EndCol:   d.Span.End.Column,
	}
	for _, rel := range d.Related {
		j.Related = append(j.Related, RelatedJSON{
			Line:    rel.Span.Start.Line,
			Column:  rel.Span.Start.Column,
			Message: rel.Message,
		})
	}
	if d.Fix != nil {
		j.Fix = &FixJSON{Message: d.Fix.Message, Replacement: d.Fix.Replacement}
	}
	return j
}

func (r *Renderer) diagnosticsMarkdown(files []FileDiagnostics) {
	sum := Summarize(files)
	for _, f := range files {
		if len(f.Diagnostics) == 0 {
			continue
		}
		r.Printf("### %s\n\n", f.Path)
		r.Println("| Location | Severity | Code | Message |")
		r.Println("|----------|----------|------|---------|")
		for _, d := range f.Diagnostics {
			msg := strings.ReplaceAll(d.Message, "|", "\\|")
			if d.Fix != nil {
				msg += " (" + d.Fix.Message + ")"
			}
			r.Printf("| %d:%d | %s | %s | %s |\n",
				d.Span.Start.Line, d.Span.Start.Column, d.Severity, d.Code, msg)
		}
		r.Println()
	}
	r.Printf("**%d error(s), %d warning(s)** in %d file(s)\n", sum.Errors, sum.Warnings, sum.Files)
}

func (r *Renderer) diagnosticsText(files []FileDiagnostics) {
	sum := Summarize(files)
	for _, f := range files {
		lines := strings.Split(f.Source, "\n")
		for _, d := range f.Diagnostics {
			r.diagnosticText(f.Path, lines, d)
		}
	}
	if sum.Errors == 0 && sum.Warnings == 0 {
		r.Success(fmt.Sprintf("%d file(s) checked, no problems", sum.Files))
		return
	}
	r.Println(r.styles.Bold.Render(fmt.Sprintf("%d error(s), %d warning(s) in %d file(s)",
		sum.Errors, sum.Warnings, sum.Files)))
}

var titleCaser = cases.Title(language.English)

func (r *Renderer) diagnosticText(path string, lines []string, d diag.Diagnostic) {
	label := titleCaser.String(d.Severity.String())
	style := r.styles.Error
	if !d.IsError() {
		style = r.styles.Warning
	}
	head := label
	if d.Code != "" {
		head += "[" + string(d.Code) + "]"
	}
	r.Printf("%s: %s\n", style.Render(head), d.Message)
	r.Printf("  %s %s\n", r.styles.Muted.Render("-->"),
		r.styles.Path.Render(fmt.Sprintf("%s:%d:%d", path, d.Span.Start.Line, d.Span.Start.Column)))

	r.snippet(lines, d.Span, "")
	for _, rel := range d.Related {
		r.snippet(lines, rel.Span, rel.Message)
	}
	if d.Fix != nil {
		r.Printf("  %s %s\n", r.styles.Muted.Render("help:"), d.Fix.Message)
	}
	r.Println()
}

// snippet prints the source line of span with a caret underline.
func (r *Renderer) snippet(lines []string, span token.Span, note string) {
	line := span.Start.Line
	if line < 1 || line > len(lines) {
		return
	}
	text := strings.TrimRight(lines[line-1], "\r")
	gutter := fmt.Sprintf("%4d | ", line)
	r.Printf("%s%s\n", r.styles.Muted.Render(gutter), text)

	width := 1
	if span.End.Line == line && span.End.Column > span.Start.Column {
		width = span.End.Column - span.Start.Column
	}
	pad := CaretPadding(text, span.Start.Column)
	carets := r.styles.Caret.Render(strings.Repeat("^", width))
	if note != "" {
		carets += " " + note
	}
	r.Printf("%s%s%s\n", strings.Repeat(" ", len(gutter)), pad, carets)
}

// CaretPadding returns the whitespace placing a caret under byte column col
// of text. Tabs are kept so the caret lines up with the source.
func CaretPadding(text string, col int) string {
	var sb strings.Builder
	for i := 0; i < col-1 && i < len(text); i++ {
		if text[i] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	for i := len(text); i < col-1; i++ {
		sb.WriteByte(' ')
	}
	return sb.String()
}
