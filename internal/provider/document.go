package provider

import (
	"time"

	"github.com/leapstack-labs/helios/pkg/ast"
	"github.com/leapstack-labs/helios/pkg/diag"
	"github.com/leapstack-labs/helios/pkg/parser"
	"github.com/leapstack-labs/helios/pkg/token"
)

// ParsedDocument holds the parse result for one version of a document.
// It is never modified after Parse returns, so it may be shared between
// goroutines.
type ParsedDocument struct {
	URI     string
	Version int
	Content string

	File        *ast.File
	Diagnostics []diag.Diagnostic
	Comments    []*token.Comment
	Aborted     bool

	// Metadata
	ParsedAt time.Time
}

// Parse parses content with a fresh scanner and parser.
func Parse(content string, uri string, version int, opts ...parser.Option) *ParsedDocument {
	res := parser.Parse(token.NewSource(uri, content), opts...)
	return &ParsedDocument{
		URI:         uri,
		Version:     version,
		Content:     content,
		File:        res.File,
		Diagnostics: res.Diagnostics,
		Comments:    res.Comments,
		Aborted:     res.Aborted,
		ParsedAt:    time.Now(),
	}
}

// HasErrors reports whether any error-severity diagnostic was produced.
func (d *ParsedDocument) HasErrors() bool {
	return diag.CountErrors(d.Diagnostics) > 0
}

// Err returns parser.ErrAborted for an aborted parse, the first error
// diagnostic otherwise, or nil.
func (d *ParsedDocument) Err() error {
	if d.Aborted {
		return parser.ErrAborted
	}
	for _, dg := range d.Diagnostics {
		if dg.IsError() {
			return dg
		}
	}
	return nil
}
