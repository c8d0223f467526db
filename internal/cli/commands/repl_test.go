package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplSession_SingleLine(t *testing.T) {
	var buf bytes.Buffer
	s := newReplSession(&buf)

	assert.False(t, s.feed("let x = 1 + 2"))
	assert.Equal(t, replPrompt, s.prompt())
	assert.Contains(t, buf.String(), "BindingExpr")
	assert.Contains(t, buf.String(), "BinaryExpr")
}

func TestReplSession_ContinuesOpenBlock(t *testing.T) {
	var buf bytes.Buffer
	s := newReplSession(&buf)

	s.feed("fun f(x)")
	assert.Equal(t, replContinuePrompt, s.prompt(), "a declaration without a body is incomplete")
	assert.Empty(t, buf.String())

	s.feed("    let y = x")
	assert.Equal(t, replContinuePrompt, s.prompt(), "an indented line keeps the block open")

	s.feed("    y")
	s.feed("")
	assert.Equal(t, replPrompt, s.prompt())
	assert.Contains(t, buf.String(), "FunDecl")
	assert.NotContains(t, buf.String(), "Error")
}

func TestReplSession_ReportsDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	s := newReplSession(&buf)

	s.feed("fun f(: Int) => 1")
	assert.Contains(t, buf.String(), "expected parameter name")
	assert.Contains(t, buf.String(), "<repl>:1:7")
}

func TestReplSession_Commands(t *testing.T) {
	var buf bytes.Buffer
	s := newReplSession(&buf)

	assert.False(t, s.feed(".tokens"))
	assert.Contains(t, buf.String(), "token display on")

	buf.Reset()
	s.feed("1")
	assert.Contains(t, buf.String(), "INT")

	assert.False(t, s.feed(".bogus"))
	assert.Contains(t, buf.String(), "Unknown command")

	assert.True(t, s.feed(".quit"))
}

func TestReplSession_Reset(t *testing.T) {
	var buf bytes.Buffer
	s := newReplSession(&buf)

	s.feed("let x =")
	assert.Equal(t, replContinuePrompt, s.prompt())
	s.reset()
	assert.Equal(t, replPrompt, s.prompt())
}
