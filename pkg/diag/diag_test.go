package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/helios/pkg/token"
)

func span(line, col, off, n int) token.Span {
	return token.Span{
		Start: token.Position{Line: line, Column: col, Offset: off},
		End:   token.Position{Line: line, Column: col + n, Offset: off + n},
	}
}

func TestSink(t *testing.T) {
	var s Sink
	assert.False(t, s.HasErrors())
	_, ok := s.Last()
	assert.False(t, ok)

	s.Warnf(SyntaxError, CodeUnexpectedToken, span(1, 1, 0, 1), "odd %s", "thing")
	assert.False(t, s.HasErrors())

	s.Errorf(LexError, CodeIllegalChar, span(2, 3, 10, 1), "unexpected character %q", '@')
	assert.True(t, s.HasErrors())
	assert.Equal(t, 2, s.Len())

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, "unexpected character '@'", last.Message)
	assert.Equal(t, "2:3: lex error: unexpected character '@'", last.Error())

	all := s.All()
	all[0].Message = "changed"
	assert.Equal(t, "odd thing", s.All()[0].Message, "All returns a copy")
}

func TestFilter(t *testing.T) {
	diags := []Diagnostic{
		{Severity: Error, Message: "a"},
		{Severity: Warning, Message: "b"},
		{Severity: Error, Message: "c"},
	}
	assert.Len(t, Filter(diags, Warning), 3)
	assert.Len(t, Filter(diags, Error), 2)
	assert.Equal(t, 2, CountErrors(diags))
}

func TestParseSeverity(t *testing.T) {
	sev, ok := ParseSeverity("warn")
	assert.True(t, ok)
	assert.Equal(t, Warning, sev)
	assert.Equal(t, "warning", sev.String())

	_, ok = ParseSeverity("fatal")
	assert.False(t, ok)
	assert.Equal(t, "structural limit", StructuralLimitError.String())
}

func TestSuggestKeyword(t *testing.T) {
	tests := []struct {
		word string
		want string
		ok   bool
	}{
		{"fn", "fun", true},
		{"func", "fun", true},
		{"improt", "import", true},
		{"modul", "module", true},
		{"fun", "", false},
		{"zzzzzzzz", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := SuggestKeyword(tt.word)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithKeywordFix(t *testing.T) {
	sp := span(1, 1, 0, 2)
	d := WithKeywordFix(Diagnostic{Message: "expected declaration"}, "fn", sp)
	require.NotNil(t, d.Fix)
	assert.Equal(t, "fun", d.Fix.Replacement)
	assert.Equal(t, sp, d.Fix.Span)

	d = WithKeywordFix(Diagnostic{}, "qqqqqqqq", sp)
	assert.Nil(t, d.Fix)
}

func TestCodes_Stable(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeIllegalChar, "E0001"},
		{CodeInvalidNumber, "E0002"},
		{CodeInvalidUnicodeEscape, "E0003"},
		{CodeInvalidHexEscape, "E0004"},
		{CodeUnterminatedComment, "E0006"},
		{CodeUnterminatedInterp, "E0007"},
		{CodeUnbalancedInterp, "E0008"},
		{CodeBadIndent, "E0009"},
		{CodeIntegerOverflow, "E0010"},
		{CodeFloatOverflow, "E0011"},
		{CodeEmptyChar, "E0012"},
		{CodeUnterminatedChar, "E0013"},
		{CodeUnknownEscape, "E0014"},
		{CodeMultiCharLiteral, "E0016"},
		{CodeMultiLineChar, "E0017"},
		{CodeUnterminatedString, "E0018"},
		{CodeUnexpectedToken, "E0020"},
		{CodeInvalidField, "E0028"},
		{CodeNestingLimit, "E0100"},
		{CodeAborted, "E0101"},
	}

	seen := map[Code]bool{}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, string(tt.code))
			assert.False(t, seen[tt.code], "duplicate code %s", tt.code)
			seen[tt.code] = true
		})
	}
}
