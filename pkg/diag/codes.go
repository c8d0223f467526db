package diag

// Code is a stable identifier for a class of diagnostic.
type Code string

// Lexical codes. Numbers are part of the public surface; never reuse one.
const (
	CodeIllegalChar          Code = "E0001"
	CodeInvalidNumber        Code = "E0002"
	CodeInvalidUnicodeEscape Code = "E0003"
	CodeInvalidHexEscape     Code = "E0004"
	CodeUnterminatedComment  Code = "E0006"
	CodeUnterminatedInterp   Code = "E0007"
	CodeUnbalancedInterp     Code = "E0008"
	CodeBadIndent            Code = "E0009"
	CodeIntegerOverflow      Code = "E0010"
	CodeFloatOverflow        Code = "E0011"
	CodeEmptyChar            Code = "E0012"
	CodeUnterminatedChar     Code = "E0013"
	CodeUnknownEscape        Code = "E0014"
	CodeMultiCharLiteral     Code = "E0016"
	CodeMultiLineChar        Code = "E0017"
	CodeUnterminatedString   Code = "E0018"
)

// Syntax codes.
const (
	CodeUnexpectedToken Code = "E0020"
	CodeMissingElement  Code = "E0021"
	CodeEmptyGenerics   Code = "E0022"
	CodeEmptyEnum       Code = "E0023"
	CodeEmptyStruct     Code = "E0024"
	CodeEmptyImportList Code = "E0025"
	CodeEmptyMatch      Code = "E0026"
	CodeEmptyInterpHole Code = "E0027"
	CodeInvalidField    Code = "E0028"
)

// Structural codes.
const (
	CodeNestingLimit Code = "E0100"
	CodeAborted      Code = "E0101"
)
