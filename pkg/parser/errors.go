package parser

import "errors"

// ErrAborted is returned by Result.Err when parsing stopped at the nesting limit.
var ErrAborted = errors.New("parse aborted: nesting depth exceeded")

// Common error messages
const (
	ErrExpected          = "expected %s, found %s"
	ErrUnknownKeyword    = "unknown keyword `%s`"
	ErrUnexpectedIndent  = "unexpected indentation"
	ErrNestingLimit      = "nesting depth exceeds limit of %d"
	ErrEmptyGenerics     = "generic parameter list must not be empty"
	ErrEmptyEnum         = "enum must have at least one case"
	ErrEmptyStruct       = "struct must have at least one field"
	ErrEmptyImportList   = "import member list must not be empty"
	ErrEmptyMatch        = "match must have at least one case"
	ErrEmptyInterpHole   = "empty interpolation hole"
	ErrFieldNeedsType    = "field `%s` needs a type or a default value"
	ErrAccessorsNeedType = "accessors require a field type"
)
