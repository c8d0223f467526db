package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed helios.schema.json
var schemaJSON string

const schemaURL = "helios.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

// validateSchema checks the raw contents of one config file against the
// embedded schema. Unknown keys pass; they are reported as warnings later.
func validateSchema(file string, raw map[string]any) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}

	// The validator expects JSON-shaped values.
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("config file %s: %w", file, err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("config file %s: %w", file, err)
	}

	if err := sch.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return &SchemaError{File: file, Problems: flattenValidation(ve)}
		}
		return fmt.Errorf("config file %s: %w", file, err)
	}
	return nil
}

// SchemaError lists the schema violations found in a config file.
type SchemaError struct {
	File     string
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("config file %s: %s", e.File, strings.Join(e.Problems, "; "))
}

// flattenValidation collects the leaf causes, which name the offending key.
func flattenValidation(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := strings.TrimPrefix(ve.InstanceLocation, "/")
		if loc == "" {
			return []string{ve.Message}
		}
		return []string{strings.ReplaceAll(loc, "/", ".") + ": " + ve.Message}
	}
	var out []string
	for _, c := range ve.Causes {
		out = append(out, flattenValidation(c)...)
	}
	return out
}
