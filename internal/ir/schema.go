package ir

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/presentation.json
var schemaFS embed.FS

var (
	schemaOnce sync.Once
	schemaVal  *jsonschema.Schema
	schemaErr  error
)

// Schema returns the compiled JSON Schema for the presentation's external
// JSON shape. The schema doubles as the structured-output contract handed
// to providers that support one.
func Schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		raw, err := schemaFS.ReadFile("schemas/presentation.json")
		if err != nil {
			schemaErr = fmt.Errorf("failed to read embedded schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("presentation.json", bytes.NewReader(raw)); err != nil {
			schemaErr = fmt.Errorf("failed to load presentation schema: %w", err)
			return
		}
		schemaVal, schemaErr = compiler.Compile("presentation.json")
	})
	return schemaVal, schemaErr
}

// SchemaJSON returns the raw embedded schema document.
func SchemaJSON() json.RawMessage {
	raw, err := schemaFS.ReadFile("schemas/presentation.json")
	if err != nil {
		return nil
	}
	return raw
}

// Decode parses and validates a JSON document into a Presentation. It
// returns either a fully-typed, fully-validated value or an error; on
// constraint violations the error is a ValidationErrors listing every
// offending field.
func Decode(data []byte) (*Presentation, error) {
	schema, err := Schema()
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if ok := asValidationError(err, &verr); ok {
			return nil, flattenSchemaError(verr)
		}
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var p Presentation
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode presentation: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Normalize()
	return &p, nil
}

func asValidationError(err error, target **jsonschema.ValidationError) bool {
	verr, ok := err.(*jsonschema.ValidationError)
	if ok {
		*target = verr
	}
	return ok
}

// flattenSchemaError collects the leaf causes of a schema validation error
// into a ValidationErrors, one entry per violated field.
func flattenSchemaError(verr *jsonschema.ValidationError) ValidationErrors {
	var errs ValidationErrors
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			path := e.InstanceLocation
			if path == "" {
				path = "/"
			}
			errs = append(errs, FieldError{Path: path, Message: e.Message})
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(verr)
	return errs
}
