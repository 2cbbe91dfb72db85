package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// listEnvelopeSchema is the shape every list endpoint answers with. Item
// bodies are left open; only the identifier is mandatory.
var listEnvelopeSchema = map[string]any{
	"type":     "object",
	"required": []any{"data"},
	"properties": map[string]any{
		"data": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id"},
				"properties": map[string]any{
					"id": map[string]any{"type": "string", "minLength": 1},
				},
			},
		},
	},
}

var (
	envelopeOnce     sync.Once
	envelopeCompiled *jsonschema.Schema
	envelopeErr      error
)

// validateEnvelope checks raw against the list envelope schema.
// Returns *InvalidResponseError on failure.
func validateEnvelope(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &InvalidResponseError{Body: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := envelopeSchema()
	if err != nil {
		return &InvalidResponseError{Body: raw, Err: fmt.Errorf("compile envelope schema: %w", err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &InvalidResponseError{Body: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

func envelopeSchema() (*jsonschema.Schema, error) {
	envelopeOnce.Do(func() {
		// The compiler expects decoded JSON values, not Go literals.
		defBytes, err := json.Marshal(listEnvelopeSchema)
		if err != nil {
			envelopeErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			envelopeErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://list-envelope.json"
		if err := c.AddResource(schemaURL, def); err != nil {
			envelopeErr = fmt.Errorf("add resource: %w", err)
			return
		}
		envelopeCompiled, envelopeErr = c.Compile(schemaURL)
	})
	return envelopeCompiled, envelopeErr
}
