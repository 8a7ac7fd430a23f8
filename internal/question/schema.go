package question

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankFileSchema describes one questions_<level>.json file.
var bankFileSchema = map[string]any{
	"type":                 "object",
	"required":             []string{"questions"},
	"additionalProperties": false,
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"required":             []string{"question", "options", "correct_answer"},
				"additionalProperties": false,
				"properties": map[string]any{
					"id": map[string]any{
						"type": "string",
					},
					"question": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"options": map[string]any{
						"type":     "array",
						"minItems": OptionCount,
						"maxItems": OptionCount,
						"items": map[string]any{
							"type": "string",
						},
					},
					"correct_answer": map[string]any{
						"type": "string",
					},
					"difficulty": map[string]any{
						"type": "string",
					},
				},
			},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func fileSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(bankFileSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(defBytes, &parsed); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://question-bank.json", parsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("schema://question-bank.json")
	})
	return compiledSchema, compileErr
}

// ValidateFile checks raw bank file bytes against the file schema,
// before any of it is decoded into Question values.
func ValidateFile(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := fileSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
