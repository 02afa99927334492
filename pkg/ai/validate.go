package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// compiled schemas keyed by Schema.Name
var schemaCache sync.Map

// ValidateContent checks raw provider output against schema. A nil schema
// accepts anything. Failures are returned as *ErrNoStructuredOutput.
func ValidateContent(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &ErrNoStructuredOutput{Content: raw, Err: fmt.Errorf("empty response")}
	}

	var parsed interface{}
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return &ErrNoStructuredOutput{Content: raw, Err: fmt.Errorf("invalid json: %w", err)}
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrNoStructuredOutput{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	return nil
}

func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	definition, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}

	url := fmt.Sprintf("schema://%s.json", schema.Name)
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, strings.NewReader(string(definition))); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, err
	}

	actual, _ := schemaCache.LoadOrStore(schema.Name, compiled)
	return actual.(*jsonschema.Schema), nil
}
