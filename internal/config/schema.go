package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// configSchema is the structural contract for the configuration file.
// Section presence is checked separately so missing sections surface as
// the dedicated fatal error; the schema guards field types inside them.
var configSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"general": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"chunk_size":  map[string]any{"type": "integer", "minimum": 1},
				"overlap":     map[string]any{"type": "integer", "minimum": 0},
				"output_file": map[string]any{"type": "string"},
			},
		},
		"models": map[string]any{
			"type":     "object",
			"required": []string{"default"},
			"properties": map[string]any{
				"default": map[string]any{"type": "string"},
				"ollama": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"model_name":  map[string]any{"type": "string"},
						"base_url":    map[string]any{"type": "string"},
						"timeout":     map[string]any{"type": "integer", "minimum": 1},
						"temperature": map[string]any{"type": "number"},
					},
				},
				"openai": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"model_name":  map[string]any{"type": "string"},
						"max_tokens":  map[string]any{"type": "integer", "minimum": 1},
						"temperature": map[string]any{"type": "number"},
						"timeout":     map[string]any{"type": "integer", "minimum": 1},
					},
				},
			},
		},
		"extraction_schema": map[string]any{
			"type":          "object",
			"minProperties": 1,
		},
		"processing": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"max_file_size_mb": map[string]any{"type": "integer", "minimum": 1},
				"min_chunk_length": map[string]any{"type": "integer", "minimum": 0},
				"concurrency":      map[string]any{"type": "integer", "minimum": 1},
			},
		},
	},
}

// validateSchema validates the raw YAML document against configSchema.
func validateSchema(rawYAML []byte) error {
	jsonDoc, err := yaml.YAMLToJSON(rawYAML)
	if err != nil {
		return fmt.Errorf("convert to json: %w", err)
	}

	b, err := json.Marshal(configSchema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("config.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(jsonDoc, &v); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("configuration does not match schema: %w", err)
	}
	return nil
}
