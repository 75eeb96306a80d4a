package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ErrInvalidLayer is returned when a layer file does not match the layer schema.
var ErrInvalidLayer = errors.New("invalid layer file")

//go:embed layer.schema.json
var layerSchemaJSON []byte

var (
	layerSchemaOnce sync.Once
	layerSchema     *jsonschema.Schema
	layerSchemaErr  error
)

func compiledLayerSchema() (*jsonschema.Schema, error) {
	layerSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("layer.schema.json", bytes.NewReader(layerSchemaJSON)); err != nil {
			layerSchemaErr = fmt.Errorf("failed to load layer schema: %w", err)
			return
		}
		layerSchema, layerSchemaErr = compiler.Compile("layer.schema.json")
		if layerSchemaErr != nil {
			layerSchemaErr = fmt.Errorf("failed to compile layer schema: %w", layerSchemaErr)
		}
	})
	return layerSchema, layerSchemaErr
}

// ValidateLayer checks YAML layer file content against the layer schema.
// An empty document is valid.
func ValidateLayer(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLayer, err)
	}
	if doc == nil {
		return nil
	}

	// The validator expects JSON-decoded values.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLayer, err)
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLayer, err)
	}

	schema, err := compiledLayerSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLayer, err)
	}
	return nil
}
