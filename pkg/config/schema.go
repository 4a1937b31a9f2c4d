package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaID is the canonical identifier of the configuration schema.
const SchemaID = "https://raw.githubusercontent.com/yaklabco/linewidth/main/schema/linewidth-config-schema.json"

// JSONSchema reflects the configuration structure into a JSON Schema document.
func JSONSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := reflector.Reflect(&Config{})
	schema.Title = "linewidth configuration"
	schema.Description = "Breakpoints, ignore comment and overlay style for the line width indicator"
	schema.Version = "https://json-schema.org/draft/2020-12/schema"
	schema.ID = SchemaID

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
