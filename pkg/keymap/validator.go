package keymap

import (
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// profileSchema is the JSON Schema every profile document must satisfy
// before the parser sees it. Structural mistakes (wrong types, missing
// fields, unknown binding keys) surface here with field paths instead
// of as unmarshal errors deep in the parser.
const profileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "termio keybinding profile",
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {
      "type": "string",
      "minLength": 1,
      "pattern": "^[A-Za-z0-9_-]+$"
    },
    "version": {"type": "string"},
    "description": {"type": "string"},
    "options": {
      "type": "object",
      "properties": {
        "decode_timeout_ms": {"type": "integer", "minimum": 1, "maximum": 2000},
        "frame_rate": {"type": "integer", "minimum": 1, "maximum": 120}
      },
      "additionalProperties": false
    },
    "theme": {
      "type": "object",
      "properties": {
        "foreground": {"type": "string"},
        "background": {"type": "string"},
        "accent": {"type": "string"}
      },
      "additionalProperties": false
    },
    "bindings": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["keys", "action"],
        "properties": {
          "keys": {"type": "string", "minLength": 1},
          "action": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "category": {"type": "string"},
          "priority": {"type": "integer", "minimum": 0},
          "when": {"type": "string"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

// ValidateAgainstSchema validates profile YAML bytes against the
// profile schema. Returns nil when the document is structurally valid;
// otherwise the error lists every violation with its field path.
func ValidateAgainstSchema(yamlBytes []byte) error {
	if len(yamlBytes) == 0 {
		return errors.New("empty profile input")
	}

	// Decode to a generic structure; the schema validator works on Go
	// values, so YAML and JSON documents validate identically.
	var data interface{}
	if err := yaml.Unmarshal(yamlBytes, &data); err != nil {
		return fmt.Errorf("failed to parse YAML for validation: %w", err)
	}

	schemaLoader := gojsonschema.NewStringLoader(profileSchema)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		// Collect all validation errors
		var errMsg string
		for i, desc := range result.Errors() {
			if i > 0 {
				errMsg += "; "
			}
			errMsg += fmt.Sprintf("%s: %s", desc.Field(), desc.Description())
		}
		return fmt.Errorf("schema validation failed: %s", errMsg)
	}

	return nil
}
