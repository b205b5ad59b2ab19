package analysis

import (
	"encoding/json"
	"sync"
)

// SchemaName identifies the result contract when a provider asks for one.
const SchemaName = "code_analysis_result"

const schemaDescription = "Syntax errors, code smells and potential bugs found in a source file."

// resultSchema is the canonical JSON Schema for Result. The strict decoder in
// parse.go enforces the same shape, so the two must change together.
const resultSchema = `{
  "type": "object",
  "properties": {
    "errors": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "description": {"type": "string"},
          "line_number": {"type": ["integer", "null"]}
        },
        "required": ["description", "line_number"],
        "additionalProperties": false
      }
    },
    "code_smells": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "description": {"type": "string"},
          "line_number": {"type": ["integer", "null"]}
        },
        "required": ["description", "line_number"],
        "additionalProperties": false
      }
    },
    "potential_bugs": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "description": {"type": "string"},
          "line_number": {"type": ["integer", "null"]}
        },
        "required": ["description", "line_number"],
        "additionalProperties": false
      }
    }
  },
  "required": ["errors", "code_smells", "potential_bugs"],
  "additionalProperties": false
}`

var (
	schemaOnce sync.Once
	schemaRaw  map[string]any
)

// Schema returns the parsed JSON Schema of Result. The returned map is shared
// and must not be modified.
func Schema() map[string]any {
	schemaOnce.Do(func() {
		if err := json.Unmarshal([]byte(resultSchema), &schemaRaw); err != nil {
			panic("analysis: invalid result schema: " + err.Error())
		}
	})
	return schemaRaw
}

// SchemaJSON returns the schema as indented JSON text, for providers that can
// only be told about it in the prompt.
func SchemaJSON() string {
	return resultSchema
}

// SchemaDescription is a one-line summary of what the schema describes.
func SchemaDescription() string {
	return schemaDescription
}
