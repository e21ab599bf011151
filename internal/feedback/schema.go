package feedback

import (
	"github.com/xeipuuv/gojsonschema"
)

// resultSchema is the shape a model reply must satisfy before it is accepted.
// Anything less than a complete payload falls back to the static feedback, so
// the UI never renders a half-filled result.
const resultSchema = `{
  "type": "object",
  "required": ["skills", "improvements", "tailored_examples", "scoring", "improved_resume", "highlights"],
  "properties": {
    "skills": {"type": "array", "items": {"type": "string"}},
    "improvements": {"type": "array", "items": {"type": "string"}},
    "tailored_examples": {"type": "array", "items": {"type": "string"}},
    "scoring": {
      "type": "object",
      "required": ["relevance", "clarity", "format", "overall"],
      "properties": {
        "relevance": {"type": "number", "minimum": 0, "maximum": 10},
        "clarity": {"type": "number", "minimum": 0, "maximum": 10},
        "format": {"type": "number", "minimum": 0, "maximum": 10},
        "overall": {"type": "number", "minimum": 0, "maximum": 10}
      }
    },
    "improved_resume": {"type": "string"},
    "highlights": {"type": "array", "items": {"type": "string"}}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(resultSchema)

// validShape reports whether the JSON document is a complete feedback payload.
func validShape(doc string) bool {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(doc))
	if err != nil {
		return false
	}
	return result.Valid()
}
