package llm

import (
	"encoding/json"
	"fmt"
)

// wrapKey is the property used to carry a non-object root through
// providers whose structured output mode only accepts object schemas.
const wrapKey = "items"

// needsWrap reports whether the schema root is something other than an object.
func needsWrap(s *Schema) bool {
	if s == nil {
		return false
	}
	t, _ := s.Definition["type"].(string)
	return t != "" && t != "object"
}

// objectRoot returns a schema definition whose root is always an object.
func objectRoot(s *Schema) map[string]any {
	if !needsWrap(s) {
		return s.Definition
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			wrapKey: s.Definition,
		},
		"required":             []any{wrapKey},
		"additionalProperties": false,
	}
}

// unwrapContent extracts the original root from a wrapped response.
// Content that is not a wrapper object is returned unchanged so the schema
// validator can report the mismatch.
func unwrapContent(s *Schema, content json.RawMessage) json.RawMessage {
	if !needsWrap(s) {
		return content
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(content, &wrapper); err != nil {
		return content
	}
	inner, ok := wrapper[wrapKey]
	if !ok {
		return content
	}
	return inner
}

// marshalSchema serializes a schema definition for SDKs that take raw JSON.
func marshalSchema(def map[string]any) (json.RawMessage, error) {
	b, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return b, nil
}

// textContent wraps free text as a JSON string so Response.Content is
// always valid JSON.
func textContent(raw json.RawMessage) json.RawMessage {
	b, err := json.Marshal(string(raw))
	if err != nil {
		return raw
	}
	return b
}
