package llm

import (
	"encoding/json"
	"testing"
)

func TestObjectRoot_LeavesObjectsAlone(t *testing.T) {
	s := testSchema()
	got := objectRoot(s)
	if got["type"] != "object" {
		t.Fatalf("expected object root, got %v", got["type"])
	}
	if _, ok := got["properties"].(map[string]any)[wrapKey]; ok {
		t.Fatal("object schema should not be wrapped")
	}
}

func TestObjectRoot_WrapsArrays(t *testing.T) {
	s := testArraySchema()
	got := objectRoot(s)
	if got["type"] != "object" {
		t.Fatalf("expected object root, got %v", got["type"])
	}
	props := got["properties"].(map[string]any)
	inner, ok := props[wrapKey].(map[string]any)
	if !ok {
		t.Fatalf("expected %q property holding the array schema", wrapKey)
	}
	if inner["type"] != "array" {
		t.Fatalf("expected wrapped array schema, got %v", inner["type"])
	}
}

func TestUnwrapContent(t *testing.T) {
	arr := testArraySchema()

	got := unwrapContent(arr, json.RawMessage(`{"items":[{"word":"harbor"}]}`))
	if string(got) != `[{"word":"harbor"}]` {
		t.Fatalf("unexpected unwrap result: %s", got)
	}

	// Content that is already bare passes through for validation to judge.
	bare := json.RawMessage(`[{"word":"harbor"}]`)
	if string(unwrapContent(arr, bare)) != string(bare) {
		t.Fatal("bare array should pass through unchanged")
	}

	obj := json.RawMessage(`{"items":"x"}`)
	if string(unwrapContent(testSchema(), obj)) != string(obj) {
		t.Fatal("object schemas should never unwrap")
	}
}

func TestTextContent(t *testing.T) {
	got := textContent(json.RawMessage(`plain "text"`))
	var s string
	if err := json.Unmarshal(got, &s); err != nil {
		t.Fatalf("expected JSON string, got %s: %v", got, err)
	}
	if s != `plain "text"` {
		t.Fatalf("round trip mismatch: %q", s)
	}
}
