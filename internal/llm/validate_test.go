package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-prompts",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":    map[string]any{"type": "string"},
				"count":   map[string]any{"type": "integer", "minimum": 0},
				"tone":    map[string]any{"type": "string", "enum": []any{"calm", "playful"}},
				"prompts": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 2},
			},
			"required": []any{"name", "count"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"a","count":1,"tone":"calm","prompts":["x","y"]}`, false},
		{"without optional", `{"name":"a","count":0}`, false},
		{"missing required", `{"name":"a"}`, true},
		{"wrong type", `{"name":"a","count":"one"}`, true},
		{"bad enum", `{"name":"a","count":1,"tone":"angry"}`, true},
		{"too few items", `{"name":"a","count":1,"prompts":["x"]}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}
