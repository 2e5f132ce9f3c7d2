package llm

import (
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-object",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func testStorySchema() *Schema {
	return &Schema{
		Name: "test-story",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"problem": map[string]any{"type": "string", "minLength": 1},
				"answer":  map[string]any{"type": "number"},
			},
			"required": []any{"problem", "answer"},
		},
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"padded", "  {\"a\":1}\n", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"upper fence", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fence no newline", "```json{\"a\":1}```", `{"a":1}`},
		{"text", "Count on your fingers.", "Count on your fingers."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.in); got != tt.want {
				t.Errorf("StripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateJSON_Valid(t *testing.T) {
	if err := ValidateJSON(testSchema(), `{"name":"Alice","age":10,"grade":"A"}`); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := ValidateJSON(testSchema(), `{"name":"Bob","age":8}`); err != nil {
		t.Fatalf("expected no error without optional field, got: %v", err)
	}
}

func TestValidateJSON_Fenced(t *testing.T) {
	raw := "```json\n{\"problem\":\"Lina has 2 cats.\",\"answer\":2}\n```"
	if err := ValidateJSON(testStorySchema(), raw); err != nil {
		t.Fatalf("expected fenced JSON to validate, got: %v", err)
	}
}

func TestValidateJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required", `{"name":"Charlie"}`},
		{"wrong type", `{"name":"Dave","age":"ten"}`},
		{"bad enum", `{"name":"Eve","age":9,"grade":"D"}`},
		{"malformed", `{not json}`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(testSchema(), tt.raw)
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
			}
		})
	}
}

func TestValidateJSON_StorySchema(t *testing.T) {
	if err := ValidateJSON(testStorySchema(), `{"problem":"","answer":3}`); err == nil {
		t.Error("expected empty problem to fail minLength")
	}
	if err := ValidateJSON(testStorySchema(), `{"problem":"x","answer":"3"}`); err == nil {
		t.Error("expected string answer to fail")
	}
	if err := ValidateJSON(testStorySchema(), `{"problem":"x","answer":3.5}`); err != nil {
		t.Errorf("schema accepts any number, got %v", err)
	}
}

func TestValidateJSON_NilSchema(t *testing.T) {
	if err := ValidateJSON(nil, `anything`); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestStructuredContent(t *testing.T) {
	text := "```json\n{\"problem\":\"x\",\"answer\":1}\n```"
	got, err := structuredContent(Request{Schema: testStorySchema()}, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"problem":"x","answer":1}` {
		t.Fatalf("got %q", got)
	}

	free, err := structuredContent(Request{}, text)
	if err != nil || free != text {
		t.Fatalf("free text altered: %q, %v", free, err)
	}
}
