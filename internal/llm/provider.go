package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider is the core abstraction for remote text generation.
// Consumers call Generate with a Request and receive text or validated JSON.
type Provider interface {
	// Generate sends a prompt to the backend. When the request carries a
	// Schema, the provider asks for JSON and validates the reply against it
	// before returning.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the default model identifier this provider uses.
	ModelID() string
}

// Request describes what to send to the backend.
type Request struct {
	// System is the system prompt. Optional.
	System string

	// Messages is the conversation. Story and hint calls send a single
	// user message.
	Messages []Message

	// Schema, when set, selects structured output. When nil the response
	// is free text.
	Schema *Schema

	// Model overrides the provider's configured model for this request.
	// Friendly names are resolved the same way as in config.
	Model string

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Zero leaves the backend default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds the common single-message request body.
func UserPrompt(text string) []Message {
	return []Message{{Role: RoleUser, Content: text}}
}

// Schema defines the JSON structure expected from the backend.
type Schema struct {
	// Name identifies this schema (schema name for OpenAI, cache key for
	// validation). Kebab-case, e.g. "story-problem".
	Name string

	// Description is sent to the backend to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the backend's output.
type Response struct {
	// Content is the generated text. For structured requests it is the
	// JSON document with any markdown code fence removed.
	Content string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Decode unmarshals a structured response into v, tolerating a code fence
// around the JSON.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal([]byte(StripCodeFence(r.Content)), v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	// Unknown names pass through so direct model IDs work.
	return name
}

// requestModel picks the per-request override or falls back to def.
func requestModel(req Request, def string, models map[string]string) string {
	if req.Model != "" {
		return resolveModel(req.Model, models)
	}
	return def
}
