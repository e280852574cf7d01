// Package llm talks to hosted language models for worksheet generation.
//
// Every backend implements Provider. Callers describe the JSON they expect
// with a Schema and get back validated JSON; provider-specific structured
// output, error mapping and usage accounting stay inside this package.
// Decorators add retry, fallback and request logging.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured JSON from a prompt.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the Content is JSON that passed schema validation.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	System string

	// Messages is the conversation. Worksheet generation sends one user
	// message holding the full prompt.
	Messages []Message

	// Schema is the JSON Schema the response must satisfy. Nil means the
	// model's text is returned as-is.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one conversation turn.
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

// Schema names a JSON Schema document. Name doubles as the compile cache
// key, so distinct definitions need distinct names.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request. With a fallback
	// chain this can differ from ModelID.
	Model string

	// StopReason is one of "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
