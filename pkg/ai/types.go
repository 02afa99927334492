package ai

import (
	"context"
	"encoding/json"
)

// Provider is a text-generation backend capable of structured output.
// Generate performs exactly one call; it never retries.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request describes a single structured generation call.
type Request struct {
	// System frames the generation (grading criteria, tone).
	System string
	// Prompt is the user-facing text, usually embedding the submission.
	Prompt string
	// Schema is the JSON Schema the output must conform to. When nil the
	// raw text is returned as-is.
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema definition handed to the provider.
type Schema struct {
	// Name identifies the schema, kebab-case. Used as the cache key for the
	// compiled validator and as the schema name for OpenAI.
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the provider output. When a Schema was supplied Content
// has already been validated against it.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Usage tracks token consumption for a single call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
