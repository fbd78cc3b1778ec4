// Package llm defines the provider abstraction the assistant routes through
// and the concrete clients for the supported model APIs.
package llm

import (
	"context"
)

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats
	AdaptInstructions(rawInstructions string) string
}

// Message is a single chat turn in the OpenAI-compatible wire format, which
// both the OpenAI and DeepSeek endpoints accept.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
