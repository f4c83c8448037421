package core

import "context"

// Options controls model behavior; fields are optional per provider.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int
	SystemPrompt        string
}

// Client is a provider-agnostic interface for the LLM operations we need.
type Client interface {
	// Respond sends a text prompt and returns the raw completion text.
	Respond(ctx context.Context, input string, opts Options) (string, error)
	// RespondVision sends a text prompt plus one inline image (data URL).
	// Providers without a vision model return an error.
	RespondVision(ctx context.Context, input string, imageDataURL string, opts Options) (string, error)
}
