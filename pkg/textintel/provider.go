package textintel

import "context"

// Provider is one LLM backend in the fallback chain.
type Provider interface {
	// Complete sends a prompt and returns the raw text response.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name (e.g. "gemini").
	Name() string

	// Model returns the model being used.
	Model() string
}
