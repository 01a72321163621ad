package driven

import "context"

// LLMService produces grounded answers from assembled context.
// This is an optional service - when nil, answering is disabled and the
// caller receives domain.ErrLLMUnavailable.
type LLMService interface {
	// Complete sends a system instruction and a user message and returns
	// the generated answer text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
