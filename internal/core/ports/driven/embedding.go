package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// This is an optional service - when nil, chunks persist without vectors
// and retrieval degrades to stored-order context assembly.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Azure OpenAI or compatible APIs via a custom base URL
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	// The dimensionality is fixed across calls for a given deployment.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 1536, 3072).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
