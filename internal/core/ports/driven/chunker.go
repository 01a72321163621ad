package driven

import "github.com/quillstack/docqa/internal/core/domain"

// Chunker splits extracted text into ordered chunk records for a document.
// Implementations must emit contiguous 0-based chunk indexes and leave
// embeddings unset.
type Chunker interface {
	// Chunk splits text into chunks carrying the document's filename,
	// upload time and partition key. Empty text produces zero chunks.
	Chunk(text string, doc *domain.Document) []domain.Chunk

	// MaxChunkSize returns the configured size bound in characters.
	MaxChunkSize() int
}
