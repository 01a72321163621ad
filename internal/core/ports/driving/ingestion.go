package driving

import (
	"context"

	"github.com/quillstack/docqa/internal/core/domain"
)

// IngestionService turns an uploaded file into a persisted, retrievable
// document.
type IngestionService interface {
	// Ingest extracts, chunks, embeds and persists the uploaded file
	// under the given user's partition (or the default partition when
	// userID is empty) and returns the created document.
	//
	// Extraction failure aborts with nothing persisted. Embedding
	// failures degrade per chunk. A persistence failure after some
	// chunks were written surfaces domain.ErrIngestionFailed without
	// rolling back the already-written chunks.
	Ingest(ctx context.Context, file domain.UploadedFile, userID string) (*domain.Document, error)
}
