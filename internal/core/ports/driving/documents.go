package driving

import (
	"context"

	"github.com/quillstack/docqa/internal/core/domain"
)

// DocumentService manages a user's documents. Every operation is scoped
// to the caller's partition.
type DocumentService interface {
	// List returns the user's documents, newest-first.
	List(ctx context.Context, userID string) ([]domain.Document, error)

	// Get retrieves one of the user's documents by ID.
	// Fails with domain.ErrNotFound when absent.
	Get(ctx context.Context, documentID, userID string) (*domain.Document, error)

	// Delete removes a document and all its chunks. Chunks are removed
	// first so an interrupted delete never leaves a document pointing at
	// missing chunks. Deleting an already-deleted ID fails with
	// domain.ErrNotFound rather than erroring.
	Delete(ctx context.Context, documentID, userID string) error
}
