package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/quillstack/docqa/internal/core/domain"
	"github.com/quillstack/docqa/internal/core/ports/driven"
	"github.com/quillstack/docqa/internal/core/ports/driving"
	"github.com/quillstack/docqa/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages documents within a user's partition.
type DocumentService struct {
	docStore         driven.DocumentStore
	defaultPartition string
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore, defaultPartition string) *DocumentService {
	if defaultPartition == "" {
		defaultPartition = domain.DefaultPartition
	}
	return &DocumentService{
		docStore:         docStore,
		defaultPartition: defaultPartition,
	}
}

// List returns the user's documents, newest-first.
func (s *DocumentService) List(ctx context.Context, userID string) ([]domain.Document, error) {
	partitionKey := domain.PartitionFor(userID, s.defaultPartition)
	return s.docStore.ListDocuments(ctx, partitionKey, 0)
}

// Get retrieves one of the user's documents.
func (s *DocumentService) Get(ctx context.Context, documentID, userID string) (*domain.Document, error) {
	partitionKey := domain.PartitionFor(userID, s.defaultPartition)
	doc, err := s.docStore.GetDocument(ctx, documentID, partitionKey)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}
	return doc, nil
}

// Delete removes a document and all its chunks. Chunks go first, so an
// interrupted delete leaves orphaned chunks rather than a document
// pointing at missing ones; re-running the delete finishes the job.
func (s *DocumentService) Delete(ctx context.Context, documentID, userID string) error {
	partitionKey := domain.PartitionFor(userID, s.defaultPartition)

	doc, err := s.docStore.GetDocument(ctx, documentID, partitionKey)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}

	for _, chunkID := range doc.ChunkIDs {
		err := s.docStore.DeleteChunk(ctx, chunkID, partitionKey)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("delete chunk %s: %w", chunkID, err)
		}
	}

	if err := s.docStore.DeleteDocument(ctx, documentID, partitionKey); err != nil {
		return fmt.Errorf("delete document %s: %w", documentID, err)
	}

	logger.Info("Deleted document %s (%d chunks)", documentID, len(doc.ChunkIDs))
	return nil
}
