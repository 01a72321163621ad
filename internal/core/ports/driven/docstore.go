package driven

import (
	"context"

	"github.com/quillstack/docqa/internal/core/domain"
)

// Store-wide size limits. Records are size-checked before every create so
// that an oversized item fails fast with a descriptive error instead of a
// rejected write.
const (
	// MaxItemBytes is the per-item hard ceiling on serialized record size.
	MaxItemBytes = 2 * 1024 * 1024

	// ItemSizeWarnBytes is the threshold above which a size warning is
	// logged. Items this large still persist.
	ItemSizeWarnBytes = 1536 * 1024
)

// Page size bounds for cross-partition paginated queries.
const (
	MinPageSize = 1
	MaxPageSize = 100
)

// DocumentFilter narrows a cross-partition document query.
// The zero value matches every document.
type DocumentFilter struct {
	// Search, when non-empty, is matched case-insensitively as a
	// substring against the document filename OR the document ID.
	Search string
}

// DocumentPage is one page of a cross-partition document query.
type DocumentPage struct {
	// Documents holds the page's items, newest-first by upload time.
	Documents []domain.Document

	// ContinuationToken is the opaque cursor for the next page,
	// empty when this is the last page.
	ContinuationToken string

	// HasMore reports whether another page exists.
	HasMore bool
}

// DocumentStore persists documents and chunks in a partitioned collection.
//
// Every tenant-facing operation is scoped to a single partition; the one
// deliberate exception is QueryDocumentsPaged, which scans across all
// partitions and must be treated as a privileged capability by callers.
type DocumentStore interface {
	// CreateDocument inserts a document record into its partition.
	// Fails with domain.ErrRecordTooLarge if the serialized record
	// exceeds MaxItemBytes; the size is pre-checked before the write.
	CreateDocument(ctx context.Context, doc *domain.Document) error

	// CreateChunk inserts a chunk record into its partition, with the
	// same pre-checked size ceiling as CreateDocument.
	CreateChunk(ctx context.Context, chunk *domain.Chunk) error

	// GetDocument retrieves a document by ID within a partition.
	// Absence is not an error: returns nil, nil.
	GetDocument(ctx context.Context, id, partitionKey string) (*domain.Document, error)

	// GetChunk retrieves a chunk by ID within a partition.
	// Absence is not an error: returns nil, nil.
	GetChunk(ctx context.Context, id, partitionKey string) (*domain.Chunk, error)

	// DeleteDocument removes a document record. Returns domain.ErrNotFound
	// when the ID has no record in the partition, making deletion
	// idempotent rather than erroring.
	DeleteDocument(ctx context.Context, id, partitionKey string) error

	// DeleteChunk removes a chunk record, with the same not-found
	// semantics as DeleteDocument.
	DeleteChunk(ctx context.Context, id, partitionKey string) error

	// ListDocuments returns up to maxItems documents in a partition,
	// newest-first by upload time. maxItems <= 0 means no limit.
	ListDocuments(ctx context.Context, partitionKey string, maxItems int) ([]domain.Document, error)

	// ListChunks returns all chunks for a document within a partition,
	// ordered by ascending chunk index.
	ListChunks(ctx context.Context, documentID, partitionKey string) ([]domain.Chunk, error)

	// QueryDocumentsPaged scans document records across ALL partitions,
	// newest-first, returning one page at a time. pageSize must be within
	// [MinPageSize, MaxPageSize]; out-of-range values fail with
	// domain.ErrInvalidPageSize before any store access. The continuation
	// token is opaque; pass the previous page's token to resume, or an
	// empty string to start from the beginning.
	QueryDocumentsPaged(ctx context.Context, filter DocumentFilter, pageSize int, continuationToken string) (*DocumentPage, error)

	// Close releases resources.
	Close() error
}
