package domain

import (
	"fmt"
	"time"
)

// Record type discriminators. Documents and chunks share one logical
// collection in the partitioned store and are told apart by this tag.
const (
	RecordTypeDocument = "document"
	RecordTypeChunk    = "chunk"
)

// DefaultPartition is the partition key used when no user context exists.
// The calling layer may override it per deployment.
const DefaultPartition = "default"

// Document represents one ingested file. It references its chunks by ID
// rather than embedding them inline, so that individual records stay well
// under the store's per-item size ceiling.
type Document struct {
	// ID is the unique identifier, generated at ingestion time from the
	// filename, a timestamp and a random suffix. Immutable.
	ID string

	// Filename is the original upload name, used for display and as the
	// file-type sniffing fallback.
	Filename string

	// ChunkIDs is the ordered list of chunk identifiers created for this
	// document. Order equals ascending chunk index.
	ChunkIDs []string

	// UploadedAt is the creation timestamp. Immutable.
	UploadedAt time.Time

	// TotalPages is the page count for paginated source formats.
	// Nil for formats without a page concept.
	TotalPages *int

	// PartitionKey scopes the document to a tenant/user. It equals the
	// owning user's identifier, or DefaultPartition when no user context
	// exists. Immutable; co-locates the document with its chunks.
	PartitionKey string

	// UserID is the explicit owner identifier, empty when anonymous.
	UserID string

	// Type is the record discriminator, always RecordTypeDocument.
	Type string
}

// Chunk is a bounded-size retrievable slice of a document's extracted text,
// optionally paired with a semantic vector.
type Chunk struct {
	// ID is deterministically derived from the document ID and the chunk
	// index; see ChunkID.
	ID string

	// DocumentID is a weak back-reference to the owning Document. The
	// Document owns the Chunk's lifecycle.
	DocumentID string

	// Content is the chunk's raw text, paragraph-aligned and bounded to a
	// maximum size at chunking time.
	Content string

	// Embedding is the semantic vector for Content. A nil slice means
	// embedding generation failed or was skipped; that is a valid,
	// degraded-but-usable state, never corruption.
	Embedding []float32

	// Metadata carries denormalised document fields so a chunk can be
	// displayed without re-fetching its document.
	Metadata ChunkMetadata

	// PartitionKey always equals the owning document's partition key.
	PartitionKey string

	// Type is the record discriminator, always RecordTypeChunk.
	Type string
}

// ChunkMetadata is the denormalised per-chunk display metadata.
type ChunkMetadata struct {
	// Filename is the owning document's original filename.
	Filename string

	// UploadedAt is the owning document's creation timestamp.
	UploadedAt time.Time

	// ChunkIndex is the 0-based position of this chunk within the document.
	ChunkIndex int
}

// HasEmbedding reports whether the chunk carries a semantic vector.
func (c *Chunk) HasEmbedding() bool {
	return len(c.Embedding) > 0
}

// ChunkID derives the deterministic chunk identifier for a document and a
// 0-based chunk index.
func ChunkID(documentID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", documentID, index)
}

// PartitionFor resolves the partition key for a user identifier, falling
// back to the given default partition when the user is unknown.
func PartitionFor(userID, defaultPartition string) string {
	if userID != "" {
		return userID
	}
	if defaultPartition != "" {
		return defaultPartition
	}
	return DefaultPartition
}
