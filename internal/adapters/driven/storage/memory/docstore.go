// Package memory provides an in-memory implementation of the partitioned
// document store, used by tests and zero-configuration runs.
package memory

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/quillstack/docqa/internal/core/domain"
	"github.com/quillstack/docqa/internal/core/ports/driven"
	"github.com/quillstack/docqa/internal/logger"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory partitioned store. Records live in
// per-partition maps, mirroring the physical co-location a partitioned
// database provides.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]map[string]domain.Document // partitionKey -> id -> document
	chunks    map[string]map[string]domain.Chunk    // partitionKey -> id -> chunk
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]map[string]domain.Document),
		chunks:    make(map[string]map[string]domain.Chunk),
	}
}

// CreateDocument inserts a document record into its partition.
func (s *DocumentStore) CreateDocument(_ context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" || doc.PartitionKey == "" {
		return domain.ErrInvalidInput
	}
	if err := checkRecordSize(doc.ID, doc); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	partition, ok := s.documents[doc.PartitionKey]
	if !ok {
		partition = make(map[string]domain.Document)
		s.documents[doc.PartitionKey] = partition
	}
	partition[doc.ID] = *doc
	return nil
}

// CreateChunk inserts a chunk record into its partition.
func (s *DocumentStore) CreateChunk(_ context.Context, chunk *domain.Chunk) error {
	if chunk == nil || chunk.ID == "" || chunk.PartitionKey == "" {
		return domain.ErrInvalidInput
	}
	if err := checkRecordSize(chunk.ID, chunk); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	partition, ok := s.chunks[chunk.PartitionKey]
	if !ok {
		partition = make(map[string]domain.Chunk)
		s.chunks[chunk.PartitionKey] = partition
	}
	partition[chunk.ID] = *chunk
	return nil
}

// GetDocument retrieves a document by ID within a partition.
// Absence returns nil, nil.
func (s *DocumentStore) GetDocument(_ context.Context, id, partitionKey string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[partitionKey][id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

// GetChunk retrieves a chunk by ID within a partition.
// Absence returns nil, nil.
func (s *DocumentStore) GetChunk(_ context.Context, id, partitionKey string) (*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunk, ok := s.chunks[partitionKey][id]
	if !ok {
		return nil, nil
	}
	return &chunk, nil
}

// DeleteDocument removes a document record, returning domain.ErrNotFound
// when the ID has no record in the partition.
func (s *DocumentStore) DeleteDocument(_ context.Context, id, partitionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[partitionKey][id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.documents[partitionKey], id)
	return nil
}

// DeleteChunk removes a chunk record, with the same not-found semantics
// as DeleteDocument.
func (s *DocumentStore) DeleteChunk(_ context.Context, id, partitionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.chunks[partitionKey][id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.chunks[partitionKey], id)
	return nil
}

// ListDocuments returns a partition's documents, newest-first.
func (s *DocumentStore) ListDocuments(_ context.Context, partitionKey string, maxItems int) ([]domain.Document, error) {
	s.mu.RLock()
	docs := make([]domain.Document, 0, len(s.documents[partitionKey]))
	for _, doc := range s.documents[partitionKey] {
		docs = append(docs, doc)
	}
	s.mu.RUnlock()

	sortNewestFirst(docs)
	if maxItems > 0 && maxItems < len(docs) {
		docs = docs[:maxItems]
	}
	return docs, nil
}

// ListChunks returns a document's chunks within a partition, ordered by
// ascending chunk index.
func (s *DocumentStore) ListChunks(_ context.Context, documentID, partitionKey string) ([]domain.Chunk, error) {
	s.mu.RLock()
	var chunks []domain.Chunk
	for _, chunk := range s.chunks[partitionKey] {
		if chunk.DocumentID == documentID {
			chunks = append(chunks, chunk)
		}
	}
	s.mu.RUnlock()

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Metadata.ChunkIndex < chunks[j].Metadata.ChunkIndex
	})
	return chunks, nil
}

// QueryDocumentsPaged scans documents across all partitions, newest-first.
func (s *DocumentStore) QueryDocumentsPaged(_ context.Context, filter driven.DocumentFilter, pageSize int, continuationToken string) (*driven.DocumentPage, error) {
	if pageSize < driven.MinPageSize || pageSize > driven.MaxPageSize {
		return nil, &domain.InvalidPageSizeError{Size: pageSize, Min: driven.MinPageSize, Max: driven.MaxPageSize}
	}

	cursor, err := decodeCursor(continuationToken)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	var matches []domain.Document
	for _, partition := range s.documents {
		for _, doc := range partition {
			if filterMatches(filter, doc) {
				matches = append(matches, doc)
			}
		}
	}
	s.mu.RUnlock()

	sortNewestFirst(matches)

	if cursor.Offset >= len(matches) {
		return &driven.DocumentPage{}, nil
	}

	end := cursor.Offset + pageSize
	hasMore := end < len(matches)
	if !hasMore {
		end = len(matches)
	}

	page := &driven.DocumentPage{
		Documents: matches[cursor.Offset:end],
		HasMore:   hasMore,
	}
	if hasMore {
		page.ContinuationToken = encodeCursor(pageCursor{Offset: end})
	}
	return page, nil
}

// Close releases resources. It is a no-op for the in-memory store.
func (s *DocumentStore) Close() error {
	return nil
}

// filterMatches applies the cross-partition document filter.
func filterMatches(filter driven.DocumentFilter, doc domain.Document) bool {
	if filter.Search == "" {
		return true
	}
	term := strings.ToLower(filter.Search)
	return strings.Contains(strings.ToLower(doc.Filename), term) ||
		strings.Contains(strings.ToLower(doc.ID), term)
}

// sortNewestFirst orders documents by descending upload time, breaking
// ties by descending ID for deterministic pagination.
func sortNewestFirst(docs []domain.Document) {
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].UploadedAt.Equal(docs[j].UploadedAt) {
			return docs[i].UploadedAt.After(docs[j].UploadedAt)
		}
		return docs[i].ID > docs[j].ID
	})
}

// checkRecordSize enforces the per-item size ceiling before a write and
// logs a warning for items approaching it.
func checkRecordSize(id string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if len(data) > driven.MaxItemBytes {
		return &domain.RecordTooLargeError{RecordID: id, Size: len(data), Ceiling: driven.MaxItemBytes}
	}
	if len(data) > driven.ItemSizeWarnBytes {
		logger.Warn("Record %s is %d bytes, approaching the %d byte ceiling", id, len(data), driven.MaxItemBytes)
	}
	return nil
}

// pageCursor is the in-memory store's continuation token payload.
type pageCursor struct {
	Offset int `json:"offset"`
}

// encodeCursor serialises the cursor to a base64-encoded JSON string.
func encodeCursor(c pageCursor) string {
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

// decodeCursor deserialises a cursor, returning a zero cursor for the
// empty token and domain.ErrInvalidCursor for garbage.
func decodeCursor(token string) (pageCursor, error) {
	if token == "" {
		return pageCursor{}, nil
	}
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return pageCursor{}, domain.ErrInvalidCursor
	}
	var c pageCursor
	if err := json.Unmarshal(data, &c); err != nil {
		return pageCursor{}, domain.ErrInvalidCursor
	}
	if c.Offset < 0 {
		return pageCursor{}, domain.ErrInvalidCursor
	}
	return c, nil
}
