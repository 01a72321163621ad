package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/quillstack/docqa/internal/core/domain"
	"github.com/quillstack/docqa/internal/core/ports/driven"
	"github.com/quillstack/docqa/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// CreateDocument inserts a document record into its partition.
func (s *Store) CreateDocument(ctx context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" || doc.PartitionKey == "" {
		return domain.ErrInvalidInput
	}
	if err := checkRecordSize(doc.ID, doc); err != nil {
		return err
	}

	chunkIDsJSON, err := json.Marshal(doc.ChunkIDs)
	if err != nil {
		return fmt.Errorf("marshalling chunk ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, partition_key, filename, chunk_ids, uploaded_at, total_pages, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.PartitionKey, doc.Filename, string(chunkIDsJSON),
		doc.UploadedAt.UnixNano(), nullableInt(doc.TotalPages), nullString(doc.UserID))

	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}
	return nil
}

// CreateChunk inserts a chunk record into its partition.
func (s *Store) CreateChunk(ctx context.Context, chunk *domain.Chunk) error {
	if chunk == nil || chunk.ID == "" || chunk.PartitionKey == "" {
		return domain.ErrInvalidInput
	}
	if err := checkRecordSize(chunk.ID, chunk); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chunks (id, partition_key, document_id, content, embedding, filename, uploaded_at, chunk_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, chunk.ID, chunk.PartitionKey, chunk.DocumentID, chunk.Content,
		float32SliceToBytes(chunk.Embedding), chunk.Metadata.Filename,
		chunk.Metadata.UploadedAt.UnixNano(), chunk.Metadata.ChunkIndex)

	if err != nil {
		return fmt.Errorf("creating chunk: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID within a partition.
// Absence returns nil, nil.
func (s *Store) GetDocument(ctx context.Context, id, partitionKey string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, partition_key, filename, chunk_ids, uploaded_at, total_pages, user_id
		FROM documents WHERE id = ? AND partition_key = ?
	`, id, partitionKey)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return doc, nil
}

// GetChunk retrieves a chunk by ID within a partition.
// Absence returns nil, nil.
func (s *Store) GetChunk(ctx context.Context, id, partitionKey string) (*domain.Chunk, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, partition_key, document_id, content, embedding, filename, uploaded_at, chunk_index
		FROM chunks WHERE id = ? AND partition_key = ?
	`, id, partitionKey)

	chunk, err := scanChunk(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}
	return chunk, nil
}

// DeleteDocument removes a document record, returning domain.ErrNotFound
// when the ID had no record in the partition.
func (s *Store) DeleteDocument(ctx context.Context, id, partitionKey string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE id = ? AND partition_key = ?", id, partitionKey)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return notFoundIfNoRows(res)
}

// DeleteChunk removes a chunk record, with the same not-found semantics
// as DeleteDocument.
func (s *Store) DeleteChunk(ctx context.Context, id, partitionKey string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM chunks WHERE id = ? AND partition_key = ?", id, partitionKey)
	if err != nil {
		return fmt.Errorf("deleting chunk: %w", err)
	}
	return notFoundIfNoRows(res)
}

// ListDocuments returns a partition's documents, newest-first.
func (s *Store) ListDocuments(ctx context.Context, partitionKey string, maxItems int) ([]domain.Document, error) {
	query := `
		SELECT id, partition_key, filename, chunk_ids, uploaded_at, total_pages, user_id
		FROM documents WHERE partition_key = ?
		ORDER BY uploaded_at DESC, id DESC
	`
	args := []any{partitionKey}
	if maxItems > 0 {
		query += " LIMIT ?"
		args = append(args, maxItems)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// ListChunks returns a document's chunks within a partition, ordered by
// ascending chunk index.
func (s *Store) ListChunks(ctx context.Context, documentID, partitionKey string) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, partition_key, document_id, content, embedding, filename, uploaded_at, chunk_index
		FROM chunks WHERE partition_key = ? AND document_id = ?
		ORDER BY chunk_index ASC
	`, partitionKey, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunks = append(chunks, *chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return chunks, nil
}

// QueryDocumentsPaged scans documents across all partitions using keyset
// pagination on (uploaded_at, id) descending.
func (s *Store) QueryDocumentsPaged(ctx context.Context, filter driven.DocumentFilter, pageSize int, continuationToken string) (*driven.DocumentPage, error) {
	if pageSize < driven.MinPageSize || pageSize > driven.MaxPageSize {
		return nil, &domain.InvalidPageSizeError{Size: pageSize, Min: driven.MinPageSize, Max: driven.MaxPageSize}
	}

	cursor, err := decodeCursor(continuationToken)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, partition_key, filename, chunk_ids, uploaded_at, total_pages, user_id
		FROM documents
	`
	var conds []string
	var args []any

	if filter.Search != "" {
		conds = append(conds, "(instr(lower(filename), lower(?)) > 0 OR instr(lower(id), lower(?)) > 0)")
		args = append(args, filter.Search, filter.Search)
	}
	if cursor != nil {
		conds = append(conds, "(uploaded_at < ? OR (uploaded_at = ? AND id < ?))")
		args = append(args, cursor.UploadedAt, cursor.UploadedAt, cursor.ID)
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	// One extra row decides hasMore without a second query.
	query += " ORDER BY uploaded_at DESC, id DESC LIMIT ?"
	args = append(args, pageSize+1)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents cross-partition: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	page := &driven.DocumentPage{}
	if len(docs) > pageSize {
		docs = docs[:pageSize]
		last := docs[len(docs)-1]
		page.HasMore = true
		page.ContinuationToken = encodeCursor(&pageCursor{
			UploadedAt: last.UploadedAt.UnixNano(),
			ID:         last.ID,
		})
	}
	page.Documents = docs
	return page, nil
}

// ==================== Helper Functions ====================

// scanDocument scans a document row via the given scan function, which
// works for both *sql.Row and *sql.Rows.
func scanDocument(scan func(dest ...any) error) (*domain.Document, error) {
	var doc domain.Document
	var chunkIDsJSON string
	var uploadedAt int64
	var totalPages sql.NullInt64
	var userID sql.NullString

	if err := scan(&doc.ID, &doc.PartitionKey, &doc.Filename, &chunkIDsJSON,
		&uploadedAt, &totalPages, &userID); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(chunkIDsJSON), &doc.ChunkIDs); err != nil {
		return nil, fmt.Errorf("unmarshaling chunk ids: %w", err)
	}
	doc.UploadedAt = time.Unix(0, uploadedAt).UTC()
	if totalPages.Valid {
		pages := int(totalPages.Int64)
		doc.TotalPages = &pages
	}
	doc.UserID = userID.String
	doc.Type = domain.RecordTypeDocument

	return &doc, nil
}

// scanChunk scans a chunk row via the given scan function.
func scanChunk(scan func(dest ...any) error) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var embedding []byte
	var uploadedAt int64

	if err := scan(&chunk.ID, &chunk.PartitionKey, &chunk.DocumentID, &chunk.Content,
		&embedding, &chunk.Metadata.Filename, &uploadedAt, &chunk.Metadata.ChunkIndex); err != nil {
		return nil, err
	}

	chunk.Embedding = bytesToFloat32Slice(embedding)
	chunk.Metadata.UploadedAt = time.Unix(0, uploadedAt).UTC()
	chunk.Type = domain.RecordTypeChunk

	return &chunk, nil
}

// notFoundIfNoRows maps a zero-row delete onto domain.ErrNotFound.
func notFoundIfNoRows(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
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

// nullableInt returns nil for a nil pointer, otherwise the value.
func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// float32SliceToBytes converts a vector to a little-endian byte blob.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte blob back to a vector.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
