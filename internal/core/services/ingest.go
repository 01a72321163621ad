package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quillstack/docqa/internal/core/domain"
	"github.com/quillstack/docqa/internal/core/ports/driven"
	"github.com/quillstack/docqa/internal/core/ports/driving"
	"github.com/quillstack/docqa/internal/logger"
)

// Ensure IngestionPipeline implements the interface.
var _ driving.IngestionService = (*IngestionPipeline)(nil)

// DefaultEmbedTimeout bounds each per-chunk embedding call during
// ingestion. A timeout is treated like any other embedding failure:
// the chunk persists without a vector.
const DefaultEmbedTimeout = 30 * time.Second

// IngestionPipeline turns an uploaded file into a persisted document:
// extract, chunk, embed each chunk, persist chunks, persist the document.
type IngestionPipeline struct {
	registry         driven.ExtractorRegistry
	chunker          driven.Chunker
	embeddingService driven.EmbeddingService
	docStore         driven.DocumentStore
	defaultPartition string
	embedTimeout     time.Duration
}

// NewIngestionPipeline creates a new ingestion pipeline.
// The embeddingService is optional (can be nil); without it every chunk
// persists unembedded and retrieval runs in degraded mode.
func NewIngestionPipeline(
	registry driven.ExtractorRegistry,
	chunker driven.Chunker,
	embeddingService driven.EmbeddingService,
	docStore driven.DocumentStore,
	defaultPartition string,
) *IngestionPipeline {
	if defaultPartition == "" {
		defaultPartition = domain.DefaultPartition
	}
	return &IngestionPipeline{
		registry:         registry,
		chunker:          chunker,
		embeddingService: embeddingService,
		docStore:         docStore,
		defaultPartition: defaultPartition,
		embedTimeout:     DefaultEmbedTimeout,
	}
}

// Ingest runs the pipeline for one uploaded file.
//
// Chunks are persisted before the document record that references them,
// so a crash mid-ingestion leaves at most orphaned chunks, never a
// document pointing at missing chunks. A persistence failure after some
// chunks were written is surfaced as domain.ErrIngestionFailed without
// rollback; a retry creates a fresh document ID and the orphans stay
// collectable by an out-of-band cleanup.
func (p *IngestionPipeline) Ingest(ctx context.Context, file domain.UploadedFile, userID string) (*domain.Document, error) {
	logger.Section("Ingestion")
	logger.Debug("File: %q, declared type: %q, size: %d bytes", file.Name, file.DeclaredMediaType, file.Size())

	// 1. Extract. An unsupported type aborts here, nothing persisted.
	extractor, err := p.registry.Resolve(file)
	if err != nil {
		return nil, err
	}
	extracted, err := extractor.Extract(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("extract %q: %w", file.Name, err)
	}
	logger.Debug("Extracted %d characters", len(extracted.Text))

	doc := &domain.Document{
		ID:           newDocumentID(file.Name),
		Filename:     file.Name,
		UploadedAt:   time.Now().UTC(),
		TotalPages:   extracted.TotalPages,
		PartitionKey: domain.PartitionFor(userID, p.defaultPartition),
		UserID:       userID,
		Type:         domain.RecordTypeDocument,
	}

	// 2. Chunk. Zero extractable characters still yields a valid
	// document with an empty chunk list.
	chunks := p.chunker.Chunk(extracted.Text, doc)
	logger.Debug("Chunked into %d chunks (max %d chars)", len(chunks), p.chunker.MaxChunkSize())

	// 3. Embed, one chunk at a time. A failure never aborts the
	// document; the chunk simply persists without a vector.
	embedded := 0
	for i := range chunks {
		vector, err := p.embedChunk(ctx, chunks[i].Content)
		if err != nil {
			logger.Warn("Embedding failed for chunk %d of %q: %v", i, doc.ID, err)
			continue
		}
		chunks[i].Embedding = vector
		embedded++
	}
	logger.Debug("Embedded %d/%d chunks", embedded, len(chunks))

	// 4. Persist chunks first, collecting their IDs.
	doc.ChunkIDs = make([]string, 0, len(chunks))
	for i := range chunks {
		if err := p.docStore.CreateChunk(ctx, &chunks[i]); err != nil {
			return nil, fmt.Errorf("%w: persisting chunk %s: %w", domain.ErrIngestionFailed, chunks[i].ID, err)
		}
		doc.ChunkIDs = append(doc.ChunkIDs, chunks[i].ID)
	}

	// 5. Persist the document record referencing the chunk IDs.
	if err := p.docStore.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: persisting document %s: %w", domain.ErrIngestionFailed, doc.ID, err)
	}

	logger.Info("Ingested %q as %s (%d chunks)", file.Name, doc.ID, len(doc.ChunkIDs))
	return doc, nil
}

// embedChunk calls the embedding service with a per-call timeout.
func (p *IngestionPipeline) embedChunk(ctx context.Context, text string) ([]float32, error) {
	if p.embeddingService == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	embedCtx, cancel := context.WithTimeout(ctx, p.embedTimeout)
	defer cancel()
	return p.embeddingService.Embed(embedCtx, text)
}

// newDocumentID builds a document identifier from the filename, the
// current timestamp and a random suffix. Collisions across re-uploads of
// the same file are impossible by construction, which is what makes
// retry-after-partial-failure safe.
func newDocumentID(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	slug := slugify(base)
	if slug == "" {
		slug = "document"
	}
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%d-%s", slug, time.Now().UTC().Unix(), suffix)
}

// slugify lowers a name to a filesystem and URL safe form.
func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '.':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
