package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/quillstack/docqa/internal/core/domain"
	"github.com/quillstack/docqa/internal/core/ports/driven"
	"github.com/quillstack/docqa/internal/core/ports/driving"
	"github.com/quillstack/docqa/internal/logger"
)

// Ensure RetrievalEngine implements the interface.
var _ driving.RetrievalService = (*RetrievalEngine)(nil)

// contextSeparator joins selected chunk contents in assembled context.
const contextSeparator = "\n\n"

// RetrievalEngine selects the chunks most relevant to a question and
// assembles them into grounding context.
type RetrievalEngine struct {
	docStore         driven.DocumentStore
	embeddingService driven.EmbeddingService
	defaultPartition string
	embedTimeout     time.Duration
}

// NewRetrievalEngine creates a new retrieval engine.
// The embeddingService is optional (can be nil); without it retrieval
// always uses the stored-order fallback.
func NewRetrievalEngine(
	docStore driven.DocumentStore,
	embeddingService driven.EmbeddingService,
	defaultPartition string,
) *RetrievalEngine {
	if defaultPartition == "" {
		defaultPartition = domain.DefaultPartition
	}
	return &RetrievalEngine{
		docStore:         docStore,
		embeddingService: embeddingService,
		defaultPartition: defaultPartition,
		embedTimeout:     DefaultEmbedTimeout,
	}
}

// Retrieve returns the topK most relevant chunk contents of one document,
// joined by blank lines.
func (e *RetrievalEngine) Retrieve(ctx context.Context, documentID, question, userID string, topK int) (string, error) {
	logger.Section("Retrieval")
	if topK <= 0 {
		topK = driving.DefaultTopK
	}
	partitionKey := domain.PartitionFor(userID, e.defaultPartition)

	doc, err := e.docStore.GetDocument(ctx, documentID, partitionKey)
	if err != nil {
		return "", fmt.Errorf("get document %s: %w", documentID, err)
	}
	if doc == nil {
		return "", fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}

	chunks, err := e.docStore.ListChunks(ctx, documentID, partitionKey)
	if err != nil {
		return "", fmt.Errorf("list chunks for %s: %w", documentID, err)
	}
	logger.Debug("Document %s has %d chunks", documentID, len(chunks))

	return e.assemble(ctx, question, chunks, topK), nil
}

// RetrieveAcrossDocuments ranks the chunks of all the user's documents.
// Every document's chunk set is fetched, so this is considerably more
// expensive than Retrieve.
func (e *RetrievalEngine) RetrieveAcrossDocuments(ctx context.Context, question, userID string, topK int) (string, error) {
	logger.Section("Cross-document retrieval")
	if topK <= 0 {
		topK = driving.DefaultTopK
	}
	partitionKey := domain.PartitionFor(userID, e.defaultPartition)

	docs, err := e.docStore.ListDocuments(ctx, partitionKey, 0)
	if err != nil {
		return "", fmt.Errorf("list documents: %w", err)
	}

	var all []domain.Chunk
	for _, doc := range docs {
		chunks, err := e.docStore.ListChunks(ctx, doc.ID, partitionKey)
		if err != nil {
			return "", fmt.Errorf("list chunks for %s: %w", doc.ID, err)
		}
		all = append(all, chunks...)
	}
	logger.Debug("Ranking %d chunks across %d documents", len(all), len(docs))

	return e.assemble(ctx, question, all, topK), nil
}

// assemble picks the topK chunks for the question and joins their
// contents. When no chunk has an embedding, or embedding the question
// fails, it falls back to the first topK chunks in stored order. The
// fallback is the defined degraded behaviour and never errors.
func (e *RetrievalEngine) assemble(ctx context.Context, question string, chunks []domain.Chunk, topK int) string {
	if len(chunks) == 0 {
		return ""
	}

	embedded := make([]domain.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if c.HasEmbedding() {
			embedded = append(embedded, c)
		}
	}

	if len(embedded) == 0 {
		logger.Info("No embedded chunks, falling back to stored order")
		return joinContents(firstN(chunks, topK))
	}

	query, err := e.embedQuestion(ctx, question)
	if err != nil {
		logger.Warn("Question embedding failed, falling back to stored order: %v", err)
		return joinContents(firstN(chunks, topK))
	}

	ranked := rankChunks(query, embedded, topK)
	selected := make([]domain.Chunk, len(ranked))
	for i, r := range ranked {
		logger.Debug("Rank %d: %s (%.4f)", i+1, r.Chunk.ID, r.Similarity)
		selected[i] = r.Chunk
	}
	return joinContents(selected)
}

// embedQuestion embeds the question with a per-call timeout.
func (e *RetrievalEngine) embedQuestion(ctx context.Context, question string) ([]float32, error) {
	if e.embeddingService == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	embedCtx, cancel := context.WithTimeout(ctx, e.embedTimeout)
	defer cancel()
	return e.embeddingService.Embed(embedCtx, question)
}

func firstN(chunks []domain.Chunk, n int) []domain.Chunk {
	if n > 0 && n < len(chunks) {
		return chunks[:n]
	}
	return chunks
}

func joinContents(chunks []domain.Chunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Content
	}
	return strings.Join(parts, contextSeparator)
}
