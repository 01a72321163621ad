package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/quillstack/docqa/internal/core/domain"
	"github.com/quillstack/docqa/internal/core/ports/driven"
)

// mockDocStore is an in-memory DocumentStore with error injection for
// exercising the service-layer failure paths.
type mockDocStore struct {
	mu        sync.Mutex
	documents map[string]map[string]*domain.Document
	chunks    map[string]map[string]*domain.Chunk

	// Order of CreateDocument / CreateChunk calls, by record ID.
	createOrder []string

	failCreateChunkAfter int // fail the Nth chunk create (1-based), 0 disables
	failCreateDocument   bool
	chunkCreates         int

	queryFn func(filter driven.DocumentFilter, pageSize int, token string) (*driven.DocumentPage, error)
}

func newMockDocStore() *mockDocStore {
	return &mockDocStore{
		documents: make(map[string]map[string]*domain.Document),
		chunks:    make(map[string]map[string]*domain.Chunk),
	}
}

func (m *mockDocStore) CreateDocument(_ context.Context, doc *domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreateDocument {
		return errors.New("injected document create failure")
	}
	if m.documents[doc.PartitionKey] == nil {
		m.documents[doc.PartitionKey] = make(map[string]*domain.Document)
	}
	copied := *doc
	m.documents[doc.PartitionKey][doc.ID] = &copied
	m.createOrder = append(m.createOrder, doc.ID)
	return nil
}

func (m *mockDocStore) CreateChunk(_ context.Context, chunk *domain.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunkCreates++
	if m.failCreateChunkAfter > 0 && m.chunkCreates >= m.failCreateChunkAfter {
		return errors.New("injected chunk create failure")
	}
	if m.chunks[chunk.PartitionKey] == nil {
		m.chunks[chunk.PartitionKey] = make(map[string]*domain.Chunk)
	}
	copied := *chunk
	m.chunks[chunk.PartitionKey][chunk.ID] = &copied
	m.createOrder = append(m.createOrder, chunk.ID)
	return nil
}

func (m *mockDocStore) GetDocument(_ context.Context, id, partitionKey string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.documents[partitionKey][id]
	if !ok {
		return nil, nil
	}
	copied := *doc
	return &copied, nil
}

func (m *mockDocStore) GetChunk(_ context.Context, id, partitionKey string) (*domain.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	chunk, ok := m.chunks[partitionKey][id]
	if !ok {
		return nil, nil
	}
	copied := *chunk
	return &copied, nil
}

func (m *mockDocStore) DeleteDocument(_ context.Context, id, partitionKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.documents[partitionKey][id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.documents[partitionKey], id)
	return nil
}

func (m *mockDocStore) DeleteChunk(_ context.Context, id, partitionKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chunks[partitionKey][id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.chunks[partitionKey], id)
	return nil
}

func (m *mockDocStore) ListDocuments(_ context.Context, partitionKey string, maxItems int) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var docs []domain.Document
	// Preserve insertion order via createOrder for deterministic tests.
	for _, id := range m.createOrder {
		if doc, ok := m.documents[partitionKey][id]; ok {
			docs = append(docs, *doc)
		}
	}
	if maxItems > 0 && maxItems < len(docs) {
		docs = docs[:maxItems]
	}
	return docs, nil
}

func (m *mockDocStore) ListChunks(_ context.Context, documentID, partitionKey string) ([]domain.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var chunks []domain.Chunk
	for _, id := range m.createOrder {
		if c, ok := m.chunks[partitionKey][id]; ok && c.DocumentID == documentID {
			chunks = append(chunks, *c)
		}
	}
	return chunks, nil
}

func (m *mockDocStore) QueryDocumentsPaged(_ context.Context, filter driven.DocumentFilter, pageSize int, token string) (*driven.DocumentPage, error) {
	if m.queryFn != nil {
		return m.queryFn(filter, pageSize, token)
	}
	return &driven.DocumentPage{}, nil
}

func (m *mockDocStore) Close() error { return nil }

// mockEmbedding returns a configurable vector or error per call.
type mockEmbedding struct {
	embedFn func(text string) ([]float32, error)
	calls   []string
}

func (m *mockEmbedding) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls = append(m.calls, text)
	if m.embedFn != nil {
		return m.embedFn(text)
	}
	return []float32{1, 0, 0}, nil
}

func (m *mockEmbedding) Dimensions() int   { return 3 }
func (m *mockEmbedding) ModelName() string { return "mock-embedding" }
func (m *mockEmbedding) Close() error      { return nil }

// mockLLM records the prompts it was given.
type mockLLM struct {
	answer       string
	err          error
	systemPrompt string
	userPrompt   string
}

func (m *mockLLM) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	m.systemPrompt = systemPrompt
	m.userPrompt = userPrompt
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func (m *mockLLM) ModelName() string { return "mock-llm" }
func (m *mockLLM) Close() error      { return nil }

// mockExtractor returns fixed text for any input.
type mockExtractor struct {
	text       string
	totalPages *int
	err        error
}

func (m *mockExtractor) SupportedMIMETypes() []string  { return []string{"text/plain"} }
func (m *mockExtractor) SupportedExtensions() []string { return []string{".txt"} }

func (m *mockExtractor) Extract(_ context.Context, _ domain.UploadedFile) (*domain.ExtractedText, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ExtractedText{Text: m.text, TotalPages: m.totalPages}, nil
}

// mockRegistry resolves every file to one extractor, or fails.
type mockRegistry struct {
	extractor driven.Extractor
	err       error
}

func (m *mockRegistry) Resolve(_ domain.UploadedFile) (driven.Extractor, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.extractor, nil
}

func (m *mockRegistry) SupportedMIMETypes() []string { return []string{"text/plain"} }

// mockChunker splits on blank lines, one paragraph per chunk.
type mockChunker struct{}

func (mockChunker) MaxChunkSize() int { return 2000 }

func (mockChunker) Chunk(text string, doc *domain.Document) []domain.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var chunks []domain.Chunk
	for _, para := range strings.Split(text, "\n\n") {
		index := len(chunks)
		chunks = append(chunks, domain.Chunk{
			ID:         domain.ChunkID(doc.ID, index),
			DocumentID: doc.ID,
			Content:    para,
			Metadata: domain.ChunkMetadata{
				Filename:   doc.Filename,
				UploadedAt: doc.UploadedAt,
				ChunkIndex: index,
			},
			PartitionKey: doc.PartitionKey,
			Type:         domain.RecordTypeChunk,
		})
	}
	return chunks
}
