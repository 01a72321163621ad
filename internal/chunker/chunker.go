// Package chunker splits extracted text into bounded-size, paragraph-aligned
// chunks ready for embedding and storage.
package chunker

import (
	"regexp"
	"strings"

	"github.com/quillstack/docqa/internal/core/domain"
)

// DefaultMaxChunkSize is the default maximum number of characters of
// source text per chunk.
const DefaultMaxChunkSize = 2000

// paragraphSplit matches one or more blank lines, the paragraph boundary
// extractors are required to preserve.
var paragraphSplit = regexp.MustCompile(`\n\s*\n`)

// Chunker accumulates paragraphs into chunks of at most maxChunkSize
// characters, never splitting inside a paragraph.
type Chunker struct {
	maxChunkSize int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxChunkSize sets the maximum chunk size in characters.
func WithMaxChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.maxChunkSize = size
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{maxChunkSize: DefaultMaxChunkSize}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxChunkSize returns the configured maximum chunk size.
func (c *Chunker) MaxChunkSize() int {
	return c.maxChunkSize
}

// Chunk splits text into ordered chunk records for the given document.
// Embeddings are left unset; the ingestion pipeline fills them in later.
//
// Paragraphs are accumulated into a running buffer. When adding the next
// paragraph would exceed the size bound and the buffer is non-empty, the
// buffer is flushed as a completed chunk. A single paragraph longer than
// the bound is emitted whole as its own oversized chunk: semantic
// coherence wins over the strict size limit. Empty input produces zero
// chunks, not an error.
func (c *Chunker) Chunk(text string, doc *domain.Document) []domain.Chunk {
	var chunks []domain.Chunk
	var buf strings.Builder

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		index := len(chunks)
		chunks = append(chunks, domain.Chunk{
			ID:         domain.ChunkID(doc.ID, index),
			DocumentID: doc.ID,
			Content:    buf.String(),
			Metadata: domain.ChunkMetadata{
				Filename:   doc.Filename,
				UploadedAt: doc.UploadedAt,
				ChunkIndex: index,
			},
			PartitionKey: doc.PartitionKey,
			Type:         domain.RecordTypeChunk,
		})
		buf.Reset()
	}

	for _, para := range paragraphSplit.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		// The separator counts towards the bound when joining.
		next := len(para)
		if buf.Len() > 0 {
			next += buf.Len() + 2
		}
		if next > c.maxChunkSize && buf.Len() > 0 {
			flush()
		}

		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(para)
	}

	flush()
	return chunks
}
