// Package plaintext extracts text from files that already are text.
package plaintext

import (
	"context"
	"strings"

	"github.com/quillstack/docqa/internal/core/domain"
	"github.com/quillstack/docqa/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"text/plain", "text/csv"}
}

// SupportedExtensions returns the filename extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".txt", ".text", ".csv", ".log"}
}

// Extract passes the content through, normalising line endings so the
// chunker sees consistent blank-line paragraph boundaries.
func (e *Extractor) Extract(_ context.Context, file domain.UploadedFile) (*domain.ExtractedText, error) {
	text := strings.ReplaceAll(string(file.Bytes), "\r\n", "\n")
	return &domain.ExtractedText{Text: strings.TrimSpace(text)}, nil
}
