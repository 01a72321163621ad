package driven

import (
	"context"

	"github.com/quillstack/docqa/internal/core/domain"
)

// Extractor converts an uploaded file into plain text.
// Each extractor handles a specific family of media types (PDF, Markdown,
// HTML, plain text).
type Extractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// SupportedExtensions returns filename extensions (with leading dot,
	// lower case) used as a fallback when the declared type is generic
	// or unrecognised.
	SupportedExtensions() []string

	// Extract converts the file bytes to plain text. Paragraph boundaries
	// are preserved as blank lines for downstream chunking. TotalPages is
	// populated only for paginated formats.
	Extract(ctx context.Context, file domain.UploadedFile) (*domain.ExtractedText, error)
}

// ExtractorRegistry selects the extractor for an uploaded file.
type ExtractorRegistry interface {
	// Resolve dispatches on the declared media type first and falls back
	// to the filename extension. When neither matches it fails with a
	// domain.UnsupportedFileTypeError naming the attempted type and the
	// supported set.
	Resolve(file domain.UploadedFile) (Extractor, error)

	// SupportedMIMETypes returns every MIME type any registered
	// extractor handles, for error messages and capability listings.
	SupportedMIMETypes() []string
}
