// Package html extracts plain text from HTML documents.
package html

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/quillstack/docqa/internal/core/domain"
	"github.com/quillstack/docqa/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles HTML documents.
type Extractor struct{}

// New creates a new HTML extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// SupportedExtensions returns the filename extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// Extract strips markup from an HTML document and returns the readable
// text. Paragraph boundaries survive as blank lines so the chunker can
// split on them. HTML has no page concept, so TotalPages is nil.
func (e *Extractor) Extract(_ context.Context, file domain.UploadedFile) (*domain.ExtractedText, error) {
	if len(file.Bytes) == 0 {
		return &domain.ExtractedText{}, nil
	}
	return &domain.ExtractedText{Text: stripHTML(string(file.Bytes))}, nil
}

// Pre-compiled regular expressions for HTML stripping performance.
var (
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag       = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag           = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag            = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	closeBlockTags    = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	openBlockTags     = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	brTags            = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
	multiSpaces       = regexp.MustCompile(`[ \t]+`)
	multiNewlines     = regexp.MustCompile(`\n{3,}`)
	spaceAroundBreaks = regexp.MustCompile(`[ \t]*\n[ \t]*`)
)

// stripHTML removes markup and extracts readable text. Script and style
// blocks are removed wholesale before any text extraction so their
// contents never leak into chunks.
func stripHTML(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = noscriptTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	// Block element boundaries become paragraph breaks.
	content = openBlockTags.ReplaceAllString(content, "\n\n")
	content = closeBlockTags.ReplaceAllString(content, "\n\n")
	content = brTags.ReplaceAllString(content, "\n")

	// Strip all remaining tags, then decode named character references.
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	// Collapse runs of spaces but keep the blank-line structure.
	content = multiSpaces.ReplaceAllString(content, " ")
	content = spaceAroundBreaks.ReplaceAllString(content, "\n")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
