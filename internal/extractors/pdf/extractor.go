// Package pdf extracts plain text and page counts from PDF documents.
package pdf

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/quillstack/docqa/internal/core/domain"
	"github.com/quillstack/docqa/internal/core/ports/driven"
	"github.com/quillstack/docqa/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"application/pdf", "application/x-pdf"}
}

// SupportedExtensions returns the filename extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Extract pulls plain text out of the PDF page by page, joining pages
// with blank lines, and reports the page count. A parser failure on a
// malformed file is not fatal: the extractor falls back to salvaging
// printable text from the raw bytes, without a page count.
func (e *Extractor) Extract(_ context.Context, file domain.UploadedFile) (*domain.ExtractedText, error) {
	if len(file.Bytes) == 0 {
		return &domain.ExtractedText{}, nil
	}

	text, pages, err := extractParsed(file.Bytes)
	if err != nil {
		logger.Warn("PDF parse failed for %q, salvaging printable text: %v", file.Name, err)
		return &domain.ExtractedText{Text: salvagePrintable(file.Bytes)}, nil
	}

	return &domain.ExtractedText{Text: text, TotalPages: &pages}, nil
}

// extractParsed reads the PDF through the parser. The parser panics on
// some malformed inputs, so the panic is converted into an error and the
// caller falls back to the salvage pass.
func extractParsed(data []byte) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &parsePanicError{value: r}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, err
	}

	pages = reader.NumPage()
	var parts []string
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		content = normaliseWhitespace(content)
		if content != "" {
			parts = append(parts, content)
		}
	}

	return strings.Join(parts, "\n\n"), pages, nil
}

type parsePanicError struct {
	value any
}

func (e *parsePanicError) Error() string {
	return "pdf parser panic"
}

var pdfMultiSpaces = regexp.MustCompile(`[ \t]{2,}`)

// normaliseWhitespace collapses runs of spaces within a page's text.
func normaliseWhitespace(s string) string {
	s = pdfMultiSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// salvagePrintable extracts printable runes from raw bytes. It is the
// last-resort pass for PDFs the parser cannot read; the result is noisy
// but keeps the document retrievable.
func salvagePrintable(in []byte) string {
	var out bytes.Buffer
	for len(in) > 0 {
		r, size := utf8.DecodeRune(in)
		if r == utf8.RuneError && size == 1 {
			if b := in[0]; isPrintableASCII(b) {
				out.WriteByte(b)
			}
			in = in[1:]
			continue
		}
		in = in[size:]
		if isPrintableRune(r) {
			out.WriteRune(r)
		}
	}
	return strings.TrimSpace(out.String())
}

func isPrintableASCII(b byte) bool {
	return b == '\n' || b == '\r' || b == '\t' || (b >= 32 && b < 127)
}

func isPrintableRune(r rune) bool {
	if r == '\n' || r == '\r' || r == '\t' {
		return true
	}
	return r >= 32 && r != 127
}
