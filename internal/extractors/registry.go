package extractors

import (
	"mime"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quillstack/docqa/internal/core/domain"
	"github.com/quillstack/docqa/internal/core/ports/driven"
	"github.com/quillstack/docqa/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Generic media types that carry no useful format information. A declared
// type in this set is ignored and the filename extension decides instead.
var genericTypes = map[string]bool{
	"":                         true,
	"application/octet-stream": true,
	"binary/octet-stream":      true,
}

// Registry dispatches uploaded files to the extractor for their format.
type Registry struct {
	byMIME      map[string]driven.Extractor
	byExtension map[string]driven.Extractor
}

// NewRegistry creates a registry over the given extractors. Later
// extractors win when two claim the same MIME type or extension.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{
		byMIME:      make(map[string]driven.Extractor),
		byExtension: make(map[string]driven.Extractor),
	}
	for _, e := range extractors {
		for _, mt := range e.SupportedMIMETypes() {
			r.byMIME[strings.ToLower(mt)] = e
		}
		for _, ext := range e.SupportedExtensions() {
			r.byExtension[strings.ToLower(ext)] = e
		}
	}
	return r
}

// Resolve selects the extractor for the file. The declared media type is
// tried first; generic or unrecognised types fall back to the filename
// extension. An upload matching neither fails with a
// domain.UnsupportedFileTypeError naming the supported set.
func (r *Registry) Resolve(file domain.UploadedFile) (driven.Extractor, error) {
	declared := normaliseMediaType(file.DeclaredMediaType)

	if !genericTypes[declared] {
		if e, ok := r.byMIME[declared]; ok {
			return e, nil
		}
		logger.Debug("Declared type %q unrecognised, trying extension of %q", declared, file.Name)
	}

	ext := strings.ToLower(filepath.Ext(file.Name))
	if e, ok := r.byExtension[ext]; ok {
		return e, nil
	}

	return nil, &domain.UnsupportedFileTypeError{
		MediaType: file.DeclaredMediaType,
		Filename:  file.Name,
		Supported: r.SupportedMIMETypes(),
	}
}

// SupportedMIMETypes returns every MIME type any registered extractor
// handles, sorted for stable error messages.
func (r *Registry) SupportedMIMETypes() []string {
	types := make([]string, 0, len(r.byMIME))
	for mt := range r.byMIME {
		types = append(types, mt)
	}
	sort.Strings(types)
	return types
}

// normaliseMediaType lower-cases a media type and drops parameters such
// as charset.
func normaliseMediaType(mediaType string) string {
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))
	if mediaType == "" {
		return ""
	}
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		return parsed
	}
	return mediaType
}
