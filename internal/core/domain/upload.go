package domain

// UploadedFile represents the raw bytes handed to the ingestion pipeline
// by the calling layer, together with what the caller claims about them.
type UploadedFile struct {
	// Name is the original filename, including extension.
	Name string

	// Bytes is the raw file content.
	Bytes []byte

	// DeclaredMediaType is the MIME type declared by the caller
	// (e.g. "application/pdf"). May be empty or generic; extractors
	// fall back to the filename extension.
	DeclaredMediaType string
}

// Size returns the upload size in bytes.
func (f UploadedFile) Size() int {
	return len(f.Bytes)
}

// ExtractedText is the output of a text extractor.
type ExtractedText struct {
	// Text is the extracted plain text. Paragraph boundaries are
	// preserved as blank lines for downstream chunking.
	Text string

	// TotalPages is the page count for paginated formats, nil otherwise.
	TotalPages *int
}
