package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist in the
	// caller's partition. Callers surface it as a not-found outcome,
	// not a server error.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFileType indicates no extractor handles the input,
	// after trying both the declared media type and the filename
	// extension. Fatal to ingestion; nothing is persisted.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrEmbeddingUnavailable indicates the embedding service call failed.
	// Ingestion recovers locally (the chunk persists without a vector);
	// retrieval degrades to unranked context assembly.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrIngestionFailed indicates a persistence step failed after
	// extraction and chunking succeeded. Retryable; already-written
	// chunks are not rolled back.
	ErrIngestionFailed = errors.New("ingestion failed")

	// ErrRecordTooLarge indicates a single record exceeds the store's
	// per-item size ceiling. Detected before the write is attempted.
	ErrRecordTooLarge = errors.New("record exceeds size ceiling")

	// ErrInvalidPageSize indicates an administrative pagination request
	// outside the permitted bounds. Validated before any store call.
	ErrInvalidPageSize = errors.New("invalid page size")

	// ErrInvalidCursor indicates a continuation token that cannot be
	// decoded. The caller should restart pagination from the beginning.
	ErrInvalidCursor = errors.New("invalid continuation token")

	// ErrLLMUnavailable indicates the completion service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)

// UnsupportedFileTypeError reports the attempted media type and the set of
// supported types. It unwraps to ErrUnsupportedFileType.
type UnsupportedFileTypeError struct {
	// MediaType is the declared or sniffed type that failed dispatch.
	MediaType string

	// Filename is the upload name whose extension was tried as fallback.
	Filename string

	// Supported lists the media types the extractor registry handles.
	Supported []string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q for %q (supported: %s)",
		e.MediaType, e.Filename, strings.Join(e.Supported, ", "))
}

func (e *UnsupportedFileTypeError) Unwrap() error {
	return ErrUnsupportedFileType
}

// RecordTooLargeError reports the computed serialized size and the store's
// ceiling. It unwraps to ErrRecordTooLarge.
type RecordTooLargeError struct {
	// RecordID identifies the offending record.
	RecordID string

	// Size is the computed serialized size in bytes.
	Size int

	// Ceiling is the store's per-item maximum in bytes.
	Ceiling int
}

func (e *RecordTooLargeError) Error() string {
	return fmt.Sprintf("record %s is %d bytes, exceeding the %d byte ceiling",
		e.RecordID, e.Size, e.Ceiling)
}

func (e *RecordTooLargeError) Unwrap() error {
	return ErrRecordTooLarge
}

// InvalidPageSizeError reports a page size outside the permitted bounds.
// It unwraps to ErrInvalidPageSize.
type InvalidPageSizeError struct {
	Size int
	Min  int
	Max  int
}

func (e *InvalidPageSizeError) Error() string {
	return fmt.Sprintf("page size %d is outside [%d, %d]", e.Size, e.Min, e.Max)
}

func (e *InvalidPageSizeError) Unwrap() error {
	return ErrInvalidPageSize
}
