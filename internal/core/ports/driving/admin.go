package driving

import (
	"context"

	"github.com/quillstack/docqa/internal/core/domain"
)

// DefaultAdminPageSize is used when an admin search request leaves the
// page size unset.
const DefaultAdminPageSize = 50

// AdminSearchRequest parameterises a cross-partition document search.
type AdminSearchRequest struct {
	// SearchTerm, when non-empty, filters documents whose filename OR ID
	// contains it, case-insensitively. Empty returns all documents.
	SearchTerm string

	// PageSize bounds the page, [1, 100]. Zero means
	// DefaultAdminPageSize; any other out-of-range value is a caller
	// error.
	PageSize int

	// ContinuationToken resumes a previous search. Empty starts over.
	ContinuationToken string
}

// AdminSearchResult is one page of a cross-partition document search.
type AdminSearchResult struct {
	// Documents holds the matches, newest-first by upload time.
	Documents []domain.Document

	// ContinuationToken fetches the next page, empty on the last page.
	ContinuationToken string

	// HasMore reports whether another page exists.
	HasMore bool
}

// AdminService provides the administrative cross-partition search.
//
// This is the only path permitted to bypass partition scoping. Callers
// must treat it as a privileged capability; authorisation happens in the
// calling layer before this service is reached.
type AdminService interface {
	// Search pages through document records across all partitions.
	// Page size violations fail with domain.ErrInvalidPageSize before
	// any store call is issued. Chunk records are never returned.
	Search(ctx context.Context, req AdminSearchRequest) (*AdminSearchResult, error)
}
