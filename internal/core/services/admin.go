package services

import (
	"context"
	"fmt"

	"github.com/quillstack/docqa/internal/core/domain"
	"github.com/quillstack/docqa/internal/core/ports/driven"
	"github.com/quillstack/docqa/internal/core/ports/driving"
	"github.com/quillstack/docqa/internal/logger"
)

// Ensure AdminService implements the interface.
var _ driving.AdminService = (*AdminService)(nil)

// AdminService implements the administrative cross-partition document
// search. It is deliberately the only service holding a reference to the
// store's cross-partition query, so tenant-scoped code paths cannot
// reach it by accident.
type AdminService struct {
	docStore driven.DocumentStore
}

// NewAdminService creates a new admin service.
func NewAdminService(docStore driven.DocumentStore) *AdminService {
	return &AdminService{docStore: docStore}
}

// Search pages through document records across all partitions,
// newest-first. The page size is validated before any store call.
func (s *AdminService) Search(ctx context.Context, req driving.AdminSearchRequest) (*driving.AdminSearchResult, error) {
	pageSize := req.PageSize
	if pageSize == 0 {
		pageSize = driving.DefaultAdminPageSize
	}
	if pageSize < driven.MinPageSize || pageSize > driven.MaxPageSize {
		return nil, &domain.InvalidPageSizeError{
			Size: pageSize,
			Min:  driven.MinPageSize,
			Max:  driven.MaxPageSize,
		}
	}

	logger.Section("Admin search")
	logger.Debug("Term: %q, page size: %d, resuming: %t", req.SearchTerm, pageSize, req.ContinuationToken != "")

	page, err := s.docStore.QueryDocumentsPaged(ctx,
		driven.DocumentFilter{Search: req.SearchTerm},
		pageSize, req.ContinuationToken)
	if err != nil {
		return nil, fmt.Errorf("cross-partition query: %w", err)
	}

	return &driving.AdminSearchResult{
		Documents:         page.Documents,
		ContinuationToken: page.ContinuationToken,
		HasMore:           page.HasMore,
	}, nil
}
