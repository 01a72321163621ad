package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillstack/docqa/internal/core/domain"
	"github.com/quillstack/docqa/internal/core/ports/driven"
	"github.com/quillstack/docqa/internal/core/ports/driving"
)

func TestAdminSearch_ZeroPageSizeUsesDefault(t *testing.T) {
	store := newMockDocStore()
	var gotPageSize int
	store.queryFn = func(_ driven.DocumentFilter, pageSize int, _ string) (*driven.DocumentPage, error) {
		gotPageSize = pageSize
		return &driven.DocumentPage{}, nil
	}

	svc := NewAdminService(store)

	_, err := svc.Search(context.Background(), driving.AdminSearchRequest{})

	require.NoError(t, err)
	assert.Equal(t, driving.DefaultAdminPageSize, gotPageSize)
}

func TestAdminSearch_PageSizeTooLarge(t *testing.T) {
	store := newMockDocStore()
	var called bool
	store.queryFn = func(driven.DocumentFilter, int, string) (*driven.DocumentPage, error) {
		called = true
		return &driven.DocumentPage{}, nil
	}

	svc := NewAdminService(store)

	result, err := svc.Search(context.Background(), driving.AdminSearchRequest{PageSize: 150})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidPageSize)
	assert.False(t, called, "the store must not be queried for an invalid page size")

	var typed *domain.InvalidPageSizeError
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, 150, typed.Size)
	assert.Equal(t, driven.MinPageSize, typed.Min)
	assert.Equal(t, driven.MaxPageSize, typed.Max)
}

func TestAdminSearch_NegativePageSize(t *testing.T) {
	svc := NewAdminService(newMockDocStore())

	_, err := svc.Search(context.Background(), driving.AdminSearchRequest{PageSize: -1})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPageSize)
}

func TestAdminSearch_BoundaryPageSizes(t *testing.T) {
	store := newMockDocStore()
	store.queryFn = func(driven.DocumentFilter, int, string) (*driven.DocumentPage, error) {
		return &driven.DocumentPage{}, nil
	}
	svc := NewAdminService(store)

	for _, size := range []int{driven.MinPageSize, driven.MaxPageSize} {
		_, err := svc.Search(context.Background(), driving.AdminSearchRequest{PageSize: size})
		assert.NoError(t, err, "page size %d must be accepted", size)
	}
}

func TestAdminSearch_PassesFilterAndToken(t *testing.T) {
	store := newMockDocStore()
	var gotFilter driven.DocumentFilter
	var gotToken string
	store.queryFn = func(filter driven.DocumentFilter, _ int, token string) (*driven.DocumentPage, error) {
		gotFilter = filter
		gotToken = token
		return &driven.DocumentPage{}, nil
	}

	svc := NewAdminService(store)

	_, err := svc.Search(context.Background(), driving.AdminSearchRequest{
		SearchTerm:        "report",
		PageSize:          10,
		ContinuationToken: "opaque-token",
	})

	require.NoError(t, err)
	assert.Equal(t, "report", gotFilter.Search)
	assert.Equal(t, "opaque-token", gotToken)
}

func TestAdminSearch_ReturnsPageWithContinuation(t *testing.T) {
	store := newMockDocStore()
	store.queryFn = func(driven.DocumentFilter, int, string) (*driven.DocumentPage, error) {
		return &driven.DocumentPage{
			Documents: []domain.Document{
				{ID: "doc-1", PartitionKey: "alice"},
				{ID: "doc-2", PartitionKey: "bob"},
			},
			ContinuationToken: "next-page",
			HasMore:           true,
		}, nil
	}

	svc := NewAdminService(store)

	result, err := svc.Search(context.Background(), driving.AdminSearchRequest{PageSize: 2})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Documents, 2)
	assert.True(t, result.HasMore)
	assert.Equal(t, "next-page", result.ContinuationToken)

	// Cross-partition: documents from different partitions in one page.
	assert.NotEqual(t, result.Documents[0].PartitionKey, result.Documents[1].PartitionKey)
}

func TestAdminSearch_StoreErrorWrapped(t *testing.T) {
	store := newMockDocStore()
	store.queryFn = func(driven.DocumentFilter, int, string) (*driven.DocumentPage, error) {
		return nil, errors.New("disk on fire")
	}

	svc := NewAdminService(store)

	result, err := svc.Search(context.Background(), driving.AdminSearchRequest{PageSize: 10})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "cross-partition query")
}

func TestAdminSearch_InvalidCursorSurfaces(t *testing.T) {
	store := newMockDocStore()
	store.queryFn = func(driven.DocumentFilter, int, string) (*driven.DocumentPage, error) {
		return nil, domain.ErrInvalidCursor
	}

	svc := NewAdminService(store)

	_, err := svc.Search(context.Background(), driving.AdminSearchRequest{
		PageSize:          10,
		ContinuationToken: "garbage",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCursor)
}
