package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillstack/docqa/internal/core/domain"
)

func TestDocumentList_ScopedToPartition(t *testing.T) {
	store := newMockDocStore()
	seedDocument(t, store, "doc-alice", "alice", []string{"a"}, nil)
	seedDocument(t, store, "doc-bob", "bob", []string{"b"}, nil)

	svc := NewDocumentService(store, "")

	docs, err := svc.List(context.Background(), "alice")

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "doc-alice", docs[0].ID)
}

func TestDocumentList_EmptyUserUsesDefaultPartition(t *testing.T) {
	store := newMockDocStore()
	seedDocument(t, store, "doc-default", domain.DefaultPartition, []string{"a"}, nil)

	svc := NewDocumentService(store, "")

	docs, err := svc.List(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "doc-default", docs[0].ID)
}

func TestDocumentGet_Success(t *testing.T) {
	store := newMockDocStore()
	seedDocument(t, store, "doc-1", "alice", []string{"a", "b"}, nil)

	svc := NewDocumentService(store, "")

	doc, err := svc.Get(context.Background(), "doc-1", "alice")

	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "doc-1", doc.ID)
	assert.Len(t, doc.ChunkIDs, 2)
}

func TestDocumentGet_NotFound(t *testing.T) {
	svc := NewDocumentService(newMockDocStore(), "")

	doc, err := svc.Get(context.Background(), "missing", "alice")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, doc)
}

func TestDocumentGet_OtherPartitionInvisible(t *testing.T) {
	store := newMockDocStore()
	seedDocument(t, store, "doc-1", "alice", []string{"a"}, nil)

	svc := NewDocumentService(store, "")

	doc, err := svc.Get(context.Background(), "doc-1", "bob")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, doc)
}

func TestDocumentDelete_RemovesDocumentAndChunks(t *testing.T) {
	store := newMockDocStore()
	seedDocument(t, store, "doc-1", "alice", []string{"a", "b", "c"}, nil)

	svc := NewDocumentService(store, "")
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "doc-1", "alice"))

	doc, err := store.GetDocument(ctx, "doc-1", "alice")
	require.NoError(t, err)
	assert.Nil(t, doc)
	for i := 0; i < 3; i++ {
		chunk, err := store.GetChunk(ctx, domain.ChunkID("doc-1", i), "alice")
		require.NoError(t, err)
		assert.Nil(t, chunk)
	}
}

func TestDocumentDelete_NotFound(t *testing.T) {
	svc := NewDocumentService(newMockDocStore(), "")

	err := svc.Delete(context.Background(), "missing", "alice")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentDelete_ToleratesAlreadyDeletedChunks(t *testing.T) {
	// A previous interrupted delete may have removed some chunks already.
	store := newMockDocStore()
	seedDocument(t, store, "doc-1", "alice", []string{"a", "b"}, nil)
	ctx := context.Background()
	require.NoError(t, store.DeleteChunk(ctx, domain.ChunkID("doc-1", 0), "alice"))

	svc := NewDocumentService(store, "")

	require.NoError(t, svc.Delete(ctx, "doc-1", "alice"))

	doc, err := store.GetDocument(ctx, "doc-1", "alice")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestDocumentDelete_SecondDeleteIsNotFound(t *testing.T) {
	store := newMockDocStore()
	seedDocument(t, store, "doc-1", "alice", []string{"a"}, nil)

	svc := NewDocumentService(store, "")
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "doc-1", "alice"))

	err := svc.Delete(ctx, "doc-1", "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
