package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSetGet_String(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("llm.model", "gpt-4o-mini"))

	assert.Equal(t, "gpt-4o-mini", store.GetString("llm.model"))
}

func TestGetString_MissingKey(t *testing.T) {
	store := newTestStore(t)
	assert.Empty(t, store.GetString("does.not.exist"))
}

func TestGetString_WrongType(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("chunker.max_chunk_size", 1500))

	assert.Empty(t, store.GetString("chunker.max_chunk_size"))
}

func TestSetGet_Int(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("chunker.max_chunk_size", 1500))

	assert.Equal(t, 1500, store.GetInt("chunker.max_chunk_size"))
}

func TestGetInt_MissingOrWrongType(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("store.backend", "memory"))

	assert.Zero(t, store.GetInt("missing"))
	assert.Zero(t, store.GetInt("store.backend"))
}

func TestSetGet_Bool(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("feature.enabled", true))

	assert.True(t, store.GetBool("feature.enabled"))
	assert.False(t, store.GetBool("missing"))
}

func TestSet_PersistsImmediately(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("openai.api_key", "sk-test"))

	// A fresh store over the same directory sees the value.
	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", reloaded.GetString("openai.api_key"))
}

func TestLoad_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[openai]\napi_key = \"sk-nested\"\nbase_url = \"http://localhost:8080/v1\"\n\n[chunker]\nmax_chunk_size = 1200\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "sk-nested", store.GetString("openai.api_key"))
	assert.Equal(t, "http://localhost:8080/v1", store.GetString("openai.base_url"))
	assert.Equal(t, 1200, store.GetInt("chunker.max_chunk_size"))
}

func TestLoad_MissingFileStartsEmpty(t *testing.T) {
	store := newTestStore(t)

	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestSave_RestrictedPermissions(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("openai.api_key", "sk-secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
