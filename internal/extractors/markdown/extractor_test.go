package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillstack/docqa/internal/core/domain"
)

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.IsType(t, &Extractor{}, extractor)
}

func TestSupportedMIMETypes(t *testing.T) {
	mimeTypes := New().SupportedMIMETypes()

	require.NotEmpty(t, mimeTypes)
	assert.Contains(t, mimeTypes, "text/markdown")
	assert.Contains(t, mimeTypes, "text/x-markdown")
}

func TestSupportedExtensions(t *testing.T) {
	exts := New().SupportedExtensions()

	assert.Contains(t, exts, ".md")
	assert.Contains(t, exts, ".markdown")
}

func TestExtract_Success(t *testing.T) {
	file := domain.UploadedFile{
		Name:  "readme.md",
		Bytes: []byte("# Title\n\nSome **bold** and *italic* text."),
	}

	result, err := New().Extract(context.Background(), file)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "Title\n\nSome bold and italic text.", result.Text)
	assert.Nil(t, result.TotalPages)
}

func TestExtract_EmptyContent(t *testing.T) {
	result, err := New().Extract(context.Background(), domain.UploadedFile{Name: "empty.md"})
	require.NoError(t, err)
	assert.Empty(t, result.Text)
}

func TestExtract_DropsCodeBlocks(t *testing.T) {
	input := "Intro paragraph.\n\n```go\nfunc main() {}\n```\n\nOutro paragraph."

	result, err := New().Extract(context.Background(), domain.UploadedFile{Bytes: []byte(input)})
	require.NoError(t, err)

	assert.Contains(t, result.Text, "Intro paragraph.")
	assert.Contains(t, result.Text, "Outro paragraph.")
	assert.NotContains(t, result.Text, "func main")
}

func TestExtract_LinksKeepText(t *testing.T) {
	input := "See [the docs](https://example.com/docs) for details."

	result, err := New().Extract(context.Background(), domain.UploadedFile{Bytes: []byte(input)})
	require.NoError(t, err)

	assert.Equal(t, "See the docs for details.", result.Text)
}

func TestExtract_ImagesDropped(t *testing.T) {
	input := "Before ![alt text](image.png) after."

	result, err := New().Extract(context.Background(), domain.UploadedFile{Bytes: []byte(input)})
	require.NoError(t, err)

	assert.Equal(t, "Before  after.", result.Text)
}

func TestExtract_InlineCodeKeepsText(t *testing.T) {
	input := "Run `go test` to verify."

	result, err := New().Extract(context.Background(), domain.UploadedFile{Bytes: []byte(input)})
	require.NoError(t, err)

	assert.Equal(t, "Run go test to verify.", result.Text)
}

func TestExtract_ListsAndBlockquotes(t *testing.T) {
	input := "- first item\n- second item\n\n> quoted wisdom\n\n1. numbered"

	result, err := New().Extract(context.Background(), domain.UploadedFile{Bytes: []byte(input)})
	require.NoError(t, err)

	assert.Equal(t, "first item\nsecond item\n\nquoted wisdom\n\nnumbered", result.Text)
}

func TestExtract_PreservesParagraphBoundaries(t *testing.T) {
	input := "## Section One\n\nParagraph one.\n\n\n\nParagraph two."

	result, err := New().Extract(context.Background(), domain.UploadedFile{Bytes: []byte(input)})
	require.NoError(t, err)

	assert.Equal(t, "Section One\n\nParagraph one.\n\nParagraph two.", result.Text)
}
