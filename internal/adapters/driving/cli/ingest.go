package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quillstack/docqa/internal/core/domain"
)

// ingestMediaType optionally overrides content sniffing for the ingest
// command.
var ingestMediaType string

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Ingest documents for question answering",
	Long: `Extracts text from the given files, splits it into chunks, embeds each
chunk and stores the result in the caller's partition.

Supported formats: PDF, Markdown, HTML and plain text. When no embedding
provider is configured the documents are still stored and remain
queryable, just without semantic ranking.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestMediaType, "type", "t", "", "media type override (e.g. text/markdown)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestionService == nil {
		return errors.New("ingestion service not configured")
	}

	ctx := context.Background()

	var failed int
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			cmd.Printf("Skipping %s: %v\n", path, err)
			failed++
			continue
		}

		file := domain.UploadedFile{
			Name:              filepath.Base(path),
			Bytes:             data,
			DeclaredMediaType: ingestMediaType,
		}

		doc, err := ingestionService.Ingest(ctx, file, flagUser)
		if err != nil {
			cmd.Printf("Failed to ingest %s: %v\n", path, err)
			failed++
			continue
		}

		cmd.Printf("Ingested %s\n", doc.Filename)
		cmd.Printf("  ID:     %s\n", doc.ID)
		cmd.Printf("  Chunks: %d\n", len(doc.ChunkIDs))
		if doc.TotalPages != nil {
			cmd.Printf("  Pages:  %d\n", *doc.TotalPages)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to ingest", failed, len(args))
	}
	return nil
}
