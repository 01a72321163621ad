package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillstack/docqa/internal/core/ports/driving"
)

var (
	adminSearchTerm  string
	adminPageSize    int
	adminSearchToken string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative operations",
	Long:  `Operations that see across user partitions. Intended for operators.`,
}

var adminSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search documents across all partitions",
	Long: `Pages through document records from every partition, newest first.
With --search, only documents whose filename or ID contains the term
(case-insensitive) are returned. Rerun with --token to fetch the next
page.`,
	Args: cobra.NoArgs,
	RunE: runAdminSearch,
}

func init() {
	adminSearchCmd.Flags().StringVarP(&adminSearchTerm, "search", "s", "", "filter by filename or document ID substring")
	adminSearchCmd.Flags().IntVarP(&adminPageSize, "page-size", "n", 0, "results per page, 1-100 (default 50)")
	adminSearchCmd.Flags().StringVar(&adminSearchToken, "token", "", "continuation token from a previous page")

	adminCmd.AddCommand(adminSearchCmd)
	rootCmd.AddCommand(adminCmd)
}

func runAdminSearch(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	result, err := adminService.Search(context.Background(), driving.AdminSearchRequest{
		SearchTerm:        adminSearchTerm,
		PageSize:          adminPageSize,
		ContinuationToken: adminSearchToken,
	})
	if err != nil {
		return fmt.Errorf("admin search failed: %w", err)
	}

	if len(result.Documents) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	for i := range result.Documents {
		doc := &result.Documents[i]
		cmd.Printf("  %s\n", doc.ID)
		cmd.Printf("    Filename:  %s\n", doc.Filename)
		cmd.Printf("    Partition: %s\n", doc.PartitionKey)
		cmd.Printf("    Uploaded:  %s\n", doc.UploadedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Page of %d documents.\n", len(result.Documents))
	if result.HasMore {
		cmd.Printf("More available, continue with:\n  --token %s\n", result.ContinuationToken)
	}

	return nil
}
