package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [doc-id] [question]",
	Short: "Ask a question about a document",
	Long: `Retrieves the chunks of the document most relevant to the question and
asks the configured LLM for an answer grounded in them.

Requires an OpenAI API key (OPENAI_API_KEY or 'docqa config set
openai.api_key ...'). Use 'docqa retrieve' to inspect the retrieved
context without calling the LLM.`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	docID, question := args[0], args[1]

	answer, err := answerService.Ask(context.Background(), docID, question, flagUser)
	if err != nil {
		return fmt.Errorf("failed to answer: %w", err)
	}

	cmd.Println(answer)
	return nil
}

var (
	retrieveTopK int
	retrieveAll  bool
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [doc-id] [question]",
	Short: "Show the context retrieved for a question",
	Long: `Prints the chunk contents that would be given to the LLM for the
question, ranked by cosine similarity against the question embedding.
With --all the document ID is omitted and chunks from every document in
the partition compete for the top spots.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if retrieveAll {
			return cobra.ExactArgs(1)(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runRetrieve,
}

func init() {
	retrieveCmd.Flags().IntVarP(&retrieveTopK, "top-k", "k", 0, "number of chunks to retrieve (default 3)")
	retrieveCmd.Flags().BoolVar(&retrieveAll, "all", false, "retrieve across all documents in the partition")
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	ctx := context.Background()

	var (
		contextText string
		err         error
	)
	if retrieveAll {
		contextText, err = retrievalService.RetrieveAcrossDocuments(ctx, args[0], flagUser, retrieveTopK)
	} else {
		contextText, err = retrievalService.Retrieve(ctx, args[0], args[1], flagUser, retrieveTopK)
	}
	if err != nil {
		return fmt.Errorf("failed to retrieve context: %w", err)
	}

	if contextText == "" {
		cmd.Println("No context found.")
		return nil
	}

	cmd.Println(contextText)
	return nil
}
