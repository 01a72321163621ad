// Package cli implements the command-line interface for docqa.
// It is a driving adapter: commands translate terminal invocations into
// calls on the core service ports.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/quillstack/docqa/internal/adapters/driven/config/file"
	openaiembed "github.com/quillstack/docqa/internal/adapters/driven/embedding/openai"
	openaillm "github.com/quillstack/docqa/internal/adapters/driven/llm/openai"
	"github.com/quillstack/docqa/internal/adapters/driven/storage/memory"
	"github.com/quillstack/docqa/internal/adapters/driven/storage/sqlite"
	"github.com/quillstack/docqa/internal/chunker"
	"github.com/quillstack/docqa/internal/core/ports/driven"
	"github.com/quillstack/docqa/internal/core/ports/driving"
	"github.com/quillstack/docqa/internal/core/services"
	"github.com/quillstack/docqa/internal/extractors"
	htmlextractor "github.com/quillstack/docqa/internal/extractors/html"
	markdownextractor "github.com/quillstack/docqa/internal/extractors/markdown"
	pdfextractor "github.com/quillstack/docqa/internal/extractors/pdf"
	plaintextextractor "github.com/quillstack/docqa/internal/extractors/plaintext"
	"github.com/quillstack/docqa/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. Wired in initServices, nil until then
// so tests can substitute mocks.
var (
	ingestionService driving.IngestionService
	retrievalService driving.RetrievalService
	answerService    driving.AnswerService
	documentService  driving.DocumentService
	adminService     driving.AdminService
	configStore      driven.ConfigStore
)

// closers holds the resources initServices opened, closed after Execute.
var closers []func() error

var (
	flagVerbose bool
	flagUser    string
)

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Document question answering from the command line",
	Long: `docqa ingests documents (PDF, Markdown, HTML, plain text), stores them
chunked and embedded, and answers questions grounded in their content.

Documents are scoped per user: pass --user to work in a named partition,
or omit it to use the default one.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "user whose document partition to operate on")
}

// Execute wires the services, runs the root command and releases any
// resources the wiring acquired.
func Execute() error {
	if err := initServices(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	defer closeServices()
	return rootCmd.Execute()
}

// initServices wires the adapters and core services from configuration.
// Missing OpenAI credentials are not an error: the pipeline runs in
// degraded mode with unembedded chunks and order-based retrieval.
func initServices() error {
	if configStore == nil {
		cfg, err := configfile.NewConfigStore(os.Getenv("DOCQA_CONFIG_DIR"))
		if err != nil {
			return fmt.Errorf("failed to open config store: %w", err)
		}
		configStore = cfg
	}

	docStore, err := openDocumentStore()
	if err != nil {
		return err
	}
	closers = append(closers, docStore.Close)

	registry := extractors.NewRegistry(
		pdfextractor.New(),
		markdownextractor.New(),
		htmlextractor.New(),
		plaintextextractor.New(),
	)

	var chunkerOpts []chunker.Option
	if size := configStore.GetInt("chunker.max_chunk_size"); size > 0 {
		chunkerOpts = append(chunkerOpts, chunker.WithMaxChunkSize(size))
	}
	chk := chunker.New(chunkerOpts...)

	embeddingService := openEmbeddingService()
	llmService := openLLMService()

	defaultPartition := configStore.GetString("partition.default")

	ingestionService = services.NewIngestionPipeline(registry, chk, embeddingService, docStore, defaultPartition)
	retrieval := services.NewRetrievalEngine(docStore, embeddingService, defaultPartition)
	retrievalService = retrieval
	answerService = services.NewAnswerOrchestrator(retrieval, llmService)
	documentService = services.NewDocumentService(docStore, defaultPartition)
	adminService = services.NewAdminService(docStore)

	return nil
}

// openDocumentStore selects the storage backend from configuration.
// "sqlite" (the default) persists under store.path; "memory" keeps
// everything in-process and is mainly useful for experimentation.
func openDocumentStore() (driven.DocumentStore, error) {
	backend := configStore.GetString("store.backend")
	if env := os.Getenv("DOCQA_STORE_BACKEND"); env != "" {
		backend = env
	}

	switch backend {
	case "memory":
		return memory.NewDocumentStore(), nil
	case "", "sqlite":
		store, err := sqlite.NewStore(configStore.GetString("store.path"))
		if err != nil {
			return nil, fmt.Errorf("failed to open document store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (expected sqlite or memory)", backend)
	}
}

func openEmbeddingService() driven.EmbeddingService {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = configStore.GetString("openai.api_key")
	}
	if apiKey == "" {
		logger.Debug("No OpenAI API key configured, embeddings disabled")
		return nil
	}

	svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:  apiKey,
		BaseURL: configStore.GetString("openai.base_url"),
		Model:   configStore.GetString("embedding.model"),
	})
	if err != nil {
		logger.Warn("Embedding service unavailable, continuing without: %v", err)
		return nil
	}
	closers = append(closers, svc.Close)
	return svc
}

func openLLMService() driven.LLMService {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = configStore.GetString("openai.api_key")
	}
	if apiKey == "" {
		logger.Debug("No OpenAI API key configured, answering disabled")
		return nil
	}

	svc, err := openaillm.NewLLMService(openaillm.Config{
		APIKey:  apiKey,
		BaseURL: configStore.GetString("openai.base_url"),
		Model:   configStore.GetString("llm.model"),
	})
	if err != nil {
		logger.Warn("LLM service unavailable, continuing without: %v", err)
		return nil
	}
	closers = append(closers, svc.Close)
	return svc
}

func closeServices() {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			logger.Warn("Close failed: %v", err)
		}
	}
	closers = nil
}
