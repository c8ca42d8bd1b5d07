// Package cli implements the docqa command-line interface and wires the
// adapters into the core services.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa/internal/adapters/driven/embedding/voyage"
	"github.com/custodia-labs/docqa/internal/adapters/driven/llm/gemini"
	rerankvoyage "github.com/custodia-labs/docqa/internal/adapters/driven/rerank/voyage"
	"github.com/custodia-labs/docqa/internal/adapters/driven/vectorstore/qdrant"
	"github.com/custodia-labs/docqa/internal/chunker"
	"github.com/custodia-labs/docqa/internal/config"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/core/ports/driving"
	"github.com/custodia-labs/docqa/internal/core/services"
	"github.com/custodia-labs/docqa/internal/logger"
	"github.com/custodia-labs/docqa/internal/parsers"
	"github.com/custodia-labs/docqa/internal/tokenizer"
)

var version = "1.0.0"

var (
	verbose    bool
	configPath string

	cfg *config.Config

	vectorStore      driven.VectorStore
	ingestionService driving.IngestionService
	queryService     driving.QueryService
	healthService    driving.HealthService
)

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Question answering over your documents",
	Long: `docqa ingests PDF and DOCX documents, indexes them in a vector
store, and answers natural-language questions grounded in their content.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		// The version command needs no services or credentials.
		if cmd.Name() == "version" {
			return nil
		}

		return buildServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
}

// buildServices loads configuration and assembles the adapters into the
// core services used by every serving command.
func buildServices() error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	tok, err := tokenizer.New("cl100k_base")
	if err != nil {
		return fmt.Errorf("initialising tokenizer: %w", err)
	}

	chk := chunker.New(tok,
		chunker.WithChunkSize(cfg.RAG.ChunkSize),
		chunker.WithOverlap(cfg.RAG.ChunkOverlap),
	)

	embedder := voyage.NewEmbeddingService(voyage.Config{
		APIKey:     cfg.Voyage.APIKey,
		Model:      cfg.Voyage.EmbeddingModel,
		Dimensions: cfg.RAG.EmbeddingDimension,
	})

	reranker := rerankvoyage.NewReranker(rerankvoyage.Config{
		APIKey: cfg.Voyage.APIKey,
		Model:  cfg.Voyage.RerankModel,
	})

	generator := gemini.NewAnswerGenerator(gemini.Config{
		APIKey: cfg.Gemini.APIKey,
		Model:  cfg.Gemini.Model,
	})

	store := qdrant.NewStore(qdrant.Config{
		URL:        cfg.Qdrant.URL,
		APIKey:     cfg.Qdrant.APIKey,
		Collection: cfg.Qdrant.Collection,
		Dimension:  cfg.RAG.EmbeddingDimension,
	})

	vectorStore = store
	ingestionService = services.NewIngestionService(
		parsers.New(), chk, embedder, store,
		cfg.Upload.MaxFileSizeMB, cfg.Upload.AllowedExtensions,
	)
	queryService = services.NewQueryService(
		embedder, store, reranker, generator,
		cfg.RAG.SearchTopK, cfg.RAG.RerankTopK,
	)
	healthService = services.NewHealthService(store, embedder, generator, version)

	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
