// Package config loads service configuration. Values come from built-in
// defaults, then an optional TOML file, then environment variables, in
// increasing order of precedence. Credentials are environment-only.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Default configuration values, matching the service's deployment
// defaults.
const (
	DefaultListenAddr    = ":8000"
	DefaultQdrantURL     = "http://localhost:6333"
	DefaultCollection    = "documents"
	DefaultChunkSize     = 1000
	DefaultChunkOverlap  = 100
	DefaultSearchTopK    = 50
	DefaultRerankTopK    = 12
	DefaultDimension     = 1024
	DefaultMaxFileSizeMB = 50

	DefaultEmbeddingModel = "voyage-3"
	DefaultRerankModel    = "rerank-2"
	DefaultGeminiModel    = "gemini-2.5-pro-preview-05-06"
)

// Config is the root service configuration.
type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string `toml:"listen_addr"`

	Qdrant Qdrant `toml:"qdrant"`
	Voyage Voyage `toml:"voyage"`
	Gemini Gemini `toml:"gemini"`
	RAG    RAG    `toml:"rag"`
	Upload Upload `toml:"upload"`
}

// Qdrant holds vector store connection settings.
type Qdrant struct {
	URL        string `toml:"url"`
	APIKey     string `toml:"-"`
	Collection string `toml:"collection"`
}

// Voyage holds embedding and rerank settings.
type Voyage struct {
	APIKey         string `toml:"-"`
	EmbeddingModel string `toml:"embedding_model"`
	RerankModel    string `toml:"rerank_model"`
}

// Gemini holds answer generation settings.
type Gemini struct {
	APIKey string `toml:"-"`
	Model  string `toml:"model"`
}

// RAG holds retrieval tuning.
type RAG struct {
	ChunkSize          int `toml:"chunk_size"`
	ChunkOverlap       int `toml:"chunk_overlap"`
	SearchTopK         int `toml:"search_top_k"`
	RerankTopK         int `toml:"rerank_top_k"`
	EmbeddingDimension int `toml:"embedding_dimension"`
}

// Upload holds ingestion validation settings.
type Upload struct {
	MaxFileSizeMB     int      `toml:"max_file_size_mb"`
	AllowedExtensions []string `toml:"allowed_extensions"`
}

// Load builds the configuration. A .env file in the working directory is
// loaded first when present; path names an optional TOML file (empty
// means ./config.toml, silently skipped when absent).
func Load(path string) (*Config, error) {
	// Best-effort: absent .env files are fine.
	_ = godotenv.Load()

	cfg := defaults()

	explicit := path != ""
	if path == "" {
		path = "config.toml"
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file is the common case.
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	applyEnv(cfg)

	if cfg.RAG.ChunkOverlap >= cfg.RAG.ChunkSize {
		return nil, fmt.Errorf("config: chunk_overlap (%d) must be smaller than chunk_size (%d)",
			cfg.RAG.ChunkOverlap, cfg.RAG.ChunkSize)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		ListenAddr: DefaultListenAddr,
		Qdrant: Qdrant{
			URL:        DefaultQdrantURL,
			Collection: DefaultCollection,
		},
		Voyage: Voyage{
			EmbeddingModel: DefaultEmbeddingModel,
			RerankModel:    DefaultRerankModel,
		},
		Gemini: Gemini{
			Model: DefaultGeminiModel,
		},
		RAG: RAG{
			ChunkSize:          DefaultChunkSize,
			ChunkOverlap:       DefaultChunkOverlap,
			SearchTopK:         DefaultSearchTopK,
			RerankTopK:         DefaultRerankTopK,
			EmbeddingDimension: DefaultDimension,
		},
		Upload: Upload{
			MaxFileSizeMB:     DefaultMaxFileSizeMB,
			AllowedExtensions: []string{".pdf", ".docx"},
		},
	}
}

// applyEnv overrides configuration from environment variables.
func applyEnv(cfg *Config) {
	setString(&cfg.ListenAddr, "LISTEN_ADDR")
	setString(&cfg.Qdrant.URL, "QDRANT_URL")
	setString(&cfg.Qdrant.APIKey, "QDRANT_API_KEY")
	setString(&cfg.Qdrant.Collection, "COLLECTION_NAME")
	setString(&cfg.Voyage.APIKey, "VOYAGE_API_KEY")
	setString(&cfg.Voyage.EmbeddingModel, "VOYAGE_EMBEDDING_MODEL")
	setString(&cfg.Voyage.RerankModel, "VOYAGE_RERANK_MODEL")
	setString(&cfg.Gemini.APIKey, "GOOGLE_API_KEY")
	setString(&cfg.Gemini.Model, "GEMINI_MODEL")
	setInt(&cfg.RAG.ChunkSize, "CHUNK_SIZE")
	setInt(&cfg.RAG.ChunkOverlap, "CHUNK_OVERLAP")
	setInt(&cfg.RAG.SearchTopK, "SEARCH_TOP_K")
	setInt(&cfg.RAG.RerankTopK, "RERANK_TOP_K")
	setInt(&cfg.RAG.EmbeddingDimension, "EMBEDDING_DIMENSION")
	setInt(&cfg.Upload.MaxFileSizeMB, "MAX_FILE_SIZE_MB")

	if v := os.Getenv("ALLOWED_EXTENSIONS"); v != "" {
		var exts []string
		for _, ext := range strings.Split(v, ",") {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			exts = append(exts, strings.ToLower(ext))
		}
		if len(exts) > 0 {
			cfg.Upload.AllowedExtensions = exts
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
