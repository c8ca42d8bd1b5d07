package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err, "an explicit missing path should fail")

	cfg, err = Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, DefaultQdrantURL, cfg.Qdrant.URL)
	assert.Equal(t, DefaultCollection, cfg.Qdrant.Collection)
	assert.Equal(t, DefaultChunkSize, cfg.RAG.ChunkSize)
	assert.Equal(t, DefaultChunkOverlap, cfg.RAG.ChunkOverlap)
	assert.Equal(t, DefaultDimension, cfg.RAG.EmbeddingDimension)
	assert.Equal(t, []string{".pdf", ".docx"}, cfg.Upload.AllowedExtensions)
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr = ":9090"

[qdrant]
url = "http://qdrant.internal:6333"
collection = "kb"

[rag]
chunk_size = 512
chunk_overlap = 64
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "http://qdrant.internal:6333", cfg.Qdrant.URL)
	assert.Equal(t, "kb", cfg.Qdrant.Collection)
	assert.Equal(t, 512, cfg.RAG.ChunkSize)
	assert.Equal(t, 64, cfg.RAG.ChunkOverlap)

	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultRerankTopK, cfg.RAG.RerankTopK)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[qdrant]
url = "http://from-file:6333"
`), 0o600))

	t.Setenv("QDRANT_URL", "http://from-env:6333")
	t.Setenv("VOYAGE_API_KEY", "vk-test")
	t.Setenv("CHUNK_SIZE", "256")
	t.Setenv("CHUNK_OVERLAP", "32")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:6333", cfg.Qdrant.URL)
	assert.Equal(t, "vk-test", cfg.Voyage.APIKey)
	assert.Equal(t, 256, cfg.RAG.ChunkSize)
}

func TestLoad_AllowedExtensionsFromEnv(t *testing.T) {
	t.Setenv("ALLOWED_EXTENSIONS", "pdf, .DOCX")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{".pdf", ".docx"}, cfg.Upload.AllowedExtensions)
}

func TestLoad_RejectsOverlapNotBelowChunkSize(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "100")
	t.Setenv("CHUNK_OVERLAP", "100")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk_overlap")
}
