// Package gemini provides an answer generator adapter using the
// Google Gemini API.
package gemini

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/logger"
)

// Ensure AnswerGenerator implements the interface.
var _ driven.AnswerGenerator = (*AnswerGenerator)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-pro-preview-05-06"
	DefaultTimeout = 120 * time.Second

	temperature     = 0.3
	maxOutputTokens = 2048
)

// noSourcesAnswer is returned without a provider call when there is
// nothing to ground an answer in.
const noSourcesAnswer = "I couldn't find any relevant information to answer your question."

// Config holds configuration for the Gemini answer generator.
type Config struct {
	// APIKey is the Google API key. Empty means not configured.
	APIKey string

	// BaseURL is the API base URL.
	BaseURL string

	// Model is the Gemini model to use.
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// AnswerGenerator synthesises cited answers using the Gemini API.
type AnswerGenerator struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// generateRequest is the Gemini generateContent request format.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// generateResponse is the Gemini generateContent response format.
type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewAnswerGenerator creates a new Gemini answer generator.
func NewAnswerGenerator(cfg Config) *AnswerGenerator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &AnswerGenerator{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}
}

// Generate produces an answer to the question grounded in the ordered
// sources. Source order defines the [Source N] citation numbers.
func (g *AnswerGenerator) Generate(ctx context.Context, question string, sources []domain.RankedSource) (string, error) {
	if len(sources) == 0 {
		return noSourcesAnswer, nil
	}
	if g.apiKey == "" {
		return "", domain.ErrLLMUnavailable
	}

	prompt := buildPrompt(question, sources)

	jsonBody, err := sonic.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}

	var genResp generateResponse
	if err := sonic.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}

	if genResp.Error != nil {
		return "", fmt.Errorf("gemini error: %s", genResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini error (status %d): %s", resp.StatusCode, string(body))
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}

	answer := genResp.Candidates[0].Content.Parts[0].Text
	logger.Info("Generated answer of %d characters", len(answer))
	return answer, nil
}

// buildPrompt renders the sources as numbered context blocks followed by
// the question and citation instructions.
func buildPrompt(question string, sources []domain.RankedSource) string {
	contextParts := make([]string, 0, len(sources))
	for i, source := range sources {
		contextParts = append(contextParts, fmt.Sprintf(
			"[Source %d: %s, Chunk %d]\n%s\n",
			i+1, source.Filename, source.ChunkIndex+1, source.Content,
		))
	}
	sourceContext := strings.Join(contextParts, "\n---\n")

	return fmt.Sprintf(`You are a helpful assistant that answers questions based on provided source documents.
Use ONLY the information from the sources below to answer the question.
If the sources don't contain enough information to fully answer the question, say so.
Always cite your sources using [Source N] notation when referencing specific information.

SOURCES:
%s

QUESTION: %s

ANSWER:`, sourceContext, question)
}

// Configured reports whether an API key is present.
func (g *AnswerGenerator) Configured() bool {
	return g.apiKey != ""
}
