package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
)

// fakeParser returns canned text and records whether it was invoked.
type fakeParser struct {
	text  string
	err   error
	calls int
}

func (p *fakeParser) Parse(_ context.Context, _ []byte, _ string) (string, error) {
	p.calls++
	return p.text, p.err
}

// fakeChunker splits on words, one chunk per fixed word count.
type fakeChunker struct {
	wordsPerChunk int
	err           error
}

func (c *fakeChunker) Chunk(text string) ([]domain.TextChunk, error) {
	if c.err != nil {
		return nil, c.err
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}
	size := c.wordsPerChunk
	if size <= 0 {
		size = 5
	}

	var chunks []domain.TextChunk
	for i := 0; i < len(words); i += size {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		content := strings.Join(words[i:end], " ")
		chunks = append(chunks, domain.TextChunk{
			Content:    content,
			Index:      len(chunks),
			TokenCount: end - i,
		})
	}
	return chunks, nil
}

// fakeEmbedder produces deterministic vectors keyed on text length.
type fakeEmbedder struct {
	configured bool
	err        error
}

func (e *fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = []float32{float32(len(text)), 1, 0}
	}
	return vectors, nil
}

func (e *fakeEmbedder) EmbedQuery(_ context.Context, query string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []float32{float32(len(query)), 1, 0}, nil
}

func (e *fakeEmbedder) Dimensions() int { return 3 }

func (e *fakeEmbedder) Configured() bool { return e.configured }

// fakeReranker returns the first topK documents in reverse order with
// descending synthetic scores, and records whether it was invoked.
type fakeReranker struct {
	configured bool
	err        error
	calls      int
	results    []driven.RerankResult // overrides the default behaviour
}

func (r *fakeReranker) Rerank(_ context.Context, _ string, documents []string, topK int) ([]driven.RerankResult, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	if r.results != nil {
		return r.results, nil
	}
	if topK > len(documents) {
		topK = len(documents)
	}
	results := make([]driven.RerankResult, 0, topK)
	for i := topK - 1; i >= 0; i-- {
		results = append(results, driven.RerankResult{
			Index:          i,
			RelevanceScore: float64(len(results)+1) / float64(topK+1),
			Document:       documents[i],
		})
	}
	return results, nil
}

func (r *fakeReranker) Configured() bool { return r.configured }

// fakeGenerator answers with the source count and records invocations.
type fakeGenerator struct {
	configured bool
	err        error
	calls      int
}

func (g *fakeGenerator) Generate(_ context.Context, _ string, sources []domain.RankedSource) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return fmt.Sprintf("answer grounded in %d sources [Source 1]", len(sources)), nil
}

func (g *fakeGenerator) Configured() bool { return g.configured }

var errProvider = errors.New("provider exploded")
