package driven

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// AnswerGenerator synthesises a cited answer from ranked source passages.
//
// Implementations may include:
//   - Google Gemini
//   - Anthropic / OpenAI chat models behind a compatible adapter
type AnswerGenerator interface {
	// Generate produces a free-text answer to the question grounded in the
	// ordered sources. Source order defines the [Source N] citation numbers.
	// An empty source list yields a fixed fallback answer without any
	// provider call.
	Generate(ctx context.Context, question string, sources []domain.RankedSource) (string, error)

	// Configured reports whether a credential is present.
	Configured() bool
}
