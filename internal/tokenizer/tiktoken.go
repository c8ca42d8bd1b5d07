// Package tokenizer adapts a BPE tokenizer to the driven.Tokenizer port.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/custodia-labs/docqa/internal/core/ports/driven"
)

// Ensure Tiktoken implements the interface.
var _ driven.Tokenizer = (*Tiktoken)(nil)

// DefaultEncoding is the cl100k_base vocabulary, which keeps chunk sizes
// aligned with downstream embedding model limits.
const DefaultEncoding = "cl100k_base"

// Tiktoken wraps a tiktoken encoding. Safe for concurrent use.
type Tiktoken struct {
	encoding *tiktoken.Tiktoken
}

// New loads the named encoding. An empty name selects DefaultEncoding.
// Failure to load the vocabulary is a fatal configuration error.
func New(encodingName string) (*Tiktoken, error) {
	if encodingName == "" {
		encodingName = DefaultEncoding
	}

	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: load encoding %q: %w", encodingName, err)
	}

	return &Tiktoken{encoding: encoding}, nil
}

// Encode converts text into an ordered token sequence.
func (t *Tiktoken) Encode(text string) []int {
	return t.encoding.Encode(text, nil, nil)
}

// Decode converts a token sequence back into text.
func (t *Tiktoken) Decode(tokens []int) string {
	return t.encoding.Decode(tokens)
}

// Count returns the number of tokens Encode would produce.
func (t *Tiktoken) Count(text string) int {
	return len(t.encoding.Encode(text, nil, nil))
}
