package driven

// Tokenizer converts text to and from a subword token sequence.
// Its token-count semantics are load-bearing for chunk-size arithmetic:
// the chunking engine windows over the Encode output and measures every
// chunk with Count.
type Tokenizer interface {
	// Encode converts text into an ordered token sequence.
	Encode(text string) []int

	// Decode converts a token sequence back into text.
	Decode(tokens []int) string

	// Count returns the number of tokens Encode would produce.
	Count(text string) int
}
