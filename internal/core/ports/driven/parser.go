package driven

import "context"

// Parser extracts plain text from an uploaded document.
//
// Implementations dispatch on the filename extension. Unknown extensions
// return domain.ErrUnsupportedType; content that cannot be decoded returns
// an error wrapping domain.ErrInvalidInput.
type Parser interface {
	// Parse extracts text from the raw file content. The filename is used
	// only to determine the format.
	Parse(ctx context.Context, content []byte, filename string) (string, error)
}
