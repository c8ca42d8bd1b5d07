// Package parsers extracts plain text from uploaded documents.
// Format handlers are selected by filename extension.
package parsers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/logger"
	"github.com/custodia-labs/docqa/internal/parsers/docx"
	"github.com/custodia-labs/docqa/internal/parsers/pdf"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// Extractor extracts text from raw content of one format.
type Extractor interface {
	Extract(ctx context.Context, content []byte) (string, error)
}

// Parser dispatches to a format extractor by filename extension.
type Parser struct {
	extractors map[string]Extractor
}

// New creates a parser with the built-in PDF and DOCX extractors.
func New() *Parser {
	return &Parser{
		extractors: map[string]Extractor{
			".pdf":  pdf.New(),
			".docx": docx.New(),
		},
	}
}

// Parse extracts text from the document content. The filename is used only
// to determine the format.
func (p *Parser) Parse(ctx context.Context, content []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	extractor, ok := p.extractors[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedType, ext)
	}

	text, err := extractor.Extract(ctx, content)
	if err != nil {
		return "", err
	}

	logger.Info("Extracted %d characters from %s", len(text), filename)
	return text, nil
}
