// Package docx extracts text from DOCX documents.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// Extractor handles DOCX documents. A DOCX file is a ZIP archive whose
// text lives in word/document.xml.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the document's paragraph text followed by its table
// content, with table rows rendered as " | "-separated cell text.
func (e *Extractor) Extract(_ context.Context, content []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: open DOCX archive: %v", domain.ErrInvalidInput, err)
	}

	raw, err := readDocumentXML(reader)
	if err != nil {
		return "", err
	}
	if raw == nil {
		return "", nil
	}

	var doc documentXML
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("%w: parse DOCX document.xml: %v", domain.ErrInvalidInput, err)
	}

	var parts []string
	for _, para := range doc.Body.Paragraphs {
		if text := para.text(); text != "" {
			parts = append(parts, text)
		}
	}
	for _, table := range doc.Body.Tables {
		for _, row := range table.Rows {
			if text := row.text(); text != "" {
				parts = append(parts, text)
			}
		}
	}

	return strings.Join(parts, "\n\n"), nil
}

// readDocumentXML returns the raw bytes of word/document.xml, or nil when
// the archive does not contain one.
func readDocumentXML(reader *zip.Reader) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: read DOCX document.xml: %v", domain.ErrInvalidInput, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read DOCX document.xml: %v", domain.ErrInvalidInput, err)
		}
		return content, nil
	}
	return nil, nil
}

// documentXML mirrors the parts of word/document.xml we extract.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
		Tables     []table     `xml:"tbl"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

type table struct {
	Rows []tableRow `xml:"tr"`
}

type tableRow struct {
	Cells []tableCell `xml:"tc"`
}

type tableCell struct {
	Paragraphs []paragraph `xml:"p"`
}

func (p paragraph) text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Text {
			b.WriteString(t.Content)
		}
	}
	return strings.TrimSpace(b.String())
}

func (r tableRow) text() string {
	var cells []string
	for _, cell := range r.Cells {
		var b strings.Builder
		for i, para := range cell.Paragraphs {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(para.text())
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			cells = append(cells, text)
		}
	}
	return strings.Join(cells, " | ")
}
