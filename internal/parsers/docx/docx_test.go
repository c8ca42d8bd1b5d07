package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// createTestDOCX creates a minimal valid DOCX file in memory.
func createTestDOCX(documentXML string) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	// Add [Content_Types].xml (required for valid DOCX)
	contentTypes, _ := w.Create("[Content_Types].xml")
	contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))

	if documentXML != "" {
		doc, _ := w.Create("word/document.xml")
		doc.Write([]byte(documentXML))
	}

	w.Close()
	return buf.Bytes()
}

func TestExtract_Paragraphs(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
<w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
</w:body>
</w:document>`

	text, err := New().Extract(context.Background(), createTestDOCX(docXML))
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", text)
}

func TestExtract_SkipsEmptyParagraphs(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Content</w:t></w:r></w:p>
<w:p></w:p>
<w:p><w:r><w:t>  </w:t></w:r></w:p>
</w:body>
</w:document>`

	text, err := New().Extract(context.Background(), createTestDOCX(docXML))
	require.NoError(t, err)
	assert.Equal(t, "Content", text)
}

func TestExtract_Tables(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Intro.</w:t></w:r></w:p>
<w:tbl>
<w:tr>
<w:tc><w:p><w:r><w:t>Name</w:t></w:r></w:p></w:tc>
<w:tc><w:p><w:r><w:t>Value</w:t></w:r></w:p></w:tc>
</w:tr>
<w:tr>
<w:tc><w:p><w:r><w:t>Answer</w:t></w:r></w:p></w:tc>
<w:tc><w:p><w:r><w:t>42</w:t></w:r></w:p></w:tc>
</w:tr>
</w:tbl>
</w:body>
</w:document>`

	text, err := New().Extract(context.Background(), createTestDOCX(docXML))
	require.NoError(t, err)
	assert.Equal(t, "Intro.\n\nName | Value\n\nAnswer | 42", text)
}

func TestExtract_NoDocumentXML(t *testing.T) {
	text, err := New().Extract(context.Background(), createTestDOCX(""))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtract_NotAZip(t *testing.T) {
	_, err := New().Extract(context.Background(), []byte("definitely not a zip archive"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtract_MalformedXML(t *testing.T) {
	_, err := New().Extract(context.Background(), createTestDOCX("<w:document><unclosed"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
