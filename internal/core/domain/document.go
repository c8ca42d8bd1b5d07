package domain

import "time"

// TextChunk is a contiguous slice of a document's normalised text, sized
// for embedding. Chunks are produced in one pass by the chunking engine and
// are immutable afterwards; the vector store holds the durable copy.
type TextChunk struct {
	// Content is the chunk text, trimmed of leading/trailing whitespace.
	Content string

	// Index is the zero-based position among the chunks of one document.
	// Indices are contiguous starting at 0 and define citation numbering.
	Index int

	// TokenCount is the tokenizer's count for Content. It is recomputed
	// after boundary adjustment, so it may differ from the window size.
	TokenCount int
}

// DocumentInfo describes a stored document as reconstructed from its
// chunk records in the vector store.
type DocumentInfo struct {
	// DocumentID is the generated opaque identifier.
	DocumentID string

	// Filename is the name the document was uploaded under.
	Filename string

	// FileType is the file extension (".pdf", ".docx").
	FileType string

	// TotalChunks is the number of chunks stored for the document.
	TotalChunks int

	// UploadDate is when the document was ingested.
	UploadDate time.Time
}

// UploadReceipt is returned after a successful document ingestion.
type UploadReceipt struct {
	DocumentID  string
	Filename    string
	TotalChunks int
}
