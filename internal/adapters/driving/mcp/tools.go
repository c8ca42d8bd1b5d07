package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask_documents tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the stored documents"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"maximum number of sources to ground the answer on (default 12)"`
}

// AskOutput is the output schema for the ask_documents tool.
type AskOutput struct {
	Answer  string         `json:"answer"`
	Sources []SourceOutput `json:"sources"`
}

// SourceOutput represents a single cited source.
type SourceOutput struct {
	DocumentID     string  `json:"document_id"`
	Filename       string  `json:"filename"`
	ChunkIndex     int     `json:"chunk_index"`
	Content        string  `json:"content"`
	RelevanceScore float64 `json:"relevance_score"`
}

// ListInput is the input schema for the list_documents tool.
type ListInput struct{}

// ListOutput is the output schema for the list_documents tool.
type ListOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput represents a single stored document.
type DocumentOutput struct {
	DocumentID  string `json:"document_id"`
	Filename    string `json:"filename"`
	FileType    string `json:"file_type"`
	TotalChunks int    `json:"total_chunks"`
	UploadDate  string `json:"upload_date"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_documents",
		Description: "Answer a question using the uploaded documents, with citations",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the documents currently stored and searchable",
	}, s.handleList)
}

// handleAsk handles the ask_documents tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	result, err := s.ports.Query.Ask(ctx, input.Question, input.TopK)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  result.Answer,
		Sources: make([]SourceOutput, len(result.Sources)),
	}

	for i := range result.Sources {
		output.Sources[i] = SourceOutput{
			DocumentID:     result.Sources[i].DocumentID,
			Filename:       result.Sources[i].Filename,
			ChunkIndex:     result.Sources[i].ChunkIndex,
			Content:        result.Sources[i].Content,
			RelevanceScore: result.Sources[i].RelevanceScore,
		}
	}

	return nil, output, nil
}

// handleList handles the list_documents tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	docs, err := s.ports.Ingestion.List(ctx)
	if err != nil {
		return nil, ListOutput{}, err
	}

	output := ListOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}

	for i := range docs {
		output.Documents[i] = DocumentOutput{
			DocumentID:  docs[i].DocumentID,
			Filename:    docs[i].Filename,
			FileType:    docs[i].FileType,
			TotalChunks: docs[i].TotalChunks,
			UploadDate:  docs[i].UploadDate.UTC().Format(time.RFC3339),
		}
	}

	return nil, output, nil
}
