package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/brume-cli/brume/internal/core/domain"
)

// listDocumentsInput takes no arguments; kept as a struct (rather than
// a bare nil input type) so the generated tool schema has a stable,
// empty object shape.
type listDocumentsInput struct{}

type listDocumentsOutput struct {
	Documents []documentSummary `json:"documents" jsonschema:"the synced documents, newest first"`
}

type documentSummary struct {
	DocID string `json:"doc_id"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Path  string `json:"path"`
}

type searchDocumentsInput struct {
	Query    string `json:"query" jsonschema:"the search query"`
	Semantic bool   `json:"semantic,omitempty" jsonschema:"true for vector/semantic search, false (default) for keyword search"`
	TopN     int    `json:"top_n,omitempty" jsonschema:"maximum number of results, default 10"`
}

type searchDocumentsOutput struct {
	Results []searchHit `json:"results"`
}

type searchHit struct {
	DocID string  `json:"doc_id"`
	Title string  `json:"title"`
	Date  string  `json:"date"`
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

type getDocumentInput struct {
	DocID string `json:"doc_id" jsonschema:"the document id to fetch"`
}

type getDocumentOutput struct {
	Body string `json:"body"`
}

type syncDocumentsInput struct {
	Reindex bool `json:"reindex,omitempty" jsonschema:"reindex the existing rendered tree instead of contacting the remote"`
}

type syncDocumentsOutput struct {
	Listed  int `json:"listed"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List every synced meeting transcript document, newest first.",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Search synced documents by keyword, or by meaning when semantic is true.",
	}, s.handleSearchDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Fetch the full rendered body of one document by its doc_id.",
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sync_documents",
		Description: "Sync new and changed documents from the remote, or reindex the existing tree.",
	}, s.handleSyncDocuments)
}

func (s *Server) handleListDocuments(ctx context.Context, _ *mcp.CallToolRequest, _ listDocumentsInput) (*mcp.CallToolResult, listDocumentsOutput, error) {
	results, err := s.search.ListDocuments(ctx)
	if err != nil {
		return nil, listDocumentsOutput{}, err
	}
	out := listDocumentsOutput{Documents: make([]documentSummary, 0, len(results))}
	for _, r := range results {
		out.Documents = append(out.Documents, documentSummary{DocID: r.DocID, Title: r.Title, Date: r.Date, Path: r.Path})
	}
	return nil, out, nil
}

func (s *Server) handleSearchDocuments(ctx context.Context, _ *mcp.CallToolRequest, in searchDocumentsInput) (*mcp.CallToolResult, searchDocumentsOutput, error) {
	topN := in.TopN
	if topN <= 0 {
		topN = 10
	}

	var (
		results []domain.SearchResult
		err     error
	)
	if in.Semantic {
		results, err = s.search.SearchSemantic(ctx, in.Query, topN)
	} else {
		results, err = s.search.SearchText(ctx, in.Query, topN)
	}
	if err != nil {
		return nil, searchDocumentsOutput{}, fmt.Errorf("search_documents: %w", err)
	}

	out := searchDocumentsOutput{Results: make([]searchHit, 0, len(results))}
	for _, r := range results {
		out.Results = append(out.Results, searchHit{DocID: r.DocID, Title: r.Title, Date: r.Date, Path: r.Path, Score: r.Score})
	}
	return nil, out, nil
}

func (s *Server) handleGetDocument(ctx context.Context, _ *mcp.CallToolRequest, in getDocumentInput) (*mcp.CallToolResult, getDocumentOutput, error) {
	body, err := s.search.GetDocument(ctx, in.DocID)
	if err != nil {
		return nil, getDocumentOutput{}, err
	}
	return nil, getDocumentOutput{Body: body}, nil
}

func (s *Server) handleSyncDocuments(ctx context.Context, _ *mcp.CallToolRequest, in syncDocumentsInput) (*mcp.CallToolResult, syncDocumentsOutput, error) {
	if in.Reindex {
		result, err := s.sync.Reindex(ctx)
		if err != nil {
			return nil, syncDocumentsOutput{}, err
		}
		return nil, syncDocumentsOutput{Listed: result.Listed, Created: result.Created, Updated: result.Updated, Skipped: result.Skipped}, nil
	}

	result, err := s.sync.Sync(ctx)
	if err != nil {
		return nil, syncDocumentsOutput{}, err
	}
	return nil, syncDocumentsOutput{Listed: result.Listed, Created: result.Created, Updated: result.Updated, Skipped: result.Skipped}, nil
}
