// Package driving declares the inbound ports implemented by
// internal/core/services and consumed by cmd/brume, internal/mcpserver,
// and internal/tui.
package driving

import (
	"context"

	"github.com/brume-cli/brume/internal/core/domain"
)

// SyncService drives the list -> decide -> fetch -> render -> persist ->
// index pipeline, and its remote-call-free reindex variant.
type SyncService interface {
	Sync(ctx context.Context) (domain.SyncSummary, error)
	Reindex(ctx context.Context) (domain.SyncSummary, error)
}

// SearchService answers text and semantic queries over the synced tree.
type SearchService interface {
	SearchText(ctx context.Context, query string, topN int) ([]domain.SearchResult, error)
	SearchSemantic(ctx context.Context, query string, topN int) ([]domain.SearchResult, error)
	GetDocument(ctx context.Context, docID string) (string, error)
	ListDocuments(ctx context.Context) ([]domain.SearchResult, error)
}
