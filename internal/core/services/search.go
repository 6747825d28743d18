package services

import (
	"context"
	"os"
	"sort"

	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/core/ports/driven"
	"github.com/brume-cli/brume/internal/core/ports/driving"
	"github.com/brume-cli/brume/internal/frontmatter"
	"github.com/brume-cli/brume/internal/paths"
)

// SearchResultService answers text and semantic queries over a synced
// tree, and resolves doc_id -> rendered body for the MCP/TUI "open
// document" flows. Search itself is outside the sync pipeline (spec.md
// §4.8, "Search flow (not inside sync)").
type SearchResultService struct {
	paths     paths.Paths
	textIndex driven.TextIndex // optional
	vectors   driven.VectorStore
	embedder  driven.Embedder // optional; both nil or both set
	metaCache driven.MetaCache
}

var _ driving.SearchService = (*SearchResultService)(nil)

// NewSearch builds a SearchResultService over the same optional stores a
// SyncOrchestrator was built with.
func NewSearch(
	p paths.Paths,
	textIndex driven.TextIndex,
	vectors driven.VectorStore,
	embedder driven.Embedder,
	metaCache driven.MetaCache,
) *SearchResultService {
	return &SearchResultService{paths: p, textIndex: textIndex, vectors: vectors, embedder: embedder, metaCache: metaCache}
}

// SearchText runs a keyword query against the text index.
func (s *SearchResultService) SearchText(_ context.Context, query string, topN int) ([]domain.SearchResult, error) {
	if s.textIndex == nil {
		return nil, domain.NewError(domain.KindIndexing, "text index is not configured", nil)
	}
	hits, err := s.textIndex.Search(query, topN)
	if err != nil {
		return nil, domain.Wrap(domain.KindIndexing, "searching text index", err)
	}
	out := make([]domain.SearchResult, 0, len(hits))
	for _, h := range hits {
		out = append(out, domain.SearchResult{DocID: h.DocID, Title: h.Title, Date: h.Date, Path: h.Path, Score: h.Score})
	}
	return out, nil
}

// SearchSemantic embeds query and runs cosine top-K against the vector store.
func (s *SearchResultService) SearchSemantic(_ context.Context, query string, topN int) ([]domain.SearchResult, error) {
	if s.vectors == nil || s.embedder == nil {
		return nil, domain.NewError(domain.KindEmbedding, "semantic search is not configured", nil)
	}
	vec, err := s.embedder.EmbedQuery(query)
	if err != nil {
		return nil, domain.Wrap(domain.KindEmbedding, "embedding query", err)
	}
	hits, err := s.vectors.Search(vec, topN)
	if err != nil {
		return nil, domain.Wrap(domain.KindEmbedding, "searching vector store", err)
	}
	out := make([]domain.SearchResult, 0, len(hits))
	for _, h := range hits {
		title, date := h.DocID, ""
		if s.metaCache != nil {
			if _, cachedTitle, cachedDate, ok := s.metaCache.Get(h.DocID); ok {
				title, date = cachedTitle, cachedDate
			}
		}
		out = append(out, domain.SearchResult{DocID: h.DocID, Title: title, Date: date, Path: h.Path, Score: float64(h.Score)})
	}
	return out, nil
}

// GetDocument returns the full rendered body for docID by resolving its
// path via the metadata cache (falling back to a directory scan when no
// cache is configured or the cache has no entry for docID) and stripping
// the frontmatter header.
func (s *SearchResultService) GetDocument(_ context.Context, docID string) (string, error) {
	path, err := s.resolvePath(docID)
	if err != nil {
		return "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", domain.Wrap(domain.KindFilesystem, "reading rendered document", err)
	}
	_, body, err := frontmatter.Parse(raw)
	if err != nil {
		return "", err
	}
	return body, nil
}

func (s *SearchResultService) resolvePath(docID string) (string, error) {
	if s.metaCache != nil {
		if path, _, _, ok := s.metaCache.Get(docID); ok {
			return path, nil
		}
	}
	entries, err := listRenderedFiles(s.paths.Rendered)
	if err != nil {
		return "", err
	}
	for _, path := range entries {
		fm, err := frontmatter.Read(path)
		if err == nil && fm != nil && fm.DocID == docID {
			return path, nil
		}
	}
	return "", domain.NewError(domain.KindFilesystem, "document not found: "+docID, domain.ErrNotFound)
}

// ListDocuments lists every rendered document's frontmatter-derived
// metadata, sorted by date descending.
func (s *SearchResultService) ListDocuments(_ context.Context) ([]domain.SearchResult, error) {
	entries, err := listRenderedFiles(s.paths.Rendered)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SearchResult, 0, len(entries))
	for _, path := range entries {
		fm, err := frontmatter.Read(path)
		if err != nil || fm == nil {
			continue
		}
		out = append(out, domain.SearchResult{
			DocID: fm.DocID,
			Title: fm.Title,
			Date:  fm.CreatedAt.UTC().Format("2006-01-02"),
			Path:  path,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}
