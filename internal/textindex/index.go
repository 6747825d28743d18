// Package textindex implements the persistent inverted index at
// index/text/: upsert-by-doc_id, commit-to-visibility, and BM25-style
// ranked search over the analyzed title and body fields.
//
// There is no bleve- or tantivy-equivalent full-text library available in
// this module's dependency surface, so the index is hand-rolled: a
// doc_id-keyed record store, snapshotted to disk as a single JSON file on
// every commit. No postings list is kept; Search tokenizes the committed
// records on each call. This keeps the reopen-safe contract of
// open_or_create simple: loading is "read the snapshot's records."
package textindex

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/brume-cli/brume/internal/atomicfile"
	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/core/ports/driven"
)

const snapshotFile = "index.json"

// bm25K1 and bm25B are the standard Okapi BM25 tuning constants.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

type record struct {
	DocID string `json:"doc_id"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Date  string `json:"date"`
	Path  string `json:"path"`
}

// Index is the in-memory, disk-backed inverted index. It is safe for
// concurrent use, though brume's sync engine never calls it concurrently.
type Index struct {
	dir string

	mu       sync.Mutex
	records  map[string]record // committed, visible to Search
	pending  map[string]record // upserted since last Commit
	deleted  map[string]bool   // doc_ids removed by a pending upsert, pre-commit
}

var _ driven.TextIndex = (*Index)(nil)

// OpenOrCreate opens dir as a text index, creating the directory if it is
// missing and loading the existing snapshot if there is one. The snapshot
// file itself is first written by Commit.
func OpenOrCreate(dir string) (*Index, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, domain.Wrap(domain.KindIndexing, "creating text index directory", err)
	}
	idx := &Index{
		dir:     dir,
		records: make(map[string]record),
		pending: make(map[string]record),
		deleted: make(map[string]bool),
	}

	path := filepath.Join(dir, snapshotFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, domain.Wrap(domain.KindIndexing, "reading text index snapshot", err)
	}
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, domain.Wrap(domain.KindIndexing, "parsing text index snapshot", err)
	}
	for _, r := range recs {
		idx.records[r.DocID] = r
	}
	return idx, nil
}

// Upsert stages a delete-by-doc_id followed by an insert. Visible to
// Search only after Commit.
func (idx *Index) Upsert(rec driven.TextRecord) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.deleted[rec.DocID] = true
	idx.pending[rec.DocID] = record{
		DocID: rec.DocID,
		Title: rec.Title,
		Body:  rec.Body,
		Date:  rec.Date,
		Path:  rec.Path,
	}
	return nil
}

// Commit applies staged upserts to the committed record set and persists
// a fresh snapshot atomically.
func (idx *Index) Commit() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for docID := range idx.deleted {
		delete(idx.records, docID)
	}
	for docID, rec := range idx.pending {
		idx.records[docID] = rec
	}
	idx.pending = make(map[string]record)
	idx.deleted = make(map[string]bool)

	return idx.persistLocked()
}

func (idx *Index) persistLocked() error {
	recs := make([]record, 0, len(idx.records))
	ids := make([]string, 0, len(idx.records))
	for id := range idx.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		recs = append(recs, idx.records[id])
	}

	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return domain.Wrap(domain.KindIndexing, "serializing text index snapshot", err)
	}
	if err := atomicfile.Write(filepath.Join(idx.dir, snapshotFile), data); err != nil {
		return domain.Wrap(domain.KindIndexing, "persisting text index snapshot", err)
	}
	return nil
}

// Close is a no-op: every Commit already persists the full snapshot.
func (idx *Index) Close() error { return nil }

// Search parses queryText as an implicit-OR bag of tokens matched over
// title and body, and returns up to topN hits ordered by descending
// BM25-style relevance. A query token matches every document token it is
// a prefix of, so "roadmap" also matches "roadmaps".
func (idx *Index) Search(queryText string, topN int) ([]domain.TextHit, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	queryTokens := tokenize(queryText)
	if len(queryTokens) == 0 || len(idx.records) == 0 {
		return nil, nil
	}

	docTokens := make(map[string][]string, len(idx.records))
	var totalLen int
	df := make(map[string]int)
	for docID, rec := range idx.records {
		toks := tokenize(rec.Title + " " + rec.Body)
		docTokens[docID] = toks
		totalLen += len(toks)
		seen := make(map[string]bool)
		for _, t := range toks {
			for _, qt := range queryTokens {
				if !seen[qt] && strings.HasPrefix(t, qt) {
					seen[qt] = true
					df[qt]++
				}
			}
		}
	}
	n := float64(len(idx.records))
	avgLen := float64(totalLen) / n

	type scored struct {
		docID string
		score float64
	}
	var results []scored
	for docID, toks := range docTokens {
		tf := make(map[string]int, len(df))
		for _, t := range toks {
			for qt := range df {
				if strings.HasPrefix(t, qt) {
					tf[qt]++
				}
			}
		}
		var score float64
		dl := float64(len(toks))
		for _, qt := range queryTokens {
			f := float64(tf[qt])
			if f == 0 {
				continue
			}
			d := df[qt]
			idf := math.Log(1 + (n-float64(d)+0.5)/(float64(d)+0.5))
			score += idf * (f * (bm25K1 + 1)) / (f + bm25K1*(1-bm25B+bm25B*dl/avgLen))
		}
		if score > 0 {
			results = append(results, scored{docID: docID, score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].docID < results[j].docID
	})

	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}

	hits := make([]domain.TextHit, 0, len(results))
	for _, r := range results {
		rec := idx.records[r.docID]
		hits = append(hits, domain.TextHit{
			DocID: rec.DocID,
			Title: rec.Title,
			Date:  rec.Date,
			Path:  rec.Path,
			Score: r.score,
		})
	}
	return hits, nil
}
