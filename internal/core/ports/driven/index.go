package driven

import "github.com/brume-cli/brume/internal/core/domain"

// TextRecord is one upsertable row of the text index's schema.
type TextRecord struct {
	DocID string
	Title string
	Body  string
	Date  string
	Path  string
}

// TextIndex is the persistent inverted index at index/text/. Upsert is
// delete-by-doc_id then insert; commit makes prior upserts visible to search.
type TextIndex interface {
	Upsert(record TextRecord) error
	Commit() error
	Search(queryText string, topN int) ([]domain.TextHit, error)
	Close() error
}

// VectorStore is the persistent fixed-dimension vector store at
// index/vectors/. Add is upsert-by-doc_id; Save persists the metadata
// manifest and the packed float32 binary, each file written atomically.
type VectorStore interface {
	Dim() int
	Add(docID, path string, vector []float32) error
	Save(dir string) error
	Search(query []float32, topK int) ([]domain.VectorHit, error)
}

// Embedder produces L2-normalized fixed-dimension vectors for passages
// and queries. The two methods may apply different instruction prefixes.
type Embedder interface {
	EmbedPassage(text string) ([]float32, error)
	EmbedQuery(text string) ([]float32, error)
	Dim() int
}

// Summarizer is the optional batch text-to-text collaborator that produces
// a structured Summary for one rendered document.
type Summarizer interface {
	Summarize(docID, title, body string) (domain.Summary, error)
}
