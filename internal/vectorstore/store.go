// Package vectorstore implements the persistent fixed-dimension vector
// store at index/vectors/: metadata.json (ordered doc_id/path entries plus
// dimension) and vectors.bin (N*D little-endian float32), each written
// atomically by Save (see Save for how the pair behaves on a crash
// between the two writes). Cosine similarity and the float32 wire encoding are
// provided by github.com/viant/sqlite-vec/vector rather than hand-rolled
// here.
package vectorstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	vector "github.com/viant/sqlite-vec/vector"

	"github.com/brume-cli/brume/internal/atomicfile"
	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/core/ports/driven"
)

const (
	metadataFile = "metadata.json"
	vectorsFile  = "vectors.bin"
)

type manifestEntry struct {
	DocID string `json:"doc_id"`
	Path  string `json:"path"`
}

type manifest struct {
	Dim     int             `json:"dim"`
	Entries []manifestEntry `json:"entries"`
}

// Store is an in-memory vector store backed by the on-disk manifest/binary
// pair. All entries are held in memory; Save persists a full snapshot.
type Store struct {
	dim     int
	order   []string // doc_id first-insertion order (an update keeps its position), for manifest stability
	paths   map[string]string
	vectors map[string][]float32
}

var _ driven.VectorStore = (*Store)(nil)

// New creates an empty store for dimension dim.
func New(dim int) *Store {
	return &Store{
		dim:     dim,
		paths:   make(map[string]string),
		vectors: make(map[string][]float32),
	}
}

// Open reopens an existing store directory, reading its dimension from the
// on-disk manifest. Returns (nil, os.ErrNotExist) when no manifest exists
// yet, so callers can fall back to New(dim) for a first run.
func Open(dir string) (*Store, error) {
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, domain.Wrap(domain.KindEmbedding, "parsing vector store manifest", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, vectorsFile))
	if err != nil {
		return nil, domain.Wrap(domain.KindEmbedding, "reading vector store binary", err)
	}
	vecs, err := vector.DecodeEmbedding(raw)
	if err != nil {
		return nil, domain.Wrap(domain.KindEmbedding, "decoding vector store binary", err)
	}
	if len(vecs) != len(m.Entries)*m.Dim {
		return nil, domain.Wrap(domain.KindEmbedding, "vector store binary size does not match manifest", domain.ErrDimensionMismatch)
	}

	s := New(m.Dim)
	for i, e := range m.Entries {
		s.order = append(s.order, e.DocID)
		s.paths[e.DocID] = e.Path
		s.vectors[e.DocID] = vecs[i*m.Dim : (i+1)*m.Dim]
	}
	return s, nil
}

// Dim returns the store's fixed vector dimension.
func (s *Store) Dim() int { return s.dim }

// Add inserts or replaces the vector for docID. len(vec) must equal Dim().
func (s *Store) Add(docID, path string, vec []float32) error {
	if len(vec) != s.dim {
		return domain.Wrap(domain.KindEmbedding, "adding vector for "+docID, domain.ErrDimensionMismatch)
	}
	if _, exists := s.vectors[docID]; !exists {
		s.order = append(s.order, docID)
	}
	s.paths[docID] = path
	s.vectors[docID] = vec
	return nil
}

// Search returns the topK stored vectors with highest cosine similarity to
// query. len(query) must equal Dim().
func (s *Store) Search(query []float32, topK int) ([]domain.VectorHit, error) {
	if len(query) != s.dim {
		return nil, domain.Wrap(domain.KindEmbedding, "searching vector store", domain.ErrDimensionMismatch)
	}

	type scored struct {
		docID string
		score float64
	}
	scoredHits := make([]scored, 0, len(s.order))
	for _, docID := range s.order {
		sim, err := vector.CosineSimilarity(query, s.vectors[docID])
		if err != nil {
			continue // zero-magnitude vectors contribute no similarity
		}
		scoredHits = append(scoredHits, scored{docID: docID, score: sim})
	}
	sort.Slice(scoredHits, func(i, j int) bool {
		if scoredHits[i].score != scoredHits[j].score {
			return scoredHits[i].score > scoredHits[j].score
		}
		return scoredHits[i].docID < scoredHits[j].docID
	})
	if topK > 0 && len(scoredHits) > topK {
		scoredHits = scoredHits[:topK]
	}

	hits := make([]domain.VectorHit, 0, len(scoredHits))
	for _, h := range scoredHits {
		hits = append(hits, domain.VectorHit{
			DocID: h.docID,
			Path:  s.paths[h.docID],
			Score: float32(h.score),
		})
	}
	return hits, nil
}

// Save persists the manifest and the packed float32 binary, each file
// replaced via its own write-then-rename, manifest first, binary second.
// The two files are not replaced as one unit: a crash between the two
// writes leaves the new manifest beside the old binary. Open rejects that
// pair when the entry count changed; when it did not, Open loads the new
// manifest's paths with the old vectors.
func (s *Store) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return domain.Wrap(domain.KindFilesystem, "creating vector store directory", err)
	}

	m := manifest{Dim: s.dim}
	flat := make([]float32, 0, len(s.order)*s.dim)
	for _, docID := range s.order {
		m.Entries = append(m.Entries, manifestEntry{DocID: docID, Path: s.paths[docID]})
		flat = append(flat, s.vectors[docID]...)
	}

	metaBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return domain.Wrap(domain.KindEmbedding, "serializing vector store manifest", err)
	}
	binBytes, err := vector.EncodeEmbedding(flat)
	if err != nil {
		return domain.Wrap(domain.KindEmbedding, "encoding vector store binary", err)
	}

	if err := atomicfile.Write(filepath.Join(dir, metadataFile), metaBytes); err != nil {
		return domain.Wrap(domain.KindFilesystem, "persisting vector store manifest", err)
	}
	if err := atomicfile.Write(filepath.Join(dir, vectorsFile), binBytes); err != nil {
		return domain.Wrap(domain.KindFilesystem, "persisting vector store binary", err)
	}
	return nil
}
