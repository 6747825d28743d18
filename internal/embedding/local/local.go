// Package local implements a deterministic, offline Embedder: a hashed
// bag-of-tokens projected into a fixed dimension and L2-normalized. It
// requires no model download or network access, and is brume's default
// embedder so semantic search works out of the box; an openai-backed
// Embedder (internal/embedding/openai) can be selected for higher quality.
package local

import (
	"hash/fnv"
	"math"
	"strings"

	"github.com/brume-cli/brume/internal/core/ports/driven"
)

const defaultDim = 256

// Embedder is a hashing-trick bag-of-words embedder. It is idempotent by
// construction: identical input always hashes to the same vector.
type Embedder struct {
	dim int
}

var _ driven.Embedder = (*Embedder)(nil)

// New creates an Embedder of the given dimension, or defaultDim when dim <= 0.
func New(dim int) *Embedder {
	if dim <= 0 {
		dim = defaultDim
	}
	return &Embedder{dim: dim}
}

// Dim returns the embedder's fixed output dimension.
func (e *Embedder) Dim() int { return e.dim }

// EmbedPassage embeds a rendered-document body. Passages and queries use
// the same hashing projection; the "passage:"/"query:" prefix is hashed
// like any other token, so it adds one distinct bucket to each vector.
func (e *Embedder) EmbedPassage(text string) ([]float32, error) {
	return e.embed("passage: " + text)
}

// EmbedQuery embeds a search query.
func (e *Embedder) EmbedQuery(text string) ([]float32, error) {
	return e.embed("query: " + text)
}

func (e *Embedder) embed(text string) ([]float32, error) {
	vec := make([]float32, e.dim)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		idx := int(h.Sum32() % uint32(e.dim))
		vec[idx]++
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i, v := range vec {
			vec[i] = float32(float64(v) / norm)
		}
	}
	return vec, nil
}
