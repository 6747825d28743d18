package vectorstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brume-cli/brume/internal/core/domain"
)

func TestAdd_RejectsDimensionMismatch(t *testing.T) {
	s := New(3)

	err := s.Add("doc-1", "rendered/doc-1.md", []float32{1, 2})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestSearch_RejectsDimensionMismatch(t *testing.T) {
	s := New(3)
	require.NoError(t, s.Add("doc-1", "rendered/doc-1.md", []float32{1, 0, 0}))

	_, err := s.Search([]float32{1, 0}, 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestSearch_RanksByCosineSimilarityDescending(t *testing.T) {
	s := New(2)
	require.NoError(t, s.Add("far", "rendered/far.md", []float32{0, 1}))
	require.NoError(t, s.Add("close", "rendered/close.md", []float32{1, 0.01}))
	require.NoError(t, s.Add("exact", "rendered/exact.md", []float32{1, 0}))

	hits, err := s.Search([]float32{1, 0}, 10)

	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "exact", hits[0].DocID)
	assert.Equal(t, "close", hits[1].DocID)
	assert.Equal(t, "far", hits[2].DocID)
	assert.Greater(t, hits[0].Score, hits[1].Score)
	assert.Greater(t, hits[1].Score, hits[2].Score)
}

func TestSearch_RespectsTopK(t *testing.T) {
	s := New(2)
	require.NoError(t, s.Add("doc-1", "rendered/doc-1.md", []float32{1, 0}))
	require.NoError(t, s.Add("doc-2", "rendered/doc-2.md", []float32{0.9, 0.1}))
	require.NoError(t, s.Add("doc-3", "rendered/doc-3.md", []float32{0.8, 0.2}))

	hits, err := s.Search([]float32{1, 0}, 2)

	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestAdd_IsIdempotentByDocID(t *testing.T) {
	s := New(2)
	require.NoError(t, s.Add("doc-1", "rendered/old.md", []float32{1, 0}))
	require.NoError(t, s.Add("doc-1", "rendered/new.md", []float32{0, 1}))

	hits, err := s.Search([]float32{0, 1}, 10)

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "rendered/new.md", hits[0].Path)
}

func TestOpen_MissingManifestReturnsNotExist(t *testing.T) {
	_, err := Open(t.TempDir())

	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveOpen_RoundTripsVectorsAndOrder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "vectors")
	s := New(3)
	require.NoError(t, s.Add("doc-1", "rendered/doc-1.md", []float32{1, 0, 0}))
	require.NoError(t, s.Add("doc-2", "rendered/doc-2.md", []float32{0, 1, 0}))
	require.NoError(t, s.Save(dir))

	reopened, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, reopened.Dim())

	hits, err := reopened.Search([]float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "doc-1", hits[0].DocID)
	assert.Equal(t, "rendered/doc-1.md", hits[0].Path)
	assert.Equal(t, "doc-2", hits[1].DocID)
}

func TestSave_OverwritesPreviousSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "vectors")
	s := New(2)
	require.NoError(t, s.Add("doc-1", "rendered/doc-1.md", []float32{1, 0}))
	require.NoError(t, s.Save(dir))

	reopened, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, reopened.Add("doc-2", "rendered/doc-2.md", []float32{0, 1}))
	require.NoError(t, reopened.Save(dir))

	final, err := Open(dir)
	require.NoError(t, err)
	hits, err := final.Search([]float32{0, 1}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "doc-2", hits[0].DocID)
}
