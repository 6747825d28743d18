package textindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brume-cli/brume/internal/core/ports/driven"
)

func TestUpsertSearch_MatchesByTitleAndBody(t *testing.T) {
	idx, err := OpenOrCreate(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, idx.Upsert(driven.TextRecord{DocID: "doc-1", Title: "Standup notes", Body: "discussed the roadmap"}))
	require.NoError(t, idx.Upsert(driven.TextRecord{DocID: "doc-2", Title: "Retro", Body: "nothing about roadmaps here"}))
	require.NoError(t, idx.Commit())

	hits, err := idx.Search("roadmap", 10)

	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "doc-1", hits[0].DocID)
}

func TestSearch_NotVisibleBeforeCommit(t *testing.T) {
	idx, err := OpenOrCreate(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, idx.Upsert(driven.TextRecord{DocID: "doc-1", Title: "Standup", Body: "roadmap talk"}))

	hits, err := idx.Search("roadmap", 10)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestUpsert_IsIdempotentByDocID(t *testing.T) {
	idx, err := OpenOrCreate(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, idx.Upsert(driven.TextRecord{DocID: "doc-1", Title: "Old title", Body: "old body"}))
	require.NoError(t, idx.Commit())
	require.NoError(t, idx.Upsert(driven.TextRecord{DocID: "doc-1", Title: "New title", Body: "new body"}))
	require.NoError(t, idx.Commit())

	hits, err := idx.Search("new", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "New title", hits[0].Title)

	hits, err = idx.Search("old", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_RespectsTopN(t *testing.T) {
	idx, err := OpenOrCreate(t.TempDir())
	require.NoError(t, err)
	for _, id := range []string{"doc-1", "doc-2", "doc-3"} {
		require.NoError(t, idx.Upsert(driven.TextRecord{DocID: id, Title: "meeting", Body: "meeting notes"}))
	}
	require.NoError(t, idx.Commit())

	hits, err := idx.Search("meeting", 2)

	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestOpenOrCreate_ReopensExistingSnapshot(t *testing.T) {
	dir := t.TempDir()
	idx, err := OpenOrCreate(dir)
	require.NoError(t, err)
	require.NoError(t, idx.Upsert(driven.TextRecord{DocID: "doc-1", Title: "Standup", Body: "roadmap talk"}))
	require.NoError(t, idx.Commit())

	reopened, err := OpenOrCreate(dir)
	require.NoError(t, err)

	hits, err := reopened.Search("roadmap", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "doc-1", hits[0].DocID)
}
