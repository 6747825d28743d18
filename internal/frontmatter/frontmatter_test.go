package frontmatter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brume-cli/brume/internal/core/domain"
)

func TestRenderParse_RoundTrip(t *testing.T) {
	fm := domain.Frontmatter{
		DocID:     "doc-1",
		Source:    "granola",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Title:     "Standup notes",
	}
	body := "# Standup\n\nNotes go here.\n"

	raw, err := Render(fm, body)
	require.NoError(t, err)

	got, gotBody, err := Parse(raw)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, fm.DocID, got.DocID)
	assert.Equal(t, fm.Title, got.Title)
	assert.True(t, fm.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, body, gotBody)
}

func TestParse_NoFrontmatterBlock(t *testing.T) {
	fm, body, err := Parse([]byte("just a plain file\nwith no header\n"))

	require.NoError(t, err)
	assert.Nil(t, fm)
	assert.Equal(t, "just a plain file\nwith no header\n", body)
}

func TestParse_MissingClosingDelimiterReturnsError(t *testing.T) {
	_, _, err := Parse([]byte("---\ndoc_id: doc-1\nno closing delimiter here"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedFrontmatter))
}

func TestParse_BareDelimiterDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		_, _, err := Parse([]byte("---"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMalformedFrontmatter))
	})
}

func TestRead_MissingFileReturnsRawError(t *testing.T) {
	fm, err := Read(filepath.Join(t.TempDir(), "missing.md"))

	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
	assert.Nil(t, fm)
}

func TestRead_MalformedFrontmatterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.md")
	require.NoError(t, os.WriteFile(path, []byte("---\nno closing delimiter"), 0o644))

	fm, err := Read(path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedFrontmatter))
	assert.Nil(t, fm)
}
