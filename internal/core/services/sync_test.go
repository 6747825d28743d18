package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/frontmatter"
)

func TestDecide_CreateWhenNoExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.md")

	action, fm, err := decide(path, domain.DocumentMetadata{DocID: "doc-1", CreatedAt: time.Now()})

	require.NoError(t, err)
	assert.Equal(t, domain.ActionCreate, action)
	assert.Nil(t, fm)
}

func TestDecide_UpdateWhenMalformedFrontmatter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.md")
	require.NoError(t, os.WriteFile(path, []byte("---\nno closing delimiter"), 0o644))

	action, fm, err := decide(path, domain.DocumentMetadata{DocID: "doc-1", CreatedAt: time.Now()})

	require.NoError(t, err)
	assert.Equal(t, domain.ActionUpdate, action)
	assert.Nil(t, fm)
}

func TestDecide_SkipWhenRemoteNotNewer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	writeRendered(t, path, domain.Frontmatter{DocID: "doc-1", CreatedAt: created})

	action, fm, err := decide(path, domain.DocumentMetadata{DocID: "doc-1", CreatedAt: created})

	require.NoError(t, err)
	assert.Equal(t, domain.ActionSkip, action)
	require.NotNil(t, fm)
	assert.Equal(t, "doc-1", fm.DocID)
}

func TestDecide_UpdateWhenRemoteNewer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	writeRendered(t, path, domain.Frontmatter{DocID: "doc-1", CreatedAt: created})

	newer := created.Add(24 * time.Hour)
	action, fm, err := decide(path, domain.DocumentMetadata{DocID: "doc-1", CreatedAt: created, UpdatedAt: &newer})

	require.NoError(t, err)
	assert.Equal(t, domain.ActionUpdate, action)
	require.NotNil(t, fm)
}

func TestDecide_IdempotentSecondRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	remoteUpdated := created.Add(time.Hour)
	meta := domain.DocumentMetadata{DocID: "doc-1", CreatedAt: created, UpdatedAt: &remoteUpdated}

	// First run: file doesn't exist yet.
	action, _, err := decide(path, meta)
	require.NoError(t, err)
	require.Equal(t, domain.ActionCreate, action)

	// Simulate the write a real sync would do: persist with remote_updated_at stamped.
	writeRendered(t, path, domain.Frontmatter{DocID: "doc-1", CreatedAt: created, RemoteUpdatedAt: &remoteUpdated})

	// Second run against the same unchanged metadata should skip, not update.
	action, _, err = decide(path, meta)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionSkip, action)
}

func writeRendered(t *testing.T, path string, fm domain.Frontmatter) {
	t.Helper()
	body, err := frontmatter.Render(fm, "body")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, body, 0o644))
}
