package paths

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/frontmatter"
)

func TestSlug_IsIdempotent(t *testing.T) {
	cases := []string{"Café Standup", "Q3 Planning!!", "  leading/trailing  ", "", "Already-Slugged"}
	for _, c := range cases {
		once := Slug(c)
		twice := Slug(Slug(c))
		assert.Equal(t, once, twice, "Slug(Slug(%q)) should equal Slug(%q)", c, c)
	}
}

func TestSlug_FoldsDiacriticsAndCollapsesSeparators(t *testing.T) {
	assert.Equal(t, "cafe-standup", Slug("Café Standup"))
	assert.Equal(t, "q3-planning", Slug("Q3   Planning!!"))
}

func TestSlug_EmptyBecomesUntitled(t *testing.T) {
	assert.Equal(t, "untitled", Slug(""))
	assert.Equal(t, "untitled", Slug("***"))
}

func TestResolveRendered_ClaimsAbsentFile(t *testing.T) {
	p := New(t.TempDir())
	require.NoError(t, p.EnsureDirs())

	path, err := p.ResolveRendered("doc-1", "2026-01-01_standup")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(p.Rendered, "2026-01-01_standup.md"), path)
}

func TestResolveRendered_ReusesMatchingDocID(t *testing.T) {
	p := New(t.TempDir())
	require.NoError(t, p.EnsureDirs())
	base := "2026-01-01_standup"
	existing := filepath.Join(p.Rendered, base+".md")
	writeFrontmatter(t, existing, "doc-1")

	path, err := p.ResolveRendered("doc-1", base)

	require.NoError(t, err)
	assert.Equal(t, existing, path)
}

func TestResolveRendered_IncrementsSuffixOnForeignCollision(t *testing.T) {
	p := New(t.TempDir())
	require.NoError(t, p.EnsureDirs())
	base := "2026-01-01_standup"
	writeFrontmatter(t, filepath.Join(p.Rendered, base+".md"), "other-doc")

	path, err := p.ResolveRendered("doc-1", base)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(p.Rendered, base+"-2.md"), path)
}

func TestResolveRendered_ExhaustsAfter100Attempts(t *testing.T) {
	p := New(t.TempDir())
	require.NoError(t, p.EnsureDirs())
	base := "2026-01-01_standup"
	writeFrontmatter(t, filepath.Join(p.Rendered, base+".md"), "other-doc")
	for i := 2; i <= 100; i++ {
		writeFrontmatter(t, filepath.Join(p.Rendered, base+"-"+strconv.Itoa(i)+".md"), "other-doc")
	}

	_, err := p.ResolveRendered("doc-1", base)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCollisionExhausted))
}

func TestRawPath_MirrorsRenderedStem(t *testing.T) {
	p := New("/data")
	rendered := filepath.Join(p.Rendered, "2026-01-01_standup-2.md")

	assert.Equal(t, filepath.Join(p.Raw, "2026-01-01_standup-2.json"), p.RawPath(rendered))
}

func writeFrontmatter(t *testing.T, path, docID string) {
	t.Helper()
	body, err := frontmatter.Render(domain.Frontmatter{DocID: docID, CreatedAt: time.Now()}, "body")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, body, 0o644))
}

