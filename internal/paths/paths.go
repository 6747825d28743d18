// Package paths resolves the on-disk layout of a brume data directory and
// computes canonical, collision-resolved filenames for rendered documents.
package paths

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/frontmatter"
)

// Paths holds every directory brume reads from or writes to. Base follows
// the platform data-directory convention unless overridden.
type Paths struct {
	Base      string
	Raw       string
	Rendered  string
	Summaries string
	Index     string
	TextIndex string
	Vectors   string
	Models    string
}

const appName = "brume"

// DefaultBase returns the platform data directory for brume:
// $XDG_DATA_HOME/brume, or ~/.local/share/brume when unset.
func DefaultBase() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return filepath.Join(v, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return appName
	}
	return filepath.Join(home, ".local", "share", appName)
}

// New resolves Paths rooted at base. An empty base uses DefaultBase().
func New(base string) Paths {
	if base == "" {
		base = DefaultBase()
	}
	idx := filepath.Join(base, "index")
	return Paths{
		Base:      base,
		Raw:       filepath.Join(base, "raw"),
		Rendered:  filepath.Join(base, "rendered"),
		Summaries: filepath.Join(base, "summaries"),
		Index:     idx,
		TextIndex: filepath.Join(idx, "text"),
		Vectors:   filepath.Join(idx, "vectors"),
		Models:    filepath.Join(base, "models"),
	}
}

// EnsureDirs creates every directory in Paths with owner-only permissions
// where the OS supports them.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.Base, p.Raw, p.Rendered, p.Summaries, p.Index, p.TextIndex, p.Vectors, p.Models}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return domain.Wrap(domain.KindFilesystem, "create data directory "+d, err)
		}
	}
	return nil
}

var collapseDashes = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases, ASCII-folds, collapses runs of non [a-z0-9] to a single
// '-', and trims leading/trailing '-'. Slug is idempotent: Slug(Slug(x)) ==
// Slug(x). An empty result becomes "untitled".
func Slug(title string) string {
	if title == "" {
		title = "untitled"
	}
	folded := foldDiacritics(title)
	folded = strings.ToLower(folded)
	folded = collapseDashes.ReplaceAllString(folded, "-")
	folded = strings.Trim(folded, "-")
	if folded == "" {
		return "untitled"
	}
	return folded
}

// foldDiacritics removes combining marks via Unicode NFD decomposition,
// e.g. "Café" -> "Cafe", so accented letters reach Slug as their base
// letters. Characters with no decomposition (such as "ø") are left as
// they are, and Slug then replaces them with '-'.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// BaseName computes "{YYYY-MM-DD}_{slug}" for a document, the stem shared
// by its raw .json and rendered .md twin files.
func BaseName(createdAt time.Time, title string) string {
	return createdAt.UTC().Format("2006-01-02") + "_" + Slug(title)
}

const maxCollisionAttempts = 100

// ResolveRendered finds the rendered-document path for docID given its
// base name, resolving filename collisions per the 100-attempt rule: an
// absent file is claimed outright; a present file whose frontmatter
// doc_id matches is reused; otherwise the suffix increments.
func (p Paths) ResolveRendered(docID, baseName string) (string, error) {
	for attempt := 0; attempt < maxCollisionAttempts; attempt++ {
		suffix := ""
		if attempt > 0 {
			suffix = "-" + strconv.Itoa(attempt+1)
		}
		candidate := filepath.Join(p.Rendered, baseName+suffix+".md")
		fm, err := frontmatter.Read(candidate)
		switch {
		case os.IsNotExist(err):
			return candidate, nil
		case err != nil:
			// Malformed frontmatter still occupies the name; treat as a
			// foreign document and keep incrementing the suffix.
		case fm != nil && fm.DocID == docID:
			return candidate, nil
		}
	}
	return "", domain.Wrap(domain.KindFilesystem, "resolving rendered path for "+docID, domain.ErrCollisionExhausted)
}

// RawPath mirrors ResolveRendered's chosen stem under the raw directory.
func (p Paths) RawPath(renderedPath string) string {
	stem := strings.TrimSuffix(filepath.Base(renderedPath), ".md")
	return filepath.Join(p.Raw, stem+".json")
}

