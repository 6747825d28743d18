// Package metacache is the local doc_id -> (path, title, date) cache
// described in SPEC_FULL.md §12.4: a small pure-Go (no cgo) SQLite table
// maintained by the sync engine alongside the text index and vector
// store, replacing original_source's linear directory scan. It is a
// cache, not a source of truth — frontmatter on disk remains
// authoritative, and `reindex` rebuilds it from scratch.
//
// Adapted from the teacher's internal/adapters/driven/storage/sqlite
// package: same WAL-mode pragma string, same embedded-migrations-table
// pattern, trimmed from a multi-store façade down to the one table brume
// needs.
package metacache

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/core/ports/driven"
	"github.com/brume-cli/brume/internal/metacache/migrations"
)

// Store is a SQLite-backed driven.MetaCache.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.MetaCache = (*Store)(nil)

// Open opens (creating if needed) the metadata cache database at
// <dir>/metacache.db, running pending migrations.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, domain.Wrap(domain.KindFilesystem, "creating metacache directory", err)
	}
	dbPath := filepath.Join(dir, "metacache.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, domain.Wrap(domain.KindFilesystem, "opening metacache database", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, domain.Wrap(domain.KindFilesystem, "running metacache migrations", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("listing migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		version, err := versionOf(e.Name())
		if err != nil || version <= current {
			continue
		}
		sqlBytes, err := migrations.FS.ReadFile(e.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", e.Name(), err)
		}
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %s: %w", e.Name(), err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

func versionOf(filename string) (int, error) {
	prefix := strings.SplitN(filename, "_", 2)[0]
	return strconv.Atoi(prefix)
}

// Upsert inserts or replaces the cache entry for docID.
func (s *Store) Upsert(docID, path, title, date string) error {
	_, err := s.db.Exec(
		`INSERT INTO doc_cache (doc_id, path, title, date) VALUES (?, ?, ?, ?)
		 ON CONFLICT(doc_id) DO UPDATE SET path = excluded.path, title = excluded.title, date = excluded.date`,
		docID, path, title, date,
	)
	if err != nil {
		return domain.Wrap(domain.KindFilesystem, "upserting metacache entry", err)
	}
	return nil
}

// Get looks up the cached path/title/date for docID.
func (s *Store) Get(docID string) (path, title, date string, ok bool) {
	row := s.db.QueryRow("SELECT path, title, date FROM doc_cache WHERE doc_id = ?", docID)
	if err := row.Scan(&path, &title, &date); err != nil {
		return "", "", "", false
	}
	return path, title, date, true
}

// Clear removes every cache entry, used at the start of `reindex`.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM doc_cache")
	if err != nil {
		return domain.Wrap(domain.KindFilesystem, "clearing metacache", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Path returns the on-disk database file path.
func (s *Store) Path() string { return s.path }
