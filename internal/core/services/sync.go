// Package services implements the driving ports: SyncOrchestrator drives
// the list -> decide -> fetch -> render -> persist -> index pipeline of
// spec.md §4.8; SearchService answers text and semantic queries.
// Structurally adapted from the teacher's core/services/sync.go
// orchestrator (status tracking, sequential per-document processing)
// but with the connector/normaliser/postprocessor pipeline replaced by
// the fixed remote client and converter this domain actually has.
package services

import (
	"context"
	"sync"

	"github.com/brume-cli/brume/internal/atomicfile"
	"github.com/brume-cli/brume/internal/convert"
	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/core/ports/driven"
	"github.com/brume-cli/brume/internal/core/ports/driving"
	"github.com/brume-cli/brume/internal/frontmatter"
	"github.com/brume-cli/brume/internal/logger"
	"github.com/brume-cli/brume/internal/paths"
)

// SyncOrchestrator coordinates one data directory's sync/reindex runs
// against a remote client, the resolved Paths, and the optional text
// index / vector store / embedder / metadata cache.
type SyncOrchestrator struct {
	remote    driven.RemoteClient
	paths     paths.Paths
	textIndex driven.TextIndex // optional
	vectors   driven.VectorStore
	embedder  driven.Embedder // optional; both nil or both set
	metaCache driven.MetaCache // optional

	mu      sync.Mutex
	running bool
}

var _ driving.SyncService = (*SyncOrchestrator)(nil)

// New builds a SyncOrchestrator. textIndex, vectors+embedder, and
// metaCache may each be nil to disable that subsystem.
func New(
	remote driven.RemoteClient,
	p paths.Paths,
	textIndex driven.TextIndex,
	vectors driven.VectorStore,
	embedder driven.Embedder,
	metaCache driven.MetaCache,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		remote:    remote,
		paths:     p,
		textIndex: textIndex,
		vectors:   vectors,
		embedder:  embedder,
		metaCache: metaCache,
	}
}

func (o *SyncOrchestrator) acquire() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.running {
		return domain.NewError(domain.KindFilesystem, "sync already in progress", domain.ErrSyncInProgress)
	}
	o.running = true
	return nil
}

func (o *SyncOrchestrator) release() {
	o.mu.Lock()
	o.running = false
	o.mu.Unlock()
}

// Sync runs the full list -> decide -> fetch -> render -> persist -> index
// pipeline. The first fatal error aborts the run with no further
// documents processed; documents already processed remain on disk.
func (o *SyncOrchestrator) Sync(ctx context.Context) (domain.SyncSummary, error) {
	if err := o.acquire(); err != nil {
		return domain.SyncSummary{}, err
	}
	defer o.release()

	logger.Section("sync")
	if err := o.paths.EnsureDirs(); err != nil {
		return domain.SyncSummary{}, err
	}

	summaries, err := o.remote.ListDocuments(ctx)
	if err != nil {
		return domain.SyncSummary{}, err
	}
	logger.Info("listed %d documents", len(summaries))

	result := domain.SyncSummary{Listed: len(summaries)}
	if len(summaries) == 0 {
		return result, nil
	}

	for _, summary := range summaries {
		meta, err := o.remote.GetMetadata(ctx, summary.DocID)
		if err != nil {
			return result, err
		}

		baseName := paths.BaseName(meta.CreatedAt, meta.Title)
		renderedPath, err := o.paths.ResolveRendered(meta.DocID, baseName)
		if err != nil {
			return result, err
		}

		action, existing, err := decide(renderedPath, meta)
		if err != nil {
			return result, err
		}
		if action == domain.ActionSkip {
			result.Skipped++
			logger.Debug("skip %s (unchanged)", meta.DocID)
			_ = existing
			continue
		}

		raw, err := o.remote.GetTranscript(ctx, meta.DocID)
		if err != nil {
			return result, err
		}
		rendered := convert.Render(meta, raw)

		rawBytes, err := marshalRawPretty(raw)
		if err != nil {
			return result, err
		}
		if err := atomicfile.Write(o.paths.RawPath(renderedPath), rawBytes); err != nil {
			return result, err
		}

		docBytes, err := frontmatter.Render(rendered.Frontmatter, rendered.Body)
		if err != nil {
			return result, err
		}
		if err := atomicfile.Write(renderedPath, docBytes); err != nil {
			return result, err
		}

		if err := o.index(meta.DocID, rendered, renderedPath); err != nil {
			return result, err
		}

		switch action {
		case domain.ActionCreate:
			result.Created++
			logger.Debug("created %s -> %s", meta.DocID, renderedPath)
		case domain.ActionUpdate:
			result.Updated++
			logger.Debug("updated %s -> %s", meta.DocID, renderedPath)
		}
	}

	if err := o.finalize(); err != nil {
		return result, err
	}
	return result, nil
}

// Reindex walks the existing rendered-document tree and performs the
// index/vector/metacache upserts from on-disk bodies, without any remote
// calls. Used after restoring files or adding an index to an existing
// data directory.
func (o *SyncOrchestrator) Reindex(ctx context.Context) (domain.SyncSummary, error) {
	if err := o.acquire(); err != nil {
		return domain.SyncSummary{}, err
	}
	defer o.release()

	logger.Section("reindex")
	if err := o.paths.EnsureDirs(); err != nil {
		return domain.SyncSummary{}, err
	}
	if o.metaCache != nil {
		if err := o.metaCache.Clear(); err != nil {
			return domain.SyncSummary{}, err
		}
	}

	entries, err := listRenderedFiles(o.paths.Rendered)
	if err != nil {
		return domain.SyncSummary{}, err
	}

	result := domain.SyncSummary{Listed: len(entries)}
	for _, path := range entries {
		select {
		case <-ctx.Done():
			return result, domain.Wrap(domain.KindFilesystem, "reindex cancelled", ctx.Err())
		default:
		}

		fm, body, err := frontmatter.Parse(mustRead(path))
		if err != nil {
			return result, err
		}
		if fm == nil {
			continue // not a brume rendered document; ignore silently
		}

		rendered := domain.RenderedDocument{Frontmatter: *fm, Body: body}
		if err := o.index(fm.DocID, rendered, path); err != nil {
			return result, err
		}
		result.Updated++
	}

	if err := o.finalize(); err != nil {
		return result, err
	}
	return result, nil
}

func (o *SyncOrchestrator) index(docID string, rendered domain.RenderedDocument, path string) error {
	if o.textIndex != nil {
		if err := o.textIndex.Upsert(driven.TextRecord{
			DocID: docID,
			Title: rendered.Frontmatter.Title,
			Body:  rendered.Body,
			Date:  rendered.Frontmatter.CreatedAt.UTC().Format("2006-01-02"),
			Path:  path,
		}); err != nil {
			return domain.Wrap(domain.KindIndexing, "upserting text index", err)
		}
	}
	if o.vectors != nil && o.embedder != nil {
		vec, err := o.embedder.EmbedPassage(rendered.Body)
		if err != nil {
			return domain.Wrap(domain.KindEmbedding, "embedding document "+docID, err)
		}
		if err := o.vectors.Add(docID, path, vec); err != nil {
			return domain.Wrap(domain.KindEmbedding, "adding vector for "+docID, err)
		}
	}
	if o.metaCache != nil {
		if err := o.metaCache.Upsert(docID, path, rendered.Frontmatter.Title, rendered.Frontmatter.CreatedAt.UTC().Format("2006-01-02")); err != nil {
			return domain.Wrap(domain.KindFilesystem, "upserting metadata cache", err)
		}
	}
	return nil
}

func (o *SyncOrchestrator) finalize() error {
	if o.textIndex != nil {
		if err := o.textIndex.Commit(); err != nil {
			return domain.Wrap(domain.KindIndexing, "committing text index", err)
		}
	}
	if o.vectors != nil {
		if err := o.vectors.Save(o.paths.Vectors); err != nil {
			return domain.Wrap(domain.KindEmbedding, "saving vector store", err)
		}
	}
	return nil
}

// decide implements the action-decision algorithm of spec.md §4.8 against
// the (already collision-resolved) rendered path.
func decide(renderedPath string, meta domain.DocumentMetadata) (domain.SyncAction, *domain.Frontmatter, error) {
	fm, err := frontmatter.Read(renderedPath)
	if err != nil {
		if isNotExist(err) {
			return domain.ActionCreate, nil, nil
		}
		if domain.KindOf(err) == domain.KindParse {
			return domain.ActionUpdate, nil, nil // malformed frontmatter: treat as missing provenance
		}
		return 0, nil, domain.Wrap(domain.KindFilesystem, "reading existing frontmatter", err)
	}
	if fm == nil {
		return domain.ActionUpdate, nil, nil
	}

	remoteTS := meta.UpdatedAtOrCreated()
	localTS := fm.RemoteUpdatedAtOrCreated()
	if remoteTS.After(localTS) {
		return domain.ActionUpdate, fm, nil
	}
	return domain.ActionSkip, fm, nil
}
