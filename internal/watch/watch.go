// Package watch implements brume's watch mode (SPEC_FULL.md §12.3):
// watching the rendered-document tree with fsnotify and triggering a
// remote-call-free reindex when a .md file is written or removed by an
// external process (editor, restore from backup).
package watch

import (
	"context"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/core/ports/driving"
	"github.com/brume-cli/brume/internal/logger"
)

// debounce coalesces bursts of filesystem events (e.g. an editor's
// save-as-temp-then-rename) into a single reindex.
const debounce = 500 * time.Millisecond

// Run watches dir for .md changes and calls sync.Reindex after each
// debounced burst, until ctx is cancelled.
func Run(ctx context.Context, dir string, sync driving.SyncService) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return domain.Wrap(domain.KindFilesystem, "creating filesystem watcher", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return domain.Wrap(domain.KindFilesystem, "watching "+dir, err)
	}
	logger.Info("watching %s for changes", dir)

	var timer *time.Timer
	trigger := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".md") {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)

		case <-trigger:
			logger.Info("change detected, reindexing")
			if _, err := sync.Reindex(ctx); err != nil {
				logger.Warn("reindex failed: %v", err)
			}
		}
	}
}
