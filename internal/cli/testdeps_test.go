package cli

import (
	"context"
	"sync"

	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/core/ports/driving"
	"github.com/brume-cli/brume/internal/paths"
)

// setTestDeps overrides the process-wide deps singleton for the
// duration of a test, bypassing build() entirely. Call the returned
// function to restore the previous state.
func setTestDeps(syncSvc driving.SyncService, searchSvc driving.SearchService) func() {
	oldDeps, oldErr, oldOnce := depsVal, depsErr, depsOnce
	depsVal = &deps{sync: syncSvc, search: searchSvc, paths: paths.New("")}
	depsErr = nil
	depsOnce = &sync.Once{}
	depsOnce.Do(func() {})
	return func() {
		depsVal, depsErr, depsOnce = oldDeps, oldErr, oldOnce
	}
}

type mockSyncService struct {
	summary domain.SyncSummary
	err     error
}

func (m *mockSyncService) Sync(context.Context) (domain.SyncSummary, error)    { return m.summary, m.err }
func (m *mockSyncService) Reindex(context.Context) (domain.SyncSummary, error) { return m.summary, m.err }

type mockSearchService struct {
	results []domain.SearchResult
	body    string
	err     error
	called  string // "text" or "semantic": the last search method called
}

func (m *mockSearchService) SearchText(context.Context, string, int) ([]domain.SearchResult, error) {
	m.called = "text"
	return m.results, m.err
}

func (m *mockSearchService) SearchSemantic(context.Context, string, int) ([]domain.SearchResult, error) {
	m.called = "semantic"
	return m.results, m.err
}

func (m *mockSearchService) GetDocument(context.Context, string) (string, error) {
	return m.body, m.err
}

func (m *mockSearchService) ListDocuments(context.Context) ([]domain.SearchResult, error) {
	return m.results, m.err
}
