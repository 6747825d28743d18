package tui

import "github.com/brume-cli/brume/internal/core/domain"

// searchCompleted carries search results back to the model.
type searchCompleted struct {
	results []domain.SearchResult
	err     error
}

// documentLoaded carries a fetched document body back to the model.
type documentLoaded struct {
	docID string
	body  string
	err   error
}

// errorOccurred signals a background failure unrelated to a search or fetch.
type errorOccurred struct {
	err error
}
