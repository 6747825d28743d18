// Package driven declares the outbound ports the core services depend on:
// the remote transcript service, the text index, the vector store, the
// embedder, the summarizer, the config store, and the local metadata cache.
// Each adapter package under internal/ implements exactly one of these.
package driven

import (
	"context"

	"github.com/brume-cli/brume/internal/core/domain"
)

// RemoteClient is the thin interface over the three fixed remote endpoints
// described in the external-interfaces section: list, get-metadata,
// get-transcript. All three are fatal on non-2xx and on transport failure.
type RemoteClient interface {
	ListDocuments(ctx context.Context) ([]domain.DocumentSummary, error)
	GetMetadata(ctx context.Context, docID string) (domain.DocumentMetadata, error)
	GetTranscript(ctx context.Context, docID string) (domain.RawTranscript, error)
}

// TokenProvider resolves the bearer token used to authenticate RemoteClient
// calls. Implementations may cache and refresh.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}
