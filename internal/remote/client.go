// Package remote implements the thin HTTP client over the three fixed
// remote endpoints: list documents, get document metadata, get document
// transcript. Adapted from original_source/src/api.rs's throttled
// blocking client, and from the teacher's connector rate-limiting idiom,
// using golang.org/x/time/rate instead of a hand-rolled sleep.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/core/ports/driven"
	"github.com/brume-cli/brume/internal/logger"
)

const (
	DefaultBaseURL     = "https://api.granola.ai"
	defaultTimeout     = 30 * time.Second
	userAgent          = "brume/0.1.0 (Go)"
	endpointListDocs   = "/v2/get-documents"
	endpointMetadata   = "/v1/get-document-metadata"
	endpointTranscript = "/v1/get-document-transcript"
)

// Client is the brume remote collaborator. It is not rate-limited itself;
// callers compose it with a ThrottledClient when inter-call throttling is
// desired (spec's "optional" throttle).
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     driven.TokenProvider
}

var _ driven.RemoteClient = (*Client)(nil)

// New builds a Client against baseURL (DefaultBaseURL when empty),
// authenticating every call via tokens.
func New(baseURL string, tokens driven.TokenProvider) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
		tokens:     tokens,
	}
}

func (c *Client) post(ctx context.Context, endpoint string, reqBody, out any) error {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return domain.Wrap(domain.KindAuth, "resolving bearer token", err)
	}
	if token == "" {
		return domain.NewError(domain.KindAuth, "no bearer token available", domain.ErrNoToken)
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return domain.Wrap(domain.KindParse, "encoding request body for "+endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.Wrap(domain.KindNetwork, "building request for "+endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	logger.Debug("POST %s", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Wrap(domain.KindNetwork, "calling "+endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Wrap(domain.KindNetwork, "reading response from "+endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.NewError(domain.KindAPI, fmt.Sprintf("%s returned status %d: %s", endpoint, resp.StatusCode, truncate(string(body), 200)), nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return domain.Wrap(domain.KindParse, "parsing response from "+endpoint, err)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// ListDocuments calls the documents-listing endpoint.
func (c *Client) ListDocuments(ctx context.Context) ([]domain.DocumentSummary, error) {
	var resp struct {
		Docs []domain.DocumentSummary `json:"docs"`
	}
	if err := c.post(ctx, endpointListDocs, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.Docs, nil
}

// GetMetadata calls the metadata endpoint for docID.
func (c *Client) GetMetadata(ctx context.Context, docID string) (domain.DocumentMetadata, error) {
	var meta domain.DocumentMetadata
	err := c.post(ctx, endpointMetadata, map[string]string{"document_id": docID}, &meta)
	return meta, err
}

// GetTranscript calls the transcript endpoint for docID.
func (c *Client) GetTranscript(ctx context.Context, docID string) (domain.RawTranscript, error) {
	var raw domain.RawTranscript
	err := c.post(ctx, endpointTranscript, map[string]string{"document_id": docID}, &raw)
	return raw, err
}

// ThrottledClient wraps a RemoteClient with a random inter-call delay in
// [min, max] after every call, bounding request rate against the remote
// service the way original_source's ApiClient::throttle does, but
// expressed with golang.org/x/time/rate's limiter rather than a bare sleep.
type ThrottledClient struct {
	inner       driven.RemoteClient
	min, max    time.Duration
	limiter     *rate.Limiter
}

// NewThrottled wraps inner so every call is followed by a random delay
// in [min, max], additionally capped by a token-bucket limiter so bursts
// of many documents in one run can't exceed one call per min duration.
func NewThrottled(inner driven.RemoteClient, minDelay, maxDelay time.Duration) *ThrottledClient {
	limit := rate.Every(minDelay)
	if minDelay <= 0 {
		limit = rate.Inf
	}
	return &ThrottledClient{
		inner:   inner,
		min:     minDelay,
		max:     maxDelay,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (t *ThrottledClient) throttle(ctx context.Context) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return domain.Wrap(domain.KindNetwork, "waiting for rate limiter", err)
	}
	if t.max > t.min {
		jitter := time.Duration(rand.Int64N(int64(t.max - t.min)))
		time.Sleep(t.min + jitter)
	}
	return nil
}

func (t *ThrottledClient) ListDocuments(ctx context.Context) ([]domain.DocumentSummary, error) {
	docs, err := t.inner.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	return docs, t.throttle(ctx)
}

func (t *ThrottledClient) GetMetadata(ctx context.Context, docID string) (domain.DocumentMetadata, error) {
	meta, err := t.inner.GetMetadata(ctx, docID)
	if err != nil {
		return meta, err
	}
	return meta, t.throttle(ctx)
}

func (t *ThrottledClient) GetTranscript(ctx context.Context, docID string) (domain.RawTranscript, error) {
	raw, err := t.inner.GetTranscript(ctx, docID)
	if err != nil {
		return raw, err
	}
	return raw, t.throttle(ctx)
}

var _ driven.RemoteClient = (*ThrottledClient)(nil)
