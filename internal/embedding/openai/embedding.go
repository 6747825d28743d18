// Package openai implements driven.Embedder against an OpenAI-compatible
// embeddings endpoint. Adapted from the teacher's embedding/openai
// adapter: same config shape, same tolerant JSON response decoding.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/core/ports/driven"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "text-embedding-3-small"
	DefaultTimeout = 60 * time.Second
)

var modelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// Config holds the settings needed to talk to an embeddings endpoint.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Embedder calls an OpenAI-compatible /embeddings endpoint for both
// EmbedPassage and EmbedQuery; OpenAI's embedding models have no separate
// instruction-prefixed query mode, so both share one HTTP call shape.
type Embedder struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	dim     int
}

var _ driven.Embedder = (*Embedder)(nil)

// New builds an Embedder. APIKey is required.
func New(cfg Config) (*Embedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai embedder: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	dim, ok := modelDimensions[cfg.Model]
	if !ok {
		dim = 1536
	}
	return &Embedder{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		dim:     dim,
	}, nil
}

// Dim returns the model's embedding dimension.
func (e *Embedder) Dim() int { return e.dim }

// EmbedPassage embeds a rendered-document body.
func (e *Embedder) EmbedPassage(text string) ([]float32, error) {
	return e.embed(text)
}

// EmbedQuery embeds a search query.
func (e *Embedder) EmbedQuery(text string) ([]float32, error) {
	return e.embed(text)
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (e *Embedder) embed(text string) ([]float32, error) {
	body, err := json.Marshal(embeddingRequest{Model: e.model, Input: []string{text}})
	if err != nil {
		return nil, domain.Wrap(domain.KindEmbedding, "encoding embeddings request", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, e.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, domain.Wrap(domain.KindEmbedding, "building embeddings request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, domain.Wrap(domain.KindEmbedding, "calling embeddings endpoint", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.Wrap(domain.KindEmbedding, "reading embeddings response", err)
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, domain.Wrap(domain.KindEmbedding, "parsing embeddings response", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("embeddings endpoint returned status %d", resp.StatusCode)
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return nil, domain.NewError(domain.KindEmbedding, msg, nil)
	}
	if len(parsed.Data) == 0 {
		return nil, domain.NewError(domain.KindEmbedding, "embeddings endpoint returned no data", nil)
	}

	return normalize(parsed.Data[0].Embedding), nil
}

// normalize converts OpenAI's float64 embedding to an L2-normalized
// float32 vector, matching the unit-vector contract every Embedder owes
// the vector store.
func normalize(v []float64) []float32 {
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	out := make([]float32, len(v))
	for i, x := range v {
		if norm > 0 {
			out[i] = float32(x / norm)
		}
	}
	return out
}
