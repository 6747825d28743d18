// Package summarizer implements the optional summarizer collaborator of
// spec.md §6.3: a batch HTTP client against an OpenAI-compatible chat
// completion endpoint. Chunking and the four-section structure are
// adapted from original_source/src/summary.rs's chunk_transcript and
// SUMMARY_PROMPT; the HTTP call shape mirrors the teacher's
// internal/adapters/driven/llm/openai adapter.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/core/ports/driven"
)

const (
	DefaultBaseURL  = "https://api.openai.com/v1"
	DefaultModel    = "gpt-4o-mini"
	chunkCharWindow = 6000
	defaultTimeout  = 120 * time.Second
)

const summaryPrompt = `You are an expert at summarizing meeting transcripts.

Summarize the following meeting transcript in a clear, structured format with
exactly these four sections, using the literal headings:

## Key Topics
## Action Items
## Decisions
## Follow-ups

Be concise but comprehensive. Use "None." under a heading with nothing to report.`

// Summarizer calls an OpenAI-compatible /chat/completions endpoint.
type Summarizer struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

var _ driven.Summarizer = (*Summarizer)(nil)

// Config holds the settings needed to talk to a chat completion endpoint.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// New builds a Summarizer. APIKey is required.
func New(cfg Config) (*Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("summarizer: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Summarizer{
		client:  &http.Client{Timeout: defaultTimeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Summarize chunks body by chunkCharWindow characters, summarizes each
// chunk, then (when more than one chunk was needed) summarizes the
// concatenation of chunk summaries into one final structured Summary.
// Failures are fatal for this document only and do not alter stored state.
func (s *Summarizer) Summarize(docID, title, body string) (domain.Summary, error) {
	chunks := chunkTranscript(body, chunkCharWindow)

	text := chunks[0]
	if len(chunks) > 1 {
		var summaries []string
		for _, chunk := range chunks {
			out, err := s.complete(chunk)
			if err != nil {
				return domain.Summary{}, err
			}
			summaries = append(summaries, out)
		}
		text = strings.Join(summaries, "\n\n---\n\n")
	}

	final, err := s.complete(text)
	if err != nil {
		return domain.Summary{}, err
	}
	return parseSections(docID, final), nil
}

func chunkTranscript(text string, maxChars int) []string {
	if len(text) <= maxChars {
		return []string{text}
	}
	var chunks []string
	var current strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if current.Len()+len(line)+1 > maxChars && current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		current.WriteString(line)
		current.WriteByte('\n')
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *Summarizer) complete(text string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: summaryPrompt},
			{Role: "user", Content: text},
		},
		Temperature: 0.3,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", domain.Wrap(domain.KindSummarization, "encoding chat request", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", domain.Wrap(domain.KindSummarization, "building chat request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", domain.Wrap(domain.KindSummarization, "calling chat completion endpoint", err)
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", domain.Wrap(domain.KindSummarization, "parsing chat completion response", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("chat completion endpoint returned status %d", resp.StatusCode)
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", domain.NewError(domain.KindSummarization, msg, nil)
	}
	if len(parsed.Choices) == 0 {
		return "", domain.NewError(domain.KindSummarization, "chat completion endpoint returned no choices", nil)
	}
	return parsed.Choices[0].Message.Content, nil
}

func parseSections(docID, text string) domain.Summary {
	sections := map[string]*strings.Builder{}
	var current *strings.Builder
	headings := map[string]string{
		"key topics":    "KeyTopics",
		"action items":  "ActionItems",
		"decisions":     "Decisions",
		"follow-ups":    "FollowUps",
		"follow ups":    "FollowUps",
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.ToLower(strings.Trim(strings.TrimSpace(line), "# "))
		if key, ok := headings[trimmed]; ok {
			b := &strings.Builder{}
			sections[key] = b
			current = b
			continue
		}
		if current != nil {
			current.WriteString(line)
			current.WriteByte('\n')
		}
	}

	get := func(key string) string {
		if b, ok := sections[key]; ok {
			return strings.TrimSpace(b.String())
		}
		return ""
	}

	summary := domain.Summary{
		DocID:       docID,
		KeyTopics:   get("KeyTopics"),
		ActionItems: get("ActionItems"),
		Decisions:   get("Decisions"),
		FollowUps:   get("FollowUps"),
	}
	if summary.KeyTopics == "" && summary.ActionItems == "" && summary.Decisions == "" && summary.FollowUps == "" {
		summary.KeyTopics = strings.TrimSpace(text)
	}
	return summary
}
