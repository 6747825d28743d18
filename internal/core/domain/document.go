// Package domain holds the core types shared by every brume package:
// documents, transcripts, frontmatter, and the error taxonomy.
package domain

import "time"

// DocumentSummary is one entry of the remote service's document listing.
type DocumentSummary struct {
	DocID     string     `json:"doc_id"`
	Title     string     `json:"title,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// UpdatedAtOrCreated returns UpdatedAt when present, otherwise CreatedAt,
// per the freshness rule of the data model.
func (s DocumentSummary) UpdatedAtOrCreated() time.Time {
	if s.UpdatedAt != nil {
		return *s.UpdatedAt
	}
	return s.CreatedAt
}

// DocumentMetadata is the superset of DocumentSummary returned by the
// get-metadata endpoint. Unknown remote fields are ignored by the decoder.
type DocumentMetadata struct {
	DocID           string     `json:"doc_id"`
	Title           string     `json:"title,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	Participants    []string   `json:"participants,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
	Labels          []string   `json:"labels,omitempty"`
}

// UpdatedAtOrCreated mirrors DocumentSummary's freshness rule.
func (m DocumentMetadata) UpdatedAtOrCreated() time.Time {
	if m.UpdatedAt != nil {
		return *m.UpdatedAt
	}
	return m.CreatedAt
}

// RawSegment is one element of the segments-shaped transcript.
type RawSegment struct {
	Speaker string   `json:"speaker,omitempty"`
	Start   RawStamp `json:"start"`
	End     RawStamp `json:"end,omitempty"`
	Text    string   `json:"text"`
}

// RawBlock is a single spoken block inside a monologue.
type RawBlock struct {
	Text string `json:"text"`
}

// RawMonologue is one element of the monologues-shaped transcript.
type RawMonologue struct {
	Speaker string     `json:"speaker,omitempty"`
	Start   RawStamp    `json:"start"`
	Blocks  []RawBlock `json:"blocks"`
}

// RawTranscript is the polymorphic remote payload: exactly one of
// Segments or Monologues is populated for any real document, but both
// fields are kept so the decoder can detect which shape was sent.
type RawTranscript struct {
	Segments   []RawSegment   `json:"segments,omitempty"`
	Monologues []RawMonologue `json:"monologues,omitempty"`
}

// Shape reports which of the two polymorphic transcript shapes is present.
func (t RawTranscript) Shape() TranscriptShape {
	if len(t.Segments) > 0 {
		return ShapeSegments
	}
	if len(t.Monologues) > 0 {
		return ShapeMonologues
	}
	return ShapeEmpty
}

// TranscriptShape tags which variant of RawTranscript is populated.
type TranscriptShape int

const (
	ShapeEmpty TranscriptShape = iota
	ShapeSegments
	ShapeMonologues
)

// Utterance is the canonical, shape-independent form of one spoken turn.
// TimestampHHMMSS is empty when the source timestamp could not be parsed.
type Utterance struct {
	Speaker         string
	TimestampHHMMSS string
	Text            string
}

// DefaultSpeaker is substituted when a raw segment/monologue has no speaker.
const DefaultSpeaker = "Speaker"

// Frontmatter is the structured header of every rendered document. It is
// the on-disk authority for freshness comparisons and collision resolution.
type Frontmatter struct {
	DocID            string     `yaml:"doc_id"`
	Source           string     `yaml:"source"`
	CreatedAt        time.Time  `yaml:"created_at"`
	RemoteUpdatedAt  *time.Time `yaml:"remote_updated_at,omitempty"`
	Title            string     `yaml:"title,omitempty"`
	Participants     []string   `yaml:"participants,omitempty"`
	DurationSeconds  *int       `yaml:"duration_seconds,omitempty"`
	Labels           []string   `yaml:"labels,omitempty"`
	Generator        string     `yaml:"generator"`
}

// RemoteUpdatedAtOrCreated mirrors the remote freshness rule on the local side.
func (f Frontmatter) RemoteUpdatedAtOrCreated() time.Time {
	if f.RemoteUpdatedAt != nil {
		return *f.RemoteUpdatedAt
	}
	return f.CreatedAt
}

// Source identifies the single remote collaborator brume speaks to.
const SourceGranola = "granola"

// RenderedDocument is the in-memory form of a rendered document before
// it is serialized to "---\n<yaml>---\n\n<body>".
type RenderedDocument struct {
	Frontmatter Frontmatter
	Body        string
}

// SyncSummary is the result of one sync or reindex run.
type SyncSummary struct {
	Listed  int
	Created int
	Updated int
	Skipped int
}

// SyncAction is the per-document decision made during a sync run.
type SyncAction int

const (
	ActionSkip SyncAction = iota
	ActionCreate
	ActionUpdate
)

// TextHit is one result row from the text index.
type TextHit struct {
	DocID string
	Title string
	Date  string
	Path  string
	Score float64
}

// VectorHit is one result row from the vector store.
type VectorHit struct {
	DocID string
	Path  string
	Score float32
}

// SearchResult is the presentation-layer shape shared by the CLI, TUI and
// MCP server, regardless of which backing store produced it.
type SearchResult struct {
	DocID string
	Title string
	Date  string
	Path  string
	Score float64
}

// Summary is the structured output of the summarizer collaborator.
type Summary struct {
	DocID       string
	KeyTopics   string
	ActionItems string
	Decisions   string
	FollowUps   string
}
