package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brume-cli/brume/internal/core/domain"
)

func TestRender_EmptyTranscriptBody(t *testing.T) {
	meta := domain.DocumentMetadata{DocID: "doc-1", Title: "Empty Meeting", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	rendered := Render(meta, domain.RawTranscript{})

	assert.Equal(t, "doc-1", rendered.Frontmatter.DocID)
	assert.Contains(t, rendered.Body, "_No transcript content available._")
}

func TestRender_SegmentsShapeWithNumericTimestamp(t *testing.T) {
	meta := domain.DocumentMetadata{DocID: "doc-1", Title: "Standup", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	raw := domain.RawTranscript{Segments: []domain.RawSegment{
		{Speaker: "Alice", Start: numericStamp(65), Text: "Let's get started."},
	}}

	rendered := Render(meta, raw)

	assert.Contains(t, rendered.Body, "**Alice (00:01:05):** Let's get started.")
}

func TestRender_SegmentsShapeWithStringTimestamp(t *testing.T) {
	meta := domain.DocumentMetadata{DocID: "doc-1", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	raw := domain.RawTranscript{Segments: []domain.RawSegment{
		{Speaker: "Bob", Start: stringStamp("00:02:30.500"), Text: "Sounds good."},
	}}

	rendered := Render(meta, raw)

	assert.Contains(t, rendered.Body, "**Bob (00:02:30):** Sounds good.")
}

func TestRender_MonologuesShapeFlattensBlocks(t *testing.T) {
	meta := domain.DocumentMetadata{DocID: "doc-1", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	raw := domain.RawTranscript{Monologues: []domain.RawMonologue{
		{Speaker: "Carol", Start: numericStamp(0), Blocks: []domain.RawBlock{{Text: "First."}, {Text: "Second."}}},
	}}

	rendered := Render(meta, raw)

	assert.Contains(t, rendered.Body, "**Carol (00:00:00):** First.")
	assert.Contains(t, rendered.Body, "**Carol (00:00:00):** Second.")
}

func TestRender_MissingSpeakerUsesDefault(t *testing.T) {
	meta := domain.DocumentMetadata{DocID: "doc-1", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	raw := domain.RawTranscript{Segments: []domain.RawSegment{{Start: numericStamp(1), Text: "..."}}}

	rendered := Render(meta, raw)

	assert.Contains(t, rendered.Body, domain.DefaultSpeaker)
}

func TestRender_UnparseableTimestampOmitsParens(t *testing.T) {
	meta := domain.DocumentMetadata{DocID: "doc-1", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	raw := domain.RawTranscript{Segments: []domain.RawSegment{
		{Speaker: "Dana", Start: stringStamp("not-a-timestamp"), Text: "Hi."},
	}}

	rendered := Render(meta, raw)

	assert.Contains(t, rendered.Body, "**Dana:** Hi.")
}

func TestRender_IsDeterministic(t *testing.T) {
	meta := domain.DocumentMetadata{DocID: "doc-1", Title: "Retro", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	raw := domain.RawTranscript{Segments: []domain.RawSegment{{Speaker: "Eve", Start: numericStamp(5), Text: "Went well."}}}

	first := Render(meta, raw)
	second := Render(meta, raw)

	assert.Equal(t, first, second)
}

func numericStamp(seconds float64) domain.RawStamp {
	return domain.RawStamp{Seconds: seconds, IsPresent: true}
}

func stringStamp(value string) domain.RawStamp {
	return domain.RawStamp{String: value, IsString: true, IsPresent: true}
}
