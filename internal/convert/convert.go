// Package convert normalizes a raw, polymorphic remote transcript plus its
// document metadata into a canonical rendered document (frontmatter + body).
package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/brume-cli/brume/internal/core/domain"
)

const generator = "brume 0.1.0"

// Render produces the frontmatter and body for a document given its raw
// transcript and metadata. It is deterministic: identical inputs always
// produce byte-identical output.
func Render(meta domain.DocumentMetadata, raw domain.RawTranscript) domain.RenderedDocument {
	fm := buildFrontmatter(meta)
	utterances := normalize(raw)
	body := buildBody(meta, utterances)
	return domain.RenderedDocument{Frontmatter: fm, Body: body}
}

func buildFrontmatter(meta domain.DocumentMetadata) domain.Frontmatter {
	fm := domain.Frontmatter{
		DocID:     meta.DocID,
		Source:    domain.SourceGranola,
		CreatedAt: meta.CreatedAt,
		Title:     meta.Title,
		Generator: generator,
	}
	if meta.UpdatedAt != nil {
		fm.RemoteUpdatedAt = meta.UpdatedAt
	}
	if len(meta.Participants) > 0 {
		fm.Participants = meta.Participants
	}
	if meta.DurationSeconds != nil {
		fm.DurationSeconds = meta.DurationSeconds
	}
	if len(meta.Labels) > 0 {
		fm.Labels = meta.Labels
	}
	return fm
}

// normalize detects the transcript's shape and produces the canonical,
// shape-independent utterance sequence. Downstream consumers never see
// segments or monologues directly.
func normalize(raw domain.RawTranscript) []domain.Utterance {
	switch raw.Shape() {
	case domain.ShapeSegments:
		out := make([]domain.Utterance, 0, len(raw.Segments))
		for _, seg := range raw.Segments {
			out = append(out, domain.Utterance{
				Speaker:         speakerOrDefault(seg.Speaker),
				TimestampHHMMSS: normalizeStamp(seg.Start),
				Text:            seg.Text,
			})
		}
		return out
	case domain.ShapeMonologues:
		var out []domain.Utterance
		for _, mono := range raw.Monologues {
			stamp := normalizeStamp(mono.Start)
			speaker := speakerOrDefault(mono.Speaker)
			for _, block := range mono.Blocks {
				out = append(out, domain.Utterance{
					Speaker:         speaker,
					TimestampHHMMSS: stamp,
					Text:            block.Text,
				})
			}
		}
		return out
	default:
		return nil
	}
}

func speakerOrDefault(s string) string {
	if s == "" {
		return domain.DefaultSpeaker
	}
	return s
}

// normalizeStamp converts a RawStamp to "HH:MM:SS", or "" when the value
// could not be parsed into either supported shape.
func normalizeStamp(s domain.RawStamp) string {
	if !s.IsPresent {
		return ""
	}
	if s.IsString {
		// "HH:MM:SS.sss" -> drop subseconds; anything else is unparseable.
		parts := strings.SplitN(s.String, ".", 2)
		head := parts[0]
		segs := strings.Split(head, ":")
		if len(segs) != 3 {
			return ""
		}
		for _, seg := range segs {
			if _, err := strconv.Atoi(seg); err != nil {
				return ""
			}
		}
		return head
	}
	if math.IsNaN(s.Seconds) || math.IsInf(s.Seconds, 0) || s.Seconds < 0 {
		return ""
	}
	return formatHHMMSS(int(math.Floor(s.Seconds)))
}

func formatHHMMSS(totalSeconds int) string {
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	sec := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

const noTranscriptBody = "_No transcript content available._"

func buildBody(meta domain.DocumentMetadata, utterances []domain.Utterance) string {
	var sb strings.Builder

	title := meta.Title
	if title == "" {
		title = "Untitled Meeting"
	}
	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(metadataLine(meta))
	sb.WriteString("\n\n")

	if len(utterances) == 0 {
		sb.WriteString(noTranscriptBody)
		return sb.String()
	}

	for i, u := range utterances {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("**")
		sb.WriteString(u.Speaker)
		if u.TimestampHHMMSS != "" {
			sb.WriteString(" (")
			sb.WriteString(u.TimestampHHMMSS)
			sb.WriteString(")")
		}
		sb.WriteString(":** ")
		sb.WriteString(u.Text)
	}
	return sb.String()
}

func metadataLine(meta domain.DocumentMetadata) string {
	var parts []string
	parts = append(parts, "Date: "+meta.CreatedAt.UTC().Format("2006-01-02"))
	if meta.DurationSeconds != nil {
		parts = append(parts, "Duration: "+strconv.Itoa(*meta.DurationSeconds/60)+"m")
	}
	if len(meta.Participants) > 0 {
		parts = append(parts, "Participants: "+strings.Join(meta.Participants, ", "))
	}
	return "_" + strings.Join(parts, " · ") + "_"
}
