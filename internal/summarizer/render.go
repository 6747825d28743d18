package summarizer

import (
	"fmt"

	"github.com/brume-cli/brume/internal/core/domain"
)

// RenderMarkdown formats a Summary as markdown for a
// <data-root>/summaries/<base_name>.md file. It does not write the file,
// and no brume command calls it.
func RenderMarkdown(title string, s domain.Summary) []byte {
	return []byte(fmt.Sprintf(
		"# Summary: %s\n\n## Key Topics\n%s\n\n## Action Items\n%s\n\n## Decisions\n%s\n\n## Follow-ups\n%s\n",
		title, orNone(s.KeyTopics), orNone(s.ActionItems), orNone(s.Decisions), orNone(s.FollowUps),
	))
}

func orNone(s string) string {
	if s == "" {
		return "None."
	}
	return s
}
