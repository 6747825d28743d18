package tui

import (
	"fmt"
	"strings"

	"github.com/brume-cli/brume/internal/core/domain"
)

// resultList displays search results in a navigable list.
type resultList struct {
	results  []domain.SearchResult
	selected int
	styles   *Styles
	width    int
	height   int
}

func newResultList(s *Styles) *resultList {
	return &resultList{styles: s, width: 80, height: 10}
}

func (r *resultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.results)*2+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))), "")

	visible := (r.height - 4) / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.results) {
		end = len(r.results)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}
	return strings.Join(lines, "\n")
}

func (r *resultList) renderResult(index int, res *domain.SearchResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	title := res.Title
	if title == "" {
		title = "(untitled)"
	}
	maxTitle := r.width - 24
	if maxTitle < 10 {
		maxTitle = 10
	}
	if len(title) > maxTitle {
		title = title[:maxTitle-3] + "..."
	}

	score := fmt.Sprintf("%.3f", res.Score)
	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s  %s", indicator, maxTitle, title, res.Date, score))
	} else {
		titleLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitle, title)) +
			r.styles.Muted.Render(res.Date+"  "+score)
	}
	return titleLine
}

func (r *resultList) SetResults(results []domain.SearchResult) {
	r.results = results
	r.selected = 0
}

func (r *resultList) SelectedResult() *domain.SearchResult {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

func (r *resultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

func (r *resultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

func (r *resultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}
