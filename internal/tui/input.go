package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// searchInput wraps a bubbles textinput with search-specific styling.
type searchInput struct {
	model  textinput.Model
	styles *Styles
}

func newSearchInput(s *Styles) *searchInput {
	ti := textinput.New()
	ti.Placeholder = "search your meeting transcripts..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50
	return &searchInput{model: ti, styles: s}
}

func (i *searchInput) Init() tea.Cmd {
	return textinput.Blink
}

func (i *searchInput) Update(msg tea.Msg) (*searchInput, tea.Cmd) {
	var cmd tea.Cmd
	i.model, cmd = i.model.Update(msg)
	return i, cmd
}

func (i *searchInput) View() string {
	label := i.styles.Title.Render("Query: ")
	field := i.styles.InputField.Render(i.model.View())
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

func (i *searchInput) Value() string     { return i.model.Value() }
func (i *searchInput) SetValue(v string) { i.model.SetValue(v) }
func (i *searchInput) Focus() tea.Cmd    { return i.model.Focus() }
func (i *searchInput) Blur()             { i.model.Blur() }
func (i *searchInput) Focused() bool     { return i.model.Focused() }

func (i *searchInput) SetWidth(width int) {
	w := width - 12
	if w < 20 {
		w = 20
	}
	i.model.Width = w
}
