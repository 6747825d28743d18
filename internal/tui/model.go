package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/core/ports/driving"
)

// mode tracks which part of the single-view UI has input focus.
type mode int

const (
	modeInput mode = iota
	modeResults
	modeDocument
)

// Model is brume's search TUI: a query input, a results list, a status
// bar, and a read-only document pager entered from a selected result.
// Structurally this is the teacher's views/search.View and
// views/doccontent.View collapsed into one model, since brume's TUI
// has no menu to navigate away to.
type Model struct {
	styles *Styles
	keymap *KeyMap
	input  *searchInput
	list   *resultList
	status *statusBar

	search driving.SearchService
	ctx    context.Context

	mode     mode
	semantic bool
	width    int
	height   int
	ready    bool
	err      error

	docBody   string
	docLines  []string
	docScroll int
}

// New builds the search TUI model over a SearchService.
func New(ctx context.Context, search driving.SearchService) *Model {
	s := DefaultStyles()
	km := DefaultKeyMap()
	return &Model{
		styles: s,
		keymap: km,
		input:  newSearchInput(s),
		list:   newResultList(s),
		status: newStatusBar(s, km),
		search: search,
		ctx:    ctx,
		mode:   modeInput,
		width:  80,
		height: 24,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.input.Init()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setDimensions(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case searchCompleted:
		m.handleSearchCompleted(msg)
		return m, nil

	case documentLoaded:
		if msg.err != nil {
			m.err = msg.err
			m.status.state = stateError
			m.status.message = msg.err.Error()
			return m, nil
		}
		m.docBody = msg.body
		m.wrapDocument()
		m.docScroll = 0
		return m, nil

	case errorOccurred:
		m.err = msg.err
		m.status.state = stateError
		m.status.message = msg.err.Error()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case modeDocument:
		return m.handleDocumentKey(msg)
	case modeResults:
		return m.handleResultsKey(msg)
	default:
		return m.handleInputKey(msg)
	}
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		query := m.input.Value()
		if query == "" {
			return m, nil
		}
		m.status.state = stateSearching
		m.input.Blur()
		return m, m.performSearch(query)
	case tea.KeyTab:
		m.semantic = !m.semantic
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		res := m.list.SelectedResult()
		if res == nil {
			return m, nil
		}
		m.mode = modeDocument
		return m, m.loadDocument(res.DocID)
	case tea.KeyUp:
		m.list.MoveUp()
		return m, nil
	case tea.KeyDown:
		m.list.MoveDown()
		return m, nil
	}
	switch msg.String() {
	case "k":
		m.list.MoveUp()
	case "j":
		m.list.MoveDown()
	case "n":
		m.mode = modeInput
		m.input.Focus()
		m.input.SetValue("")
	case "tab":
		m.semantic = !m.semantic
	}
	return m, nil
}

func (m *Model) handleDocumentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeResults
		return m, nil
	case "up", "k":
		if m.docScroll > 0 {
			m.docScroll--
		}
	case "down", "j":
		if m.docScroll < m.maxDocScroll() {
			m.docScroll++
		}
	case "g":
		m.docScroll = 0
	case "G":
		m.docScroll = m.maxDocScroll()
	}
	return m, nil
}

func (m *Model) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		var (
			results []domain.SearchResult
			err     error
		)
		if m.semantic {
			results, err = m.search.SearchSemantic(m.ctx, query, 20)
		} else {
			results, err = m.search.SearchText(m.ctx, query, 20)
		}
		return searchCompleted{results: results, err: err}
	}
}

func (m *Model) loadDocument(docID string) tea.Cmd {
	return func() tea.Msg {
		body, err := m.search.GetDocument(m.ctx, docID)
		return documentLoaded{docID: docID, body: body, err: err}
	}
}

func (m *Model) handleSearchCompleted(msg searchCompleted) {
	if msg.err != nil {
		m.err = msg.err
		m.status.state = stateError
		m.status.message = msg.err.Error()
		return
	}
	m.err = nil
	m.list.SetResults(msg.results)
	m.status.state = stateResults
	m.status.resultCount = len(msg.results)
	m.status.semantic = m.semantic
	m.mode = modeResults
}

func (m *Model) wrapDocument() {
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	var lines []string
	for _, line := range strings.Split(m.docBody, "\n") {
		for len(line) > width {
			lines = append(lines, line[:width])
			line = line[width:]
		}
		lines = append(lines, line)
	}
	m.docLines = lines
}

func (m *Model) docVisibleLines() int {
	n := m.height - 6
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) maxDocScroll() int {
	n := len(m.docLines) - m.docVisibleLines()
	if n < 0 {
		n = 0
	}
	return n
}

func (m *Model) setDimensions(width, height int) {
	m.width, m.height, m.ready = width, height, true
	m.status.semantic = m.semantic
	m.input.SetWidth(width)
	m.list.SetDimensions(width, height-10)
	m.status.SetWidth(width)
	m.wrapDocument()
}

func (m *Model) View() string {
	if !m.ready {
		return "initialising..."
	}
	if m.mode == modeDocument {
		return m.renderDocument()
	}

	sections := []string{m.styles.Title.Render("brume"), "", m.input.View(), ""}
	if m.err != nil && m.mode != modeResults {
		sections = append(sections, m.styles.Error.Render("error: "+m.err.Error()), "")
	}
	sections = append(sections, m.list.View(), "", m.status.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderDocument() string {
	var b strings.Builder
	title := "document"
	if res := m.list.SelectedResult(); res != nil && res.Title != "" {
		title = res.Title
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", minInt(m.width-4, 60)))
	b.WriteString("\n\n")

	if len(m.docLines) == 0 {
		b.WriteString(m.styles.Muted.Render("(loading...)"))
	} else {
		visible := m.docVisibleLines()
		end := m.docScroll + visible
		if end > len(m.docLines) {
			end = len(m.docLines)
		}
		for i := m.docScroll; i < end; i++ {
			b.WriteString(m.styles.Normal.Render(m.docLines[i]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(fmt.Sprintf("[↑/↓] scroll  [g/G] top/bottom  [esc] back  (%d/%d lines)", m.docScroll+1, len(m.docLines))))
	return b.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
