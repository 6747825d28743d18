package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type barState string

const (
	stateReady     barState = "ready"
	stateSearching barState = "searching"
	stateError     barState = "error"
	stateResults   barState = "results"
)

// statusBar shows the current mode, result count, and keybinding hints.
type statusBar struct {
	styles      *Styles
	keymap      *KeyMap
	state       barState
	message     string
	resultCount int
	semantic    bool
	width       int
}

func newStatusBar(s *Styles, km *KeyMap) *statusBar {
	return &statusBar{styles: s, keymap: km, state: stateReady, width: 80}
}

func (b *statusBar) View() string {
	left := b.renderLeft()
	right := b.renderRight()
	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *statusBar) renderLeft() string {
	mode := "keyword"
	if b.semantic {
		mode = "semantic"
	}
	switch b.state {
	case stateSearching:
		return b.styles.Muted.Render("searching (" + mode + ")...")
	case stateError:
		if b.message != "" {
			return b.styles.Error.Render(fmt.Sprintf("error: %s", b.message))
		}
		return b.styles.Error.Render("error")
	case stateResults:
		return b.styles.Normal.Render(fmt.Sprintf("%d results (%s)", b.resultCount, mode))
	default:
		return b.styles.Muted.Render("ready (" + mode + ")")
	}
}

func (b *statusBar) renderRight() string {
	var bindings []key.Binding
	if b.state == stateResults && b.resultCount > 0 {
		bindings = b.keymap.ResultsHelp()
	} else {
		bindings = b.keymap.InputHelp()
	}
	hints := make([]string, 0, len(bindings))
	for _, bind := range bindings {
		h := bind.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

func (b *statusBar) SetWidth(w int) { b.width = w }
