// Package review is an interactive browser for a scan result. It lets a
// reviewer flip between the keep and removable sets and filter them before
// deciding what to uncomment in the cleanup script.
package review

import (
	"strings"

	"github.com/HangZhouDaYaZhiTang/migaudit/internal/audit"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/theme"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Tab selects which set is listed.
type Tab int

const (
	// TabRemovable lists files proposed for deletion.
	TabRemovable Tab = iota
	// TabKeep lists files that stay.
	TabKeep
)

// Options configures the browser.
type Options struct {
	ConvertedDirs []string
	Styles        theme.Styles
	ShowIcons     bool
	ScriptPath    string
}

// Model is the bubbletea model of the browser.
type Model struct {
	removable []string
	keep      []string
	summary   audit.Summary
	opts      Options

	tab      Tab
	cursor   int
	visible  []string
	filter   textinput.Model
	editing  bool
	width    int
	height   int
	viewport viewport.Model
}

// New builds a browser over result. Both sets are shown sorted.
func New(result audit.ScanResult, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "filter paths..."
	ti.CharLimit = 200
	ti.Prompt = "/ "

	m := Model{
		removable: audit.Sorted(result.Removable),
		keep:      audit.Sorted(result.Keep),
		summary:   audit.Summarize(result),
		opts:      opts,
		filter:    ti,
		viewport:  viewport.New(80, 20),
	}
	m.applyFilter()
	m.syncViewport()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Tab returns the active tab.
func (m Model) Tab() Tab { return m.tab }

// Visible returns the paths listed under the current tab and filter.
func (m Model) Visible() []string { return m.visible }

// Selected returns the path under the cursor, or "" when the list is empty.
func (m Model) Selected() string {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return ""
	}
	return m.visible[m.cursor]
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-6, 3)
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "left", "right", "h", "l":
			if m.tab == TabRemovable {
				m.tab = TabKeep
			} else {
				m.tab = TabRemovable
			}
			m.cursor = 0
			m.applyFilter()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case "g", "home":
			m.cursor = 0
		case "G", "end":
			m.cursor = max(len(m.visible)-1, 0)
		case "/":
			m.editing = true
			m.filter.Focus()
			return m, textinput.Blink
		case "esc":
			if m.filter.Value() != "" {
				m.filter.SetValue("")
				m.applyFilter()
			}
		}
		m.syncViewport()
		return m, nil
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEsc:
		m.editing = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		m.syncViewport()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	m.syncViewport()
	return m, cmd
}

// applyFilter recomputes the visible list; matching is case-insensitive.
func (m *Model) applyFilter() {
	source := m.removable
	if m.tab == TabKeep {
		source = m.keep
	}
	term := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	visible := make([]string, 0, len(source))
	for _, p := range source {
		if term == "" || strings.Contains(strings.ToLower(p), term) {
			visible = append(visible, p)
		}
	}
	m.visible = visible
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

// syncViewport renders the list into the viewport and scrolls the cursor
// into view.
func (m *Model) syncViewport() {
	m.viewport.SetContent(m.renderList())
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}
