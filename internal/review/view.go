package review

import (
	"fmt"
	"strings"

	"github.com/HangZhouDaYaZhiTang/migaudit/internal/audit"
	"github.com/muesli/reflow/truncate"
)

const convertedMarker = "(converted)"

// View implements tea.Model.
func (m Model) View() string {
	s := m.opts.Styles
	var b strings.Builder

	title := fmt.Sprintf("migaudit review: %d files, %d keep, %d removable (%s)",
		m.summary.Total, m.summary.Keep, m.summary.Removable, m.summary.PercentString())
	b.WriteString(s.Title.Render(title))
	b.WriteString("\n")

	removableTab := fmt.Sprintf(" Removable (%d) ", len(m.removable))
	keepTab := fmt.Sprintf(" Keep (%d) ", len(m.keep))
	if m.tab == TabRemovable {
		removableTab = s.Selected.Render(removableTab)
		keepTab = s.Muted.Render(keepTab)
	} else {
		removableTab = s.Muted.Render(removableTab)
		keepTab = s.Selected.Render(keepTab)
	}
	b.WriteString(removableTab + " " + keepTab + "\n\n")

	if len(m.visible) == 0 {
		b.WriteString(s.Muted.Render("  no matching files"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}

	if m.editing || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	help := "tab switch list · j/k move · / filter · esc clear · q quit"
	if m.opts.ScriptPath != "" {
		help += " · script: " + m.opts.ScriptPath
	}
	b.WriteString(s.Muted.Render(help))
	return b.String()
}

// renderList renders one line per visible path.
func (m Model) renderList() string {
	s := m.opts.Styles
	width := m.width
	if width <= 0 {
		width = 80
	}

	lines := make([]string, 0, len(m.visible))
	for i, p := range m.visible {
		label := p
		if m.opts.ShowIcons {
			label = iconWithSpace(fileIcon(p)) + label
		}
		if m.tab == TabRemovable && audit.InConverted(p, m.opts.ConvertedDirs) {
			label += " " + convertedMarker
		}
		label = truncate.StringWithTail(label, uint(max(width-4, 10)), "…") //nolint:gosec

		switch {
		case i == m.cursor:
			lines = append(lines, "> "+s.Selected.Render(label))
		case m.tab == TabKeep:
			lines = append(lines, "  "+s.Keep.Render(label))
		default:
			lines = append(lines, "  "+s.Removable.Render(label))
		}
	}
	return strings.Join(lines, "\n")
}
