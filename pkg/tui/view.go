package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the entire TUI to a string.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	b.WriteString(m.renderInputArea())
	b.WriteString("\n")

	b.WriteString(m.renderFooter())

	return b.String()
}

// updateViewportContent updates the viewport with the current log entries.
// It preserves scroll position if the user has scrolled up.
func (m *Model) updateViewportContent() {
	var content strings.Builder
	for _, entry := range m.logs {
		content.WriteString(m.formatLogEntry(entry))
		content.WriteString("\n\n")
	}

	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(content.String())
	if atBottom || m.busy {
		m.viewport.GotoBottom()
	}
}

// formatLogEntry formats a single log entry for display.
func (m *Model) formatLogEntry(entry logEntry) string {
	contentWidth := m.width - 6
	if contentWidth < 40 {
		contentWidth = 40
	}

	switch entry.Kind {
	case entryRequest:
		return RequestStyle.Width(contentWidth).Render(RequestPrefix + entry.Content)

	case entryResponse:
		if m.renderer != nil {
			if rendered, err := m.renderer.Render(entry.Content); err == nil {
				return strings.TrimSpace(rendered)
			}
		}
		return entry.Content

	case entrySnippet:
		return HighlightCode(m.renderer, entry.Content, entry.Lang)

	case entryError:
		return ErrorStyle.Render(ErrorPrefix + entry.Content)

	case entryInfo:
		return InfoStyle.Render(InfoPrefix + entry.Content)

	default:
		return entry.Content
	}
}

// renderInputArea renders the input line with the code target badge.
func (m Model) renderInputArea() string {
	badge := TargetBadgeStyle.Render(m.target.Label())
	input := InputAreaStyle.Width(m.width - lipgloss.Width(badge) - 4).Render(m.textinput.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, input, " ", badge)
}

// renderStatus renders the pulsing circle shown while a request is in flight.
func (m Model) renderStatus() string {
	// the spring position fades the circle between dim and accent
	color := DimColor
	if m.animPos > 0.5 {
		color = AccentColor
	}
	return lipgloss.NewStyle().Foreground(color).Render("●") + " " + m.spinner.View()
}

// renderFooter renders the environment on the left and shortcuts on the right.
func (m Model) renderFooter() string {
	var left string
	if m.busy {
		left = m.renderStatus() + " " + ShortcutKeyStyle.Render("esc") + ShortcutDescStyle.Render(" cancel")
	} else {
		left = FooterAppNameStyle.Render("apistudio") + FooterInfoStyle.Render(m.environmentLabel())
	}

	var parts []string
	if !m.busy {
		parts = append(parts, ShortcutKeyStyle.Render("↑↓")+ShortcutDescStyle.Render(" history"))
	}
	parts = append(parts, ShortcutKeyStyle.Render("ctrl+t")+ShortcutDescStyle.Render(" code"))
	parts = append(parts, ShortcutKeyStyle.Render("ctrl+y")+ShortcutDescStyle.Render(" copy"))
	parts = append(parts, ShortcutKeyStyle.Render("ctrl+r")+ShortcutDescStyle.Render(" reload"))
	parts = append(parts, ShortcutKeyStyle.Render("ctrl+l")+ShortcutDescStyle.Render(" clear"))
	right := strings.Join(parts, "    ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}

	return FooterStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// environmentLabel names the environment whose variables are applied.
func (m Model) environmentLabel() string {
	if m.envName != "" {
		return m.envName
	}
	if env, ok := m.workspace.ActiveEnvironment(); ok {
		return env.Name
	}
	return "no environment"
}
