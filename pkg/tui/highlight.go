package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// HighlightCode wraps code in a fenced block and renders it with glamour.
// The code is returned unchanged if rendering fails.
func HighlightCode(renderer *glamour.TermRenderer, code, lang string) string {
	if renderer == nil {
		return code
	}

	var sb strings.Builder
	sb.WriteString("```")
	sb.WriteString(lang)
	sb.WriteString("\n")
	sb.WriteString(strings.TrimRight(code, "\n"))
	sb.WriteString("\n```")

	out, err := renderer.Render(sb.String())
	if err != nil {
		return code
	}
	return strings.TrimSpace(out)
}
