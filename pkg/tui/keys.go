package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackcoderx/apistudio/pkg/codegen"
)

// handleKeyMsg processes keyboard input. handled is false for keys that
// belong to the text input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	var cmd tea.Cmd
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true

	case "esc":
		if m.busy {
			m, cmd = m.handleCancel()
			return m, cmd, true
		}
		return m, tea.Quit, true

	case "ctrl+l":
		m, cmd = m.handleClearScreen()
	case "ctrl+y":
		m, cmd = m.handleCopy()
	case "ctrl+t":
		m, cmd = m.handleCycleTarget()
	case "ctrl+r":
		m, cmd = m.handleReload()
	case "ctrl+u":
		m, cmd = m.handleClearInput()
	case "up":
		m, cmd = m.handleHistoryUp()
	case "down":
		m, cmd = m.handleHistoryDown()
	case "enter":
		m, cmd = m.handleEnter()
	case "pgup", "pgdown", "home", "end":
		m.viewport, cmd = m.viewport.Update(msg)
	default:
		return m, nil, false
	}
	return m, cmd, true
}

// handleCancel aborts the request in flight.
func (m Model) handleCancel() (Model, tea.Cmd) {
	if m.cancelSend != nil {
		m.cancelSend()
	}
	return m, nil
}

// handleClearScreen clears all logs.
func (m Model) handleClearScreen() (Model, tea.Cmd) {
	m.logs = []logEntry{}
	m.updateViewportContent()
	return m, nil
}

// handleCopy copies the last snippet, or the last response body when no
// snippet has been generated yet.
func (m Model) handleCopy() (Model, tea.Cmd) {
	text := m.lastSnippet
	what := m.target.Label() + " snippet"
	if text == "" {
		text = m.lastBody
		what = "response body"
	}
	if text == "" {
		return m, nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.logs = append(m.logs, logEntry{Kind: entryError, Content: fmt.Sprintf("copy failed: %v", err)})
	} else {
		m.logs = append(m.logs, logEntry{Kind: entryInfo, Content: "copied " + what})
	}
	m.updateViewportContent()
	return m, nil
}

// handleCycleTarget switches the code target and shows the last request in it.
func (m Model) handleCycleTarget() (Model, tea.Cmd) {
	m.target = m.target.Next()
	if m.lastRequest == nil {
		m.lastSnippet = ""
		return m, nil
	}
	vars, err := m.workspace.VariablesFor(m.envName)
	if err != nil {
		m.logs = append(m.logs, logEntry{Kind: entryError, Content: err.Error()})
		m.updateViewportContent()
		return m, nil
	}
	snippet, err := codegen.Emit(m.target, *m.lastRequest, vars)
	if err != nil {
		m.logs = append(m.logs, logEntry{Kind: entryError, Content: err.Error()})
	} else {
		m.lastSnippet = snippet
		m.logs = append(m.logs, logEntry{Kind: entrySnippet, Content: snippet, Lang: snippetLang(m.target)})
	}
	m.updateViewportContent()
	return m, nil
}

// handleReload re-reads collections and environments from disk.
func (m Model) handleReload() (Model, tea.Cmd) {
	if err := m.workspace.Reload(); err != nil {
		m.logs = append(m.logs, logEntry{Kind: entryError, Content: err.Error()})
	} else {
		m.logs = append(m.logs, logEntry{Kind: entryInfo, Content: "workspace reloaded"})
	}
	m.updateViewportContent()
	return m, nil
}

// handleClearInput clears the current input and resets history navigation.
func (m Model) handleClearInput() (Model, tea.Cmd) {
	m.textinput.SetValue("")
	m.historyIdx = -1
	return m, nil
}

// handleHistoryUp navigates backwards through input history.
func (m Model) handleHistoryUp() (Model, tea.Cmd) {
	if m.busy || len(m.inputHistory) == 0 {
		return m, nil
	}

	if m.historyIdx == -1 {
		m.savedInput = m.textinput.Value()
		m.historyIdx = len(m.inputHistory) - 1
	} else if m.historyIdx > 0 {
		m.historyIdx--
	}

	m.textinput.SetValue(m.inputHistory[m.historyIdx])
	m.textinput.CursorEnd()
	return m, nil
}

// handleHistoryDown navigates forwards through input history.
func (m Model) handleHistoryDown() (Model, tea.Cmd) {
	if m.busy || m.historyIdx == -1 {
		return m, nil
	}

	if m.historyIdx < len(m.inputHistory)-1 {
		m.historyIdx++
		m.textinput.SetValue(m.inputHistory[m.historyIdx])
	} else {
		m.historyIdx = -1
		m.textinput.SetValue(m.savedInput)
	}

	m.textinput.CursorEnd()
	return m, nil
}

// handleEnter sends the request named or described by the input line.
// It is ignored while a request is in flight.
func (m Model) handleEnter() (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	line := strings.TrimSpace(m.textinput.Value())
	if line == "" {
		return m, nil
	}

	m.inputHistory = append(m.inputHistory, line)
	m.historyIdx = -1
	m.savedInput = ""
	m.textinput.SetValue("")

	req, err := parseInput(line, m.workspace)
	if err != nil {
		m.logs = append(m.logs, logEntry{Kind: entryError, Content: err.Error()})
		m.updateViewportContent()
		return m, nil
	}
	vars, err := m.workspace.VariablesFor(m.envName)
	if err != nil {
		m.logs = append(m.logs, logEntry{Kind: entryError, Content: err.Error()})
		m.updateViewportContent()
		return m, nil
	}

	m.lastRequest = &req
	m.lastSnippet = ""
	m.logs = append(m.logs, logEntry{Kind: entryRequest, Content: string(req.Method) + " " + req.URL})

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelSend = cancel
	m.busy = true
	m.updateViewportContent()

	return m, tea.Batch(
		m.spinner.Tick,
		animTick(),
		sendRequest(ctx, m.client, req, vars),
	)
}

// snippetLang names the fence language for a target.
func snippetLang(t codegen.Target) string {
	switch t {
	case codegen.TargetCurl:
		return "bash"
	case codegen.TargetPython:
		return "python"
	default:
		return "javascript"
	}
}
