package tui

import (
	"context"
	"math"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackcoderx/apistudio/pkg/client"
	"github.com/blackcoderx/apistudio/pkg/model"
)

// sendRequest executes req in a tea.Cmd so the UI stays responsive.
func sendRequest(ctx context.Context, c *client.Client, req model.Request, vars []model.EnvironmentVariable) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.Send(ctx, req, vars)
		return responseMsg{resp: resp, err: err}
	}
}

// Update handles all messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		updatedModel, cmd, handled := m.handleKeyMsg(msg)
		m = updatedModel
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m = m.handleWindowResize(msg)

	case responseMsg:
		m = m.handleResponse(msg)

	case animTickMsg:
		if m.busy {
			m.animPos, m.animVel = m.animSpring.Update(m.animPos, m.animVel, m.animTarget)
			if math.Abs(m.animPos-m.animTarget) < 0.05 {
				m.animTarget = 1 - m.animTarget
			}
			cmds = append(cmds, animTick())
		}

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.busy {
		var cmd tea.Cmd
		m.textinput, cmd = m.textinput.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleWindowResize adjusts the layout when the terminal is resized.
func (m Model) handleWindowResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	inputHeight := 1
	footerHeight := 1
	margins := 3

	viewportHeight := m.height - inputHeight - footerHeight - margins
	if viewportHeight < 5 {
		viewportHeight = 5
	}

	if !m.ready {
		m.viewport = viewport.New(m.width-2, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width - 2
		m.viewport.Height = viewportHeight
	}

	badgeWidth := lipgloss.Width(TargetBadgeStyle.Render(m.target.Label()))
	m.textinput.Width = m.width - badgeWidth - 10
	m.updateGlamourWidth(m.width - 6)
	m.updateViewportContent()

	return m
}

// handleResponse records the outcome of a send and unlocks the input.
func (m Model) handleResponse(msg responseMsg) Model {
	m.busy = false
	if m.cancelSend != nil {
		m.cancelSend()
		m.cancelSend = nil
	}
	m.animPos, m.animVel = 0, 0

	if msg.err != nil {
		m.logs = append(m.logs, logEntry{Kind: entryError, Content: msg.err.Error()})
	} else {
		m.lastBody, _ = client.FormatData(msg.resp.Data)
		m.logs = append(m.logs, logEntry{Kind: entryResponse, Content: client.FormatResponse(msg.resp)})
	}
	m.updateViewportContent()
	return m
}
