package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackcoderx/apistudio/pkg/codegen"
)

const animFPS = 30

// newSpinner creates a spinner with the dots animation.
func newSpinner() spinner.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{
			".   ",
			"..  ",
			"... ",
			"....",
		},
		FPS: time.Second / 5,
	}
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor)
	return sp
}

// newTextInput creates the request input line.
func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "GET https://api.example.com/users  or a saved request name"
	ti.Focus()
	ti.CharLimit = 4000
	ti.Width = 80
	ti.Prompt = ""

	// match the container background so the input reads as one block
	ti.TextStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(InputAreaBg)
	ti.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(DimColor).
		Background(InputAreaBg)
	ti.Cursor.Style = lipgloss.NewStyle().
		Foreground(AccentColor).
		Background(InputAreaBg)

	return ti
}

// newGlamourRenderer creates a glamour renderer for markdown.
func newGlamourRenderer(width int) *glamour.TermRenderer {
	if width < 40 {
		width = 40
	}
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	return renderer
}

// updateGlamourWidth recreates the glamour renderer with a new word wrap width.
func (m *Model) updateGlamourWidth(width int) {
	if r := newGlamourRenderer(width); r != nil {
		m.renderer = r
	}
}

// NewModel creates the initial TUI model.
func NewModel(opts Options) (Model, error) {
	if opts.Workspace == nil || opts.Client == nil {
		return Model{}, errors.New("tui needs a workspace and a client")
	}
	target := opts.DefaultTarget
	if target == "" {
		target = codegen.TargetCurl
	}

	return Model{
		textinput:    newTextInput(),
		spinner:      newSpinner(),
		renderer:     newGlamourRenderer(80),
		logs:         []logEntry{},
		workspace:    opts.Workspace,
		client:       opts.Client,
		envName:      opts.Environment,
		target:       target,
		inputHistory: []string{},
		historyIdx:   -1,
		animSpring:   harmonica.NewSpring(harmonica.FPS(animFPS), 6.0, 0.3),
		animTarget:   1,
	}, nil
}

// Init initializes the Bubble Tea model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

// animTick schedules the next animation frame.
func animTick() tea.Cmd {
	return tea.Tick(time.Second/animFPS, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}
