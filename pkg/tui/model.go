package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"

	"github.com/blackcoderx/apistudio/pkg/client"
	"github.com/blackcoderx/apistudio/pkg/codegen"
	"github.com/blackcoderx/apistudio/pkg/model"
	"github.com/blackcoderx/apistudio/pkg/storage"
)

// Options wires the TUI to an opened workspace and an HTTP client.
type Options struct {
	Workspace     *storage.Workspace
	Client        *client.Client
	DefaultTarget codegen.Target
	// Environment overrides the active environment when non-empty.
	Environment string
}

// entryKind classifies a line of the log.
type entryKind int

const (
	entryRequest entryKind = iota
	entryResponse
	entrySnippet
	entryInfo
	entryError
)

// logEntry represents a single block in the log
type logEntry struct {
	Kind    entryKind
	Content string
	// Lang names the snippet language for highlighting
	Lang string
}

// Model is the Bubble Tea model for the interactive client.
type Model struct {
	viewport  viewport.Model
	textinput textinput.Model
	spinner   spinner.Model
	renderer  *glamour.TermRenderer
	logs      []logEntry
	width     int
	height    int
	ready     bool

	workspace *storage.Workspace
	client    *client.Client
	envName   string
	target    codegen.Target

	busy        bool
	cancelSend  context.CancelFunc
	lastRequest *model.Request
	lastSnippet string
	lastBody    string

	inputHistory []string // history of user inputs
	historyIdx   int      // current position in history (-1 = new input)
	savedInput   string   // saved input when navigating history

	// Animation state (harmonica spring for the pulsing status circle)
	animSpring harmonica.Spring
	animPos    float64
	animVel    float64
	animTarget float64
}

// responseMsg carries the outcome of a send
type responseMsg struct {
	resp *model.Response
	err  error
}

// animTickMsg drives the harmonica spring animation
type animTickMsg time.Time
