package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/internal/session"
)

const (
	homeInput = iota
	rivalInput
)

const nameLimit = 24

type model struct {
	ctx      context.Context
	logger   *slog.Logger
	uSession uSession
	changes  <-chan struct{}
	results  <-chan session.Result

	snapshot session.Snapshot
	result   *session.Result
	notice   string

	modeCursor int
	side       entity.Marker
	inputs     [2]textinput.Model
	focus      int
	cursor     int
	spinner    spinner.Model

	handlers map[entity.SessionState]func(msg tea.KeyMsg) tea.Cmd
}

func newModel(
	ctx context.Context,
	logger *slog.Logger,
	uSession uSession,
	changes <-chan struct{},
	results <-chan session.Result,
) *model {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	that := &model{
		ctx:      ctx,
		logger:   logger,
		uSession: uSession,
		changes:  changes,
		results:  results,

		side:    entity.MarkerX,
		cursor:  4,
		spinner: s,

		handlers: make(map[entity.SessionState]func(tea.KeyMsg) tea.Cmd),
	}

	for i := range that.inputs {
		input := textinput.New()
		input.CharLimit = nameLimit
		that.inputs[i] = input
	}
	that.inputs[homeInput].Placeholder = "Your name"
	that.inputs[rivalInput].Placeholder = "Friend's name"

	that.handlers[entity.StateNotStarted] = that.handleModeSelect
	that.handlers[entity.StateModeSelected] = that.handleSidePick
	that.handlers[entity.StateStarted] = that.handleNames
	that.handlers[entity.StateInProgress] = that.handleBoard
	that.handlers[entity.StateOver] = that.handleBoard

	that.refresh()

	return that
}

func (that *model) Init() tea.Cmd {
	return tea.Batch(
		waitForChange(that.changes),
		waitForResult(that.results),
		that.spinner.Tick,
	)
}

func (that *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changeMsg:
		that.refresh()
		return that, waitForChange(that.changes)

	case roundAdvancedMsg:
		that.refresh()
		return that, nil

	case resultMsg:
		that.result = &msg.result
		that.refresh()
		return that, waitForResult(that.results)

	case spinner.TickMsg:
		var cmd tea.Cmd
		that.spinner, cmd = that.spinner.Update(msg)
		return that, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return that, tea.Quit
		}

		handler, ok := that.handlers[that.snapshot.State]
		if !ok {
			return that, nil
		}

		return that, handler(msg)
	}

	return that, nil
}

// refresh pulls a fresh snapshot and prepares the screen of a newly entered state.
func (that *model) refresh() {
	previous := that.snapshot.State
	that.snapshot = that.uSession.Snapshot()

	if that.snapshot.State != entity.StateOver {
		that.result = nil
	}

	if that.snapshot.State == previous {
		return
	}

	that.notice = ""

	switch that.snapshot.State {
	case entity.StateNotStarted:
		that.modeCursor = 0
		that.side = entity.MarkerX
	case entity.StateStarted:
		that.focusInput(homeInput)
		for i := range that.inputs {
			that.inputs[i].Reset()
		}
	case entity.StateInProgress:
		that.cursor = 4
	}
}

func (that *model) focusInput(index int) {
	that.focus = index
	for i := range that.inputs {
		if i == index {
			that.inputs[i].Focus()
			continue
		}
		that.inputs[i].Blur()
	}
}

// askRivalName is false against the computer, whose name is fixed.
func (that *model) askRivalName() bool {
	return !that.snapshot.Lineup.HasComputer()
}
