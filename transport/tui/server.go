// Package tui is the terminal front end of a local session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/internal/session"
)

const resultBuffer = 4

type uSession interface {
	SelectMode(mode entity.MatchMode) error
	PickSide(marker entity.Marker) error
	NameParticipants(home, rival string) error
	Move(index int, role entity.Role)
	ResetSession()
	Snapshot() session.Snapshot
}

// Server renders a session and turns key presses into session calls. It is also the
// session's Listener: notifications are queued and picked up by the program loop, so a
// notification raised from inside Update never blocks.
type Server struct {
	logger   *slog.Logger
	uSession uSession

	changes chan struct{}
	results chan session.Result
}

func New(logger *slog.Logger, uSession uSession) *Server {
	return &Server{
		logger:   logger.With("component", "tui"),
		uSession: uSession,

		changes: make(chan struct{}, 1),
		results: make(chan session.Result, resultBuffer),
	}
}

// Start runs the program until the user quits or ctx is cancelled.
func (that *Server) Start(ctx context.Context) error {
	log := that.logger.With("method", "Start")

	program := tea.NewProgram(
		newModel(ctx, that.logger, that.uSession, that.changes, that.results),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	log.Info("terminal session started")

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Info("terminal session stopped", "reason", ctx.Err())
			return nil
		}
		return fmt.Errorf("failed to run terminal program: %w", err)
	}

	log.Info("terminal session closed by user")

	return nil
}

// OnChange coalesces change notifications. The model re-reads the snapshot on wake-up.
func (that *Server) OnChange(_ session.Snapshot) {
	select {
	case that.changes <- struct{}{}:
	default:
	}
}

func (that *Server) OnRoundOver(result session.Result) {
	select {
	case that.results <- result:
	default:
		that.logger.Warn("result dropped, queue is full", "outcome", result.Outcome)
	}
}

type changeMsg struct{}

type resultMsg struct {
	result session.Result
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return changeMsg{}
	}
}

func waitForResult(results <-chan session.Result) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{result: <-results}
	}
}
