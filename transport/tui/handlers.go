package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/internal/session"
)

const advanceTimeout = 3 * time.Second

type roundAdvancedMsg struct{}

func (that *model) handleModeSelect(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		if that.modeCursor > 0 {
			that.modeCursor--
		}
	case "down", "j":
		if that.modeCursor < len(entity.Modes)-1 {
			that.modeCursor++
		}
	case "enter", " ":
		mode := entity.Modes[that.modeCursor]
		if err := that.uSession.SelectMode(mode); err != nil {
			that.logger.Error("failed to select mode", "mode", mode, "error", err)
			that.notice = "Could not select that mode"
		}
		that.refresh()
	}

	return nil
}

func (that *model) handleSidePick(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "esc":
		that.uSession.ResetSession()
		that.refresh()
	case "left", "h", "x":
		that.side = entity.MarkerX
	case "right", "l", "o":
		that.side = entity.MarkerO
	case "enter", " ":
		if err := that.uSession.PickSide(that.side); err != nil {
			that.logger.Error("failed to pick side", "side", that.side, "error", err)
			that.notice = "Could not pick that side"
		}
		that.refresh()
	}

	return nil
}

// handleNames forwards typing to the focused input. q is a letter here, so quitting
// takes ctrl+c.
func (that *model) handleNames(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		that.uSession.ResetSession()
		that.refresh()
		return nil
	case "tab", "shift+tab", "up", "down":
		if that.askRivalName() {
			that.focusInput(1 - that.focus)
		}
		return nil
	case "enter":
		err := that.uSession.NameParticipants(
			that.inputs[homeInput].Value(),
			that.inputs[rivalInput].Value(),
		)
		switch {
		case errors.Is(err, apperror.ErrNamesRequired):
			that.notice = "Please enter a name for every player"
		case err != nil:
			that.logger.Error("failed to name participants", "error", err)
			that.notice = "Could not start the round"
		}
		that.refresh()
		return nil
	}

	var cmd tea.Cmd
	that.inputs[that.focus], cmd = that.inputs[that.focus].Update(msg)

	return cmd
}

func (that *model) handleBoard(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "esc":
		that.uSession.ResetSession()
		that.refresh()
	case "up", "k":
		if that.cursor >= 3 {
			that.cursor -= 3
		}
	case "down", "j":
		if that.cursor < entity.GridSize-3 {
			that.cursor += 3
		}
	case "left", "h":
		if that.cursor%3 > 0 {
			that.cursor--
		}
	case "right", "l":
		if that.cursor%3 < 2 {
			that.cursor++
		}
	case "enter", " ":
		that.uSession.Move(that.cursor, that.snapshot.ActingRole())
		that.refresh()
	case "n":
		if result := that.result; result != nil {
			that.result = nil
			return advanceRound(that.ctx, result)
		}
	case "r":
		if result := that.result; result != nil {
			that.result = nil
			result.OnResetSession()
			that.refresh()
		}
	}

	return nil
}

// advanceRound runs off the program loop because advancing also writes the round history.
func advanceRound(ctx context.Context, result *session.Result) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, advanceTimeout)
		defer cancel()

		result.OnAdvanceRound(ctx)

		return roundAdvancedMsg{}
	}
}
