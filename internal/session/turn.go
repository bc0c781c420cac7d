package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/internal/scheduler"
)

// maxComputerAttempts is how many dropped picks in one turn are tolerated before the
// computer falls back to a random empty cell.
const maxComputerAttempts = 3

type moveSelector interface {
	Select(mode entity.MatchMode, grid entity.Grid, marker entity.Marker) (int, error)
	Fallback(grid entity.Grid, marker entity.Marker) (int, error)
}

// TurnCoordinator validates and applies moves and paces the computer's turn. It works on
// the controller's data and expects the controller's lock to be held on every call.
type TurnCoordinator struct {
	logger *slog.Logger

	data     *sessionData
	selector moveSelector
	slot     *scheduler.Slot
	delay    time.Duration
	onTimer  func(scheduler.Token)
	attempts int
}

func newTurnCoordinator(
	logger *slog.Logger,
	data *sessionData,
	selector moveSelector,
	sched scheduler.Scheduler,
	delay time.Duration,
	onTimer func(scheduler.Token),
) *TurnCoordinator {
	return &TurnCoordinator{
		logger:   logger,
		data:     data,
		selector: selector,
		slot:     scheduler.NewSlot(sched),
		delay:    delay,
		onTimer:  onTimer,
	}
}

// Apply writes role's marker at index and hands the turn to the other role.
func (that *TurnCoordinator) Apply(index int, role entity.Role) error {
	if err := that.validateMove(index, role); err != nil {
		return err
	}

	that.data.round.grid[index] = that.data.round.next
	that.data.round.next = that.data.round.next.Opposite()

	that.slot.Cancel()
	that.attempts = 0

	return nil
}

// validateMove - checks if the move is valid.
func (that *TurnCoordinator) validateMove(index int, role entity.Role) error {
	switch that.data.state {
	case entity.StateInProgress:
	case entity.StateOver:
		return apperror.ErrGameFinished
	default:
		return fmt.Errorf("%w: session is %s", apperror.ErrGameIsNotStarted, that.data.state)
	}

	if index < 0 || index >= entity.GridSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	marker := that.data.lineup.MarkerOf(role)
	if marker == entity.MarkerNone || marker != that.data.round.next {
		return apperror.ErrNotYourTurn
	}

	if !that.data.round.grid.IsCellEmpty(index) {
		return apperror.ErrCellOccupied
	}

	return nil
}

// Arm schedules the computer's move when it holds the turn of a running round.
func (that *TurnCoordinator) Arm() {
	if !that.isComputerTurn() {
		return
	}

	that.slot.Arm(that.delay, that.onTimer)
}

func (that *TurnCoordinator) Cancel() {
	that.slot.Cancel()
	that.attempts = 0
}

func (that *TurnCoordinator) Pending() bool {
	return that.slot.Armed()
}

// PlayComputer handles a fired computer timer. It reports whether the grid changed.
// A failed choice or a pick rejected by the move guard is dropped and the timer re-armed.
func (that *TurnCoordinator) PlayComputer(token scheduler.Token) bool {
	log := that.logger.With("method", "PlayComputer")

	if !that.slot.Consume(token) || !that.isComputerTurn() {
		log.Debug("stale computer timer ignored")
		return false
	}

	marker := that.data.round.next
	grid := that.data.round.grid

	var (
		index int
		err   error
	)
	if that.attempts < maxComputerAttempts {
		index, err = that.selector.Select(that.data.mode, grid, marker)
	} else {
		log.Warn("falling back to a random cell", "attempts", that.attempts)
		index, err = that.selector.Fallback(grid, marker)
	}

	if err != nil {
		log.Error("computer could not choose a move", "attempts", that.attempts, "error", err)
		that.retry()
		return false
	}

	if err = that.Apply(index, entity.RoleComputer); err != nil {
		log.Warn("computer move dropped", "index", index, "grid", grid.String(), "reason", err)
		that.retry()
		return false
	}

	log.Debug("computer moved", "index", index, "marker", marker)

	return true
}

// retry counts a failed computer turn and schedules the next attempt.
func (that *TurnCoordinator) retry() {
	that.attempts++
	that.slot.Arm(that.delay, that.onTimer)
}

func (that *TurnCoordinator) isComputerTurn() bool {
	return that.data.state == entity.StateInProgress &&
		that.data.lineup.HasComputer() &&
		that.data.round.next != entity.MarkerNone &&
		that.data.round.next == that.data.lineup.MarkerOf(entity.RoleComputer)
}
