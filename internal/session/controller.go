// Package session drives a local tic-tac-toe session: mode and side selection, turn order,
// the automated opponent, round outcomes and the cross-round scoreboard.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-local/internal/scheduler"
	"github.com/rocketscienceinc/tictactoe-local/internal/score"
)

type roundRecorder interface {
	Save(ctx context.Context, record *entity.RoundRecord) error
}

// Listener observes a session. Calls are made without the session lock held, so a
// listener may call back into the controller.
type Listener interface {
	OnChange(snapshot Snapshot)
	OnRoundOver(result Result)
}

// Pacing holds the delays of the computer's move and of the result reveal.
type Pacing struct {
	ComputerMove time.Duration
	ResultReveal time.Duration
}

// Result is handed to the presentation when a finished round is revealed. Exactly one
// of the callbacks takes effect, once; later calls are ignored.
type Result struct {
	Outcome        entity.Outcome
	Text           string
	OnAdvanceRound func(ctx context.Context)
	OnResetSession func()
}

type roundData struct {
	number   int
	grid     entity.Grid
	next     entity.Marker
	outcome  entity.Outcome
	revealed bool
	episode  uint64
}

type sessionData struct {
	id     string
	state  entity.SessionState
	mode   entity.MatchMode
	lineup entity.Lineup
	names  entity.Names
	scores entity.ScoreBoard
	round  roundData
}

type Controller struct {
	logger *slog.Logger

	mu       sync.Mutex
	data     sessionData
	pacing   Pacing
	detector *WinDetector
	turns    *TurnCoordinator
	keeper   *score.Keeper
	reveal   *scheduler.Slot
	recorder roundRecorder
	listener Listener
}

// NewController builds a session in NotStarted. recorder may be nil.
func NewController(
	logger *slog.Logger,
	pacing Pacing,
	detector *WinDetector,
	selector moveSelector,
	sched scheduler.Scheduler,
	recorder roundRecorder,
) *Controller {
	log := logger.With("component", "session")

	that := &Controller{
		logger:   log,
		pacing:   pacing,
		detector: detector,
		reveal:   scheduler.NewSlot(sched),
		recorder: recorder,
	}
	that.data = sessionData{id: pkg.GenerateNewSessionID(), state: entity.StateNotStarted}
	that.keeper = score.NewKeeper(&that.data.scores)
	that.turns = newTurnCoordinator(log, &that.data, selector, sched, pacing.ComputerMove, that.onComputerTimer)

	return that
}

func (that *Controller) SetListener(listener Listener) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.listener = listener
}

// SelectMode - NotStarted -> ModeSelected.
func (that *Controller) SelectMode(mode entity.MatchMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}

	that.mu.Lock()
	if err := that.requireState(entity.StateNotStarted); err != nil {
		that.mu.Unlock()
		return err
	}

	that.data.mode = mode
	that.data.state = entity.StateModeSelected

	that.logger.Info("mode selected", "mode", mode, "sessionID", that.data.id)

	that.commit()

	return nil
}

// PickSide - ModeSelected -> Started. The rival receives the opposite marker.
func (that *Controller) PickSide(marker entity.Marker) error {
	if err := marker.Validate(); err != nil {
		return err
	}

	that.mu.Lock()
	if err := that.requireState(entity.StateModeSelected); err != nil {
		that.mu.Unlock()
		return err
	}

	that.data.lineup = entity.NewLineup(that.data.mode, marker)
	that.keeper.SetSide(marker)
	if that.data.lineup.HasComputer() {
		that.data.names.Rival = entity.ComputerName
	}
	that.data.state = entity.StateStarted
	that.data.round.next = entity.MarkerX

	that.logger.Info("side picked", "human", marker, "rival", that.data.lineup.Rival)

	that.commit()

	return nil
}

// NameParticipants - Started -> InProgress once both names are present. Against the
// computer the rival name is fixed and rival is ignored.
func (that *Controller) NameParticipants(home, rival string) error {
	that.mu.Lock()
	if err := that.requireState(entity.StateStarted); err != nil {
		that.mu.Unlock()
		return err
	}

	names := entity.Names{Home: strings.TrimSpace(home), Rival: strings.TrimSpace(rival)}
	if that.data.lineup.HasComputer() {
		names.Rival = entity.ComputerName
	}

	if names.Home == "" || names.Rival == "" {
		that.mu.Unlock()
		return apperror.ErrNamesRequired
	}

	that.data.names = names
	that.data.state = entity.StateInProgress
	that.startRound()

	that.logger.Info("round started", "round", that.data.round.number, "home", names.Home, "rival", names.Rival)

	that.commit()

	return nil
}

// Move applies a move by role. Invalid moves are dropped without a signal.
func (that *Controller) Move(index int, role entity.Role) {
	that.mu.Lock()

	if err := that.turns.Apply(index, role); err != nil {
		that.logger.Debug("move rejected", "index", index, "role", role, "reason", err)
		that.mu.Unlock()
		return
	}

	that.afterMove()
	that.commit()
}

// Recheck re-runs win detection on the current grid. Running it again for a finished
// round has no effect.
func (that *Controller) Recheck() {
	that.mu.Lock()

	if !that.evaluate() {
		that.mu.Unlock()
		return
	}

	that.commit()
}

// AdvanceRound - Over -> InProgress: scores the finished round and clears the grid.
func (that *Controller) AdvanceRound(ctx context.Context) error {
	return that.advanceRound(ctx, nil)
}

// ResetSession returns to NotStarted from any state, clearing scores, mode and names.
func (that *Controller) ResetSession() {
	that.mu.Lock()

	that.reset()

	that.commit()
}

func (that *Controller) advanceRound(ctx context.Context, episode *uint64) error {
	that.mu.Lock()
	if err := that.requireEpisode(episode); err != nil {
		that.mu.Unlock()
		return err
	}

	record := that.advance()
	recorder := that.recorder

	that.commit()

	if recorder != nil {
		if err := recorder.Save(ctx, record); err != nil {
			that.logger.Error("failed to record round", "round", record.Round, "error", err)
		}
	}

	return nil
}

func (that *Controller) resetEpisode(episode uint64) error {
	that.mu.Lock()
	if err := that.requireEpisode(&episode); err != nil {
		that.mu.Unlock()
		return err
	}

	that.reset()

	that.commit()

	return nil
}

func (that *Controller) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

func (that *Controller) afterMove() {
	if that.evaluate() {
		return
	}

	that.turns.Arm()
}

// evaluate runs win detection and enters Over at most once per round.
func (that *Controller) evaluate() bool {
	outcome := that.detector.Detect(that.data.round.grid)
	if !outcome.IsFinal() || that.data.state == entity.StateOver {
		return false
	}

	that.data.state = entity.StateOver
	that.data.round.outcome = outcome
	that.data.round.next = entity.MarkerNone
	that.data.round.episode++
	that.turns.Cancel()
	that.reveal.Arm(that.pacing.ResultReveal, that.onRevealTimer)

	that.logger.Info("round over", "round", that.data.round.number, "outcome", outcome, "grid", that.data.round.grid.String())

	return true
}

func (that *Controller) advance() *entity.RoundRecord {
	that.reveal.Cancel()
	that.keeper.Record(that.data.round.outcome)

	score1, score2 := that.keeper.Totals()
	record := &entity.RoundRecord{
		SessionID:  that.data.id,
		Round:      that.data.round.number,
		Mode:       that.data.mode,
		Grid:       that.data.round.grid,
		Outcome:    that.data.round.outcome,
		Score1:     score1,
		Score2:     score2,
		FinishedAt: time.Now().UTC(),
	}

	that.data.state = entity.StateInProgress
	that.startRound()

	that.logger.Info("round advanced", "round", that.data.round.number, "score_1", score1, "score_2", score2)

	return record
}

func (that *Controller) reset() {
	that.turns.Cancel()
	that.reveal.Cancel()
	that.keeper.Reset()

	episode := that.data.round.episode + 1
	that.data = sessionData{id: pkg.GenerateNewSessionID(), state: entity.StateNotStarted}
	that.data.round.episode = episode

	that.logger.Info("session reset", "sessionID", that.data.id)
}

func (that *Controller) startRound() {
	that.turns.Cancel()
	that.data.round = roundData{
		number:  that.data.round.number + 1,
		next:    entity.MarkerX,
		episode: that.data.round.episode,
	}
	that.turns.Arm()
}

func (that *Controller) onComputerTimer(token scheduler.Token) {
	that.mu.Lock()

	if !that.turns.PlayComputer(token) {
		that.mu.Unlock()
		return
	}

	that.afterMove()
	that.commit()
}

func (that *Controller) onRevealTimer(token scheduler.Token) {
	that.mu.Lock()

	if !that.reveal.Consume(token) || that.data.state != entity.StateOver {
		that.mu.Unlock()
		return
	}

	that.data.round.revealed = true
	result := that.result(that.data.round.episode)
	listener := that.listener
	snapshot := that.snapshot()
	that.mu.Unlock()

	if listener != nil {
		listener.OnChange(snapshot)
		listener.OnRoundOver(result)
	}
}

func (that *Controller) result(episode uint64) Result {
	var once sync.Once

	return Result{
		Outcome: that.data.round.outcome,
		Text:    that.data.round.outcome.Text(),
		OnAdvanceRound: func(ctx context.Context) {
			once.Do(func() {
				if err := that.advanceRound(ctx, &episode); err != nil {
					that.logger.Debug("advance ignored", "error", err)
				}
			})
		},
		OnResetSession: func() {
			once.Do(func() {
				if err := that.resetEpisode(episode); err != nil {
					that.logger.Debug("reset ignored", "error", err)
				}
			})
		},
	}
}

// requireEpisode checks the session is Over and, when episode is set, still in that episode.
func (that *Controller) requireEpisode(episode *uint64) error {
	if err := that.requireState(entity.StateOver); err != nil {
		return err
	}

	if episode != nil && *episode != that.data.round.episode {
		return fmt.Errorf("%w: result of an earlier round", apperror.ErrInvalidTransition)
	}

	return nil
}

func (that *Controller) requireState(state entity.SessionState) error {
	if that.data.state != state {
		return fmt.Errorf("%w: session is %s, want %s", apperror.ErrInvalidTransition, that.data.state, state)
	}
	return nil
}

// commit releases the lock taken by the caller and notifies the listener.
func (that *Controller) commit() {
	listener := that.listener
	snapshot := that.snapshot()
	that.mu.Unlock()

	if listener != nil {
		listener.OnChange(snapshot)
	}
}
