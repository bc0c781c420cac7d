// Package score accumulates round outcomes into a session's scoreboard.
package score

import "github.com/rocketscienceinc/tictactoe-local/internal/entity"

// Keeper mutates a scoreboard owned by the session.
type Keeper struct {
	board *entity.ScoreBoard
}

func NewKeeper(board *entity.ScoreBoard) *Keeper {
	return &Keeper{board: board}
}

// Record applies the outcome of a finished round. A draw changes nothing.
func (that *Keeper) Record(outcome entity.Outcome) {
	switch outcome {
	case entity.OutcomeXWins:
		that.board.Score1++
	case entity.OutcomeOWins:
		that.board.Score2++
	}
}

// SetSide inverts the display when the human picked O.
func (that *Keeper) SetSide(human entity.Marker) {
	that.board.InvertDisplay = human == entity.MarkerO
}

func (that *Keeper) Reset() {
	*that.board = entity.ScoreBoard{}
}

// Display returns the counters in home/rival slot order.
func (that *Keeper) Display() (int, int) {
	if that.board.InvertDisplay {
		return that.board.Score2, that.board.Score1
	}
	return that.board.Score1, that.board.Score2
}

func (that *Keeper) Totals() (int, int) {
	return that.board.Score1, that.board.Score2
}
