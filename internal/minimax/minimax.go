// Package minimax finds the game-theoretically optimal move with an exhaustive search.
package minimax

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-local/internal/board"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

const winScore = 10

type Searcher struct {
	board *board.Board
}

func New() *Searcher {
	return &Searcher{board: board.New()}
}

// BestMove returns the value of the position for marker, who is to move, and the lowest
// index achieving it. Faster wins and slower losses score higher. The grid must have at
// least one empty cell and no winner.
func (that *Searcher) BestMove(grid entity.Grid, marker entity.Marker) (int, int) {
	if that.board.Outcome(grid).IsFinal() {
		panic("minimax: best move requested for a terminal grid")
	}

	return that.search(grid, marker, marker, 0)
}

func (that *Searcher) search(grid entity.Grid, self, turn entity.Marker, depth int) (int, int) {
	switch outcome := that.board.Outcome(grid); outcome {
	case entity.OutcomeNone:
	case entity.OutcomeDraw:
		return 0, -1
	case entity.OutcomeFor(self):
		return winScore - depth, -1
	default:
		return depth - winScore, -1
	}

	maximizing := turn == self

	bestValue, bestIndex := math.MaxInt, -1
	if maximizing {
		bestValue = math.MinInt
	}

	for _, index := range that.board.EmptyCells(grid) {
		next := grid
		next[index] = turn

		value, _ := that.search(next, self, turn.Opposite(), depth+1)
		if (maximizing && value > bestValue) || (!maximizing && value < bestValue) {
			bestValue, bestIndex = value, index
		}
	}

	return bestValue, bestIndex
}
