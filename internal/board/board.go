// Package board evaluates grid snapshots: terminal outcome, free cells and the winning line.
package board

import "github.com/rocketscienceinc/tictactoe-local/internal/entity"

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is stateless; the zero value is ready to use.
type Board struct{}

func New() *Board {
	return &Board{}
}

// Outcome returns the winner's outcome, OutcomeDraw for a full grid without a line,
// and OutcomeNone while the round can continue.
func (that *Board) Outcome(grid entity.Grid) entity.Outcome {
	if line, ok := that.WinningLine(grid); ok {
		return entity.OutcomeFor(grid[line[0]])
	}

	// the round continues until all the squares are full
	for _, cell := range grid {
		if cell == entity.MarkerNone {
			return entity.OutcomeNone
		}
	}

	return entity.OutcomeDraw
}

// WinningLine returns the first completed line. It only serves rendering.
func (that *Board) WinningLine(grid entity.Grid) ([3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := grid[combo[0]], grid[combo[1]], grid[combo[2]]
		if a != entity.MarkerNone && a == b && b == c {
			return combo, true
		}
	}

	return [3]int{}, false
}

func (that *Board) EmptyCells(grid entity.Grid) []int {
	cells := make([]int, 0, len(grid))
	for i, cell := range grid {
		if cell == entity.MarkerNone {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that *Board) IsEmpty(grid entity.Grid) bool {
	for _, cell := range grid {
		if cell != entity.MarkerNone {
			return false
		}
	}

	return true
}
