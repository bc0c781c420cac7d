// Package strategy chooses the automated opponent's move for each difficulty tier.
package strategy

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

const redrawsPerCell = 4

type searcher interface {
	BestMove(grid entity.Grid, marker entity.Marker) (int, int)
}

type randomizer interface {
	RandomInt(minValue, maxValue int) int
}

type inspector interface {
	EmptyCells(grid entity.Grid) []int
	IsEmpty(grid entity.Grid) bool
}

// Strategy picks an empty cell for marker.
type Strategy interface {
	Choose(grid entity.Grid, marker entity.Marker) (int, error)
}

type Selector struct {
	tiers    map[entity.MatchMode]Strategy
	fallback Strategy
}

func NewSelector(search searcher, random randomizer, board inspector) *Selector {
	easy := NewEasy(random, board)

	return &Selector{
		tiers: map[entity.MatchMode]Strategy{
			entity.ModeEasy:      easy,
			entity.ModeMedium:    NewMedium(search, random, board),
			entity.ModeDifficult: NewDifficult(search, random, board),
		},
		fallback: easy,
	}
}

// Select dispatches to the tier of mode. Friend mode has no automated opponent.
func (that *Selector) Select(mode entity.MatchMode, grid entity.Grid, marker entity.Marker) (int, error) {
	tier, ok := that.tiers[mode]
	if !ok {
		return -1, fmt.Errorf("%w: no automated opponent for %q", apperror.ErrUnknownMode, mode)
	}

	index, err := tier.Choose(grid, marker)
	if err != nil {
		return -1, fmt.Errorf("%s tier: %w", mode, err)
	}

	return index, nil
}

// Fallback picks uniformly among empty cells regardless of tier.
func (that *Selector) Fallback(grid entity.Grid, marker entity.Marker) (int, error) {
	return that.fallback.Choose(grid, marker)
}

// Easy plays uniformly at random.
type Easy struct {
	random randomizer
	board  inspector
}

func NewEasy(random randomizer, board inspector) *Easy {
	return &Easy{random: random, board: board}
}

func (that *Easy) Choose(grid entity.Grid, _ entity.Marker) (int, error) {
	return randomEmptyCell(that.random, that.board, grid)
}

// Medium plays the optimal move on about half of the non-opening turns.
type Medium struct {
	search searcher
	random randomizer
	board  inspector
}

func NewMedium(search searcher, random randomizer, board inspector) *Medium {
	return &Medium{search: search, random: random, board: board}
}

func (that *Medium) Choose(grid entity.Grid, marker entity.Marker) (int, error) {
	// the coin is only flipped once the board has a marker on it
	smartMove := !that.board.IsEmpty(grid) && that.random.RandomInt(0, 1) == 1
	if smartMove {
		_, index := that.search.BestMove(grid, marker)
		return index, nil
	}

	return randomEmptyCell(that.random, that.board, grid)
}

// Difficult plays a random opening and the optimal move afterwards.
type Difficult struct {
	search searcher
	random randomizer
	board  inspector
}

func NewDifficult(search searcher, random randomizer, board inspector) *Difficult {
	return &Difficult{search: search, random: random, board: board}
}

func (that *Difficult) Choose(grid entity.Grid, marker entity.Marker) (int, error) {
	if that.board.IsEmpty(grid) {
		return that.random.RandomInt(0, entity.GridSize-1), nil
	}

	_, index := that.search.BestMove(grid, marker)
	return index, nil
}

// randomEmptyCell draws whole-grid indices until one is empty. After redrawsPerCell misses
// per empty cell it draws straight from the empty cells, so a skewed generator cannot stall
// the caller.
func randomEmptyCell(random randomizer, board inspector, grid entity.Grid) (int, error) {
	cells := board.EmptyCells(grid)
	if len(cells) == 0 {
		return -1, apperror.ErrNoAvailableMoves
	}

	for range redrawsPerCell * len(cells) {
		index := random.RandomInt(0, entity.GridSize-1)
		if index >= 0 && index < entity.GridSize && grid.IsCellEmpty(index) {
			return index, nil
		}
	}

	pick := min(max(random.RandomInt(0, len(cells)-1), 0), len(cells)-1)

	return cells[pick], nil
}
