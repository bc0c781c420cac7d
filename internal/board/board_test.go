package board

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

const (
	x = entity.MarkerX
	o = entity.MarkerO
	e = entity.MarkerNone
)

func TestBoard_Outcome(t *testing.T) {
	b := New()

	t.Run("Returns XWins when X completes a column", func(t *testing.T) {
		// Given: a grid where X has a winning combination
		grid := entity.Grid{
			x, o, e,
			x, o, e,
			x, e, e,
		}

		// When: evaluating the outcome
		outcome := b.Outcome(grid)

		// Then: X should be declared the winner
		assert.Equal(t, entity.OutcomeXWins, outcome)
	})

	t.Run("Returns OWins on a diagonal", func(t *testing.T) {
		// Given: a grid where O holds the anti-diagonal
		grid := entity.Grid{
			x, x, o,
			e, o, e,
			o, e, x,
		}

		// Then: O should be declared the winner
		assert.Equal(t, entity.OutcomeOWins, b.Outcome(grid))
	})

	t.Run("Returns Draw for a full grid without a line", func(t *testing.T) {
		// Given: all cells filled, no three in a row
		grid := entity.Grid{
			x, o, x,
			o, x, o,
			o, x, o,
		}

		// Then: the round is a draw
		assert.Equal(t, entity.OutcomeDraw, b.Outcome(grid))
	})

	t.Run("Win on the last cell beats draw", func(t *testing.T) {
		// Given: a full grid whose final move completed a row
		grid := entity.Grid{
			x, x, x,
			o, o, x,
			x, o, o,
		}

		// Then: X wins rather than a draw
		assert.Equal(t, entity.OutcomeXWins, b.Outcome(grid))
	})

	t.Run("Returns None while the round continues", func(t *testing.T) {
		// Given: a grid that is still ongoing
		grid := entity.Grid{
			x, o, x,
			e, o, e,
			x, e, e,
		}

		// Then: there is no outcome yet
		assert.Equal(t, entity.OutcomeNone, b.Outcome(grid))
	})
}

func TestBoard_WinningLine(t *testing.T) {
	b := New()

	line, ok := b.WinningLine(entity.Grid{x, x, x, o, o})
	assert.True(t, ok)
	assert.Equal(t, [3]int{0, 1, 2}, line)

	_, ok = b.WinningLine(entity.Grid{x, o, x})
	assert.False(t, ok)
}

func TestBoard_EmptyCells(t *testing.T) {
	b := New()

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, b.EmptyCells(entity.Grid{}))
	assert.Equal(t, []int{1, 3, 8}, b.EmptyCells(entity.Grid{x, e, o, e, x, o, x, o, e}))
	assert.Empty(t, b.EmptyCells(entity.Grid{x, o, x, o, x, o, o, x, o}))
}

func TestBoard_IsEmpty(t *testing.T) {
	b := New()

	assert.True(t, b.IsEmpty(entity.Grid{}))
	assert.False(t, b.IsEmpty(entity.Grid{e, e, e, e, o}))
}
