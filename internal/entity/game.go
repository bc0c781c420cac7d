package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
)

type Marker string

const (
	MarkerNone Marker = ""
	MarkerX    Marker = "X"
	MarkerO    Marker = "O"
)

// GridSize is the number of cells on the board.
const GridSize = 9

// Opposite returns the other marker. MarkerNone has no opposite.
func (that Marker) Opposite() Marker {
	switch that {
	case MarkerX:
		return MarkerO
	case MarkerO:
		return MarkerX
	default:
		return MarkerNone
	}
}

func (that Marker) Validate() error {
	if that != MarkerX && that != MarkerO {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownMarker, string(that))
	}
	return nil
}

type Grid [GridSize]Marker

func (that Grid) IsCellEmpty(index int) bool {
	return index >= 0 && index < GridSize && that[index] == MarkerNone
}

func (that Grid) String() string {
	buf := make([]byte, 0, GridSize+2)
	for i, cell := range that {
		if i > 0 && i%3 == 0 {
			buf = append(buf, '/')
		}
		if cell == MarkerNone {
			buf = append(buf, '.')
			continue
		}
		buf = append(buf, cell...)
	}
	return string(buf)
}

type Outcome string

const (
	OutcomeNone  Outcome = ""
	OutcomeXWins Outcome = "x_wins"
	OutcomeOWins Outcome = "o_wins"
	OutcomeDraw  Outcome = "draw"
)

// OutcomeFor returns the winning outcome of marker.
func OutcomeFor(marker Marker) Outcome {
	switch marker {
	case MarkerX:
		return OutcomeXWins
	case MarkerO:
		return OutcomeOWins
	default:
		return OutcomeNone
	}
}

func (that Outcome) IsFinal() bool {
	return that != OutcomeNone
}

// Text is the message revealed to the players at the end of a round.
func (that Outcome) Text() string {
	switch that {
	case OutcomeXWins:
		return "Player X wins!"
	case OutcomeOWins:
		return "Player O wins!"
	case OutcomeDraw:
		return "It's a draw"
	default:
		return ""
	}
}
