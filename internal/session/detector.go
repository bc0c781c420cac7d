package session

import "github.com/rocketscienceinc/tictactoe-local/internal/entity"

type boardEvaluator interface {
	Outcome(grid entity.Grid) entity.Outcome
	WinningLine(grid entity.Grid) ([3]int, bool)
}

// WinDetector is the only caller of the board's outcome evaluation.
type WinDetector struct {
	board boardEvaluator
}

func NewWinDetector(board boardEvaluator) *WinDetector {
	return &WinDetector{board: board}
}

func (that *WinDetector) Detect(grid entity.Grid) entity.Outcome {
	return that.board.Outcome(grid)
}

// Line is the winning line of grid, used for highlighting only.
func (that *WinDetector) Line(grid entity.Grid) ([3]int, bool) {
	return that.board.WinningLine(grid)
}
