package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("round is already finished")
	ErrGameIsNotStarted  = errors.New("round is not started")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrInvalidTransition = errors.New("action is not allowed in the current session state")
	ErrNamesRequired     = errors.New("both participants must be named")
	ErrUnknownMode       = errors.New("unknown match mode")
	ErrUnknownMarker     = errors.New("unknown marker")
	ErrNoAvailableMoves  = errors.New("no available moves")
)
