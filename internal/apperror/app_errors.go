package apperror

import "errors"

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrMatchFull       = errors.New("match already has two players")
	ErrMatchFinished   = errors.New("match is already finished")
	ErrMatchNotStarted = errors.New("match is not started")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrNotInMatch      = errors.New("player is not part of this match")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidCell     = errors.New("invalid cell index")
)
