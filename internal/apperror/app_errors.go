package apperror

import "errors"

var (
	ErrInvalidIndex   = errors.New("cell index out of range")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrInvalidInput   = errors.New("invalid input character")
	ErrGameFinished   = errors.New("game is already finished")
	ErrUserTerminated = errors.New("user terminated game")
)
