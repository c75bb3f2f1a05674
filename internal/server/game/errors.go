package game

import (
	"errors"

	"xiangqi/internal/xiangqi"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrIllegalMove  = errors.New("illegal move")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrNotYourPiece = errors.New("not your piece")
	ErrGameOver     = errors.New("game is over")
	ErrNoMoves      = errors.New("no legal moves")
)

// IllegalMoveError 带上具体的拒绝原因，errors.Is(err, ErrIllegalMove) 成立
type IllegalMoveError struct {
	Reason xiangqi.Reason
}

func (e *IllegalMoveError) Error() string {
	return "illegal move: " + e.Reason.String()
}

func (e *IllegalMoveError) Unwrap() error { return ErrIllegalMove }
