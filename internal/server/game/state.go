package game

import (
	"time"

	"xiangqi/internal/xiangqi"
)

const (
	StatusOngoing   = "ongoing"
	StatusNoMoves   = "no_moves"
	StatusRedWins   = "red_wins"
	StatusBlackWins = "black_wins"
)

type GameState struct {
	ID        string
	Pos       *xiangqi.Position
	HumanSide xiangqi.Side
	Plies     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EngineSide 电脑执的一方
func (g *GameState) EngineSide() xiangqi.Side {
	return g.HumanSide.Opposite()
}

// Status 只有吃将才算终局；轮到的一方无棋可走时报 no_moves，但不结束对局
func (g *GameState) Status() string {
	if g.Pos.Over {
		if g.Pos.Winner == xiangqi.Black {
			return StatusBlackWins
		}
		return StatusRedWins
	}
	if !g.Pos.HasLegalMoves(g.Pos.SideToMove) {
		return StatusNoMoves
	}
	return StatusOngoing
}

func (g *GameState) clone() *GameState {
	ng := *g
	ng.Pos = g.Pos.Clone()
	return &ng
}
