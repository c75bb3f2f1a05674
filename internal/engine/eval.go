package engine

import (
	"xiangqi/internal/xiangqi"
)

// 基础子力估值
var pieceValue = map[xiangqi.PieceType]int{
	xiangqi.PieceGeneral:  10000,
	xiangqi.PieceRook:     100,
	xiangqi.PieceCannon:   50,
	xiangqi.PieceHorse:    45,
	xiangqi.PieceAdvisor:  20,
	xiangqi.PieceElephant: 20,
	xiangqi.PieceSoldier:  10,
}

func captureValue(pc xiangqi.Piece) int {
	if pc == 0 {
		return 0
	}
	return pieceValue[pc.Type()]
}

// Material 从红方视角的子力差：红方 - 黑方
func Material(pos *xiangqi.Position) int {
	score := 0
	for _, pc := range pos.Board.Squares {
		if pc == 0 {
			continue
		}
		if pc.Side() == xiangqi.Red {
			score += pieceValue[pc.Type()]
		} else {
			score -= pieceValue[pc.Type()]
		}
	}
	return score
}
