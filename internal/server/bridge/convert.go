// bridge 以 c-shared 方式导出走子规则：
//
//	go build -buildmode=c-shared -o libxiangqi.so ./internal/server/bridge
package main

import "xiangqi/internal/xiangqi"

const (
	resultRedWins   = 0
	resultBlackWins = 1
	resultOngoing   = 2
	resultNoMoves   = 3
)

func positionFromCells(cells []int8, side int8) (*xiangqi.Position, bool) {
	if len(cells) != xiangqi.NumSquares || (side != 0 && side != 1) {
		return nil, false
	}
	pos := &xiangqi.Position{SideToMove: xiangqi.Side(side), Winner: xiangqi.NoSide}
	for sq, v := range cells {
		pc := xiangqi.Piece(v)
		if pc != 0 && (pc.Type() < xiangqi.PieceGeneral || pc.Type() > xiangqi.PieceSoldier) {
			return nil, false
		}
		pos.Board.Squares[sq] = pc
	}
	pos.DeriveOutcome()
	pos.EnsureHash()
	return pos, true
}

func sqCoord(sq int) xiangqi.Coord {
	return xiangqi.Coord{Row: sq / xiangqi.Cols, Col: sq % xiangqi.Cols}
}

func coordSq(c xiangqi.Coord) int {
	return c.Row*xiangqi.Cols + c.Col
}

func isLegalSq(pos *xiangqi.Position, from, to int) bool {
	if from < 0 || from >= xiangqi.NumSquares || to < 0 || to >= xiangqi.NumSquares {
		return false
	}
	return pos.IsLegal(xiangqi.Move{From: sqCoord(from), To: sqCoord(to)})
}

func fillMask(pos *xiangqi.Position, from int, mask []int8) int {
	clear(mask)
	count := 0
	if from < 0 {
		for _, m := range pos.LegalMoves(pos.SideToMove) {
			sq := coordSq(m.From)
			if mask[sq] == 0 {
				mask[sq] = 1
				count++
			}
		}
		return count
	}
	if from >= xiangqi.NumSquares {
		return 0
	}
	pc := pos.Board.Squares[from]
	if pc == 0 || pc.Side() != pos.SideToMove {
		return 0
	}
	for _, to := range pos.LegalTargets(sqCoord(from)) {
		mask[coordSq(to)] = 1
		count++
	}
	return count
}

func winner(pos *xiangqi.Position) int {
	redAlive := pos.GeneralExists(xiangqi.Red)
	blackAlive := pos.GeneralExists(xiangqi.Black)
	switch {
	case redAlive && !blackAlive:
		return resultRedWins
	case blackAlive && !redAlive:
		return resultBlackWins
	case !pos.HasLegalMoves(pos.SideToMove):
		return resultNoMoves
	}
	return resultOngoing
}

func main() {}
