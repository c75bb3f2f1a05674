package xiangqi

// LegalMoves 枚举 side 一方所有合法走法：每个本方棋子 × 每个格子，用 IsLegal 过滤。
// 不看 SideToMove，可以给任意一方生成。
func (p *Position) LegalMoves(side Side) []Move {
	if p.Over {
		return nil
	}
	var moves []Move
	for sq := 0; sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		from := Coord{rowOf(sq), colOf(sq)}
		moves = p.appendMovesFrom(from, moves)
	}
	return moves
}

// LegalTargets 某个格子上的棋子所有可去的位置
func (p *Position) LegalTargets(from Coord) []Coord {
	if !from.OnBoard() {
		return nil
	}
	moves := p.appendMovesFrom(from, nil)
	out := make([]Coord, len(moves))
	for i, mv := range moves {
		out[i] = mv.To
	}
	return out
}

func (p *Position) appendMovesFrom(from Coord, moves []Move) []Move {
	for to := 0; to < NumSquares; to++ {
		mv := Move{From: from, To: Coord{rowOf(to), colOf(to)}}
		if p.IsLegal(mv) {
			moves = append(moves, mv)
		}
	}
	return moves
}

// HasLegalMoves side 是否还有棋可走
func (p *Position) HasLegalMoves(side Side) bool {
	if p.Over {
		return false
	}
	for sq := 0; sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		from := Coord{rowOf(sq), colOf(sq)}
		for to := 0; to < NumSquares; to++ {
			if p.IsLegal(Move{From: from, To: Coord{rowOf(to), colOf(to)}}) {
				return true
			}
		}
	}
	return false
}

// Apply 就地走子。非法时返回 false，局面不变。
// 吃掉对方将/帅即终局，这是唯一的胜负判定。
func (p *Position) Apply(m Move) bool {
	if !p.IsLegal(m) {
		return false
	}
	pc := p.Board.At(m.From)
	captured := p.Board.At(m.To)

	if captured != 0 && captured.Type() == PieceGeneral {
		p.Over = true
		p.Winner = pc.Side()
	}

	h := p.EnsureHash()
	h ^= pieceHashKey(pc, m.From)
	if captured != 0 {
		h ^= pieceHashKey(captured, m.To)
	}
	h ^= pieceHashKey(pc, m.To)
	h ^= zobristSide

	p.Board.Set(m.To, pc)
	p.Board.Set(m.From, 0)
	p.SideToMove = p.SideToMove.Opposite()
	p.Hash = h
	return true
}

// Clone 复制一份局面，互不影响
func (p *Position) Clone() *Position {
	np := *p
	return &np
}
