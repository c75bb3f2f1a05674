package xiangqi

// generalsFaceAfter 在棋盘上临时走这一步，判断两将是否照面，然后原样恢复两个格子
func (b *Board) generalsFaceAfter(m Move) bool {
	from, to := indexOf(m.From.Row, m.From.Col), indexOf(m.To.Row, m.To.Col)
	savedFrom, savedTo := b.Squares[from], b.Squares[to]

	b.Squares[to] = savedFrom
	b.Squares[from] = 0
	face := b.generalsFace()
	b.Squares[from] = savedFrom
	b.Squares[to] = savedTo

	return face
}

// generalsFace 两将同列且中间无子
func (b *Board) generalsFace() bool {
	redGeneral := -1
	blackGeneral := -1

	for sq, pc := range b.Squares {
		if pc == 0 || pc.Type() != PieceGeneral {
			continue
		}
		if pc.Side() == Red {
			redGeneral = sq
		} else {
			blackGeneral = sq
		}
	}

	if redGeneral == -1 || blackGeneral == -1 {
		// 有一方将已经没了，不存在照面
		return false
	}

	rr, rc := rowOf(redGeneral), colOf(redGeneral)
	br, bc := rowOf(blackGeneral), colOf(blackGeneral)
	if rc != bc {
		return false
	}
	return b.countBetween(Coord{rr, rc}, Coord{br, bc}) == 0
}

// GeneralExists 该方的将/帅是否还在棋盘上
func (p *Position) GeneralExists(side Side) bool {
	for _, pc := range p.Board.Squares {
		if pc != 0 && pc.Type() == PieceGeneral && pc.Side() == side {
			return true
		}
	}
	return false
}

// DeriveOutcome 从棋盘推出终局：只剩一方将帅时判该方胜。
// 用于从外部棋盘（FEN、C 接口）恢复局面。
func (p *Position) DeriveOutcome() {
	redAlive, blackAlive := p.GeneralExists(Red), p.GeneralExists(Black)
	if redAlive == blackAlive {
		return
	}
	p.Over = true
	if redAlive {
		p.Winner = Red
	} else {
		p.Winner = Black
	}
}
