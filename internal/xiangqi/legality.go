package xiangqi

// Reason 走法被拒绝的原因；ReasonOK 表示合法
type Reason int

const (
	ReasonOK Reason = iota
	ReasonOffBoard
	ReasonEmptySource
	ReasonGameOver
	ReasonFriendlyCapture
	ReasonNullMove
	ReasonGeometry
	ReasonFlyingGeneral
)

var reasonText = [...]string{
	ReasonOK:              "ok",
	ReasonOffBoard:        "square off board",
	ReasonEmptySource:     "no piece on source square",
	ReasonGameOver:        "game is over",
	ReasonFriendlyCapture: "cannot capture own piece",
	ReasonNullMove:        "source equals destination",
	ReasonGeometry:        "piece cannot move that way",
	ReasonFlyingGeneral:   "generals would face each other",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonText) {
		return "unknown"
	}
	return reasonText[r]
}

// IsLegal 判断走法是否合法。不检查轮到哪一方，由调用方负责。
func (p *Position) IsLegal(m Move) bool {
	return p.CheckMove(m) == ReasonOK
}

// CheckMove 依次检查：起点有子且未终局、不吃己方子、不原地不动、
// 棋子走法与阻挡、走后不能将帅照面。
func (p *Position) CheckMove(m Move) Reason {
	if !m.From.OnBoard() || !m.To.OnBoard() {
		return ReasonOffBoard
	}
	pc := p.Board.At(m.From)
	if pc == 0 {
		return ReasonEmptySource
	}
	if p.Over {
		return ReasonGameOver
	}
	target := p.Board.At(m.To)
	if target != 0 && target.Side() == pc.Side() {
		return ReasonFriendlyCapture
	}
	if m.From == m.To {
		return ReasonNullMove
	}
	if !p.Board.pieceCanReach(pc, m.From, m.To) {
		return ReasonGeometry
	}
	if p.Board.generalsFaceAfter(m) {
		return ReasonFlyingGeneral
	}
	return ReasonOK
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// 各兵种的几何规则 + 阻挡规则
func (b *Board) pieceCanReach(pc Piece, from, to Coord) bool {
	side := pc.Side()
	dr, dc := to.Row-from.Row, to.Col-from.Col
	adr, adc := abs(dr), abs(dc)

	switch pc.Type() {
	case PieceGeneral:
		// 九宫内上下左右一格
		return adr+adc == 1 && inPalace(side, to.Row, to.Col)

	case PieceAdvisor:
		// 九宫内斜走一格
		return adr == 1 && adc == 1 && inPalace(side, to.Row, to.Col)

	case PieceElephant:
		// 田字，不过河，塞象眼
		if adr != 2 || adc != 2 || !ownHalf(side, to.Row) {
			return false
		}
		return b.Squares[indexOf(from.Row+dr/2, from.Col+dc/2)] == 0

	case PieceHorse:
		// 日字，蹩马腿
		if adr == 2 && adc == 1 {
			return b.Squares[indexOf(from.Row+dr/2, from.Col)] == 0
		}
		if adr == 1 && adc == 2 {
			return b.Squares[indexOf(from.Row, from.Col+dc/2)] == 0
		}
		return false

	case PieceRook:
		if dr != 0 && dc != 0 {
			return false
		}
		return b.countBetween(from, to) == 0

	case PieceCannon:
		// 不吃子时同车；吃子必须隔一个炮架
		if dr != 0 && dc != 0 {
			return false
		}
		n := b.countBetween(from, to)
		if b.At(to) != 0 {
			return n == 1
		}
		return n == 0

	case PieceSoldier:
		if dc == 0 && dr == soldierDir(side) {
			return true
		}
		// 过河后可以横走一格
		return dr == 0 && adc == 1 && crossedRiver(side, from.Row)
	}
	return false
}

// 同一行或同一列上，两点之间（不含两端）的棋子数
func (b *Board) countBetween(from, to Coord) int {
	n := 0
	if from.Row == to.Row {
		lo, hi := from.Col, to.Col
		if lo > hi {
			lo, hi = hi, lo
		}
		for c := lo + 1; c < hi; c++ {
			if b.Squares[indexOf(from.Row, c)] != 0 {
				n++
			}
		}
		return n
	}
	lo, hi := from.Row, to.Row
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo + 1; r < hi; r++ {
		if b.Squares[indexOf(r, from.Col)] != 0 {
			n++
		}
	}
	return n
}
