package xiangqi

import (
	"strings"
)

const (
	Rows       = 10
	Cols       = 9
	NumSquares = Rows * Cols

	// 河界：红方在 5..9 行，黑方在 0..4 行
	RiverRow = 5
)

func indexOf(row, col int) int { return row*Cols + col }
func rowOf(sq int) int         { return sq / Cols }
func colOf(sq int) int         { return sq % Cols }

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// 兵的前进方向：红向上(-1)，黑向下(+1)
func soldierDir(side Side) int {
	if side == Red {
		return -1
	}
	if side == Black {
		return +1
	}
	return 0
}

// 是否已经过河
func crossedRiver(side Side, row int) bool {
	if side == Red {
		return row < RiverRow
	}
	if side == Black {
		return row >= RiverRow
	}
	return false
}

// 是否在本方半场（相不能过河）
func ownHalf(side Side, row int) bool {
	if side == Red {
		return row >= RiverRow
	}
	if side == Black {
		return row < RiverRow
	}
	return false
}

// 是否在九宫
func inPalace(side Side, row, col int) bool {
	if col < 3 || col > 5 {
		return false
	}
	if side == Black {
		return row >= 0 && row <= 2
	}
	if side == Red {
		return row >= 7 && row <= 9
	}
	return false
}

var letterToPieceType = map[rune]PieceType{
	'k': PieceGeneral,
	'a': PieceAdvisor,
	'b': PieceElephant,
	'n': PieceHorse,
	'r': PieceRook,
	'c': PieceCannon,
	'p': PieceSoldier,
}

var pieceTypeToLetter = map[PieceType]rune{
	PieceGeneral:  'k',
	PieceAdvisor:  'a',
	PieceElephant: 'b',
	PieceHorse:    'n',
	PieceRook:     'r',
	PieceCannon:   'c',
	PieceSoldier:  'p',
}

func pieceToChar(p Piece) rune {
	if p == 0 {
		return '.'
	}
	base, ok := pieceTypeToLetter[p.Type()]
	if !ok {
		return '.'
	}
	if p.Side() == Red {
		return base - 'a' + 'A'
	}
	return base
}

// 传统开局：黑方在上（0 行），红方在下（9 行）
const initialBoardString = `rnbakabnr
.........
.c.....c.
p.p.p.p.p
.........
.........
P.P.P.P.P
.C.....C.
.........
RNBAKABNR`

func parseInitialBoard() Board {
	var b Board
	lines := strings.Split(initialBoardString, "\n")
	if len(lines) != Rows {
		panic("initialBoardString 行数不为 10")
	}
	for r, line := range lines {
		if len(line) != Cols {
			panic("initialBoardString 列数不为 9")
		}
		for c, ch := range line {
			if ch == '.' {
				continue
			}
			pc, ok := charToPiece(ch)
			if !ok {
				panic("unknown piece letter: " + string(ch))
			}
			b.Squares[indexOf(r, c)] = pc
		}
	}
	return b
}

func charToPiece(ch rune) (Piece, bool) {
	side := Black
	base := ch
	if ch >= 'A' && ch <= 'Z' {
		side = Red
		base = ch - 'A' + 'a'
	}
	pt, ok := letterToPieceType[base]
	if !ok {
		return 0, false
	}
	return MakePiece(side, pt), true
}

// NewInitialPosition 清空棋盘并摆好双方十六子，红先
func NewInitialPosition() *Position {
	pos := &Position{
		Board:      parseInitialBoard(),
		SideToMove: Red,
		Winner:     NoSide,
	}
	pos.Hash = pos.CalculateHash()
	return pos
}

// String 用汉字字形画出棋盘，方便命令行查看
func (p *Position) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r == RiverRow {
			sb.WriteString("  ~~~~~~~~~~~~~~~~~~\n")
		}
		sb.WriteByte(byte('0' + r))
		sb.WriteByte(' ')
		for c := 0; c < Cols; c++ {
			sb.WriteRune(p.Board.Squares[indexOf(r, c)].Glyph())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  ")
	for c := 0; c < Cols; c++ {
		sb.WriteByte(byte('0' + c))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	return sb.String()
}
