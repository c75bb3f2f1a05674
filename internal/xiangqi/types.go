package xiangqi

import "strings"

type Side int8

const (
	NoSide Side = -1
	Red    Side = 0
	Black  Side = 1
)

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// Opposite 返回对手；NoSide 的对手还是 NoSide
func (s Side) Opposite() Side {
	if s == Red {
		return Black
	}
	if s == Black {
		return Red
	}
	return NoSide
}

type PieceType int8

const (
	PieceNone     PieceType = iota
	PieceGeneral            // 帅 / 将
	PieceAdvisor            // 仕 / 士
	PieceElephant           // 相 / 象
	PieceHorse              // 马
	PieceRook               // 车
	PieceCannon             // 炮
	PieceSoldier            // 兵 / 卒
)

var pieceTypeNames = [...]string{"none", "general", "advisor", "elephant", "horse", "rook", "cannon", "soldier"}

func (pt PieceType) String() string {
	if pt < 0 || int(pt) >= len(pieceTypeNames) {
		return "unknown"
	}
	return pieceTypeNames[pt]
}

type Piece int8 // 0=空；>0 红；<0 黑；abs=PieceType

func MakePiece(side Side, pt PieceType) Piece {
	if pt == PieceNone || side == NoSide {
		return 0
	}
	if side == Red {
		return Piece(pt)
	}
	return -Piece(pt)
}

func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

func (p Piece) Side() Side {
	if p == 0 {
		return NoSide
	}
	if p > 0 {
		return Red
	}
	return Black
}

// 显示用字形，规则判断不依赖它
var glyphs = [2][8]rune{
	{0, '帥', '仕', '相', '傌', '俥', '炮', '兵'},
	{0, '將', '士', '象', '馬', '車', '砲', '卒'},
}

func (p Piece) Glyph() rune {
	if p == 0 {
		return '十'
	}
	return glyphs[p.Side()][p.Type()]
}

// Coord 棋盘坐标，行 0..9（0 为黑方底线），列 0..8
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) OnBoard() bool { return onBoard(c.Row, c.Col) }

type Move struct {
	From Coord `json:"from"`
	To   Coord `json:"to"`
}

type Board struct {
	Squares [NumSquares]Piece
}

func (b *Board) At(c Coord) Piece {
	return b.Squares[indexOf(c.Row, c.Col)]
}

func (b *Board) Set(c Coord, pc Piece) {
	b.Squares[indexOf(c.Row, c.Col)] = pc
}

// Position = 棋盘 + 轮到谁走 + 是否终局
type Position struct {
	Board      Board
	SideToMove Side
	Over       bool
	Winner     Side
	Hash       uint64
}

// ParseSide 接受 red/r/w 与 black/b，大小写不敏感
func ParseSide(s string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r", "w":
		return Red, true
	case "black", "b":
		return Black, true
	default:
		return NoSide, false
	}
}
