package httpserver

import (
	"strconv"

	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

// NewGame 请求；position 为空时从标准开局开始
type NewGameRequest struct {
	HumanSide string `json:"human_side"` // "red" / "black"，空则用服务端默认
	Position  string `json:"position"`   // 可选 FEN
}

// State / AiMove 请求
type GameRequest struct {
	GameID string `json:"game_id"`
}

// Play 请求
type PlayRequest struct {
	GameID string       `json:"game_id"`
	Move   xiangqi.Move `json:"move"`
}

// Legal 请求：某个格子能走到哪里
type LegalRequest struct {
	GameID string        `json:"game_id"`
	From   xiangqi.Coord `json:"from"`
}

type LegalResponse struct {
	From    xiangqi.Coord   `json:"from"`
	Targets []xiangqi.Coord `json:"targets"`
}

// 前端轮询用的局面
type StateResponse struct {
	GameID     string         `json:"game_id"`
	Position   string         `json:"position"` // FEN
	Board      [][]string     `json:"board"`    // 汉字字形，空位为 ""
	ToMove     string         `json:"to_move"`
	HumanSide  string         `json:"human_side"`
	LegalMoves []xiangqi.Move `json:"legal_moves"` // 轮到的一方所有可走棋
	Status     string         `json:"status"`      // ongoing / no_moves / red_wins / black_wins
	Over       bool           `json:"over"`
	Winner     string         `json:"winner,omitempty"`
	Plies      int            `json:"plies"`
	Hash       string         `json:"hash"`
}

type AiMoveResponse struct {
	StateResponse
	BestMove   xiangqi.Move `json:"best_move"`
	Score      int          `json:"score"`
	Candidates int          `json:"candidates"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func stateToDTO(g *game.GameState) StateResponse {
	pos := g.Pos
	board := make([][]string, xiangqi.Rows)
	for r := 0; r < xiangqi.Rows; r++ {
		board[r] = make([]string, xiangqi.Cols)
		for c := 0; c < xiangqi.Cols; c++ {
			if pc := pos.Board.At(xiangqi.Coord{Row: r, Col: c}); pc != 0 {
				board[r][c] = string(pc.Glyph())
			}
		}
	}

	legal := pos.LegalMoves(pos.SideToMove)
	if legal == nil {
		legal = []xiangqi.Move{}
	}

	resp := StateResponse{
		GameID:     g.ID,
		Position:   pos.Encode(),
		Board:      board,
		ToMove:     pos.SideToMove.String(),
		HumanSide:  g.HumanSide.String(),
		LegalMoves: legal,
		Status:     g.Status(),
		Over:       pos.Over,
		Plies:      g.Plies,
		Hash:       positionHash(pos),
	}
	if pos.Over {
		resp.Winner = pos.Winner.String()
	}
	return resp
}

// positionHash 局面指纹，客户端拿它判断局面有没有变
func positionHash(pos *xiangqi.Position) string {
	return strconv.FormatUint(pos.EnsureHash(), 16)
}
