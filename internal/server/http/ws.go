package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// 客户端发来的消息：type=move 走子，type=state 要当前局面。
// state 请求带上次收到的 hash 时，局面没变只回 unchanged。
type wsRequest struct {
	Type string       `json:"type"`
	Move xiangqi.Move `json:"move"`
	Hash string       `json:"hash,omitempty"`
}

// 服务端推送：state 为局面，unchanged 表示局面未变，ai_move 带电脑走法，error 带错误信息
type wsResponse struct {
	Type     string         `json:"type"`
	State    *StateResponse `json:"state,omitempty"`
	BestMove *xiangqi.Move  `json:"best_move,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// handleWS 走完人类一步先推局面，等 opponentDelay 后电脑回一步再推一次
func (h *Handler) handleWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameID := r.URL.Query().Get("game_id")
	g, err := h.games.Get(ctx, gameID)
	if err != nil {
		h.writeGameError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	state := stateToDTO(g)
	if err := conn.WriteJSON(wsResponse{Type: "state", State: &state}); err != nil {
		return
	}

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debugw("websocket read", "game_id", gameID, "error", err)
			}
			return
		}

		switch req.Type {
		case "state":
			g, err := h.games.Get(ctx, gameID)
			if err != nil {
				h.writeWSError(conn, err)
				continue
			}
			if req.Hash != "" && req.Hash == positionHash(g.Pos) {
				if err := conn.WriteJSON(wsResponse{Type: "unchanged"}); err != nil {
					return
				}
				continue
			}
			state := stateToDTO(g)
			if err := conn.WriteJSON(wsResponse{Type: "state", State: &state}); err != nil {
				return
			}

		case "move":
			g, err := h.games.Play(ctx, gameID, req.Move)
			if err != nil {
				h.writeWSError(conn, err)
				continue
			}
			state := stateToDTO(g)
			if err := conn.WriteJSON(wsResponse{Type: "state", State: &state}); err != nil {
				return
			}
			if g.Pos.Over || g.Pos.SideToMove != g.EngineSide() {
				continue
			}

			select {
			case <-time.After(h.opponentDelay):
			case <-ctx.Done():
				return
			}

			g, res, err := h.games.OpponentMove(ctx, gameID)
			if err != nil {
				if !errors.Is(err, game.ErrNoMoves) {
					h.writeWSError(conn, err)
					continue
				}
				// 电脑无棋可走：推送局面，状态里是 no_moves
				state := stateToDTO(g)
				if err := conn.WriteJSON(wsResponse{Type: "state", State: &state}); err != nil {
					return
				}
				continue
			}
			state = stateToDTO(g)
			if err := conn.WriteJSON(wsResponse{Type: "ai_move", State: &state, BestMove: &res.Move}); err != nil {
				return
			}

		default:
			h.writeWSError(conn, errors.New("unknown message type "+req.Type))
		}
	}
}

func (h *Handler) writeWSError(conn *websocket.Conn, err error) {
	if err := conn.WriteJSON(wsResponse{Type: "error", Error: err.Error()}); err != nil {
		h.log.Debugw("websocket write", "error", err)
	}
}
