package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"xiangqi/internal/engine"
	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

func newTestServer(t *testing.T) (*game.Manager, http.Handler) {
	t.Helper()
	log := zap.NewNop().Sugar()
	games := game.NewManager(game.NewMemoryStore(0), game.NopArchive{}, engine.NewSeeded(3), log)
	h := NewHandler(games, log, Options{HumanSide: xiangqi.Red})
	return games, NewRouter(h, "", "")
}

func post(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return v
}

func move(fr, fc, tr, tc int) xiangqi.Move {
	return xiangqi.Move{From: xiangqi.Coord{Row: fr, Col: fc}, To: xiangqi.Coord{Row: tr, Col: tc}}
}

func TestNewGameAndState(t *testing.T) {
	_, router := newTestServer(t)

	rr := post(t, router, "/api/new_game", NewGameRequest{})
	if rr.Code != http.StatusOK {
		t.Fatalf("new_game status %d: %s", rr.Code, rr.Body.String())
	}
	st := decode[StateResponse](t, rr)
	if st.GameID == "" || st.ToMove != "red" || st.HumanSide != "red" || st.Status != game.StatusOngoing {
		t.Fatalf("unexpected new game: %+v", st)
	}
	if len(st.LegalMoves) != 44 {
		t.Fatalf("want 44 opening moves, got %d", len(st.LegalMoves))
	}
	if st.Board[0][0] != "車" || st.Board[9][4] != "帥" || st.Board[4][4] != "" {
		t.Fatalf("unexpected board glyphs: %q %q %q", st.Board[0][0], st.Board[9][4], st.Board[4][4])
	}

	rr = post(t, router, "/api/state", GameRequest{GameID: st.GameID})
	if rr.Code != http.StatusOK {
		t.Fatalf("state status %d", rr.Code)
	}
	if got := decode[StateResponse](t, rr); got.Position != st.Position || got.Hash != st.Hash {
		t.Fatalf("state differs from new game")
	}

	rr = post(t, router, "/api/state", GameRequest{GameID: "missing"})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown game: status %d", rr.Code)
	}
}

func TestNewGameHumanBlack(t *testing.T) {
	_, router := newTestServer(t)
	rr := post(t, router, "/api/new_game", NewGameRequest{HumanSide: "black"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	st := decode[StateResponse](t, rr)
	if st.ToMove != "black" || st.Plies != 1 {
		t.Fatalf("engine should open for red: %+v", st)
	}

	rr = post(t, router, "/api/new_game", NewGameRequest{HumanSide: "green"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad side: status %d", rr.Code)
	}
	rr = post(t, router, "/api/new_game", NewGameRequest{Position: "nonsense"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad fen: status %d", rr.Code)
	}
}

func TestPlayAndAiMove(t *testing.T) {
	_, router := newTestServer(t)
	st := decode[StateResponse](t, post(t, router, "/api/new_game", NewGameRequest{}))

	rr := post(t, router, "/api/play", PlayRequest{GameID: st.GameID, Move: move(9, 0, 5, 0)})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("illegal move: status %d", rr.Code)
	}
	if e := decode[ErrorResponse](t, rr); !strings.Contains(e.Error, xiangqi.ReasonGeometry.String()) {
		t.Fatalf("illegal move error should carry reason, got %q", e.Error)
	}

	rr = post(t, router, "/api/play", PlayRequest{GameID: st.GameID, Move: move(7, 7, 7, 4)})
	if rr.Code != http.StatusOK {
		t.Fatalf("play status %d: %s", rr.Code, rr.Body.String())
	}
	if got := decode[StateResponse](t, rr); got.ToMove != "black" || got.Plies != 1 {
		t.Fatalf("after play: %+v", got)
	}

	rr = post(t, router, "/api/play", PlayRequest{GameID: st.GameID, Move: move(9, 0, 8, 0)})
	if rr.Code != http.StatusConflict {
		t.Fatalf("out of turn: status %d", rr.Code)
	}

	rr = post(t, router, "/api/ai_move", GameRequest{GameID: st.GameID})
	if rr.Code != http.StatusOK {
		t.Fatalf("ai_move status %d: %s", rr.Code, rr.Body.String())
	}
	ai := decode[AiMoveResponse](t, rr)
	if ai.ToMove != "red" || ai.Plies != 2 || ai.Candidates < 1 {
		t.Fatalf("after ai move: %+v", ai)
	}
	if ai.BestMove.From == ai.BestMove.To {
		t.Fatalf("ai move not reported: %+v", ai.BestMove)
	}

	rr = post(t, router, "/api/ai_move", GameRequest{GameID: st.GameID})
	if rr.Code != http.StatusConflict {
		t.Fatalf("ai out of turn: status %d", rr.Code)
	}
}

func TestPlayCaptureGeneral(t *testing.T) {
	_, router := newTestServer(t)
	st := decode[StateResponse](t, post(t, router, "/api/new_game", NewGameRequest{
		Position: "3k5/9/9/9/9/9/9/9/9/3RK4 w",
	}))

	rr := post(t, router, "/api/play", PlayRequest{GameID: st.GameID, Move: move(9, 3, 0, 3)})
	if rr.Code != http.StatusOK {
		t.Fatalf("capture status %d: %s", rr.Code, rr.Body.String())
	}
	got := decode[StateResponse](t, rr)
	if !got.Over || got.Winner != "red" || got.Status != game.StatusRedWins || len(got.LegalMoves) != 0 {
		t.Fatalf("want finished game, got %+v", got)
	}

	rr = post(t, router, "/api/ai_move", GameRequest{GameID: st.GameID})
	if rr.Code != http.StatusConflict {
		t.Fatalf("ai after game over: status %d", rr.Code)
	}
}

func TestLegalTargetsAndBadJSON(t *testing.T) {
	_, router := newTestServer(t)
	st := decode[StateResponse](t, post(t, router, "/api/new_game", NewGameRequest{}))

	rr := post(t, router, "/api/legal", LegalRequest{GameID: st.GameID, From: xiangqi.Coord{Row: 9, Col: 1}})
	if rr.Code != http.StatusOK {
		t.Fatalf("legal status %d", rr.Code)
	}
	if got := decode[LegalResponse](t, rr); len(got.Targets) != 2 {
		t.Fatalf("horse targets: %+v", got)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/play", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json: status %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/play", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET play: status %d", rec.Code)
	}
}

func TestWebsocketOpponentReply(t *testing.T) {
	games, router := newTestServer(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	g, err := games.NewGame(context.Background(), xiangqi.Red)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws?game_id=" + g.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg wsResponse
	if err := conn.ReadJSON(&msg); err != nil || msg.Type != "state" || msg.State.ToMove != "red" {
		t.Fatalf("initial state: %+v err=%v", msg, err)
	}

	if err := conn.WriteJSON(wsRequest{Type: "move", Move: move(7, 1, 7, 4)}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg = wsResponse{}
	if err := conn.ReadJSON(&msg); err != nil || msg.Type != "state" || msg.State.ToMove != "black" {
		t.Fatalf("state after human move: %+v err=%v", msg, err)
	}
	msg = wsResponse{}
	if err := conn.ReadJSON(&msg); err != nil || msg.Type != "ai_move" || msg.BestMove == nil {
		t.Fatalf("ai reply: %+v err=%v", msg, err)
	}
	if msg.State.ToMove != "red" || msg.State.Plies != 2 {
		t.Fatalf("after ai reply: %+v", msg.State)
	}
	current := msg.State.Hash

	// 带着最新 hash 轮询：局面没变
	if err := conn.WriteJSON(wsRequest{Type: "state", Hash: current}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg = wsResponse{}
	if err := conn.ReadJSON(&msg); err != nil || msg.Type != "unchanged" || msg.State != nil {
		t.Fatalf("poll with current hash: %+v err=%v", msg, err)
	}

	// 旧 hash：回完整局面
	if err := conn.WriteJSON(wsRequest{Type: "state", Hash: "stale"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg = wsResponse{}
	if err := conn.ReadJSON(&msg); err != nil || msg.Type != "state" || msg.State.Hash != current {
		t.Fatalf("poll with stale hash: %+v err=%v", msg, err)
	}

	if err := conn.WriteJSON(wsRequest{Type: "move", Move: move(0, 0, 1, 0)}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg = wsResponse{}
	if err := conn.ReadJSON(&msg); err != nil || msg.Type != "error" {
		t.Fatalf("want error for engine piece, got %+v err=%v", msg, err)
	}
}

func TestWebsocketUnknownGame(t *testing.T) {
	_, router := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/ws?game_id=missing", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d", rr.Code)
	}
}
