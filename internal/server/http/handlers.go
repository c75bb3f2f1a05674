package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

type Handler struct {
	games         *game.Manager
	log           *zap.SugaredLogger
	humanSide     xiangqi.Side
	opponentDelay time.Duration
}

type Options struct {
	HumanSide     xiangqi.Side  // new_game 未指定时的默认人类一方
	OpponentDelay time.Duration // websocket 里电脑回应前的“思考”时间
}

func NewHandler(games *game.Manager, log *zap.SugaredLogger, opts Options) *Handler {
	if opts.HumanSide != xiangqi.Black {
		opts.HumanSide = xiangqi.Red
	}
	return &Handler{
		games:         games,
		log:           log,
		humanSide:     opts.HumanSide,
		opponentDelay: opts.OpponentDelay,
	}
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, http.StatusBadRequest, "bad json")
			return
		}
	}

	human := h.humanSide
	if req.HumanSide != "" {
		s, ok := xiangqi.ParseSide(req.HumanSide)
		if !ok {
			h.writeError(w, http.StatusBadRequest, "bad human_side")
			return
		}
		human = s
	}

	var (
		g   *game.GameState
		err error
	)
	if req.Position != "" {
		g, err = h.games.NewGameFromFEN(r.Context(), req.Position, human)
	} else {
		g, err = h.games.NewGame(r.Context(), human)
	}
	if err != nil {
		h.writeGameError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stateToDTO(g))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	g, err := h.games.Get(r.Context(), req.GameID)
	if err != nil {
		h.writeGameError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stateToDTO(g))
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	g, err := h.games.Play(r.Context(), req.GameID, req.Move)
	if err != nil {
		h.writeGameError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stateToDTO(g))
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	g, res, err := h.games.OpponentMove(r.Context(), req.GameID)
	if err != nil {
		h.writeGameError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, AiMoveResponse{
		StateResponse: stateToDTO(g),
		BestMove:      res.Move,
		Score:         res.Score,
		Candidates:    res.Candidates,
	})
}

func (h *Handler) handleLegal(w http.ResponseWriter, r *http.Request) {
	var req LegalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	targets, err := h.games.LegalTargets(r.Context(), req.GameID, req.From)
	if err != nil {
		h.writeGameError(w, err)
		return
	}
	if targets == nil {
		targets = []xiangqi.Coord{}
	}
	h.writeJSON(w, http.StatusOK, LegalResponse{From: req.From, Targets: targets})
}

func gameErrorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrIllegalMove),
		errors.Is(err, game.ErrNotYourPiece),
		errors.Is(err, xiangqi.ErrInvalidFEN):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNoMoves):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeGameError(w http.ResponseWriter, err error) {
	status := gameErrorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.log.Errorw("request failed", "error", err)
		msg = "internal error"
	}
	h.writeError(w, status, msg)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, ErrorResponse{Error: msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warnw("writeJSON error", "error", err)
	}
}
