package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter 挂载 /api/* 与静态页面。webDir 为空时不提供静态文件。
func NewRouter(h *Handler, webDir, mobileDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Logger)
		r.Post("/new_game", h.handleNewGame)
		r.Post("/state", h.handleState)
		r.Post("/play", h.handlePlay)
		r.Post("/ai_move", h.handleAiMove)
		r.Post("/legal", h.handleLegal)
		r.Get("/ws", h.handleWS)
	})

	mountStatic(r, webDir, mobileDir)
	return r
}
