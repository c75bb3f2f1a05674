package mobile

import (
	"net/http"
	"time"

	"xiangqi/internal/bootstrap"
	"xiangqi/internal/engine"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/xiangqi"
)

// StartServer starts the local HTTP server with an in-memory store.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
func StartServer(webDir string, port string) {
	log := bootstrap.NewLogger(false)
	games := game.NewManager(game.NewMemoryStore(24 * time.Hour), game.NopArchive{}, engine.NewSeeded(0), log)
	h := httpserver.NewHandler(games, log, httpserver.Options{
		HumanSide:     xiangqi.Red,
		OpponentDelay: 800 * time.Millisecond,
	})

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := http.ListenAndServe("127.0.0.1:"+port, httpserver.NewRouter(h, webDir, "")); err != nil {
			log.Errorw("server error", "error", err)
		}
	}()
}
