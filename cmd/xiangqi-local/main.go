package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"xiangqi/internal/adapters"
	"xiangqi/internal/bootstrap"
	"xiangqi/internal/engine"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/xiangqi"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 不阻塞，不关心错误（某些服务器环境可能无图形界面）
}

func main() {
	cfgPath := flag.String("config", "", "optional config file (.env / yaml / json)")
	addr := flag.String("addr", "", "listen address, overrides ADDR")
	flag.Parse()

	cfg, err := bootstrap.Setup(*cfgPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	log := bootstrap.NewLogger(cfg.LogDev)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, archive, cleanup, err := initStorage(ctx, cfg, log)
	if err != nil {
		log.Fatalw("failed to init storage", "error", err)
	}
	defer cleanup()

	human, _ := xiangqi.ParseSide(cfg.HumanSide)
	games := game.NewManager(store, archive, engine.NewSeeded(cfg.Seed), log)
	h := httpserver.NewHandler(games, log, httpserver.Options{
		HumanSide:     human,
		OpponentDelay: cfg.OpponentDelay,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpserver.NewRouter(h, cfg.WebDir, cfg.WebMobileDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("listening", "addr", cfg.Addr, "web", cfg.WebDir, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.OpenBrowser {
		// 延迟 100ms 打开默认浏览器，否则可能服务器未启动完成
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + cfg.Addr)
		}()
	}

	if err := g.Wait(); err != nil {
		log.Fatalw("server error", "error", err)
	}
}

func initStorage(ctx context.Context, cfg *bootstrap.Config, log *zap.SugaredLogger) (game.Store, game.Archive, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var store game.Store = game.NewMemoryStore(cfg.GameTTL)
	if cfg.Store == bootstrap.StoreRedis {
		redisAdapter := adapters.NewAdapterRedis(cfg)
		if err := redisAdapter.Init(ctx); err != nil {
			return nil, nil, cleanup, err
		}
		closers = append(closers, func() { _ = redisAdapter.Close(context.Background()) })
		store = game.NewRedisStore(redisAdapter.GetClient(), cfg.GameTTL)
		log.Infow("using redis store", "addr", cfg.RedisUrl, "ttl", cfg.GameTTL)
	}

	var archive game.Archive = game.NopArchive{}
	if cfg.MongoUri != "" {
		mongoAdapter := adapters.NewAdapterMongo(cfg)
		if err := mongoAdapter.Init(ctx); err != nil {
			cleanup()
			return nil, nil, func() {}, err
		}
		closers = append(closers, func() { _ = mongoAdapter.Close(context.Background()) })
		archive = game.NewMongoArchive(mongoAdapter.Database)
		log.Infow("archiving finished games to mongo", "db", cfg.MongoDB)
	}

	return store, archive, cleanup, nil
}
