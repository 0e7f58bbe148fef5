package main

import (
	"context"
	"ctchen222/tictactoe-ai/internal/bot"
	"ctchen222/tictactoe-ai/internal/config"
	"ctchen222/tictactoe-ai/internal/db"
	"ctchen222/tictactoe-ai/internal/logger"
	"ctchen222/tictactoe-ai/internal/repository"
	"ctchen222/tictactoe-ai/internal/server"
	"ctchen222/tictactoe-ai/internal/service"
	"ctchen222/tictactoe-ai/internal/telemetry"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := flag.String("config", "", "path to a config file (optional, env vars override it)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	level, _ := cfg.SlogLevel()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	var shutdown telemetry.ShutdownFunc = telemetry.Noop
	if cfg.OtelEnabled {
		shutdown, err = telemetry.InitOtel(ctx, cfg.OtelEndpoint)
		if err != nil {
			log.Fatalf("failed to initialize telemetry: %v", err)
		}
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init(level, cfg.OtelEnabled)
	if level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the session store
	var gameRepo repository.GameRepository
	switch cfg.StoreBackend {
	case config.BackendRedis:
		rdb, err := db.NewRedisClient(ctx, cfg.RedisConnString)
		if err != nil {
			slog.Error("failed to initialize redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		gameRepo = repository.NewGameRepository(rdb, cfg.SessionTTL)
	default:
		memRepo := repository.NewMemoryGameRepository()
		if cfg.SessionTTL > 0 {
			go memRepo.RunJanitor(ctx, cfg.JanitorInterval, cfg.SessionTTL)
		}
		gameRepo = memRepo
	}

	// Initialize the history database
	historyDB, err := db.Open(ctx, cfg.HistoryDSN)
	if err != nil {
		slog.Error("failed to initialize history database", "error", err)
		os.Exit(1)
	}
	defer historyDB.Close()
	resultRepo := repository.NewResultRepository(historyDB)

	// Create services
	calculator := bot.NewCalculator(bot.NewDefaultEngine())
	gameService := service.NewGameService(gameRepo, calculator, resultRepo)

	srv := server.NewServer(gameService, cfg.SessionTTL)
	httpServer := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: srv.Handler(),
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server started", "addr", cfg.ServerAddr, "store", cfg.StoreBackend)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		slog.Error("http server failed", "error", err)
	}

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exiting")
}
