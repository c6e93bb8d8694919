package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"wordduel/internal/app"
	"wordduel/internal/config"
	"wordduel/internal/directory"
	"wordduel/internal/domain"
	"wordduel/internal/history"
	httpTransport "wordduel/internal/transport/http"
	"wordduel/internal/wordlist"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set up logger
	zapLogger, err := newLogger(cfg)
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	logger.Infow("starting word duel server",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Load word lists
	words, err := wordlist.Load(cfg.Game.WordLength, cfg.Words.AnswersFile, cfg.Words.AllowedFile)
	if err != nil {
		logger.Fatalw("failed to load word lists", "error", err)
	}
	answers, allowed := words.Stats()
	logger.Infow("word lists loaded", "answers", answers, "allowed", allowed)

	ctx := context.Background()

	// Player directory: Redis when configured, in-memory otherwise
	var players directory.Directory
	if cfg.Store.RedisAddr != "" {
		players, err = directory.NewRedisDirectory(ctx, cfg.Store.RedisAddr, cfg.Store.RedisPassword, cfg.Store.NameTTL)
		if err != nil {
			logger.Fatalw("failed to connect to redis", "addr", cfg.Store.RedisAddr, "error", err)
		}
		logger.Infow("player directory backed by redis", "addr", cfg.Store.RedisAddr)
	} else {
		players = directory.NewMemoryDirectory()
		logger.Infow("player directory in memory only")
	}
	defer players.Close()

	// Duel history: Postgres when configured
	var recorder history.Recorder
	if cfg.Store.DatabaseURL != "" {
		repo, err := history.NewRepository(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			logger.Fatalw("failed to connect to database", "error", err)
		}
		recorder = repo
		logger.Infow("duel history backed by postgres")
	} else {
		recorder = history.NopRecorder{}
		logger.Infow("duel history disabled")
	}
	defer recorder.Close()

	// Wire the application layer
	router := app.NewRouter(logger)
	options := domain.DuelOptions{
		WordLength: cfg.Game.WordLength,
		MaxTurns:   cfg.Game.MaxTurns,
		HardMode:   cfg.Game.HardModeDefault,
		JoinGrace:  cfg.Game.JoinGracePeriod,
	}
	hub := app.NewDuelHub(words, router, recorder, options, logger)
	defer hub.Close()
	matchmaker := app.NewMatchmaker(hub, logger)
	negotiator := app.NewNegotiator(hub, logger)

	// Create HTTP server
	server := httpTransport.NewServer(cfg, hub, router, matchmaker, negotiator, players, recorder, logger)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infow("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("server forced to shutdown", "error", err)
	}

	logger.Infow("server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(parseLogLevel(cfg.Logging.Level))
	zapCfg.Encoding = cfg.Logging.Format
	return zapCfg.Build()
}

func parseLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
