package http

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"wordduel/internal/app"
	"wordduel/internal/config"
	"wordduel/internal/directory"
	"wordduel/internal/history"
	"wordduel/internal/transport/ws"
)

// Server represents the HTTP server
type Server struct {
	server     *http.Server
	hub        *app.DuelHub
	router     *app.Router
	matchmaker *app.Matchmaker
	negotiator *app.Negotiator
	players    directory.Directory
	recorder   history.Recorder
	config     *config.Config
	logger     *zap.SugaredLogger
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.Config,
	hub *app.DuelHub,
	router *app.Router,
	matchmaker *app.Matchmaker,
	negotiator *app.Negotiator,
	players directory.Directory,
	recorder history.Recorder,
	logger *zap.SugaredLogger,
) *Server {
	s := &Server{
		hub:        hub,
		router:     router,
		matchmaker: matchmaker,
		negotiator: negotiator,
		players:    players,
		recorder:   recorder,
		config:     cfg,
		logger:     logger,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux)

	s.server = &http.Server{
		Addr:         cfg.GetAddr(),
		Handler:      s.middleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux) {
	// API routes
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("POST /api/players", s.handleRegisterPlayer)
	mux.HandleFunc("GET /api/players/{id}", s.handleGetPlayer)
	mux.HandleFunc("GET /api/players/{id}/games", s.handlePlayerGames)
	mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	mux.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)

	// WebSocket channels
	mux.Handle("GET /ws/notifications", ws.NewNotificationHandler(s.router, s.negotiator, s.players, s.logger))
	mux.Handle("GET /ws/matchmaking", ws.NewMatchmakingHandler(s.matchmaker, s.players, s.logger))
	mux.Handle("GET /ws/game/{id}", ws.NewGameHandler(s.hub, s.logger))
}

// middleware wraps the handler with CORS and request logging
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.logger.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration", time.Since(start),
		)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Infow("server starting", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("server shutting down")
	return s.server.Shutdown(ctx)
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack implements http.Hijacker for WebSocket support
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Flush implements http.Flusher
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
