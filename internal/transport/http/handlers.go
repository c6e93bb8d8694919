package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"wordduel/internal/domain"
	"wordduel/internal/history"
)

// Response is a standard API response
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the response for health check
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the response for stats endpoint
type StatsResponse struct {
	ActiveDuels   int `json:"activeDuels"`
	OnlinePlayers int `json:"onlinePlayers"`
	QueuedPlayers int `json:"queuedPlayers"`
	PendingOffers int `json:"pendingOffers"`
}

// RegisterPlayerRequest is the body for player registration
type RegisterPlayerRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlayerResponse is the response for a player lookup
type PlayerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &HealthResponse{
		Status: "ok",
	})
}

// handleStats handles GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &StatsResponse{
		ActiveDuels:   s.hub.SessionCount(),
		OnlinePlayers: s.router.OnlineCount(),
		QueuedPlayers: s.matchmaker.QueueLength(),
		PendingOffers: s.negotiator.PendingCount(),
	})
}

// handleRegisterPlayer handles POST /api/players
func (s *Server) handleRegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var req RegisterPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	if err := s.players.Save(r.Context(), req.ID, req.Name); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			s.sendError(w, http.StatusBadRequest, "INVALID_INPUT", "Player ID and name are required")
		} else {
			s.sendError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save player")
		}
		return
	}

	s.sendSuccess(w, &PlayerResponse{ID: req.ID, Name: req.Name})
}

// handleGetPlayer handles GET /api/players/{id}
func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	name, err := s.players.Lookup(r.Context(), id)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to look up player")
		return
	}
	if name == "" {
		s.sendError(w, http.StatusNotFound, "PLAYER_NOT_FOUND", "Player not found")
		return
	}

	s.sendSuccess(w, &PlayerResponse{ID: id, Name: name})
}

// handlePlayerGames handles GET /api/players/{id}/games
func (s *Server) handlePlayerGames(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	games, err := s.recorder.GamesByPlayer(r.Context(), id, limit)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load games")
		return
	}
	if games == nil {
		games = []history.Record{}
	}

	s.sendSuccess(w, games)
}

// handleGetGame handles GET /api/games/{id}. Live duels are served from
// memory; finished duels fall back to the history store.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if session, err := s.hub.GetSession(id); err == nil {
		s.sendSuccess(w, session.Snapshot())
		return
	}

	record, err := s.recorder.GetGame(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			s.sendError(w, http.StatusNotFound, "GAME_NOT_FOUND", "Game not found")
		} else {
			s.sendError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load game")
		}
		return
	}

	s.sendSuccess(w, record)
}

// handleLeaderboard handles GET /api/leaderboard
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	ratings, err := s.recorder.Leaderboard(r.Context(), limit)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load leaderboard")
		return
	}
	if ratings == nil {
		ratings = []history.Rating{}
	}

	s.sendSuccess(w, ratings)
}

// sendSuccess sends a successful JSON response
func (s *Server) sendSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&Response{
		Success: true,
		Data:    data,
	})
}

// sendError sends an error JSON response
func (s *Server) sendError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}
