package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"wordduel/internal/app"
	"wordduel/internal/domain"
)

// GameHandler serves the per-duel WebSocket channel. Clients join a duel,
// receive full state snapshots, and submit guesses.
type GameHandler struct {
	hub      *app.DuelHub
	upgrader websocket.Upgrader
	logger   *zap.SugaredLogger
}

// NewGameHandler creates the duel channel handler.
func NewGameHandler(hub *app.DuelHub, logger *zap.SugaredLogger) *GameHandler {
	return &GameHandler{
		hub:      hub,
		upgrader: newUpgrader(),
		logger:   logger,
	}
}

// ServeHTTP upgrades the connection for the duel named in the path.
func (h *GameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	duelID := r.PathValue("id")

	session, err := h.hub.GetSession(duelID)
	if err != nil {
		http.Error(w, "Duel not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorw("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(conn, h.logger)
	client.onMessage = func(c *Client, data []byte) {
		h.handleMessage(c, session, data)
	}
	client.onClose = func(c *Client) {
		session.Leave(c)
	}

	h.logger.Debugw("game channel connected", "duelId", duelID)
	client.Run()
}

func (h *GameHandler) handleMessage(c *Client, session *app.DuelSession, data []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid message format")
		return
	}

	switch msg.Type {
	case MsgJoin:
		var err error
		if msg.PlayerID != "" {
			err = session.Join(msg.PlayerID, c)
		} else {
			err = session.Watch(c)
		}
		if err != nil {
			c.sendError(errorCode(err), err.Error())
		}
	case MsgGuess:
		if msg.PlayerID == "" || msg.Guess == "" {
			c.sendError(ErrCodeInvalidMessage, "Guess and player ID are required")
			return
		}
		if err := session.SubmitGuess(msg.PlayerID, msg.Guess); err != nil {
			c.sendError(errorCode(err), err.Error())
		}
	default:
		c.sendError(ErrCodeInvalidMessage, "Unknown message type")
	}
}

// errorCode maps domain errors onto wire error codes.
func errorCode(err error) string {
	if _, ok := domain.AsConstraintViolation(err); ok {
		return ErrCodeConstraintViolation
	}
	switch err {
	case domain.ErrInvalidInput:
		return ErrCodeInvalidMessage
	case domain.ErrInvalidWord:
		return ErrCodeInvalidWord
	case domain.ErrNotYourTurn:
		return ErrCodeNotYourTurn
	case domain.ErrNotParticipant:
		return ErrCodeNotParticipant
	case domain.ErrDuelFinished:
		return ErrCodeDuelFinished
	case domain.ErrInvalidTransition:
		return ErrCodeDuelNotStarted
	case domain.ErrAlreadyQueued:
		return ErrCodeAlreadyQueued
	case domain.ErrSelfChallenge:
		return ErrCodeSelfChallenge
	case domain.ErrNoPendingOffer:
		return ErrCodeNoPendingOffer
	case domain.ErrSessionNotFound:
		return ErrCodeSessionNotFound
	default:
		return ErrCodeInternalError
	}
}
