package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"wordduel/internal/app"
	"wordduel/internal/directory"
)

// MatchmakingHandler serves the matchmaking WebSocket channel. A connection
// joins the queue with one message and either waits or is paired right
// away; matched connections receive the duel ID and are closed, since play
// continues on the duel's own channel.
type MatchmakingHandler struct {
	matchmaker *app.Matchmaker
	players    directory.Directory
	upgrader   websocket.Upgrader
	logger     *zap.SugaredLogger
}

// NewMatchmakingHandler creates the matchmaking channel handler.
func NewMatchmakingHandler(matchmaker *app.Matchmaker, players directory.Directory, logger *zap.SugaredLogger) *MatchmakingHandler {
	return &MatchmakingHandler{
		matchmaker: matchmaker,
		players:    players,
		upgrader:   newUpgrader(),
		logger:     logger,
	}
}

// ServeHTTP upgrades the matchmaking connection.
func (h *MatchmakingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorw("websocket upgrade failed", "error", err)
		return
	}

	var playerID string

	client := NewClient(conn, h.logger)
	client.onMessage = func(c *Client, data []byte) {
		h.handleMessage(c, &playerID, data)
	}
	client.onClose = func(c *Client) {
		if playerID != "" {
			h.matchmaker.Dequeue(playerID)
		}
	}

	client.Run()
}

func (h *MatchmakingHandler) handleMessage(c *Client, playerID *string, data []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid message format")
		return
	}

	if msg.Type != MsgJoin {
		c.sendError(ErrCodeInvalidMessage, "Unknown message type")
		return
	}
	if msg.PlayerID == "" {
		c.sendError(ErrCodeInvalidMessage, "Player ID is required")
		return
	}
	// A second join would swap the captured ID and orphan the first ticket
	// on disconnect.
	if *playerID != "" {
		c.sendError(ErrCodeAlreadyQueued, "Connection already joined the queue")
		return
	}

	ctx, cancel := lookupContext()
	defer cancel()

	player := directory.Resolve(ctx, h.players, msg.PlayerID, msg.Name)
	match, err := h.matchmaker.Enqueue(player, c)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	*playerID = msg.PlayerID

	if match == nil {
		return
	}

	found := MatchFoundMessage{Type: MsgMatchFound, GameID: match.Session.ID()}
	for _, t := range []app.Ticket{match.First, match.Second} {
		if err := t.Conn.Send(found); err != nil {
			h.logger.Warnw("failed to deliver match", "playerId", t.Player.ID, "error", err)
		}
		t.Conn.Close()
	}
}
