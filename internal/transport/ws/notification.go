package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"wordduel/internal/app"
	"wordduel/internal/directory"
	"wordduel/internal/domain"
)

// NotificationHandler serves the per-player notification channel used for
// challenge negotiation. A connection becomes addressable once its join
// message arrives; challenge traffic for the player is routed to it from
// then on.
type NotificationHandler struct {
	router     *app.Router
	negotiator *app.Negotiator
	players    directory.Directory
	upgrader   websocket.Upgrader
	logger     *zap.SugaredLogger
}

// NewNotificationHandler creates the notification channel handler.
func NewNotificationHandler(router *app.Router, negotiator *app.Negotiator, players directory.Directory, logger *zap.SugaredLogger) *NotificationHandler {
	return &NotificationHandler{
		router:     router,
		negotiator: negotiator,
		players:    players,
		upgrader:   newUpgrader(),
		logger:     logger,
	}
}

// ServeHTTP upgrades the notification connection.
func (h *NotificationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
			h.router.UnregisterPlayer(playerID, c)
			h.logger.Debugw("notification channel closed", "playerId", playerID)
		}
	}

	client.Run()
}

func (h *NotificationHandler) handleMessage(c *Client, playerID *string, data []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid message format")
		return
	}

	switch msg.Type {
	case MsgJoin:
		if msg.PlayerID == "" {
			c.sendError(ErrCodeInvalidMessage, "Player ID is required")
			return
		}
		*playerID = msg.PlayerID
		h.router.RegisterPlayer(msg.PlayerID, c)
		h.logger.Debugw("notification channel joined", "playerId", msg.PlayerID)
	case MsgChallengeInvite:
		h.handleInvite(c, msg)
	case MsgChallengeCancel:
		h.handleCancel(c, msg)
	case MsgChallengeResponse:
		h.handleResponse(c, msg)
	default:
		c.sendError(ErrCodeInvalidMessage, "Unknown message type")
	}
}

func (h *NotificationHandler) handleInvite(c *Client, msg inboundMessage) {
	ctx, cancel := lookupContext()
	defer cancel()

	from := directory.Resolve(ctx, h.players, msg.From, msg.FromName)
	offer, err := h.negotiator.Invite(from, msg.To, msg.Rematch, msg.HardMode, msg.RelatedGameID)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}

	// The offer stands even if the target is offline; they can still pick
	// it up through a fresh notification connection.
	err = h.router.Notify(msg.To, ChallengeInviteMessage{
		Type:          MsgChallengeInvite,
		From:          offer.From.ID,
		To:            offer.To,
		FromName:      offer.From.Name,
		Rematch:       offer.Rematch,
		HardMode:      offer.HardMode,
		RelatedGameID: offer.RelatedDuelID,
	})
	if err != nil && !errors.Is(err, domain.ErrConnectionUnavailable) {
		h.logger.Warnw("failed to deliver invite", "from", msg.From, "to", msg.To, "error", err)
	}
}

func (h *NotificationHandler) handleCancel(c *Client, msg inboundMessage) {
	if !h.negotiator.Cancel(msg.From, msg.To) {
		return
	}
	_ = h.router.Notify(msg.To, ChallengeCancelMessage{
		Type: MsgChallengeCancel,
		From: msg.From,
		To:   msg.To,
	})
}

func (h *NotificationHandler) handleResponse(c *Client, msg inboundMessage) {
	ctx, cancel := lookupContext()
	defer cancel()

	responder := directory.Resolve(ctx, h.players, msg.From, "")
	offer, session, err := h.negotiator.Respond(responder, msg.To, msg.Accepted, msg.Rematch)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}

	result := ChallengeResultMessage{
		Type:     MsgChallengeResult,
		Accepted: msg.Accepted,
		From:     msg.From,
		To:       msg.To,
		Rematch:  offer.Rematch,
	}
	if session != nil {
		result.GameID = session.ID()
	}

	_ = h.router.Notify(msg.From, result)
	_ = h.router.Notify(msg.To, result)
}

func lookupContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Second)
}
