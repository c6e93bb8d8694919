package app

import (
	"sync"

	"go.uber.org/zap"

	"wordduel/internal/domain"
)

// Connection is a single client link the router can push messages to.
// Implementations are expected to be safe for concurrent Send calls.
type Connection interface {
	Send(v any) error
	Close() error
}

// Router delivers server-initiated messages. It keeps two registries: one
// connection per player on the notification channel (a newer registration
// replaces the old one), and a set of connections per duel session. A
// failed Send drops the connection from the registry.
type Router struct {
	mu            sync.RWMutex
	notifications map[string]Connection
	sessions      map[string]map[Connection]struct{}
	logger        *zap.SugaredLogger
}

// NewRouter creates an empty router.
func NewRouter(logger *zap.SugaredLogger) *Router {
	return &Router{
		notifications: make(map[string]Connection),
		sessions:      make(map[string]map[Connection]struct{}),
		logger:        logger,
	}
}

// RegisterPlayer binds conn as playerID's notification channel. Any previous
// connection for the player is closed and replaced.
func (r *Router) RegisterPlayer(playerID string, conn Connection) {
	r.mu.Lock()
	prev := r.notifications[playerID]
	r.notifications[playerID] = conn
	r.mu.Unlock()

	if prev != nil && prev != conn {
		prev.Close()
		r.logger.Debugw("notification connection replaced", "playerId", playerID)
	}
}

// UnregisterPlayer removes playerID's notification channel, but only if it
// is still conn. This keeps a stale disconnect from tearing down a newer
// registration.
func (r *Router) UnregisterPlayer(playerID string, conn Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.notifications[playerID] == conn {
		delete(r.notifications, playerID)
	}
}

// Notify sends v to playerID's notification connection.
func (r *Router) Notify(playerID string, v any) error {
	r.mu.RLock()
	conn, ok := r.notifications[playerID]
	r.mu.RUnlock()

	if !ok {
		return domain.ErrConnectionUnavailable
	}
	if err := conn.Send(v); err != nil {
		r.UnregisterPlayer(playerID, conn)
		return domain.ErrConnectionUnavailable
	}
	return nil
}

// IsOnline reports whether playerID has a live notification connection.
func (r *Router) IsOnline(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.notifications[playerID]
	return ok
}

// JoinSession adds conn to the broadcast set for sessionID.
func (r *Router) JoinSession(sessionID string, conn Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.sessions[sessionID]
	if !ok {
		set = make(map[Connection]struct{})
		r.sessions[sessionID] = set
	}
	set[conn] = struct{}{}
}

// LeaveSession removes conn from sessionID's broadcast set.
func (r *Router) LeaveSession(sessionID string, conn Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if set, ok := r.sessions[sessionID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(r.sessions, sessionID)
		}
	}
}

// BroadcastSession sends v to every connection joined to sessionID.
// Connections that fail to send are dropped from the set.
func (r *Router) BroadcastSession(sessionID string, v any) {
	r.mu.RLock()
	conns := make([]Connection, 0, len(r.sessions[sessionID]))
	for conn := range r.sessions[sessionID] {
		conns = append(conns, conn)
	}
	r.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.Send(v); err != nil {
			r.LeaveSession(sessionID, conn)
			r.logger.Debugw("dropped session connection", "sessionId", sessionID, "error", err)
		}
	}
}

// CloseSession closes and forgets every connection joined to sessionID.
func (r *Router) CloseSession(sessionID string) {
	r.mu.Lock()
	set := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	r.mu.Unlock()

	for conn := range set {
		conn.Close()
	}
}

// OnlineCount returns the number of players with notification connections.
func (r *Router) OnlineCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.notifications)
}
