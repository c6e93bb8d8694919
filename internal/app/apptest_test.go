package app

import (
	"sync"
	"testing"

	"go.uber.org/zap"

	"wordduel/internal/domain"
	"wordduel/internal/history"
	"wordduel/internal/wordlist"
)

// fakeConn records everything sent to it.
type fakeConn struct {
	mu     sync.Mutex
	sent   []any
	closed bool
	fail   bool
}

func (c *fakeConn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errSendFailed
	}
	c.sent = append(c.sent, v)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) messages() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]any, len(c.sent))
	copy(out, c.sent)
	return out
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

var errSendFailed = domain.ErrConnectionUnavailable

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func testWords(t *testing.T) *wordlist.List {
	t.Helper()
	words, err := wordlist.Load(5, "", "")
	if err != nil {
		t.Fatalf("load word lists: %v", err)
	}
	return words
}

func testHub(t *testing.T) (*DuelHub, *Router) {
	t.Helper()
	router := NewRouter(testLogger())
	hub := NewDuelHub(testWords(t), router, history.NopRecorder{}, domain.DefaultDuelOptions(), testLogger())
	t.Cleanup(hub.Close)
	return hub, router
}

func testSession(t *testing.T, solution string, hardMode bool) (*DuelSession, *Router) {
	t.Helper()
	router := NewRouter(testLogger())
	opts := domain.DefaultDuelOptions()
	opts.HardMode = hardMode
	duel := domain.NewDuel("duel-1",
		domain.NewPlayerRef("p1", "Alice"),
		domain.NewPlayerRef("p2", "Bob"),
		solution, opts)
	session := NewDuelSession(duel, testWords(t), router, history.NopRecorder{}, testLogger())
	return session, router
}
