package app

import (
	"errors"
	"testing"

	"wordduel/internal/domain"
	"wordduel/internal/history"
)

func player(id string) domain.PlayerRef {
	return domain.NewPlayerRef(id, "Player "+id)
}

func TestEnqueueFirstPlayerWaits(t *testing.T) {
	hub, _ := testHub(t)
	m := NewMatchmaker(hub, testLogger())

	match, err := m.Enqueue(player("p1"), &fakeConn{})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if match != nil {
		t.Fatal("a lone player must wait, not match")
	}
	if m.QueueLength() != 1 {
		t.Errorf("queue length = %d, want 1", m.QueueLength())
	}
}

func TestEnqueueSecondPlayerMatches(t *testing.T) {
	hub, _ := testHub(t)
	m := NewMatchmaker(hub, testLogger())

	m.Enqueue(player("p1"), &fakeConn{})
	match, err := m.Enqueue(player("p2"), &fakeConn{})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if match == nil {
		t.Fatal("second player should be matched")
	}

	if match.First.Player.ID != "p1" || match.Second.Player.ID != "p2" {
		t.Errorf("pairing order wrong: %s vs %s", match.First.Player.ID, match.Second.Player.ID)
	}
	if m.QueueLength() != 0 {
		t.Errorf("queue should be empty after a match, got %d", m.QueueLength())
	}

	first, second := match.Session.Players()
	if first.ID != "p1" || second.ID != "p2" {
		t.Errorf("the waiting player moves first: %s vs %s", first.ID, second.ID)
	}
	if hub.SessionCount() != 1 {
		t.Errorf("hub should hold the created duel, got %d", hub.SessionCount())
	}
}

func TestMatchedDuelUsesHardModeDefault(t *testing.T) {
	router := NewRouter(testLogger())
	opts := domain.DefaultDuelOptions()
	opts.HardMode = true
	hub := NewDuelHub(testWords(t), router, history.NopRecorder{}, opts, testLogger())
	t.Cleanup(hub.Close)
	m := NewMatchmaker(hub, testLogger())

	m.Enqueue(player("p1"), &fakeConn{})
	match, err := m.Enqueue(player("p2"), &fakeConn{})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if match == nil {
		t.Fatal("second player should be matched")
	}
	if !match.Session.Snapshot().HardMode {
		t.Error("matchmade duel should carry the configured hard-mode default")
	}
}

func TestEnqueueRejectsDuplicate(t *testing.T) {
	hub, _ := testHub(t)
	m := NewMatchmaker(hub, testLogger())

	m.Enqueue(player("p1"), &fakeConn{})
	_, err := m.Enqueue(player("p1"), &fakeConn{})
	if !errors.Is(err, domain.ErrAlreadyQueued) {
		t.Errorf("expected ErrAlreadyQueued, got %v", err)
	}
	if m.QueueLength() != 1 {
		t.Errorf("duplicate enqueue must not grow the queue, got %d", m.QueueLength())
	}
}

func TestEnqueueRejectsEmptyPlayer(t *testing.T) {
	hub, _ := testHub(t)
	m := NewMatchmaker(hub, testLogger())

	_, err := m.Enqueue(domain.PlayerRef{}, &fakeConn{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDequeue(t *testing.T) {
	hub, _ := testHub(t)
	m := NewMatchmaker(hub, testLogger())

	m.Enqueue(player("p1"), &fakeConn{})
	if !m.Dequeue("p1") {
		t.Error("Dequeue should report the player was queued")
	}
	if m.Dequeue("p1") {
		t.Error("second Dequeue should report nothing to remove")
	}
	if m.QueueLength() != 0 {
		t.Errorf("queue length = %d, want 0", m.QueueLength())
	}
}

func TestDequeuedPlayerIsNotMatched(t *testing.T) {
	hub, _ := testHub(t)
	m := NewMatchmaker(hub, testLogger())

	m.Enqueue(player("p1"), &fakeConn{})
	m.Dequeue("p1")

	match, err := m.Enqueue(player("p2"), &fakeConn{})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if match != nil {
		t.Error("p2 should wait after p1 left the queue")
	}
}
