package app

import (
	"errors"
	"testing"

	"wordduel/internal/domain"
)

func TestInviteAndAccept(t *testing.T) {
	hub, _ := testHub(t)
	n := NewNegotiator(hub, testLogger())

	if _, err := n.Invite(player("p1"), "p2", false, false, ""); err != nil {
		t.Fatalf("invite: %v", err)
	}
	if n.PendingCount() != 1 {
		t.Errorf("pending offers = %d, want 1", n.PendingCount())
	}

	offer, session, err := n.Respond(player("p2"), "p1", true, false)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if session == nil {
		t.Fatal("accepting should create a duel")
	}
	if offer.From.ID != "p1" {
		t.Errorf("offer.From = %s, want p1", offer.From.ID)
	}

	// The responder moves first.
	first, second := session.Players()
	if first.ID != "p2" || second.ID != "p1" {
		t.Errorf("got %s vs %s, want p2 vs p1", first.ID, second.ID)
	}
	if n.PendingCount() != 0 {
		t.Errorf("offer should be consumed, %d left", n.PendingCount())
	}
}

func TestDeclineClearsOffer(t *testing.T) {
	hub, _ := testHub(t)
	n := NewNegotiator(hub, testLogger())

	n.Invite(player("p1"), "p2", false, false, "")
	_, session, err := n.Respond(player("p2"), "p1", false, false)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if session != nil {
		t.Error("declining must not create a duel")
	}
	if hub.SessionCount() != 0 {
		t.Errorf("hub should be empty, got %d", hub.SessionCount())
	}
	if n.PendingCount() != 0 {
		t.Errorf("offer should be cleared, %d left", n.PendingCount())
	}
}

func TestRespondWithoutOffer(t *testing.T) {
	hub, _ := testHub(t)
	n := NewNegotiator(hub, testLogger())

	_, _, err := n.Respond(player("p2"), "p1", true, false)
	if !errors.Is(err, domain.ErrNoPendingOffer) {
		t.Errorf("expected ErrNoPendingOffer, got %v", err)
	}
}

func TestRematchOffersAreSeparate(t *testing.T) {
	hub, _ := testHub(t)
	n := NewNegotiator(hub, testLogger())

	n.Invite(player("p1"), "p2", true, false, "")

	// Answering the plain variant must not consume the rematch offer.
	_, _, err := n.Respond(player("p2"), "p1", true, false)
	if !errors.Is(err, domain.ErrNoPendingOffer) {
		t.Fatalf("expected ErrNoPendingOffer, got %v", err)
	}

	_, session, err := n.Respond(player("p2"), "p1", true, true)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if session == nil {
		t.Error("rematch accept should create a duel")
	}
}

func TestRematchInviteCarriesRelatedDuel(t *testing.T) {
	hub, _ := testHub(t)
	n := NewNegotiator(hub, testLogger())

	sent, err := n.Invite(player("p1"), "p2", true, false, "duel-42")
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if sent.RelatedDuelID != "duel-42" {
		t.Errorf("RelatedDuelID = %q, want duel-42", sent.RelatedDuelID)
	}

	settled, _, err := n.Respond(player("p2"), "p1", true, true)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if settled.RelatedDuelID != "duel-42" {
		t.Errorf("settled offer lost the back-reference: %q", settled.RelatedDuelID)
	}
}

func TestInviteReplacesEarlierOffer(t *testing.T) {
	hub, _ := testHub(t)
	n := NewNegotiator(hub, testLogger())

	n.Invite(player("p1"), "p2", false, false, "")
	n.Invite(player("p1"), "p2", false, true, "")

	if n.PendingCount() != 1 {
		t.Errorf("a repeated invite should replace, not add: %d offers", n.PendingCount())
	}

	offer, session, err := n.Respond(player("p2"), "p1", true, false)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if !offer.HardMode {
		t.Error("the newer offer's options should win")
	}

	snap := session.Snapshot()
	if !snap.HardMode {
		t.Error("created duel should use the accepted offer's hard mode")
	}
}

func TestCancelClearsBothVariants(t *testing.T) {
	hub, _ := testHub(t)
	n := NewNegotiator(hub, testLogger())

	n.Invite(player("p1"), "p2", false, false, "")
	n.Invite(player("p1"), "p2", true, false, "")

	if !n.Cancel("p1", "p2") {
		t.Fatal("Cancel should report pending offers were cleared")
	}
	if n.PendingCount() != 0 {
		t.Errorf("all offers between the pair should be gone, %d left", n.PendingCount())
	}
	if n.Cancel("p1", "p2") {
		t.Error("second Cancel should find nothing")
	}
}

func TestSelfChallengeRejected(t *testing.T) {
	hub, _ := testHub(t)
	n := NewNegotiator(hub, testLogger())

	_, err := n.Invite(player("p1"), "p1", false, false, "")
	if !errors.Is(err, domain.ErrSelfChallenge) {
		t.Errorf("expected ErrSelfChallenge, got %v", err)
	}
}

func TestOffersDoNotCollideAcrossPairs(t *testing.T) {
	hub, _ := testHub(t)
	n := NewNegotiator(hub, testLogger())

	n.Invite(player("p1"), "p2", false, false, "")
	n.Invite(player("p3"), "p2", false, false, "")

	if n.PendingCount() != 2 {
		t.Errorf("offers from different challengers must coexist, got %d", n.PendingCount())
	}

	_, session, err := n.Respond(player("p2"), "p3", true, false)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	first, second := session.Players()
	if first.ID != "p2" || second.ID != "p3" {
		t.Errorf("got %s vs %s, want p2 vs p3", first.ID, second.ID)
	}
	if n.PendingCount() != 1 {
		t.Errorf("p1's offer should remain, got %d", n.PendingCount())
	}
}
