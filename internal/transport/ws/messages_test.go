package ws

import (
	"encoding/json"
	"errors"
	"testing"

	"wordduel/internal/domain"
)

func TestErrorCodeMapping(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{domain.ErrInvalidInput, ErrCodeInvalidMessage},
		{domain.ErrInvalidWord, ErrCodeInvalidWord},
		{domain.ErrNotYourTurn, ErrCodeNotYourTurn},
		{domain.ErrNotParticipant, ErrCodeNotParticipant},
		{domain.ErrDuelFinished, ErrCodeDuelFinished},
		{domain.ErrAlreadyQueued, ErrCodeAlreadyQueued},
		{domain.ErrSelfChallenge, ErrCodeSelfChallenge},
		{domain.ErrNoPendingOffer, ErrCodeNoPendingOffer},
		{domain.ErrSessionNotFound, ErrCodeSessionNotFound},
		{errors.New("boom"), ErrCodeInternalError},
		{&domain.ConstraintViolation{Rule: domain.RuleForbiddenLetter, Letter: "T"}, ErrCodeConstraintViolation},
	}

	for _, tc := range cases {
		if got := errorCode(tc.err); got != tc.want {
			t.Errorf("errorCode(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

func TestInboundMessageDecoding(t *testing.T) {
	raw := `{"type":"challenge_response","from":"p2","to":"p1","accepted":true,"rematch":true}`

	var msg inboundMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != MsgChallengeResponse || msg.From != "p2" || msg.To != "p1" || !msg.Accepted || !msg.Rematch {
		t.Errorf("decoded %+v", msg)
	}
}

func TestChallengeResultOmitsGameIDWhenDeclined(t *testing.T) {
	declined, err := json.Marshal(ChallengeResultMessage{
		Type:     MsgChallengeResult,
		Accepted: false,
		From:     "p2",
		To:       "p1",
	})
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	json.Unmarshal(declined, &decoded)
	if _, present := decoded["game_id"]; present {
		t.Error("a declined result must not carry a game_id")
	}
}
