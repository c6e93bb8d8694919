package ws

// Message type discriminators shared by the three channels.
const (
	MsgJoin              = "join"
	MsgGuess             = "guess"
	MsgChallengeInvite   = "challenge_invite"
	MsgChallengeCancel   = "challenge_cancel"
	MsgChallengeResponse = "challenge_response"
	MsgChallengeResult   = "challenge_result"
	MsgMatchFound        = "match_found"
	MsgError             = "error"
)

// Error codes carried in ErrorMessage.
const (
	ErrCodeInvalidMessage      = "INVALID_MESSAGE"
	ErrCodeInvalidWord         = "INVALID_WORD"
	ErrCodeNotYourTurn         = "NOT_YOUR_TURN"
	ErrCodeNotParticipant      = "NOT_PARTICIPANT"
	ErrCodeConstraintViolation = "HARD_MODE_VIOLATION"
	ErrCodeDuelFinished        = "DUEL_FINISHED"
	ErrCodeDuelNotStarted      = "DUEL_NOT_STARTED"
	ErrCodeAlreadyQueued       = "ALREADY_QUEUED"
	ErrCodeSelfChallenge       = "SELF_CHALLENGE"
	ErrCodeNoPendingOffer      = "NO_PENDING_OFFER"
	ErrCodeSessionNotFound     = "SESSION_NOT_FOUND"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// inboundMessage covers every client-to-server message across the three
// channels; each handler reads only the fields its channel defines.
type inboundMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Guess    string `json:"guess,omitempty"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	FromName string `json:"from_name,omitempty"`
	Rematch  bool   `json:"rematch,omitempty"`
	Accepted bool   `json:"accepted,omitempty"`
	HardMode bool   `json:"hard_mode,omitempty"`

	// RelatedGameID names the finished duel a rematch invite follows.
	RelatedGameID string `json:"related_game_id,omitempty"`
}

// ChallengeInviteMessage tells a player someone wants to duel them.
type ChallengeInviteMessage struct {
	Type          string `json:"type"`
	From          string `json:"from"`
	To            string `json:"to"`
	FromName      string `json:"from_name"`
	Rematch       bool   `json:"rematch"`
	HardMode      bool   `json:"hard_mode"`
	RelatedGameID string `json:"related_game_id,omitempty"`
}

// ChallengeCancelMessage tells a player a pending invite was withdrawn.
type ChallengeCancelMessage struct {
	Type string `json:"type"`
	From string `json:"from"`
	To   string `json:"to"`
}

// ChallengeResultMessage reports the settled outcome of a challenge to
// both players. GameID is set only when the challenge was accepted.
type ChallengeResultMessage struct {
	Type     string `json:"type"`
	Accepted bool   `json:"accepted"`
	GameID   string `json:"game_id,omitempty"`
	From     string `json:"from"`
	To       string `json:"to"`
	Rematch  bool   `json:"rematch"`
}

// MatchFoundMessage tells a queued player their duel is ready.
type MatchFoundMessage struct {
	Type   string `json:"type"`
	GameID string `json:"game_id"`
}

// ErrorMessage reports a rejected operation to the originating connection.
type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newError(code, message string) ErrorMessage {
	return ErrorMessage{Type: MsgError, Code: code, Message: message}
}
