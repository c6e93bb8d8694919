package domain

import "time"

// Snapshot is the full duel state as sent to clients. The solution is only
// included once the duel is finished, and the result stays null while the
// duel is undecided so clients can distinguish "no result yet" from a draw.
type Snapshot struct {
	Type          string     `json:"type"`
	ID            string     `json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	FirstPlayer   PlayerRef  `json:"first_player"`
	SecondPlayer  PlayerRef  `json:"second_player"`
	CurrentPlayer string     `json:"current_player"`
	Status        Status     `json:"status"`
	HardMode      bool       `json:"hard_mode"`
	Result        *string    `json:"result"`
	Guesses       []string   `json:"guesses"`
	Feedback      [][]string `json:"feedback"`
	Solution      *string    `json:"solution,omitempty"`
}

// Snapshot renders the duel's current state for the wire.
func (d *Duel) Snapshot() Snapshot {
	guesses := make([]string, 0, len(d.Log))
	feedback := make([][]string, 0, len(d.Log))
	for _, turn := range d.Log {
		guesses = append(guesses, turn.Guess)
		feedback = append(feedback, MarksToStrings(turn.Verdict))
	}

	snap := Snapshot{
		Type:          "game_state",
		ID:            d.ID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		FirstPlayer:   d.FirstPlayer,
		SecondPlayer:  d.SecondPlayer,
		CurrentPlayer: d.CurrentPlayer,
		Status:        d.Status,
		HardMode:      d.Options.HardMode,
		Guesses:       guesses,
		Feedback:      feedback,
	}
	if d.Result != "" {
		result := d.Result
		snap.Result = &result
	}
	if d.Finished() {
		solution := d.Solution
		snap.Solution = &solution
	}
	return snap
}
