package domain

// PlayerRef is the core's view of a player: an opaque identifier plus a
// cached display name. Identity is owned externally and never mutated here.
type PlayerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewPlayerRef creates a player reference.
func NewPlayerRef(id, name string) PlayerRef {
	return PlayerRef{ID: id, Name: name}
}
