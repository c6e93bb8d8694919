package domain

// Status represents the lifecycle stage of a duel.
type Status string

const (
	StatusWaiting    Status = "waiting"     // created, awaiting both participants
	StatusInProgress Status = "in_progress" // both joined, turns proceeding
	StatusFinished   Status = "finished"    // terminal, carries a result
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if a transition from the current status to the
// target status is valid. Finished is terminal and never regresses.
func (s Status) CanTransitionTo(target Status) bool {
	validTransitions := map[Status][]Status{
		StatusWaiting:    {StatusInProgress, StatusFinished},
		StatusInProgress: {StatusFinished},
		StatusFinished:   {},
	}

	allowed, ok := validTransitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}
