package history

import "math"

// DefaultElo is the rating assigned to a player's first recorded game.
const DefaultElo = 1200

// eloK is the rating adjustment factor.
const eloK = 32

// UpdateElo returns the new ratings after the winner beats the loser.
func UpdateElo(winner, loser int) (newWinner, newLoser int) {
	expected := 1.0 / (1.0 + math.Pow(10, float64(loser-winner)/400))
	delta := int(math.Round(eloK * (1 - expected)))
	return winner + delta, loser - delta
}
