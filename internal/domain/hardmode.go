package domain

import (
	"sort"
	"strings"
)

// presentConstraint tracks what the Present marks for one letter imply: the
// letter must appear at least Min times, and never at any of the positions
// where it was marked Present (it is known to live elsewhere).
type presentConstraint struct {
	Min       int
	Forbidden map[int]bool
}

// CheckHardMode validates a candidate guess against the constraints revealed
// by prior turns. Constraints are derived by folding over the history in
// order: Correct marks pin a letter to a position permanently, Absent marks
// ban a letter outright, and Present marks accumulate a minimum count plus a
// set of disallowed positions. Min counts are cumulative across all turns,
// not deduplicated per guess.
//
// Checks run in a fixed order and the first violation wins: required
// positions, then banned letters, then minimum counts, then disallowed
// positions. A nil return means the guess is permitted.
func CheckHardMode(candidate string, history []TurnRecord) error {
	if len(history) == 0 {
		return nil
	}

	cand := []rune(strings.ToUpper(candidate))
	size := len(history[0].Verdict)

	required := make([]rune, size)
	forbidden := make(map[rune]bool)
	present := make(map[rune]*presentConstraint)

	for _, turn := range history {
		prev := []rune(strings.ToUpper(turn.Guess))
		for i, mark := range turn.Verdict {
			if i >= len(prev) {
				break
			}
			letter := prev[i]
			switch mark {
			case MarkCorrect:
				required[i] = letter
			case MarkAbsent:
				forbidden[letter] = true
			case MarkPresent:
				pc := present[letter]
				if pc == nil {
					pc = &presentConstraint{Forbidden: make(map[int]bool)}
					present[letter] = pc
				}
				pc.Min++
				pc.Forbidden[i] = true
			}
		}
	}

	for i := 0; i < size && i < len(cand); i++ {
		if required[i] != 0 && cand[i] != required[i] {
			return &ConstraintViolation{Rule: RuleRequiredPosition, Letter: string(required[i]), Position: i + 1}
		}
	}

	for i := 0; i < len(cand); i++ {
		if forbidden[cand[i]] {
			return &ConstraintViolation{Rule: RuleForbiddenLetter, Letter: string(cand[i])}
		}
	}

	letters := make([]rune, 0, len(present))
	for l := range present {
		letters = append(letters, l)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })

	for _, l := range letters {
		count := 0
		for _, c := range cand {
			if c == l {
				count++
			}
		}
		if count < present[l].Min {
			return &ConstraintViolation{Rule: RuleMinimumCount, Letter: string(l), MinCount: present[l].Min}
		}
	}

	for _, l := range letters {
		positions := make([]int, 0, len(present[l].Forbidden))
		for pos := range present[l].Forbidden {
			positions = append(positions, pos)
		}
		sort.Ints(positions)
		for _, pos := range positions {
			if pos < len(cand) && cand[pos] == l {
				return &ConstraintViolation{Rule: RuleForbiddenPosition, Letter: string(l), Position: pos + 1}
			}
		}
	}

	return nil
}
