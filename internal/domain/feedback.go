package domain

import "strings"

// Mark is the per-letter verdict for one position of a guess.
type Mark string

const (
	MarkCorrect Mark = "correct"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// String returns the string representation of the mark.
func (m Mark) String() string {
	return string(m)
}

// Feedback scores a guess against the target with the classic two-pass
// algorithm. Pass one marks exact matches and consumes those target letters;
// pass two marks remaining guess letters Present only while an unconsumed
// occurrence exists, so duplicate letters are never double-counted.
// Both inputs are case-insensitive and must have the same length.
func Feedback(guess, target string) ([]Mark, error) {
	guessArr := []rune(strings.ToUpper(guess))
	targetArr := []rune(strings.ToUpper(target))
	if len(guessArr) != len(targetArr) {
		return nil, ErrInvalidInput
	}

	marks := make([]Mark, len(targetArr))
	used := make([]bool, len(targetArr))

	// First pass: exact matches
	for i := range guessArr {
		if guessArr[i] == targetArr[i] {
			marks[i] = MarkCorrect
			used[i] = true
		}
	}

	// Second pass: present / absent
	for i := range guessArr {
		if marks[i] == MarkCorrect {
			continue
		}
		marks[i] = MarkAbsent
		for j := range targetArr {
			if !used[j] && guessArr[i] == targetArr[j] {
				marks[i] = MarkPresent
				used[j] = true
				break
			}
		}
	}

	return marks, nil
}

// AllCorrect reports whether every mark in the verdict is Correct.
func AllCorrect(marks []Mark) bool {
	for _, m := range marks {
		if m != MarkCorrect {
			return false
		}
	}
	return len(marks) > 0
}

// MarksToStrings converts a verdict to its wire representation.
func MarksToStrings(marks []Mark) []string {
	out := make([]string, len(marks))
	for i, m := range marks {
		out[i] = string(m)
	}
	return out
}
