package domain

import "testing"

func turn(guess string, marks ...Mark) TurnRecord {
	return TurnRecord{Guess: guess, Verdict: marks}
}

// EARTH scored against REACT: E, A, R present, T and H absent.
func earthVsReact() []TurnRecord {
	return []TurnRecord{
		turn("EARTH", MarkPresent, MarkPresent, MarkPresent, MarkAbsent, MarkAbsent),
	}
}

// FENCE scored against a target holding one E away from position 5:
// E correct in position 2, trailing E present, F, N, C absent.
func fenceTurn() []TurnRecord {
	return []TurnRecord{
		turn("FENCE", MarkAbsent, MarkCorrect, MarkAbsent, MarkAbsent, MarkPresent),
	}
}

func TestHardModeNoHistory(t *testing.T) {
	if err := CheckHardMode("CRATE", nil); err != nil {
		t.Errorf("empty history must permit anything, got %v", err)
	}
}

func TestHardModeAllowsValidPlacement(t *testing.T) {
	// CRATE keeps E, A, R while moving them off their marked positions.
	if err := CheckHardMode("CRATE", earthVsReact()); err != nil {
		t.Errorf("CRATE should be permitted, got %v", err)
	}
}

func TestHardModeBlocksAbsentLetterReuse(t *testing.T) {
	err := CheckHardMode("THREE", earthVsReact())
	v, ok := AsConstraintViolation(err)
	if !ok {
		t.Fatalf("expected a constraint violation, got %v", err)
	}
	if v.Rule != RuleForbiddenLetter || v.Letter != "T" {
		t.Errorf("got %+v, want forbidden letter T", v)
	}
}

func TestHardModeAbsentCheckRunsBeforePositionCheck(t *testing.T) {
	// CARTE repeats A, R, T in their marked positions but also reuses the
	// absent T, which is reported first.
	err := CheckHardMode("CARTE", earthVsReact())
	v, ok := AsConstraintViolation(err)
	if !ok {
		t.Fatalf("expected a constraint violation, got %v", err)
	}
	if v.Rule != RuleForbiddenLetter || v.Letter != "T" {
		t.Errorf("got %+v, want forbidden letter T", v)
	}
}

func TestHardModeBlocksMissingPresentLetter(t *testing.T) {
	// CEASE avoids the absent T and H but drops the R entirely.
	err := CheckHardMode("CEASE", earthVsReact())
	v, ok := AsConstraintViolation(err)
	if !ok {
		t.Fatalf("expected a constraint violation, got %v", err)
	}
	if v.Rule != RuleMinimumCount || v.Letter != "R" || v.MinCount != 1 {
		t.Errorf("got %+v, want minimum count R >= 1", v)
	}
}

func TestHardModeBlocksPresentLetterInSamePosition(t *testing.T) {
	// EARNS keeps every marked letter but leaves E in position 1 where it
	// was marked present.
	err := CheckHardMode("EARNS", earthVsReact())
	v, ok := AsConstraintViolation(err)
	if !ok {
		t.Fatalf("expected a constraint violation, got %v", err)
	}
	if v.Rule != RuleForbiddenPosition || v.Letter != "E" || v.Position != 1 {
		t.Errorf("got %+v, want E forbidden in position 1", v)
	}
}

func TestHardModeBlocksMovedCorrectLetter(t *testing.T) {
	err := CheckHardMode("RECAP", []TurnRecord{
		turn("REACT", MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect),
	})
	v, ok := AsConstraintViolation(err)
	if !ok {
		t.Fatalf("expected a constraint violation, got %v", err)
	}
	if v.Rule != RuleRequiredPosition || v.Letter != "A" || v.Position != 3 {
		t.Errorf("got %+v, want A required in position 3", v)
	}
}

func TestHardModeDoubleLetterAllowed(t *testing.T) {
	// JEEPS repeats E, keeps it in the correct position 2 and away from
	// the forbidden position 5.
	if err := CheckHardMode("JEEPS", fenceTurn()); err != nil {
		t.Errorf("JEEPS should be permitted, got %v", err)
	}
}

func TestHardModeDoubleLetterForbiddenPosition(t *testing.T) {
	// TERSE puts an E back in position 5 where it was marked present.
	err := CheckHardMode("TERSE", fenceTurn())
	v, ok := AsConstraintViolation(err)
	if !ok {
		t.Fatalf("expected a constraint violation, got %v", err)
	}
	if v.Rule != RuleForbiddenPosition || v.Letter != "E" || v.Position != 5 {
		t.Errorf("got %+v, want E forbidden in position 5", v)
	}
}

func TestHardModeMinCountsAccumulateAcrossTurns(t *testing.T) {
	// Two separate turns each mark an E as present, so later guesses need
	// at least two Es.
	history := []TurnRecord{
		turn("SPEED", MarkAbsent, MarkAbsent, MarkPresent, MarkAbsent, MarkAbsent),
		turn("LEMON", MarkAbsent, MarkPresent, MarkAbsent, MarkAbsent, MarkAbsent),
	}

	err := CheckHardMode("CRATE", history)
	v, ok := AsConstraintViolation(err)
	if !ok {
		t.Fatalf("expected a constraint violation, got %v", err)
	}
	if v.Rule != RuleMinimumCount || v.Letter != "E" || v.MinCount != 2 {
		t.Errorf("got %+v, want minimum count E >= 2", v)
	}
}

func TestConstraintViolationMessages(t *testing.T) {
	cases := []struct {
		v    ConstraintViolation
		want string
	}{
		{ConstraintViolation{Rule: RuleRequiredPosition, Letter: "T", Position: 5}, "hard mode: must use T in position 5"},
		{ConstraintViolation{Rule: RuleForbiddenLetter, Letter: "H"}, "hard mode: cannot use H (marked absent)"},
		{ConstraintViolation{Rule: RuleMinimumCount, Letter: "E", MinCount: 2}, "hard mode: must use E at least 2 time(s)"},
		{ConstraintViolation{Rule: RuleForbiddenPosition, Letter: "E", Position: 5}, "hard mode: E cannot be in position 5"},
	}

	for _, tc := range cases {
		if got := tc.v.Error(); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}
