package engine

import "testing"

func TestRepetitionFiftyMoveRuleTriggersDraw(t *testing.T) {
	var r repetitionTracker
	r.push(1, 0)
	r.push(2, fiftyMoveLimit)
	if !r.isDraw(0) {
		t.Fatalf("expected a draw once the fifty-move counter reaches the limit")
	}
}

func TestRepetitionTwoPriorOccurrencesAlwaysDraws(t *testing.T) {
	var r repetitionTracker
	const h1, h3 = uint64(100), uint64(300)

	r.push(h1, 0) // index 0: first occurrence, before the search root
	r.push(h1, 1) // index 1: root position, second occurrence
	rootIndex := 1

	r.push(h3, 2) // index 2: inside the search tree
	r.push(h1, 3) // index 3: third occurrence, found by the search

	if !r.isDraw(rootIndex) {
		t.Fatalf("three total occurrences of the same hash must always be a draw")
	}
}

func TestRepetitionOnlyOnePriorOccurrenceBeforeRootIsEnough(t *testing.T) {
	var r repetitionTracker
	const h1, hRoot = uint64(100), uint64(999)

	r.push(h1, 0)    // index 0: occurred once already, in real game history
	r.push(hRoot, 1) // index 1: root position (a distinct hash)
	rootIndex := 1

	r.push(h1, 2) // index 2: the search reaches h1 again, a second total occurrence

	if !r.isDraw(rootIndex) {
		t.Fatalf("a position already repeated once before the search root only needs one more occurrence to draw")
	}
}

func TestRepetitionFirstOccurrenceInsideSearchNeedsASecondRepeat(t *testing.T) {
	var r repetitionTracker
	const h1, hRoot = uint64(100), uint64(999)

	r.push(hRoot, 0) // index 0: root position
	rootIndex := 0

	r.push(h1, 1) // index 1: first time this hash is seen, already inside the search tree
	r.push(h1, 2) // index 2: its only repeat so far — two total occurrences, not three

	if r.isDraw(rootIndex) {
		t.Fatalf("a hash that has only repeated once, entirely inside the search tree, must not yet be a draw")
	}
}

func TestUpcomingRepetitionDetectsForceableRepeat(t *testing.T) {
	var r repetitionTracker
	const h1 = uint64(100)

	r.push(h1, 0) // root position
	r.push(h1, 1) // the same position recurs once already, inside the window

	if !r.upcomingRepetition(0) {
		t.Fatalf("expected an upcoming repetition to be detected when the same hash recurs within the rule50 window")
	}
}

func TestUpcomingRepetitionFalseWithNoPriorOccurrence(t *testing.T) {
	var r repetitionTracker
	r.push(1, 0)
	if r.upcomingRepetition(0) {
		t.Fatalf("expected no upcoming repetition with only a single position on the stack")
	}
}
