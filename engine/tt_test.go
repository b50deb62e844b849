package engine

import (
	"testing"

	"github.com/oliverans-successor/gooseforge/board"
)

func TestTTStoreProbeExactRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(16)
	var hash uint64 = 0xdeadbeef
	move := board.NewMove(board.Square(12), board.Square(28), board.WhitePawn, board.NoPiece, board.NoPiece, 0)

	tt.store(hash, 6, 0, move, 137, BoundExact)

	gotMove, score, usable, hit := tt.probe(hash, 6, 0, -Infinity, Infinity)
	if !hit || !usable {
		t.Fatalf("expected usable hit, got hit=%v usable=%v", hit, usable)
	}
	if score != 137 {
		t.Fatalf("expected score 137, got %d", score)
	}
	if gotMove != move {
		t.Fatalf("expected stored move back, got %v want %v", gotMove, move)
	}
}

func TestTTProbeUnusableWhenShallower(t *testing.T) {
	tt := NewTranspositionTable(16)
	var hash uint64 = 42
	move := board.Move(0)
	tt.store(hash, 3, 0, move, 50, BoundExact)

	_, _, usable, hit := tt.probe(hash, 5, 0, -Infinity, Infinity)
	if !hit {
		t.Fatalf("expected a hit on the matching key even if not usable")
	}
	if usable {
		t.Fatalf("entry stored at depth 3 must not be usable for a depth-5 request")
	}
}

func TestTTProbeMissOnDifferentKey(t *testing.T) {
	tt := NewTranspositionTable(16)
	tt.store(1, 6, 0, board.Move(0), 10, BoundExact)

	_, _, usable, hit := tt.probe(2, 6, 0, -Infinity, Infinity)
	if hit || usable {
		t.Fatalf("expected a clean miss for an unrelated key, got hit=%v usable=%v", hit, usable)
	}
}

func TestTTBoundCutoffRules(t *testing.T) {
	tt := NewTranspositionTable(16)

	// LOWER bound only usable when stored score already reaches beta.
	tt.store(10, 4, 0, board.Move(0), 100, BoundLower)
	if _, _, usable, _ := tt.probe(10, 4, 0, -Infinity, 50); !usable {
		t.Fatalf("LOWER bound of 100 should satisfy beta=50")
	}
	if _, _, usable, _ := tt.probe(10, 4, 0, -Infinity, 200); usable {
		t.Fatalf("LOWER bound of 100 should not satisfy beta=200")
	}

	// UPPER bound only usable when stored score already falls below alpha.
	tt.store(11, 4, 0, board.Move(0), -100, BoundUpper)
	if _, _, usable, _ := tt.probe(11, 4, 0, -50, Infinity); !usable {
		t.Fatalf("UPPER bound of -100 should satisfy alpha=-50")
	}
	if _, _, usable, _ := tt.probe(11, 4, 0, -200, Infinity); usable {
		t.Fatalf("UPPER bound of -100 should not satisfy alpha=-200")
	}
}

func TestTTMateScoreAdjustedByPly(t *testing.T) {
	tt := NewTranspositionTable(16)
	mateScore := MateScore - 2 // mate in 2 plies from the node it was found at

	tt.store(99, 10, 5, board.Move(0), mateScore, BoundExact)

	_, score, usable, hit := tt.probe(99, 10, 5, -Infinity, Infinity)
	if !hit || !usable {
		t.Fatalf("expected usable hit for mate score")
	}
	if score != mateScore {
		t.Fatalf("probing at the same ply it was stored at must return the same score, got %d want %d", score, mateScore)
	}

	// Probing the same slot from a different ply must rebase the mate distance.
	_, score2, usable2, hit2 := tt.probe(99, 10, 2, -Infinity, Infinity)
	if !hit2 || !usable2 {
		t.Fatalf("expected usable hit when probing from a different ply")
	}
	if score2 == score {
		t.Fatalf("expected mate score to be rebased for a different ply, both came back %d", score)
	}
}

func TestTTClearRemovesAllEntries(t *testing.T) {
	tt := NewTranspositionTable(16)
	tt.store(7, 5, 0, board.Move(0), 1, BoundExact)
	tt.Clear()

	_, _, usable, hit := tt.probe(7, 5, 0, -Infinity, Infinity)
	if hit || usable {
		t.Fatalf("expected no entries after Clear")
	}
}

func TestTTSizeRoundsUpToPowerOfTwo(t *testing.T) {
	tt := NewTranspositionTable(10)
	if len(tt.entries) != 16 {
		t.Fatalf("expected table sized to next power of two (16), got %d", len(tt.entries))
	}
}
