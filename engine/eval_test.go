package engine

import (
	"testing"

	"github.com/oliverans-successor/gooseforge/board"
)

func TestEvaluateStartposIsSymmetric(t *testing.T) {
	b := board.ParseFen(board.Startpos)
	if got := Evaluate(&b); got != 0 {
		t.Fatalf("expected the symmetric starting position to evaluate to 0, got %d", got)
	}
}

// A position and its color-and-rank mirror, with the same side to move, must
// evaluate to opposite signs: swapping every piece's color and flipping the
// board vertically hands the material and positional balance to the other side.
func TestEvaluateSignSymmetryUnderColorMirror(t *testing.T) {
	original := board.ParseFen("4k3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	mirrored := board.ParseFen("4k3/4r3/8/8/8/8/8/4K3 w - - 0 1")

	a := Evaluate(&original)
	c := Evaluate(&mirrored)

	if diff := a + c; diff < -1 || diff > 1 {
		t.Fatalf("expected Evaluate(original) == -Evaluate(mirrored) (±1), got %d and %d", a, c)
	}
}

func TestEvaluateFiniteWithinMateBounds(t *testing.T) {
	positions := []string{
		board.Startpos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - - 0 1",
	}
	for _, fen := range positions {
		b := board.ParseFen(fen)
		v := Evaluate(&b)
		if v <= -MateScore || v >= MateScore {
			t.Fatalf("eval out of bounds for %q: got %d", fen, v)
		}
	}
}

func TestEvaluateMaterialAdvantageIsPositive(t *testing.T) {
	// White is up a whole rook with everything else equal.
	b := board.ParseFen("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	if got := Evaluate(&b); got <= 0 {
		t.Fatalf("expected a material advantage to score positive for the side to move, got %d", got)
	}
}
