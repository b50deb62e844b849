package engine

import (
	"testing"

	"github.com/oliverans-successor/gooseforge/board"
)

func TestPhaseStartposIsFullOpening(t *testing.T) {
	b := board.ParseFen(board.Startpos)
	if got := Phase(&b); got != 1 {
		t.Fatalf("expected phase 1.0 at startpos, got %v", got)
	}
}

func TestPhaseBareKingsIsFullEndgame(t *testing.T) {
	b := board.ParseFen("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if got := Phase(&b); got != 0 {
		t.Fatalf("expected phase 0.0 with no non-king material, got %v", got)
	}
}

func TestPhaseNeverLeavesUnitInterval(t *testing.T) {
	positions := []string{
		board.Startpos,
		"4k3/8/8/8/8/8/8/4K3 w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range positions {
		b := board.ParseFen(fen)
		p := Phase(&b)
		if p < 0 || p > 1 {
			t.Fatalf("phase out of [0,1] for %q: got %v", fen, p)
		}
	}
}

func TestBucketThresholds(t *testing.T) {
	cases := []struct {
		phase float64
		want  PhaseBucket
	}{
		{1.0, Opening},
		{0.67, Opening},
		{0.66, Middlegame},
		{0.31, Middlegame},
		{0.3, Endgame},
		{0.0, Endgame},
	}
	for _, c := range cases {
		if got := Bucket(c.phase); got != c.want {
			t.Fatalf("Bucket(%v) = %v, want %v", c.phase, got, c.want)
		}
	}
}
