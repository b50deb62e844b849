package engine

import (
	"math/bits"

	"github.com/oliverans-successor/gooseforge/board"
)

// Non-king piece values used only for phase detection, expressed on the same
// material scale as the evaluator. Kept separate from the evaluator's
// own piece-value table so tuning one never silently detunes the other.
var phasePieceValue = [7]int{
	board.PieceTypePawn:   100,
	board.PieceTypeKnight: 300,
	board.PieceTypeBishop: 300,
	board.PieceTypeRook:   500,
	board.PieceTypeQueen:  900,
}

const (
	phaseOpenMaterial = 7800 // standard starting non-king material
	phaseEndMaterial  = 2500
)

// Phase computes a continuous game phase in [0,1], where 1.0 denotes full
// opening material and 0.0 denotes a bare endgame. It is a pure function of
// the position's non-king material and never reads outside [0,1].
func Phase(b *board.Board) float64 {
	white := b.WhiteBitboards()
	black := b.BlackBitboards()

	material := 0
	material += bits.OnesCount64(white.Pawns|black.Pawns) * phasePieceValue[board.PieceTypePawn]
	material += bits.OnesCount64(white.Knights|black.Knights) * phasePieceValue[board.PieceTypeKnight]
	material += bits.OnesCount64(white.Bishops|black.Bishops) * phasePieceValue[board.PieceTypeBishop]
	material += bits.OnesCount64(white.Rooks|black.Rooks) * phasePieceValue[board.PieceTypeRook]
	material += bits.OnesCount64(white.Queens|black.Queens) * phasePieceValue[board.PieceTypeQueen]

	p := float64(material-phaseEndMaterial) / float64(phaseOpenMaterial-phaseEndMaterial)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// PhaseBucket buckets a continuous phase into a discrete label for
// time-allocation purposes only; evaluation must never use buckets.
type PhaseBucket int

const (
	Opening PhaseBucket = iota
	Middlegame
	Endgame
)

// Bucket derives a discrete time-management phase from a continuous phase.
func Bucket(phase float64) PhaseBucket {
	switch {
	case phase > 0.66:
		return Opening
	case phase > 0.3:
		return Middlegame
	default:
		return Endgame
	}
}
