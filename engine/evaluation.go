package engine

import (
	"math/bits"

	"github.com/oliverans-successor/gooseforge/board"
)

// Evaluate returns the static evaluation of the position in centipawns from
// the side-to-move's perspective. Every term below is computed from
// White's point of view and the running total is negated for Black to move.
// Evaluate is a pure function of the position: no globals are mutated and no
// state leaks between calls.
func Evaluate(b *board.Board) int32 {
	phase := Phase(b)

	total := material(b) + pstInterp(b, phase) + kingSafety(b, phase) + rookCoordination(b, phase) + castlingIncentive(b, phase) + kingEndgame(b, phase)

	if b.SideToMove() == board.Black {
		total = -total
	}
	return int32(total)
}

func material(b *board.Board) int {
	w := b.WhiteBitboards()
	bl := b.BlackBitboards()
	total := 0
	total += bits.OnesCount64(w.Pawns) * pieceValue[board.PieceTypePawn]
	total += bits.OnesCount64(w.Knights) * pieceValue[board.PieceTypeKnight]
	total += bits.OnesCount64(w.Bishops) * pieceValue[board.PieceTypeBishop]
	total += bits.OnesCount64(w.Rooks) * pieceValue[board.PieceTypeRook]
	total += bits.OnesCount64(w.Queens) * pieceValue[board.PieceTypeQueen]
	total -= bits.OnesCount64(bl.Pawns) * pieceValue[board.PieceTypePawn]
	total -= bits.OnesCount64(bl.Knights) * pieceValue[board.PieceTypeKnight]
	total -= bits.OnesCount64(bl.Bishops) * pieceValue[board.PieceTypeBishop]
	total -= bits.OnesCount64(bl.Rooks) * pieceValue[board.PieceTypeRook]
	total -= bits.OnesCount64(bl.Queens) * pieceValue[board.PieceTypeQueen]
	return total
}

func pstInterp(b *board.Board, phase float64) int {
	total := 0
	for sq := board.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p == board.NoPiece || p.Type() == board.PieceTypeKing {
			continue
		}
		v := pstValue(p.Color(), p.Type(), sq, phase)
		if p.Color() == board.White {
			total += v
		} else {
			total -= v
		}
	}
	// Kings get the same interpolated-PST treatment as other pieces.
	total += pstValue(board.White, board.PieceTypeKing, b.KingSquare(board.White), phase)
	total -= pstValue(board.Black, board.PieceTypeKing, b.KingSquare(board.Black), phase)
	return total
}

const kingSafetyPhaseGate = 0.3

// kingSafety scores pawn shielding, open files near the king, and nearby
// enemy attackers. Active only once phase exceeds kingSafetyPhaseGate (the
// middlegame/endgame bucket boundary) and scaled linearly by phase beyond that.
func kingSafety(b *board.Board, phase float64) int {
	if phase <= kingSafetyPhaseGate {
		return 0
	}
	w := kingSafetyForSide(b, board.White)
	bl := kingSafetyForSide(b, board.Black)
	return int(float64(w-bl) * phase)
}

func kingSafetyForSide(b *board.Board, c board.Color) int {
	ksq := int(b.KingSquare(c))
	kf, kr := ksq%8, ksq/8
	own := b.Bitboards(c)
	enemy := b.Bitboards(1 - c)

	score := 0

	shieldDir := 1
	if c == board.Black {
		shieldDir = -1
	}
	for df := -1; df <= 1; df++ {
		f := kf + df
		if f < 0 || f > 7 {
			continue
		}
		for dr := 1; dr <= 2; dr++ {
			r := kr + shieldDir*dr
			if r < 0 || r > 7 {
				continue
			}
			sq := r*8 + f
			if own.Pawns&(uint64(1)<<uint(sq)) != 0 {
				score += 10
			}
		}
	}

	for df := -1; df <= 1; df++ {
		f := kf + df
		if f < 0 || f > 7 {
			continue
		}
		fm := fileMask(f)
		switch {
		case own.Pawns&fm == 0 && enemy.Pawns&fm == 0:
			score -= 15
		case own.Pawns&fm == 0:
			score -= 8
		}
	}

	occ := b.AllOccupancy()
	zoneAttackers := 0
	for sq := 0; sq < 64; sq++ {
		f, r := sq%8, sq/8
		if chebyshev(f-kf, r-kr) > 2 {
			continue
		}
		zoneAttackers += bits.OnesCount64(b.AttackersTo(board.Square(sq), 1-c, occ))
	}
	score -= zoneAttackers * 4

	return score
}

func chebyshev(df, dr int) int {
	if df < 0 {
		df = -df
	}
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

func fileMask(f int) uint64 {
	var m uint64
	for r := 0; r < 8; r++ {
		m |= uint64(1) << uint(r*8+f)
	}
	return m
}

// rookCoordination rewards rooks on open files, on the 7th/2nd rank, and
// doubled on the same file. The bonus fades out toward the opening.
func rookCoordination(b *board.Board, phase float64) int {
	scale := 1.0
	if phase > 0.7 {
		scale = 1 - (phase-0.7)/0.3
	}
	if scale <= 0 {
		return 0
	}
	w := rookCoordForSide(b, board.White)
	bl := rookCoordForSide(b, board.Black)
	return int(float64(w-bl) * scale)
}

func rookCoordForSide(b *board.Board, c board.Color) int {
	own := b.Bitboards(c)
	score := 0
	var fileCounts [8]int
	for rb := own.Rooks; rb != 0; rb &= rb - 1 {
		sq := bits.TrailingZeros64(rb)
		f := sq % 8
		fileCounts[f]++
		if own.Pawns&fileMask(f) == 0 {
			score += 20
		}
		rank := sq / 8
		if (c == board.White && rank == 6) || (c == board.Black && rank == 1) {
			score += 30
		}
	}
	for _, n := range fileCounts {
		if n >= 2 {
			score += 15
		}
	}
	return score
}

// castlingIncentive rewards retained castling rights and an already-castled
// king while phase is above 0.5, scaled by phase.
func castlingIncentive(b *board.Board, phase float64) int {
	if phase <= 0.5 {
		return 0
	}
	w := castlingForSide(b, board.White)
	bl := castlingForSide(b, board.Black)
	return int(float64(w-bl) * phase)
}

func castlingForSide(b *board.Board, c board.Color) int {
	score := 0
	kingside, queenside := b.CastlingRights(c)
	if kingside {
		score += 15
	}
	if queenside {
		score += 10
	}
	ksq := b.KingSquare(c)
	castledG, castledC := board.Square(6), board.Square(2)
	if c == board.Black {
		castledG, castledC = board.Square(62), board.Square(58)
	}
	if ksq == castledG || ksq == castledC {
		score += 30
	}
	return score
}

// kingEndgame rewards king centralization and advancement once material has
// thinned out enough for the king to act as an attacking piece.
func kingEndgame(b *board.Board, phase float64) int {
	if phase >= 0.4 {
		return 0
	}
	scale := 1 - phase
	w := kingEndgameForSide(b, board.White)
	bl := kingEndgameForSide(b, board.Black)
	return int(float64(w-bl) * scale)
}

func kingEndgameForSide(b *board.Board, c board.Color) int {
	sq := int(b.KingSquare(c))
	f, r := sq%8, sq/8
	distToCenter := maxI(absI(f-3), absI(f-4))
	if d := maxI(absI(r-3), absI(r-4)); d > distToCenter {
		distToCenter = d
	}
	score := (4 - distToCenter) * 10
	if c == board.White {
		score += r * 5
	} else {
		score += (7 - r) * 5
	}
	return score
}

func absI(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
