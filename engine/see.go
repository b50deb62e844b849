package engine

import (
	"math/bits"

	"github.com/oliverans-successor/gooseforge/board"
)

// seePieceValue mirrors pieceValue but gives the king a large, clearly
// dominant value so a king is always the last possible recapture choice and
// never the first.
var seePieceValue = [7]int{
	board.PieceTypePawn:   100,
	board.PieceTypeKnight: 300,
	board.PieceTypeBishop: 300,
	board.PieceTypeRook:   500,
	board.PieceTypeQueen:  900,
	board.PieceTypeKing:   20000,
}

// see computes the static-exchange evaluation of a capture (including a
// capturing promotion) on
// its destination square: the material outcome for the mover under optimal
// recapture play by both sides. Non-captures return 0.
//
// The implementation follows the classic swap-list formulation: repeatedly
// find the least-valuable remaining attacker of the target square for the
// side on move, append its victim's value to a gain list, then minimax the
// list back-to-front so each side can "refuse" a losing continuation.
func see(b *board.Board, m board.Move) int {
	to := m.To()
	from := m.From()

	victim := m.CapturedPiece()
	if victim == board.NoPiece && m.Flags() != board.FlagEnPassant {
		return 0 // not a capture
	}

	var gain [32]int
	depth := 0

	attacker := m.MovedPiece()
	if victim == board.NoPiece {
		victim = board.PieceFromType(1-attacker.Color(), board.PieceTypePawn) // en passant victim
	}
	gain[0] = seePieceValue[victim.Type()]
	if promo := m.PromotionPieceType(); promo != board.PieceTypeNone {
		gain[0] += seePieceValue[promo] - seePieceValue[board.PieceTypePawn]
	}

	occ := b.AllOccupancy() &^ (uint64(1) << uint(from))
	side := 1 - attacker.Color()
	attackerType := attacker.Type()

	for {
		depth++
		gain[depth] = seePieceValue[attackerType] - gain[depth-1]
		if maxI(-gain[depth-1], gain[depth]) < 0 {
			break // further exchange can only make things worse for this side
		}

		attackers := b.AttackersTo(to, side, occ) & occ
		attackers = excludePinned(b, attackers, side, occ)
		if attackers == 0 {
			break
		}
		sq, pt, ok := leastValuableAttacker(b, attackers)
		if !ok {
			break
		}
		occ &^= uint64(1) << uint(sq)
		if pt == board.PieceTypePawn && isBackRank(to) {
			pt = board.PieceTypeQueen // a pawn capturing onto the back rank promotes
		}
		attackerType = pt
		side = 1 - side
		if depth >= len(gain)-1 {
			break
		}
	}

	// The last entry is speculative (no recapture followed it), so it is
	// dropped before unwinding.
	for depth--; depth > 0; depth-- {
		gain[depth-1] = -maxI(-gain[depth-1], gain[depth])
	}
	return gain[0]
}

// leastValuableAttacker picks the cheapest attacking piece out of a bitboard
// of candidate squares, resolving ties by square index so the result is
// stable regardless of bit-iteration order.
func leastValuableAttacker(b *board.Board, attackers uint64) (sq int, pt board.PieceType, ok bool) {
	best := board.PieceTypeNone
	bestSq := -1
	for bb := attackers; bb != 0; bb &= bb - 1 {
		s := bits.TrailingZeros64(bb)
		p := b.PieceAt(board.Square(s))
		if p == board.NoPiece {
			continue
		}
		t := p.Type()
		if best == board.PieceTypeNone || seePieceValue[t] < seePieceValue[best] || (seePieceValue[t] == seePieceValue[best] && s < bestSq) {
			best = t
			bestSq = s
		}
	}
	if bestSq == -1 {
		return 0, 0, false
	}
	return bestSq, best, true
}

// isBackRank reports whether sq is on rank 1 or rank 8, the only ranks a
// capture can land on and force a promotion.
func isBackRank(sq board.Square) bool {
	r := int(sq) / 8
	return r == 0 || r == 7
}

// excludePinned drops any attacker that is pinned to its own king along a
// line it cannot recapture on, since such a piece is not a legal recapture
// candidate: moving it would expose its own king to check. Kings are never
// pinned and pass through unfiltered.
func excludePinned(b *board.Board, attackers uint64, side board.Color, occ uint64) uint64 {
	for bb := attackers; bb != 0; bb &= bb - 1 {
		sq := board.Square(bits.TrailingZeros64(bb))
		if b.PieceAt(sq).Type() == board.PieceTypeKing {
			continue
		}
		if isPinned(b, sq, side, occ) {
			attackers &^= uint64(1) << uint(sq)
		}
	}
	return attackers
}

// isPinned reports whether removing the piece on sq from occ would reveal a
// sliding attacker (bishop, rook, or queen) giving check to side's king, i.e.
// whether sq's occupant is pinned against its own king in this position.
func isPinned(b *board.Board, sq board.Square, side board.Color, occ uint64) bool {
	ksq := b.KingSquare(side)
	before := b.AttackersTo(ksq, 1-side, occ)
	after := b.AttackersTo(ksq, 1-side, occ&^(uint64(1)<<uint(sq)))
	revealed := after &^ before
	for bb := revealed; bb != 0; bb &= bb - 1 {
		t := b.PieceAt(board.Square(bits.TrailingZeros64(bb))).Type()
		if t == board.PieceTypeBishop || t == board.PieceTypeRook || t == board.PieceTypeQueen {
			return true
		}
	}
	return false
}
