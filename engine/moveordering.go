package engine

import "github.com/oliverans-successor/gooseforge/board"

// Move-ordering priority tiers. The tiers from the TT move down to
// under-promotions do not overlap; history-scored quiet moves (up to
// historyMax plus nudges) can outrank losing captures.
const (
	scoreTTMove        int32 = 1_000_000
	scoreWinningCapture int32 = 100_000
	scoreQueenPromo    int32 = 90_000
	scoreCheck         int32 = 50_000
	scoreKillerPrimary int32 = 40_000
	scoreKillerSecond  int32 = 35_000
	scoreUnderPromo    int32 = 20_000
	scoreLosingCapture int32 = 10_000
	scoreCenterNudge   int32 = 10
	scoreDevNudge      int32 = 5
)

var centerSquares = map[board.Square]bool{
	27: true, // d4
	28: true, // e4
	35: true, // d5
	36: true, // e5
}

type scoredMove struct {
	move  board.Move
	score int32
}

// scoreMoves assigns every pseudo-legal move its move-ordering priority
//: the transposition-table move first, then captures split by SEE
// sign with MVV/LVA breaking ties among winners, then promotions, checks,
// killers, and finally quiet moves ranked by history score with small
// positional nudges.
func (e *Engine) scoreMoves(b *board.Board, moves []board.Move, ttMove board.Move, ply int) []scoredMove {
	out := make([]scoredMove, len(moves))
	side := b.SideToMove()

	for i, m := range moves {
		out[i] = scoredMove{move: m, score: e.scoreMove(b, m, ttMove, ply, side)}
	}
	return out
}

func (e *Engine) scoreMove(b *board.Board, m board.Move, ttMove board.Move, ply int, side board.Color) int32 {
	if m == ttMove {
		return scoreTTMove
	}

	isCapture := m.CapturedPiece() != board.NoPiece || m.Flags() == board.FlagEnPassant
	promo := m.PromotionPieceType()

	switch {
	case isCapture:
		s := see(b, m)
		if s >= 0 {
			return scoreWinningCapture + int32(mvvLva(m))
		}
		return scoreLosingCapture + int32(s)
	case promo == board.PieceTypeQueen:
		return scoreQueenPromo + int32(pieceValue[promo])
	}

	if b.GivesCheck(m) {
		return scoreCheck
	}

	switch e.killers.rank(m, ply) {
	case 2:
		return scoreKillerPrimary
	case 1:
		return scoreKillerSecond
	}

	if promo != board.PieceTypeNone {
		return scoreUnderPromo + int32(pieceValue[promo])
	}

	score := e.history.get(side, m)
	if centerSquares[m.To()] {
		score += scoreCenterNudge
	}
	if isMinorDevelopment(m, side) {
		score += scoreDevNudge
	}
	return score
}

// mvvLva ranks a capture by (victim value * 10 - attacker value), so a pawn
// taking a queen always outranks a queen taking a pawn regardless of depth
// or history.
func mvvLva(m board.Move) int {
	victim := pieceValue[m.CapturedPiece().Type()]
	attacker := pieceValue[m.MovedPiece().Type()]
	return victim*10 - attacker
}

func isMinorDevelopment(m board.Move, side board.Color) bool {
	pt := m.MovedPiece().Type()
	if pt != board.PieceTypeKnight && pt != board.PieceTypeBishop {
		return false
	}
	homeRank := 0
	if side == board.Black {
		homeRank = 7
	}
	return int(m.From())/8 == homeRank && int(m.To())/8 != homeRank
}

// pickBest selects the highest-scoring move at or after idx and swaps it
// into idx, the same selection-sort-per-pick scheme used throughout the
// search so the full list is never sorted up front — most searches cut off
// long before the tail of the move list is ever examined. Ties keep the
// earlier move in place, since GenerateLegalMoves already emits legal
// moves in a fixed, deterministic piece order.
func pickBest(moves []scoredMove, idx int) {
	best := idx
	for i := idx + 1; i < len(moves); i++ {
		if moves[i].score > moves[best].score {
			best = i
		}
	}
	moves[idx], moves[best] = moves[best], moves[idx]
}
