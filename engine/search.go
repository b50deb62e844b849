package engine

import (
	"time"

	"github.com/oliverans-successor/gooseforge/board"

	"golang.org/x/exp/slices"
)

// PVLine accumulates the principal variation as alphaBeta unwinds: a child
// node's best line is prefixed with the move that reached it.
type PVLine struct {
	moves []board.Move
}

func (pv *PVLine) clear() { pv.moves = pv.moves[:0] }

func (pv *PVLine) update(m board.Move, child PVLine) {
	pv.moves = append(pv.moves[:0], m)
	pv.moves = append(pv.moves, child.moves...)
}

func (pv *PVLine) clone() PVLine {
	cp := make([]board.Move, len(pv.moves))
	copy(cp, pv.moves)
	return PVLine{moves: cp}
}

func (pv *PVLine) bestMove() board.Move {
	if len(pv.moves) == 0 {
		return 0
	}
	return pv.moves[0]
}

// Pruning margins and thresholds. Indexed by remaining depth.
var (
	reverseFutilityMargin = [9]int32{0, 100, 200, 300, 400, 500, 600, 700, 800}
	futilityMargin        = [9]int32{0, 120, 220, 320, 420, 520, 620, 720, 820}
	lateMovePruneCount    = [9]int{0, 3, 5, 9, 14, 20, 27, 35, 44}
)

const (
	nullMoveMinDepth   = 2
	seePruneDepth      = 8
	seePruneMargin     = -20
	iidMinDepth        = 5
	quiescenceSeeMargin = 100
	deltaMargin        int32 = 200
	aspirationWindow   int32 = 35
)

// SearchParams bundles the caller-supplied constraints for one search call
//: a depth cap, a clock reading for time management, or both.
type SearchParams struct {
	MaxDepth    int // 0 means "no explicit cap": search until time runs out
	WhiteTime   time.Duration
	BlackTime   time.Duration
	WhiteInc    time.Duration
	BlackInc    time.Duration
	MoveTime    time.Duration // if set, overrides the clock-derived budget
	Infinite    bool
}

// Search runs iterative deepening from the current position until the time
// manager's soft deadline passes, MaxDepth is reached, or Stop is called.
// It always returns a legal move if one exists, even if the very first
// depth has not finished.
func (e *Engine) Search(b *board.Board, p SearchParams) board.Move {
	e.stop = false
	e.stats = SearchStats{}
	e.history.decay()

	if p.MoveTime > 0 {
		e.clock.StartFixed(p.MoveTime)
	} else {
		remaining, inc := p.WhiteTime, p.WhiteInc
		if b.SideToMove() == board.Black {
			remaining, inc = p.BlackTime, p.BlackInc
		}
		// A depth limit with no clock reading is bounded by depth alone.
		untimed := p.Infinite || (p.MaxDepth > 0 && remaining == 0)
		e.clock.Start(remaining, inc, Phase(b), untimed)
	}

	maxDepth := p.MaxDepth
	if maxDepth <= 0 || maxDepth > MaxRootDepth {
		maxDepth = MaxRootDepth
	}

	legal := b.GenerateLegalMoves()
	if len(legal) == 0 {
		return 0
	}
	fallback := legal[0]

	rootIndex := len(e.repetition.history) - 1

	var pv, prevPV PVLine
	alpha, beta := -Infinity, Infinity
	window := aspirationWindow
	var bestScore int32
	start := time.Now()

	for depth := 1; depth <= maxDepth; depth++ {
		if depth > 1 && p.MoveTime == 0 && !e.clock.ShouldStartNextDepth() {
			break
		}

		pv.clear()
		score := e.alphaBeta(b, alpha, beta, depth, 0, &pv, 0, false, false, 0, rootIndex)

		if e.stop || e.clock.HardExpired() {
			if len(prevPV.moves) == 0 && len(pv.moves) > 0 {
				prevPV = pv.clone()
				bestScore = score
			}
			break
		}

		if score <= alpha || score >= beta {
			window *= 2
			alpha, beta = score-window, score+window
			if alpha < -Infinity {
				alpha = -Infinity
			}
			if beta > Infinity {
				beta = Infinity
			}
			depth--
			continue
		}

		window = aspirationWindow
		alpha, beta = score-window, score+window
		bestScore = score
		prevPV = pv.clone()

		if e.Progress != nil && len(prevPV.moves) > 0 {
			elapsed := time.Since(start)
			nps := uint64(0)
			if elapsed > 0 {
				nps = uint64(float64(e.stats.Nodes) / elapsed.Seconds())
			}
			report := ProgressReport{
				Depth:     depth,
				Score:     bestScore,
				Nodes:     e.stats.Nodes,
				NPS:       nps,
				ElapsedMS: elapsed.Milliseconds(),
				PV:        prevPV.moves,
			}
			if abs32(bestScore) > MateThreshold {
				report.MateIn = mateDistance(bestScore)
			}
			e.Progress(report)
		}

		if abs32(score) > MateThreshold {
			break
		}
	}

	if best := prevPV.bestMove(); best != 0 {
		return best
	}
	return fallback
}

// mateDistance converts a mate score into a ply count and halves it into
// full moves, with the sign indicating who delivers the mate.
func mateDistance(score int32) int {
	plies := int(MateScore - abs32(score))
	moves := (plies + 1) / 2
	if score < 0 {
		return -moves
	}
	return moves
}

// alphaBeta is a fail-soft negamax search with PVS, null-move pruning,
// reverse futility pruning, futility pruning, late-move pruning, late-move
// reductions, and transposition-table cutoffs. ply is distance from
// the root of this search call, not from the start of the game.
func (e *Engine) alphaBeta(b *board.Board, alpha, beta int32, depth, ply int, pv *PVLine, excluded board.Move, didNull, extended bool, prevMove board.Move, rootIndex int) int32 {
	e.stats.Nodes++
	if e.stats.Nodes&4095 == 0 && e.clock.HardExpired() {
		e.stop = true
	}
	if e.stop {
		return 0
	}
	if ply >= MaxPly {
		return Evaluate(b)
	}

	isRoot := ply == 0
	isPV := beta-alpha > 1
	var child PVLine

	if !isRoot {
		if e.repetition.isDraw(rootIndex) || b.InsufficientMaterial() {
			return DrawScore
		}
		if alpha < DrawScore && e.repetition.upcomingRepetition(rootIndex) {
			alpha = DrawScore
		}

		// Mate-distance pruning: no line through this node can be worth more
		// than delivering mate next ply, nor worse than being mated this ply,
		// so tighten the window against those bounds and cut if it collapses.
		if alpha < -MateScore+int32(ply) {
			alpha = -MateScore + int32(ply)
		}
		if beta > MateScore-int32(ply)-1 {
			beta = MateScore - int32(ply) - 1
		}
		if alpha >= beta {
			return alpha
		}
	}

	inCheck := b.OurKingInCheck()
	if inCheck {
		depth++
	}

	if depth <= 0 {
		return e.quiescence(b, alpha, beta, &child, ply, rootIndex)
	}

	hash := b.Hash()
	ttMove, ttScore, ttUsable, ttHit := e.tt.probe(hash, depth, ply, alpha, beta)
	if ttUsable && !isRoot && !isPV {
		e.stats.TTCutoffs++
		return ttScore
	}

	staticScore := Evaluate(b)
	var bestMove board.Move
	if ttHit {
		bestMove = ttMove
	}

	improving := ply >= 2 && !inCheck && staticScore > alpha

	// Reverse futility / static null-move pruning: if we are
	// already far enough above beta that the opponent's best reply couldn't
	// plausibly claw it back, cut immediately.
	if !inCheck && !isPV && !isRoot && depth >= 1 && depth < len(reverseFutilityMargin) && abs32(beta) < MateThreshold {
		margin := reverseFutilityMargin[depth]
		if !improving {
			margin -= 50
		}
		if staticScore-margin >= beta {
			e.stats.StaticNullCutoffs++
			return staticScore - margin
		}
	}

	// Null-move pruning: skip our turn and see if the
	// opponent is still in trouble even with a free move; if so, our real
	// move is almost certainly at least as good.
	if !inCheck && !isPV && !didNull && !isRoot && depth >= nullMoveMinDepth && hasNonPawnMaterial(b) {
		undo := b.ApplyNullMove()
		e.repetition.push(b.Hash(), b.HalfmoveClock())
		r := 3
		if r > depth-1 {
			r = depth - 1
		}
		score := -e.alphaBeta(b, -beta, -beta+1, depth-1-r, ply+1, &child, 0, true, extended, bestMove, rootIndex)
		e.repetition.pop()
		undo()

		if score >= beta && score < MateThreshold {
			e.stats.NullMoveCutoffs++
			return score
		}
	}

	// Internal iterative deepening: with no TT move to try first at
	// meaningful depth, do a shallow search purely to seed one.
	if bestMove == 0 && depth >= iidMinDepth && !didNull && !extended {
		reduced := depth - 2
		if depth >= 8 {
			reduced = depth - depth/4
		}
		var iidPV PVLine
		e.alphaBeta(b, alpha, beta, reduced, ply, &iidPV, 0, false, true, prevMove, rootIndex)
		if m, _, _, hit := e.tt.probe(hash, 0, ply, -Infinity, Infinity); hit {
			bestMove = m
		}
	}

	moves := b.GenerateLegalMoves()
	if len(moves) == 0 {
		if inCheck {
			return -MateScore + int32(ply)
		}
		return DrawScore
	}

	scored := e.scoreMoves(b, moves, bestMove, ply)
	if isRoot {
		// The root only ever runs once per depth, so a full sort up front is
		// cheap and gives the aspiration-window re-search a stable, fully
		// deterministic move order to iterate from.
		slices.SortFunc(scored, func(a, b scoredMove) bool { return a.score > b.score })
	}
	bound := BoundUpper
	best := -Infinity
	legalCount := 0
	quietsTried := make([]board.Move, 0, 16)
	side := b.SideToMove()

	for i := range scored {
		pickBest(scored, i)
		m := scored[i].move
		if m == excluded {
			continue
		}
		legalCount++

		isCapture := m.CapturedPiece() != board.NoPiece || m.Flags() == board.FlagEnPassant
		gives := b.GivesCheck(m)
		isPromo := m.PromotionPieceType() != board.PieceTypeNone
		tactical := isCapture || gives || isPromo

		if depth <= 8 && !isPV && !isRoot && !tactical && legalCount > 1 {
			limit := lateMovePruneCount[minI(depth, len(lateMovePruneCount)-1)]
			if !improving {
				limit = limit * 2 / 3
			}
			if limit > 0 && legalCount > limit {
				e.stats.LateMovePrunes++
				continue
			}
		}

		if depth <= 7 && depth >= 1 && !isPV && !isRoot && !tactical && abs32(alpha) < MateThreshold {
			margin := futilityMargin[depth]
			if !improving {
				margin -= 50
			}
			if staticScore+margin <= alpha {
				e.stats.FutilityPrunes++
				continue
			}
		}

		if !isCapture {
			quietsTried = append(quietsTried, m)
		}

		undo := b.Apply(m)
		e.repetition.push(b.Hash(), b.HalfmoveClock())

		extendMove := !extended && m == bestMove && depth >= 8 && ttUsable
		nextExtended := extended || extendMove

		var score int32
		if legalCount == 1 {
			nextDepth := childDepth(depth-1, 0, extendMove)
			score = -e.alphaBeta(b, -beta, -alpha, nextDepth, ply+1, &child, 0, false, nextExtended, m, rootIndex)
		} else {
			reduction := int8(0)
			if depth < maxLMRDepth && legalCount < maxLMRMoves && !gives && !tactical {
				reduction = e.lmr[depth][minI(legalCount, maxLMRMoves-1)]
			}
			score = e.searchWithPVS(b, m, depth-1, reduction, alpha, beta, ply, extendMove, nextExtended, rootIndex, &child)
		}

		e.repetition.pop()
		undo()

		if score > best {
			best = score
			bestMove = m
		}
		if score >= beta {
			e.stats.BetaCutoffs++
			bound = BoundLower
			if !isCapture {
				e.killers.insert(m, ply)
				e.history.bonus(side, m, depth)
				for _, q := range quietsTried {
					if q != m {
						e.history.malus(side, q, depth)
					}
				}
			}
			break
		}
		if score > alpha {
			alpha = score
			bound = BoundExact
			pv.update(m, child)
			if !isCapture {
				e.history.bonus(side, m, depth)
			}
		}
	}

	if !e.stop {
		e.tt.store(hash, depth, ply, bestMove, best, bound)
	}
	return best
}

// searchWithPVS implements the standard three-stage PVS re-search: a
// reduced-depth null-window probe, a full-depth null-window re-search if the
// probe beat alpha, and finally a full-window search if that result lands
// strictly inside (alpha, beta).
func (e *Engine) searchWithPVS(b *board.Board, m board.Move, baseDepth int, reduction int8, alpha, beta int32, ply int, extendMove, nextExtended bool, rootIndex int, child *PVLine) int32 {
	depth := childDepth(baseDepth, reduction, extendMove)
	score := -e.alphaBeta(b, -(alpha + 1), -alpha, depth, ply+1, child, 0, false, nextExtended, m, rootIndex)

	if score > alpha && reduction > 0 {
		depth = childDepth(baseDepth, 0, extendMove)
		score = -e.alphaBeta(b, -(alpha + 1), -alpha, depth, ply+1, child, 0, false, nextExtended, m, rootIndex)
	}
	if score > alpha && score < beta {
		depth = childDepth(baseDepth, 0, extendMove)
		score = -e.alphaBeta(b, -beta, -alpha, depth, ply+1, child, 0, false, nextExtended, m, rootIndex)
	}
	return score
}

func childDepth(base int, reduction int8, extend bool) int {
	d := base - int(reduction)
	if extend && reduction == 0 {
		d++
	}
	return d
}

// quiescence extends the search through captures (and, while in check, all
// evasions) until the position is quiet, avoiding the horizon effect where a
// search stops mid-exchange. Stand pat establishes a floor: the side
// to move is never forced to make a capture that loses material.
func (e *Engine) quiescence(b *board.Board, alpha, beta int32, pv *PVLine, ply int, rootIndex int) int32 {
	e.stats.QNodes++
	if e.stats.QNodes&2047 == 0 && e.clock.HardExpired() {
		e.stop = true
	}
	if e.stop {
		return 0
	}
	if ply >= MaxPly {
		return Evaluate(b)
	}

	inCheck := b.OurKingInCheck()
	standPat := Evaluate(b)

	if !inCheck {
		if standPat >= beta {
			e.stats.QStandPatCutoffs++
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	best := standPat
	if inCheck {
		best = -Infinity
	}

	var moves []board.Move
	if inCheck {
		moves = b.GenerateLegalMoves()
	} else {
		// GenerateCaptures excludes non-capturing promotion pushes, but those
		// are tactical too and must stay in the tree until resolved.
		moves = b.GenerateCaptures()
		for _, qm := range b.GenerateQuiets() {
			if qm.PromotionPieceType() == board.PieceTypeQueen {
				moves = append(moves, qm)
			}
		}
	}
	scored := e.scoreMoves(b, moves, 0, ply)

	var child PVLine
	for i := range scored {
		pickBest(scored, i)
		m := scored[i].move

		if !inCheck {
			s := see(b, m)
			if s < -quiescenceSeeMargin {
				continue
			}
			gain := int32(pieceValue[m.CapturedPiece().Type()])
			if promo := m.PromotionPieceType(); promo != board.PieceTypeNone {
				gain += int32(pieceValue[promo] - pieceValue[board.PieceTypePawn])
			}
			if standPat+gain+deltaMargin < alpha {
				continue
			}
		}

		undo := b.Apply(m)
		e.repetition.push(b.Hash(), b.HalfmoveClock())
		score := -e.quiescence(b, -beta, -alpha, &child, ply+1, rootIndex)
		e.repetition.pop()
		undo()

		if score > best {
			best = score
		}
		if score >= beta {
			e.stats.QBetaCutoffs++
			return score
		}
		if score > alpha {
			alpha = score
			pv.update(m, child)
		}
		child.clear()
	}

	return best
}

func hasNonPawnMaterial(b *board.Board) bool {
	c := b.SideToMove()
	bb := b.Bitboards(c)
	return bb.Knights|bb.Bishops|bb.Rooks|bb.Queens != 0
}
