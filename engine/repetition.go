package engine

const fiftyMoveLimit = 100

// repHist is one entry in the position history the driver keeps for draw
// detection: a hash plus the fifty-move counter as of that position.
type repHist struct {
	hash   uint64
	rule50 int
}

type repetitionTracker struct {
	history []repHist
}

// reset rebuilds the tracker from a list of prior position hashes (oldest
// first), typically supplied by a "position ... moves ..." command. The
// fifty-move counter is not reconstructable from a bare hash list, so it is
// approximated as growing from zero; SetPosition then appends the current
// position with the board's real counter.
func (r *repetitionTracker) reset(priorHashes []uint64) {
	r.history = r.history[:0]
	for i, h := range priorHashes {
		r.history = append(r.history, repHist{hash: h, rule50: i})
	}
}

func (r *repetitionTracker) push(hash uint64, rule50 int) {
	r.history = append(r.history, repHist{hash: hash, rule50: rule50})
}

func (r *repetitionTracker) pop() {
	if len(r.history) == 0 {
		return
	}
	r.history = r.history[:len(r.history)-1]
}

// isDraw reports whether the position just pushed is a draw by the
// fifty-move rule or by repetition. rootIndex is the
// history length at the start of the current search call: a repetition that
// occurred entirely before the search began only needs one prior occurrence
// to count (it already happened in the real game), while one that would
// first occur inside the search tree needs two, matching how a real
// three-fold claim is only certain once it has actually repeated twice more.
func (r *repetitionTracker) isDraw(rootIndex int) bool {
	if len(r.history) == 0 {
		return false
	}
	cur := r.history[len(r.history)-1]
	if cur.rule50 >= fiftyMoveLimit {
		return true
	}
	count, firstIdx := r.occurrences(cur.hash, cur.rule50)
	if count >= 2 {
		return true
	}
	return count >= 1 && firstIdx != -1 && firstIdx < rootIndex
}

// upcomingRepetition reports whether the current position already occurred
// earlier at or after rootIndex, within the fifty-move window; alphaBeta uses
// it to raise alpha to the draw score. It does not look ahead for moves that
// would repeat a position.
func (r *repetitionTracker) upcomingRepetition(rootIndex int) bool {
	if len(r.history) <= 1 {
		return false
	}
	cur := r.history[len(r.history)-1]
	start := len(r.history) - 1 - cur.rule50
	if start < 0 {
		start = 0
	}
	for i := len(r.history) - 2; i >= start; i-- {
		if r.history[i].hash == cur.hash && i >= rootIndex {
			return true
		}
	}
	return false
}

func (r *repetitionTracker) occurrences(hash uint64, rule50 int) (count int, firstIdx int) {
	firstIdx = -1
	if len(r.history) <= 1 {
		return 0, firstIdx
	}
	start := len(r.history) - 1 - rule50
	if start < 0 {
		start = 0
	}
	end := len(r.history) - 2
	for i := start; i <= end; i++ {
		if r.history[i].hash == hash {
			count++
			if firstIdx == -1 {
				firstIdx = i
			}
		}
	}
	return count, firstIdx
}
