package engine

import "github.com/oliverans-successor/gooseforge/board"

// Bound records what a stored score actually represents relative to the
// window it was produced in.
type Bound int8

const (
	BoundExact Bound = iota
	BoundLower       // score is a lower bound: the position is at least this good (fail-high)
	BoundUpper       // score is an upper bound: the position is at most this good (fail-low)
)

// defaultTTEntries is the default table size in entries, independent
// of entry byte size — unlike a byte-budget table, this count never changes
// silently if TTEntry grows a field.
const defaultTTEntries = 1 << 20 // 1,048,576

type ttEntry struct {
	key   uint64 // full Zobrist key, not just the table index, to detect collisions
	depth int8
	move  board.Move
	score int32
	bound Bound
}

// TranspositionTable caches search results keyed by position hash. It
// is direct-mapped: each hash maps to exactly one slot, and a new entry
// always replaces whatever was there unless the incoming entry is a
// non-exact bound shallower than a same-position entry already in the slot.
type TranspositionTable struct {
	entries []ttEntry
	mask    uint64
}

// NewTranspositionTable allocates a table sized to the next power of two
// at or above the requested entry count.
func NewTranspositionTable(entries int) *TranspositionTable {
	if entries < 1 {
		entries = 1
	}
	size := 1
	for size < entries {
		size <<= 1
	}
	return &TranspositionTable{
		entries: make([]ttEntry, size),
		mask:    uint64(size - 1),
	}
}

func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = ttEntry{}
	}
}

// probe looks up hash and, if usable within [alpha,beta] at depth or deeper,
// returns the stored score adjusted for the current ply's distance from
// root. The stored move is returned whenever the slot matches the
// hash at all, even if the score itself wasn't deep enough to use directly —
// it is still a very strong move-ordering hint.
func (tt *TranspositionTable) probe(hash uint64, depth int, ply int, alpha, beta int32) (move board.Move, score int32, usable bool, hit bool) {
	e := &tt.entries[hash&tt.mask]
	if e.key != hash {
		return 0, 0, false, false
	}
	move = e.move
	hit = true

	if int(e.depth) < depth {
		return move, 0, false, hit
	}

	adj := unadjustMate(e.score, ply)
	switch e.bound {
	case BoundExact:
		return move, adj, true, hit
	case BoundLower:
		if adj >= beta {
			return move, adj, true, hit
		}
	case BoundUpper:
		if adj <= alpha {
			return move, adj, true, hit
		}
	}
	return move, 0, false, hit
}

// store records a search result. Mate scores are made relative to ply before
// storage, and re-based back to root distance on probe, because the same
// position can be reached at different plies from root with different
// mate distances.
func (tt *TranspositionTable) store(hash uint64, depth int, ply int, move board.Move, score int32, bound Bound) {
	e := &tt.entries[hash&tt.mask]
	if e.key == hash && int(e.depth) > depth && bound != BoundExact {
		return
	}
	e.key = hash
	e.depth = int8(depth)
	e.move = move
	e.score = adjustMate(score, ply)
	e.bound = bound
}

func adjustMate(score int32, ply int) int32 {
	if score > MateThreshold {
		return score + int32(ply)
	}
	if score < -MateThreshold {
		return score - int32(ply)
	}
	return score
}

func unadjustMate(score int32, ply int) int32 {
	if score > MateThreshold {
		return score - int32(ply)
	}
	if score < -MateThreshold {
		return score + int32(ply)
	}
	return score
}
