package engine

import "github.com/oliverans-successor/gooseforge/board"

// killerTable holds, per ply, the two most recent quiet moves that caused a
// beta cutoff. Killers are tried after winning captures, queen promotions
// and checks, but before under-promotions, losing captures and ordinary
// history-scored quiet moves.
type killerTable struct {
	moves [MaxPly + 1][2]board.Move
}

// insert records move as the newest killer at ply, demoting the previous
// primary killer to the secondary slot. A move already in the primary slot is
// left alone instead of being duplicated into both slots.
func (k *killerTable) insert(move board.Move, ply int) {
	if ply < 0 || ply > MaxPly {
		return
	}
	if k.moves[ply][0] == move {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = move
}

func (k *killerTable) isKiller(move board.Move, ply int) bool {
	if ply < 0 || ply > MaxPly {
		return false
	}
	return move == k.moves[ply][0] || move == k.moves[ply][1]
}

// rank returns 0 for a non-killer, 1 for the secondary killer, 2 for the
// primary killer — used directly as a move-ordering priority tier.
func (k *killerTable) rank(move board.Move, ply int) int {
	if ply < 0 || ply > MaxPly {
		return 0
	}
	switch move {
	case k.moves[ply][0]:
		return 2
	case k.moves[ply][1]:
		return 1
	default:
		return 0
	}
}

func (k *killerTable) clear() {
	for i := range k.moves {
		k.moves[i][0] = 0
		k.moves[i][1] = 0
	}
}
