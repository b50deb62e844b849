package engine

import "github.com/oliverans-successor/gooseforge/board"

const historyMax int32 = 1 << 14

// historyTable scores quiet moves by how often they have produced a beta
// cutoff at a given depth, indexed by side to move and the move's from/to
// squares. It persists across plies within one search call and is
// decayed, not cleared, between successive root searches so that a move
// which was good two iterations ago still carries some weight.
type historyTable struct {
	score [2][64][64]int32
}

func (h *historyTable) bonus(side board.Color, m board.Move, depth int) {
	v := int32(depth * depth)
	cur := &h.score[side][m.From()][m.To()]
	*cur += v
	if *cur > historyMax {
		*cur = historyMax
	}
}

func (h *historyTable) malus(side board.Color, m board.Move, depth int) {
	v := int32(depth * depth)
	cur := &h.score[side][m.From()][m.To()]
	*cur -= v
	if *cur < -historyMax {
		*cur = -historyMax
	}
}

func (h *historyTable) get(side board.Color, m board.Move) int32 {
	return h.score[side][m.From()][m.To()]
}

// decay halves every entry. Called once per Search call (not per iterative
// deepening step), so a position's history carries forward between moves
// made in the same game without ever growing unbounded.
func (h *historyTable) decay() {
	for s := 0; s < 2; s++ {
		for f := 0; f < 64; f++ {
			for t := 0; t < 64; t++ {
				h.score[s][f][t] /= 2
			}
		}
	}
}

func (h *historyTable) clear() {
	h.score = [2][64][64]int32{}
}
