package engine

import (
	"github.com/oliverans-successor/gooseforge/board"
)

// Engine bundles everything a search needs: the transposition table, the
// move-ordering heuristics, the repetition history, and the time budget. None
// of this lives in package-level state, so two Engines can search two
// different games concurrently without interfering with each other.
type Engine struct {
	tt         *TranspositionTable
	killers    killerTable
	history    historyTable
	repetition repetitionTracker
	clock      TimeManager
	lmr        [maxLMRDepth][maxLMRMoves]int8

	stats SearchStats
	stop  bool

	// Progress is invoked once per completed iterative-deepening depth, with
	// the information a UCI front-end reports via an "info" line. Nil is a
	// valid value: the search simply stays silent.
	Progress func(ProgressReport)
}

// SearchStats accumulates counters for one search call, used for "info
// string" diagnostics and for the nps figure the protocol layer reports.
type SearchStats struct {
	Nodes             uint64
	QNodes            uint64
	TTCutoffs         uint64
	NullMoveCutoffs   uint64
	StaticNullCutoffs uint64
	FutilityPrunes    uint64
	LateMovePrunes    uint64
	BetaCutoffs       uint64
	QStandPatCutoffs  uint64
	QBetaCutoffs      uint64
}

// ProgressReport is the data behind one "info depth ..." line.
type ProgressReport struct {
	Depth    int
	Score    int32
	MateIn   int // 0 unless Score represents a forced mate
	Nodes    uint64
	NPS      uint64
	ElapsedMS int64
	PV       []board.Move
}

// NewEngine builds an Engine with a transposition table sized to the default
// entry budget. Callers that want a different table size should call
// NewEngineWithTTSize directly.
func NewEngine() *Engine {
	return NewEngineWithTTSize(defaultTTEntries)
}

func NewEngineWithTTSize(entries int) *Engine {
	e := &Engine{
		tt: NewTranspositionTable(entries),
	}
	initLMRTable(&e.lmr)
	return e
}

// NewGame clears all tables that must not leak information between distinct
// games: the transposition table, killer/history heuristics,
// and the repetition stack. The time manager is reset at the start of each
// search instead, since it is a per-move concept.
func (e *Engine) NewGame() {
	e.tt.Clear()
	e.killers.clear()
	e.history.clear()
	e.repetition.reset(nil)
}

// SetPosition seeds the repetition tracker with the hash history leading up
// to the given position: every position the game has passed through,
// oldest first, ending with b itself.
func (e *Engine) SetPosition(b *board.Board, priorHashes []uint64) {
	e.repetition.reset(priorHashes)
	e.repetition.push(b.Hash(), b.HalfmoveClock())
}

// Stop requests that any in-progress search return as soon as it next checks
// for a stop condition.
func (e *Engine) Stop() {
	e.stop = true
}
