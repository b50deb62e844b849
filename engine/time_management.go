package engine

import "time"

// phaseDivisor is how large a fraction of the remaining clock a single move
// is allowed to spend, keyed by the discrete game-phase bucket: the
// opening (1/50) spends the smallest share, the middlegame (1/30) the
// largest, and the endgame (1/40) sits in between.
var phaseDivisor = map[PhaseBucket]int{
	Opening:    50,
	Middlegame: 30,
	Endgame:    40,
}

// phaseCap bounds a single move's budget (clock share plus increment share),
// regardless of how much time remains.
var phaseCap = map[PhaseBucket]time.Duration{
	Opening:    30 * time.Second,
	Middlegame: 20 * time.Second,
	Endgame:    10 * time.Second,
}

const (
	panicThreshold  = 60 * time.Second
	panicCap        = 5 * time.Second
	overshootAllow  = 0.25 // soft budget may be exceeded by up to this fraction to finish a started depth
	incrementWeight = 0.8
)

// TimeManager converts a clock reading into a soft/hard deadline for the
// current search. The soft deadline is the point at which iterative
// deepening should not start a new depth; the hard deadline is the point at
// which a search in progress must abandon ship regardless of depth.
type TimeManager struct {
	started  time.Time
	soft     time.Duration
	hard     time.Duration
	infinite bool
	fixed    bool // a caller-specified move time, not clock-derived
}

// Start computes the time budget for one search given the clock state at the
// start of the move. infinite requests a search with no time bound
// (the "go infinite" command, or a depth limit given without a clock); such a
// search ends only by Stop or by its depth limit.
func (tm *TimeManager) Start(remaining, increment time.Duration, phase float64, infinite bool) {
	tm.started = time.Now()
	tm.infinite = infinite
	tm.fixed = false
	if infinite {
		return
	}

	bucket := Bucket(phase)
	divisor := phaseDivisor[bucket]
	cap := phaseCap[bucket]
	if remaining < panicThreshold {
		divisor = int(float64(divisor) * 0.5)
		if divisor < 1 {
			divisor = 1
		}
		cap = panicCap
	}

	budget := remaining/time.Duration(divisor) + time.Duration(float64(increment)*incrementWeight)
	if budget > cap {
		budget = cap
	}
	if budget <= 0 {
		budget = time.Millisecond
	}

	tm.soft = budget
	tm.hard = time.Duration(float64(budget) * (1 + overshootAllow))
}

// StartFixed sets a hard wall-clock budget directly, used for the UCI
// "movetime" parameter: both the soft and hard deadlines coincide, since
// there is no notion of "finish the depth you started" when the user asked
// for an exact amount of thinking time.
func (tm *TimeManager) StartFixed(d time.Duration) {
	tm.started = time.Now()
	tm.infinite = false
	tm.fixed = true
	tm.soft = d
	tm.hard = d
}

// ShouldStartNextDepth reports whether iterative deepening may begin another
// depth, i.e. whether the soft deadline has not yet passed.
func (tm *TimeManager) ShouldStartNextDepth() bool {
	if tm.infinite {
		return true
	}
	return time.Since(tm.started) < tm.soft
}

// HardExpired reports whether the search must abandon whatever it is doing
// right now, even mid-depth.
func (tm *TimeManager) HardExpired() bool {
	if tm.infinite {
		return false
	}
	return time.Since(tm.started) >= tm.hard
}

func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.started)
}
