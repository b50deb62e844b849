package engine

import (
	"testing"
	"time"
)

func TestTimeManagerInfiniteNeverExpires(t *testing.T) {
	var tm TimeManager
	tm.Start(time.Second, 0, 0.8, true)
	if !tm.ShouldStartNextDepth() {
		t.Fatalf("infinite search must always allow another depth")
	}
	if tm.HardExpired() {
		t.Fatalf("infinite search must never hard-expire")
	}
}

func TestTimeManagerFixedMoveTimeSetsBothDeadlines(t *testing.T) {
	var tm TimeManager
	tm.StartFixed(250 * time.Millisecond)
	if tm.soft != tm.hard {
		t.Fatalf("a fixed movetime budget must set soft == hard, got soft=%v hard=%v", tm.soft, tm.hard)
	}
}

func TestTimeManagerBudgetRespectsPhaseCap(t *testing.T) {
	var tm TimeManager
	// Enormous remaining clock: the divisor alone would exceed the opening cap.
	tm.Start(time.Hour, 0, 1.0, false)
	if tm.soft > phaseCap[Opening] {
		t.Fatalf("soft budget %v must not exceed the opening phase cap %v", tm.soft, phaseCap[Opening])
	}
}

func TestTimeManagerPanicModeUnderLowTime(t *testing.T) {
	var tm TimeManager
	tm.Start(30*time.Second, 0, 1.0, false)
	if tm.soft > panicCap {
		t.Fatalf("with under a minute remaining, soft budget %v must not exceed the panic cap %v", tm.soft, panicCap)
	}
}

func TestTimeManagerHardExceedsSoftByOvershootAllowance(t *testing.T) {
	var tm TimeManager
	tm.Start(20*time.Second, 0, 0.5, false)
	wantHard := time.Duration(float64(tm.soft) * 1.25)
	if tm.hard != wantHard {
		t.Fatalf("hard deadline should equal soft * 1.25, got hard=%v want=%v", tm.hard, wantHard)
	}
}

func TestTimeManagerElapsedGrows(t *testing.T) {
	var tm TimeManager
	tm.StartFixed(time.Second)
	first := tm.Elapsed()
	time.Sleep(time.Millisecond)
	second := tm.Elapsed()
	if second < first {
		t.Fatalf("elapsed time must be monotonically non-decreasing")
	}
}
