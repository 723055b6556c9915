package aging

import (
	"testing"
	"time"
)

func testScheduler() Scheduler {
	return Scheduler{
		AgeTimeout:      180 * time.Second,
		Multiplier:      2,
		DefaultInterval: 200 * time.Millisecond,
		MinBatch:        100,
	}
}

func TestRecomputeEmptyTable(t *testing.T) {
	st := testScheduler().Recompute(0)
	if st.Interval != 200*time.Millisecond {
		t.Errorf("interval = %s on empty table, want the default 200ms", st.Interval)
	}
	if st.BatchSize != 100 {
		t.Errorf("batch = %d on empty table, want the floor 100", st.BatchSize)
	}
}

func TestRecomputeTypicalLoad(t *testing.T) {
	// 10000 flows over a 180s timeout with multiplier 2:
	// interval = 180000ms * 2 / 10000 = 36ms, batch floors at 100.
	st := testScheduler().Recompute(10000)
	if st.Interval != 36*time.Millisecond {
		t.Errorf("interval = %s, want 36ms", st.Interval)
	}
	if st.BatchSize != 100 {
		t.Errorf("batch = %d, want 100", st.BatchSize)
	}
}

func TestRecomputeIntervalCeiling(t *testing.T) {
	// A nearly empty table would compute a 36s interval; the ceiling caps
	// it at one second.
	st := testScheduler().Recompute(10)
	if st.Interval != time.Second {
		t.Errorf("interval = %s, want the 1s ceiling", st.Interval)
	}
	if st.BatchSize != 100 {
		t.Errorf("batch = %d, want the floor 100", st.BatchSize)
	}
}

func TestRecomputeBatchAboveFloor(t *testing.T) {
	s := testScheduler()
	s.Multiplier = 200
	// interval caps at 1000ms, so batch = 1000 * 20000 / 180000 = 111.
	st := s.Recompute(20000)
	if st.Interval != time.Second {
		t.Fatalf("interval = %s, want 1s", st.Interval)
	}
	if st.BatchSize != 111 {
		t.Errorf("batch = %d, want 111", st.BatchSize)
	}
}

func TestRecomputeZeroAgeTimeout(t *testing.T) {
	s := testScheduler()
	s.AgeTimeout = 0
	st := s.Recompute(5000)
	if st.BatchSize != 100 {
		t.Errorf("batch = %d with zero age timeout, want the floor 100", st.BatchSize)
	}
	if st.Interval != 0 {
		t.Errorf("interval = %s with zero age timeout, want 0 (clamped when armed)", st.Interval)
	}
}
