package aging

import "time"

// ScheduleState is the adaptive tuning recomputed after every pass: how
// many entries the next pass may visit and how long until it fires.
type ScheduleState struct {
	BatchSize uint32
	Interval  time.Duration
}

// Scheduler derives the schedule from table occupancy so that one full
// sweep of the table completes within roughly one age timeout.
type Scheduler struct {
	AgeTimeout      time.Duration
	Multiplier      uint64
	DefaultInterval time.Duration
	MinBatch        uint32
}

// Recompute returns the schedule for the next pass given the current flow
// count. The interval is capped at one second and falls back to the
// default on an empty table; the batch size never drops below the
// configured floor.
func (s Scheduler) Recompute(totalFlows int) ScheduleState {
	ageMs := uint64(s.AgeTimeout / time.Millisecond)

	var intervalMs uint64
	if totalFlows > 0 {
		intervalMs = ageMs * s.Multiplier / uint64(totalFlows)
		if intervalMs > 1000 {
			intervalMs = 1000
		}
	} else {
		intervalMs = uint64(s.DefaultInterval / time.Millisecond)
	}

	batch := s.MinBatch
	if ageMs > 0 {
		if computed := intervalMs * uint64(totalFlows) / ageMs; computed > uint64(batch) {
			batch = uint32(computed)
		}
	}

	return ScheduleState{
		BatchSize: batch,
		Interval:  time.Duration(intervalMs) * time.Millisecond,
	}
}
