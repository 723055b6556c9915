package aging

import (
	"time"

	"FlowVigil/internal/model"
)

// Policy decides per-flow aging eligibility.
type Policy struct {
	AgeTimeout time.Duration
}

// ShouldAge reports whether a single entry is eligible for removal at now.
// A sample showing growth on both counters keeps the flow alive regardless
// of elapsed time. Without growth, or without a sample at all, eligibility
// is pure idle time against the configured timeout.
func (p Policy) ShouldAge(e *model.FlowEntry, sample model.CounterSample, sampled bool, now time.Time) bool {
	if sampled {
		newBytes := Reconcile(e.Bytes, sample.Bytes())
		newPackets := Reconcile(e.Packets, sample.Packets())
		if newBytes > e.Bytes && newPackets > e.Packets {
			return false
		}
	}
	return now.Sub(e.LastModified) >= p.AgeTimeout
}
