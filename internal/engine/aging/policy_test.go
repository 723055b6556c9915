package aging

import (
	"testing"
	"time"

	"FlowVigil/internal/model"
)

func agedEntry(now time.Time, age time.Duration) *model.FlowEntry {
	return &model.FlowEntry{
		Bytes:        1000,
		Packets:      10,
		LastModified: now.Add(-age),
	}
}

func TestShouldAgeActiveFlow(t *testing.T) {
	p := Policy{AgeTimeout: 3 * time.Minute}
	now := time.Now()

	// Growth on both counters keeps the flow alive no matter how long ago
	// it was last touched.
	e := agedEntry(now, time.Hour)
	s := model.CounterSample{BytesLow: 2000, PacketsLow: 20}
	if p.ShouldAge(e, s, true, now) {
		t.Fatal("flow with counter growth was aged")
	}
}

func TestShouldAgeGrowthOnOneCounterOnly(t *testing.T) {
	p := Policy{AgeTimeout: 3 * time.Minute}
	now := time.Now()

	// Byte growth without packet growth does not count as activity.
	e := agedEntry(now, time.Hour)
	s := model.CounterSample{BytesLow: 2000, PacketsLow: 10}
	if !p.ShouldAge(e, s, true, now) {
		t.Fatal("flow idle past the timeout was kept on one-sided growth")
	}
}

func TestShouldAgeWrappedCounterStillActive(t *testing.T) {
	p := Policy{AgeTimeout: 3 * time.Minute}
	now := time.Now()

	// The raw sample is numerically below the stored counters because the
	// hardware wrapped, but reconciliation shows growth on both.
	e := &model.FlowEntry{
		Bytes:        0x0000ffffffffff00,
		Packets:      0x0000ffffffffff00,
		LastModified: now.Add(-time.Hour),
	}
	s := model.CounterSample{BytesLow: 0x80, PacketsLow: 0x80}
	if p.ShouldAge(e, s, true, now) {
		t.Fatal("flow active across a counter wrap was aged")
	}
}

func TestShouldAgeIdleRule(t *testing.T) {
	p := Policy{AgeTimeout: 3 * time.Minute}
	now := time.Now()

	// No sample at all degrades to the pure idle-time rule.
	if p.ShouldAge(agedEntry(now, time.Minute), model.CounterSample{}, false, now) {
		t.Error("recently modified flow was aged without a sample")
	}
	if !p.ShouldAge(agedEntry(now, 3*time.Minute+time.Second), model.CounterSample{}, false, now) {
		t.Error("idle flow past the timeout was not aged")
	}
	// The boundary itself is eligible.
	if !p.ShouldAge(agedEntry(now, 3*time.Minute), model.CounterSample{}, false, now) {
		t.Error("flow idle exactly one timeout was not aged")
	}
}

func TestShouldAgeStaleSampleFallsToIdleRule(t *testing.T) {
	p := Policy{AgeTimeout: 3 * time.Minute}
	now := time.Now()

	// A sample equal to the stored counters is no growth; the idle rule
	// decides.
	e := agedEntry(now, time.Hour)
	s := model.CounterSample{BytesLow: 1000, PacketsLow: 10}
	if !p.ShouldAge(e, s, true, now) {
		t.Fatal("idle flow with an unchanged sample was not aged")
	}
}
