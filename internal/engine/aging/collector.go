package aging

import (
	"time"

	"FlowVigil/internal/engine/export"
	"FlowVigil/internal/flowtable"
	"FlowVigil/internal/model"
)

// Collector runs the resumable aging and statistics scan. A pass visits a
// bounded batch of entries starting just past the cursor left by the
// previous pass, reconciles counters against fresh datapath samples, emits
// export records, and retires idle flows. All collector state is touched
// only from the table mutator goroutine.
type Collector struct {
	policy    Policy
	scheduler Scheduler
	datapath  model.Datapath
	exporter  *export.Exporter
	vnStats   model.VnStats
	now       func() time.Time

	// cursor holds the key of the last entry visited. The zero key means
	// the next pass starts from the table minimum.
	cursor    model.FlowKey
	schedule  ScheduleState
	passes    uint64
	shortAged uint64
}

// NewCollector wires the scan with its collaborators. A nil now defaults
// to time.Now.
func NewCollector(policy Policy, scheduler Scheduler, dp model.Datapath, exporter *export.Exporter, vnStats model.VnStats, now func() time.Time) *Collector {
	if now == nil {
		now = time.Now
	}
	return &Collector{
		policy:    policy,
		scheduler: scheduler,
		datapath:  dp,
		exporter:  exporter,
		vnStats:   vnStats,
		now:       now,
		schedule: ScheduleState{
			BatchSize: scheduler.MinBatch,
			Interval:  scheduler.DefaultInterval,
		},
	}
}

// Schedule returns the tuning computed at the end of the last pass.
func (c *Collector) Schedule() ScheduleState {
	return c.schedule
}

// Passes returns the number of scan passes run so far.
func (c *Collector) Passes() uint64 {
	return c.passes
}

// ShortAged returns the number of flows retired through the short flow
// fast path.
func (c *Collector) ShortAged() uint64 {
	return c.shortAged
}

// RunPass executes one bounded scan over the table. It must not run
// concurrently with itself or with any other table mutation; the manager
// serializes it through the table mutator.
func (c *Collector) RunPass(t *flowtable.Table) {
	c.passes++
	if t.Len() == 0 {
		return
	}
	now := c.now()
	batch := c.schedule.BatchSize
	count := uint32(0)
	resetCursor := true

	entry := t.UpperBound(c.cursor)
	if entry == nil {
		// Wrapped past the end on the previous pass.
		entry = t.First()
	}

	for entry != nil {
		c.cursor = entry.Key

		sample, sampled := c.datapath.Sample(entry.Handle)
		deleted := false

		var rev *model.FlowEntry
		var revSample model.CounterSample
		var revSampled bool
		if c.policy.ShouldAge(entry, sample, sampled, now) {
			if entry.Reverse != nil {
				rev = t.Find(*entry.Reverse)
			}
			// A paired flow is only removed once both directions are
			// independently idle.
			if rev != nil {
				revSample, revSampled = c.datapath.Sample(rev.Handle)
				if c.policy.ShouldAge(rev, revSample, revSampled, now) {
					deleted = true
				}
			} else {
				deleted = true
			}
		}

		if deleted {
			c.retire(entry, rev, sample, sampled, now)
			if rev != nil {
				c.retire(rev, entry, revSample, revSampled, now)
			}
			t.DeletePair(entry.Key, rev != nil)
			if rev != nil {
				count++
				if count >= batch {
					break
				}
			}
		}

		if !deleted && sampled {
			newBytes := Reconcile(entry.Bytes, sample.Bytes())
			if newBytes != entry.Bytes {
				newPackets := Reconcile(entry.Packets, sample.Packets())
				diffBytes := newBytes - entry.Bytes
				diffPackets := newPackets - entry.Packets
				c.vnStats.Update(entry.SourceVN, entry.DestVN, diffBytes, diffPackets)
				entry.Bytes = newBytes
				entry.Packets = newPackets
				entry.LastModified = now
				var peer *model.FlowEntry
				if entry.Reverse != nil {
					peer = t.Find(*entry.Reverse)
				}
				c.exporter.ExportFlow(entry, peer, diffBytes, diffPackets)
			}
		}

		// Short flows skip the age timeout entirely: this side goes now,
		// the peer is unlinked and left to its own scan.
		if !deleted && entry.ShortFlow {
			deleted = true
			c.shortAged++
			var peer *model.FlowEntry
			if entry.Reverse != nil {
				peer = t.Find(*entry.Reverse)
			}
			c.retire(entry, peer, sample, sampled, now)
			t.DeletePair(entry.Key, false)
		}

		count++
		if count >= batch {
			break
		}
		// Deleted entries drop out of the tree, so stepping from the
		// cursor key lands on the next live entry either way.
		entry = t.UpperBound(c.cursor)
	}

	// Keep the cursor only when the batch filled up with entries still
	// ahead of it; a completed sweep restarts from the table minimum.
	if count >= batch && t.UpperBound(c.cursor) != nil {
		resetCursor = false
	}
	if resetCursor {
		c.cursor = model.FlowKey{}
	}

	c.schedule = c.scheduler.Recompute(t.Len())
}

// retire folds any pending counter delta, stamps the teardown time and
// emits the final record for one side of a dying flow. The caller removes
// the table entry afterwards.
func (c *Collector) retire(e, peer *model.FlowEntry, sample model.CounterSample, sampled bool, now time.Time) {
	var diffBytes, diffPackets uint64
	if sampled {
		newBytes := Reconcile(e.Bytes, sample.Bytes())
		newPackets := Reconcile(e.Packets, sample.Packets())
		diffBytes = newBytes - e.Bytes
		diffPackets = newPackets - e.Packets
		e.Bytes = newBytes
		e.Packets = newPackets
	}
	if diffBytes != 0 || diffPackets != 0 {
		c.vnStats.Update(e.SourceVN, e.DestVN, diffBytes, diffPackets)
	}
	e.TeardownTime = now
	c.exporter.ExportFlow(e, peer, diffBytes, diffPackets)
}
