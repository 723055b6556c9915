package aging

import (
	"fmt"
	"net/netip"
	"testing"
	"time"

	"github.com/google/uuid"

	"FlowVigil/internal/engine/export"
	"FlowVigil/internal/flowtable"
	"FlowVigil/internal/model"
)

type fakeDatapath struct {
	samples map[uint32]model.CounterSample
	seen    []uint32
}

func newFakeDatapath() *fakeDatapath {
	return &fakeDatapath{samples: make(map[uint32]model.CounterSample)}
}

func (d *fakeDatapath) Start() error { return nil }
func (d *fakeDatapath) Stop()        {}

func (d *fakeDatapath) Sample(handle uint32) (model.CounterSample, bool) {
	d.seen = append(d.seen, handle)
	s, ok := d.samples[handle]
	return s, ok
}

type captureSink struct {
	records []*model.StatsRecord
}

func (s *captureSink) Export(rec *model.StatsRecord) error {
	s.records = append(s.records, rec)
	return nil
}

func (s *captureSink) Close() {}

type captureVnStats struct {
	bytes   map[string]uint64
	packets map[string]uint64
}

func newCaptureVnStats() *captureVnStats {
	return &captureVnStats{bytes: make(map[string]uint64), packets: make(map[string]uint64)}
}

func (v *captureVnStats) Update(src, dst string, diffBytes, diffPackets uint64) {
	key := src + "->" + dst
	v.bytes[key] += diffBytes
	v.packets[key] += diffPackets
}

func sampleOf(bytes, packets uint64) model.CounterSample {
	return model.CounterSample{
		BytesLow:    uint32(bytes),
		BytesHigh:   uint16(bytes >> 32),
		PacketsLow:  uint32(packets),
		PacketsHigh: uint16(packets >> 32),
	}
}

func flowKey(src, dst string, sport, dport uint16) model.FlowKey {
	return model.FlowKey{
		VRF:      1,
		SrcIP:    netip.MustParseAddr(src),
		DstIP:    netip.MustParseAddr(dst),
		Protocol: 6,
		SrcPort:  sport,
		DstPort:  dport,
	}
}

func newFlow(key model.FlowKey, handle uint32, now time.Time) *model.FlowEntry {
	return &model.FlowEntry{
		Key:          key,
		Handle:       handle,
		UUID:         uuid.New(),
		EgressUUID:   uuid.New(),
		SetupTime:    now,
		LastModified: now,
		Ingress:      true,
		SourceVN:     "frontend",
		DestVN:       "backend",
	}
}

type testRig struct {
	table     *flowtable.Table
	datapath  *fakeDatapath
	sink      *captureSink
	vnStats   *captureVnStats
	collector *Collector
	now       time.Time
}

func newTestRig(minBatch uint32) *testRig {
	r := &testRig{
		table:    flowtable.NewTable(),
		datapath: newFakeDatapath(),
		sink:     &captureSink{},
		vnStats:  newCaptureVnStats(),
		now:      time.Now(),
	}
	policy := Policy{AgeTimeout: 3 * time.Minute}
	scheduler := Scheduler{
		AgeTimeout:      3 * time.Minute,
		Multiplier:      2,
		DefaultInterval: 200 * time.Millisecond,
		MinBatch:        minBatch,
	}
	r.collector = NewCollector(policy, scheduler, r.datapath,
		export.NewExporter(r.sink), r.vnStats, func() time.Time { return r.now })
	return r
}

func TestPassUpdatesCountersAndExports(t *testing.T) {
	r := newTestRig(100)
	e := newFlow(flowKey("10.1.0.5", "10.2.0.9", 33000, 443), 1, r.now.Add(-time.Minute))
	e.Bytes = 1000
	e.Packets = 10
	r.table.Add(e)
	r.datapath.samples[1] = sampleOf(1500, 20)

	r.collector.RunPass(r.table)

	if e.Bytes != 1500 || e.Packets != 20 {
		t.Fatalf("counters = %d/%d after pass, want 1500/20", e.Bytes, e.Packets)
	}
	if !e.LastModified.Equal(r.now) {
		t.Errorf("last modified = %s, want pass time %s", e.LastModified, r.now)
	}
	if r.table.Len() != 1 {
		t.Fatalf("flow was removed; growing flows must never age")
	}

	if len(r.sink.records) != 1 {
		t.Fatalf("got %d export records, want 1", len(r.sink.records))
	}
	rec := r.sink.records[0]
	if rec.FlowUUID != e.UUID {
		t.Errorf("record uuid = %s, want %s", rec.FlowUUID, e.UUID)
	}
	if rec.Bytes != 1500 || rec.DiffBytes != 500 {
		t.Errorf("record bytes = %d diff %d, want 1500 diff 500", rec.Bytes, rec.DiffBytes)
	}
	if rec.Packets != 20 || rec.DiffPackets != 10 {
		t.Errorf("record packets = %d diff %d, want 20 diff 10", rec.Packets, rec.DiffPackets)
	}
	if !rec.TeardownTime.IsZero() {
		t.Error("live flow exported with a teardown time")
	}

	if r.vnStats.bytes["frontend->backend"] != 500 || r.vnStats.packets["frontend->backend"] != 10 {
		t.Errorf("vn stats = %d/%d, want 500/10",
			r.vnStats.bytes["frontend->backend"], r.vnStats.packets["frontend->backend"])
	}
}

func TestPassCounterWrap(t *testing.T) {
	r := newTestRig(100)
	e := newFlow(flowKey("10.1.0.5", "10.2.0.9", 33000, 443), 1, r.now.Add(-time.Second))
	e.Bytes = 0x0000ffffffffff00
	e.Packets = 0x0000ffffffffff00
	r.table.Add(e)
	r.datapath.samples[1] = sampleOf(0x80, 0x80)

	r.collector.RunPass(r.table)

	wantAbs := uint64(1)<<48 | 0x80
	if e.Bytes != wantAbs {
		t.Fatalf("bytes = %#x after wrap, want %#x", e.Bytes, wantAbs)
	}
	if r.table.Len() != 1 {
		t.Fatal("flow active across a wrap was removed")
	}
	if len(r.sink.records) != 1 {
		t.Fatalf("got %d export records, want 1", len(r.sink.records))
	}
	if rec := r.sink.records[0]; rec.DiffBytes != 0x180 {
		t.Errorf("diff bytes across wrap = %d, want %d", rec.DiffBytes, 0x180)
	}
}

func TestPassZeroDeltaExportsNothing(t *testing.T) {
	r := newTestRig(100)
	e := newFlow(flowKey("10.1.0.5", "10.2.0.9", 33000, 443), 1, r.now.Add(-time.Minute))
	e.Bytes = 1500
	e.Packets = 20
	r.table.Add(e)
	r.datapath.samples[1] = sampleOf(1500, 20)
	before := e.LastModified

	r.collector.RunPass(r.table)
	r.collector.RunPass(r.table)

	if len(r.sink.records) != 0 {
		t.Fatalf("got %d export records for an unchanged flow, want 0", len(r.sink.records))
	}
	if !e.LastModified.Equal(before) {
		t.Error("last modified moved without a counter change")
	}
}

func TestPassAgesIdlePair(t *testing.T) {
	r := newTestRig(100)
	idle := r.now.Add(-3*time.Minute - time.Second)
	fwd := newFlow(flowKey("10.1.0.5", "10.2.0.9", 33000, 443), 1, idle)
	rev := newFlow(flowKey("10.2.0.9", "10.1.0.5", 443, 33000), 2, idle)
	rev.Ingress = false
	r.table.Add(fwd)
	r.table.Add(rev)
	r.table.Link(fwd, rev)

	r.collector.RunPass(r.table)

	if r.table.Len() != 0 {
		t.Fatalf("table still holds %d entries, want the pair removed in one pass", r.table.Len())
	}
	if len(r.sink.records) != 2 {
		t.Fatalf("got %d teardown records, want 2", len(r.sink.records))
	}
	first, second := r.sink.records[0], r.sink.records[1]
	if first.FlowUUID != fwd.UUID || second.FlowUUID != rev.UUID {
		t.Errorf("teardown records out of order: %s then %s", first.FlowUUID, second.FlowUUID)
	}
	if first.ReverseUUID != rev.UUID || second.ReverseUUID != fwd.UUID {
		t.Error("teardown records do not cross-reference the pair")
	}
	for i, rec := range r.sink.records {
		if !rec.TeardownTime.Equal(r.now) {
			t.Errorf("record %d teardown time = %s, want %s", i, rec.TeardownTime, r.now)
		}
	}
}

func TestPassKeepsPairWhileOneSideActive(t *testing.T) {
	r := newTestRig(100)
	idle := r.now.Add(-time.Hour)
	fwd := newFlow(flowKey("10.1.0.5", "10.2.0.9", 33000, 443), 1, idle)
	rev := newFlow(flowKey("10.2.0.9", "10.1.0.5", 443, 33000), 2, idle)
	rev.Bytes = 500
	rev.Packets = 5
	r.table.Add(fwd)
	r.table.Add(rev)
	r.table.Link(fwd, rev)
	// Only the reverse direction still moves traffic.
	r.datapath.samples[2] = sampleOf(1500, 15)

	r.collector.RunPass(r.table)

	if r.table.Len() != 2 {
		t.Fatalf("table holds %d entries, want both kept while one side is active", r.table.Len())
	}
	// The active side still exports its delta.
	if len(r.sink.records) != 1 {
		t.Fatalf("got %d records, want 1 update for the active side", len(r.sink.records))
	}
	if rec := r.sink.records[0]; rec.FlowUUID != rev.UUID || rec.DiffBytes != 1000 {
		t.Errorf("record = %s diff %d, want reverse flow with diff 1000", rec.FlowUUID, rec.DiffBytes)
	}
}

func TestPassShortFlowFastPath(t *testing.T) {
	r := newTestRig(100)
	fwd := newFlow(flowKey("10.1.0.5", "10.2.0.9", 33000, 443), 1, r.now)
	rev := newFlow(flowKey("10.2.0.9", "10.1.0.5", 443, 33000), 2, r.now)
	fwd.ShortFlow = true
	r.table.Add(fwd)
	r.table.Add(rev)
	r.table.Link(fwd, rev)

	r.collector.RunPass(r.table)

	if r.table.Find(fwd.Key) != nil {
		t.Fatal("short flow survived the pass")
	}
	if r.table.Find(rev.Key) == nil {
		t.Fatal("peer of a short flow was removed; only the short side goes")
	}
	if rev.Reverse != nil {
		t.Error("peer still references the deleted short flow")
	}
	if len(r.sink.records) != 1 {
		t.Fatalf("got %d records, want 1 teardown for the short flow", len(r.sink.records))
	}
	rec := r.sink.records[0]
	if rec.FlowUUID != fwd.UUID || rec.ReverseUUID != rev.UUID {
		t.Errorf("teardown record %s/%s, want short flow with its peer", rec.FlowUUID, rec.ReverseUUID)
	}
	if rec.TeardownTime.IsZero() {
		t.Error("short flow teardown record has no teardown time")
	}
}

func TestPassLocalFlowExportsBothDirections(t *testing.T) {
	r := newTestRig(100)
	e := newFlow(flowKey("10.1.0.5", "10.1.0.9", 33000, 443), 1, r.now.Add(-time.Minute))
	e.Local = true
	e.Bytes = 1000
	e.Packets = 10
	r.table.Add(e)
	r.datapath.samples[1] = sampleOf(1400, 14)

	r.collector.RunPass(r.table)

	if len(r.sink.records) != 2 {
		t.Fatalf("got %d records for a local flow, want 2", len(r.sink.records))
	}
	in, out := r.sink.records[0], r.sink.records[1]
	if !in.Ingress || out.Ingress {
		t.Fatalf("directions = %v/%v, want ingress then egress", in.Ingress, out.Ingress)
	}
	if in.FlowUUID != e.UUID {
		t.Errorf("ingress uuid = %s, want %s", in.FlowUUID, e.UUID)
	}
	if out.FlowUUID != e.EgressUUID {
		t.Errorf("egress uuid = %s, want the egress uuid %s", out.FlowUUID, e.EgressUUID)
	}
	// Everything but direction and identity matches.
	if in.Bytes != out.Bytes || in.DiffBytes != out.DiffBytes ||
		in.SrcIP != out.SrcIP || in.DstIP != out.DstIP {
		t.Error("local flow records differ beyond direction and uuid")
	}
	if in.DiffBytes != 400 {
		t.Errorf("diff bytes = %d, want 400", in.DiffBytes)
	}
}

func TestPassCursorCoverage(t *testing.T) {
	r := newTestRig(3)

	// Ten fresh flows; nothing ages, nothing is sampled, so passes purely
	// walk the table in batches of three.
	var handles []uint32
	for i := 0; i < 10; i++ {
		h := uint32(i)
		key := flowKey(fmt.Sprintf("10.1.0.%d", i+1), "10.2.0.9", 33000, 443)
		r.table.Add(newFlow(key, h, r.now))
		handles = append(handles, h)
	}

	for pass := 0; pass < 4; pass++ {
		r.collector.RunPass(r.table)
	}

	if len(r.datapath.seen) != 10 {
		t.Fatalf("4 passes visited %d entries, want all 10 exactly once", len(r.datapath.seen))
	}
	visited := make(map[uint32]bool)
	for _, h := range r.datapath.seen {
		if visited[h] {
			t.Fatalf("handle %d visited twice within one sweep", h)
		}
		visited[h] = true
	}
	for _, h := range handles {
		if !visited[h] {
			t.Errorf("handle %d never visited", h)
		}
	}

	// The sweep completed, so the next pass starts over from the minimum.
	r.collector.RunPass(r.table)
	if r.datapath.seen[10] != handles[0] {
		t.Errorf("pass after sweep completion started at handle %d, want %d",
			r.datapath.seen[10], handles[0])
	}
}

func TestPassPairDeletionCountsBothSides(t *testing.T) {
	r := newTestRig(2)
	idle := r.now.Add(-time.Hour)
	fwd := newFlow(flowKey("10.1.0.1", "10.2.0.9", 33000, 443), 1, idle)
	rev := newFlow(flowKey("10.2.0.9", "10.1.0.1", 443, 33000), 2, idle)
	r.table.Add(fwd)
	r.table.Add(rev)
	r.table.Link(fwd, rev)
	r.table.Add(newFlow(flowKey("10.3.0.1", "10.2.0.9", 33000, 443), 3, r.now))
	r.table.Add(newFlow(flowKey("10.4.0.1", "10.2.0.9", 33000, 443), 4, r.now))

	// The pair costs the whole batch of two, so the first pass must stop
	// before the remaining flows.
	r.collector.RunPass(r.table)
	if r.table.Len() != 2 {
		t.Fatalf("table holds %d entries after first pass, want 2", r.table.Len())
	}
	if len(r.datapath.seen) != 2 {
		t.Fatalf("first pass sampled %d entries, want just the pair", len(r.datapath.seen))
	}

	// The second pass resumes past the deleted pair.
	r.collector.RunPass(r.table)
	if got := r.datapath.seen[2:]; len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("second pass visited %v, want the two remaining flows [3 4]", got)
	}
}

func TestPassEmptyTableKeepsSchedule(t *testing.T) {
	r := newTestRig(100)
	before := r.collector.Schedule()

	r.collector.RunPass(r.table)

	if got := r.collector.Schedule(); got != before {
		t.Errorf("schedule changed on an empty table: %+v -> %+v", before, got)
	}
	if r.collector.Passes() != 1 {
		t.Errorf("passes = %d, want 1", r.collector.Passes())
	}
}

func TestPassRecomputesSchedule(t *testing.T) {
	r := newTestRig(100)
	r.table.Add(newFlow(flowKey("10.1.0.5", "10.2.0.9", 33000, 443), 1, r.now))

	r.collector.RunPass(r.table)

	// One flow over a 180s timeout computes far above the ceiling.
	if got := r.collector.Schedule(); got.Interval != time.Second {
		t.Errorf("interval = %s after pass, want the 1s ceiling", got.Interval)
	}
}
