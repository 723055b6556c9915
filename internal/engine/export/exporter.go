package export

import (
	"log"

	"FlowVigil/internal/model"
)

// Exporter turns updated or retiring flow entries into statistics records
// and hands them to the configured sink.
type Exporter struct {
	sink model.RecordSink
}

// NewExporter creates an exporter writing to sink.
func NewExporter(sink model.RecordSink) *Exporter {
	return &Exporter{sink: sink}
}

// ExportFlow emits the records for one flow event. A local flow produces
// two records differing only in direction and UUID, so consumers keyed by
// (uuid, direction) see both legs with matching fields; the egress leg
// carries the entry's egress UUID. Every other flow produces a single
// record in its own direction.
func (x *Exporter) ExportFlow(e, rev *model.FlowEntry, diffBytes, diffPackets uint64) {
	if e.Local {
		in := x.build(e, rev, diffBytes, diffPackets)
		in.Ingress = true
		x.applySourceOverride(in, e, rev)

		out := *in
		out.Ingress = false
		out.FlowUUID = e.EgressUUID

		x.send(in)
		x.send(&out)
		return
	}

	rec := x.build(e, rev, diffBytes, diffPackets)
	rec.Ingress = e.Ingress
	if e.Ingress {
		x.applySourceOverride(rec, e, rev)
	}
	x.send(rec)
}

// applySourceOverride replaces the record's reported source address on a
// NAT flow with the reverse flow's destination, so records correlate
// across nodes on the post-translation address.
func (x *Exporter) applySourceOverride(rec *model.StatsRecord, e, rev *model.FlowEntry) {
	if !e.NAT || rev == nil {
		return
	}
	if natSrc := rev.Key.DstIP; e.Key.SrcIP != natSrc {
		rec.SrcIP = natSrc
	}
}

func (x *Exporter) build(e, rev *model.FlowEntry, diffBytes, diffPackets uint64) *model.StatsRecord {
	rec := &model.StatsRecord{
		FlowUUID:     e.UUID,
		SrcIP:        e.Key.SrcIP,
		DstIP:        e.Key.DstIP,
		Protocol:     e.Key.Protocol,
		SrcPort:      e.Key.SrcPort,
		DstPort:      e.Key.DstPort,
		SourceVN:     e.SourceVN,
		DestVN:       e.DestVN,
		Bytes:        e.Bytes,
		DiffBytes:    diffBytes,
		Packets:      e.Packets,
		DiffPackets:  diffPackets,
		SetupTime:    e.SetupTime,
		TeardownTime: e.TeardownTime,
		VMName:       e.VMName,
	}
	if rev != nil {
		rec.ReverseUUID = rev.UUID
	}
	return rec
}

func (x *Exporter) send(rec *model.StatsRecord) {
	if err := x.sink.Export(rec); err != nil {
		log.Printf("Failed to export flow record %s: %v", rec.FlowUUID, err)
	}
}
