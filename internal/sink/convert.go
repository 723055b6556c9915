package sink

import (
	"github.com/google/uuid"

	v1 "FlowVigil/api/gen/v1"
	"FlowVigil/internal/model"
)

// ToProto converts a statistics record to its wire form. Timestamps
// travel as UTC microseconds; a zero teardown time stays zero so
// consumers can tell live updates from final records.
func ToProto(rec *model.StatsRecord, agent string) *v1.FlowRecord {
	pb := &v1.FlowRecord{
		FlowUuid:     rec.FlowUUID.String(),
		SourceIp:     rec.SrcIP.String(),
		DestIp:       rec.DstIP.String(),
		Protocol:     uint32(rec.Protocol),
		SourcePort:   uint32(rec.SrcPort),
		DestPort:     uint32(rec.DstPort),
		SourceVn:     rec.SourceVN,
		DestVn:       rec.DestVN,
		Bytes:        rec.Bytes,
		DiffBytes:    rec.DiffBytes,
		Packets:      rec.Packets,
		DiffPackets:  rec.DiffPackets,
		DirectionIng: rec.Ingress,
		SetupTime:    rec.SetupTime.UTC().UnixMicro(),
		VmName:       rec.VMName,
		Agent:        agent,
	}
	if rec.ReverseUUID != uuid.Nil {
		pb.ReverseUuid = rec.ReverseUUID.String()
	}
	if !rec.TeardownTime.IsZero() {
		pb.TeardownTime = rec.TeardownTime.UTC().UnixMicro()
	}
	return pb
}
