package model

import (
	"fmt"
	"net/netip"
	"time"

	"github.com/google/uuid"
)

// FlowKey identifies one direction of a tracked flow. It is the primary
// ordering key of the flow table.
type FlowKey struct {
	VRF      uint32
	SrcIP    netip.Addr
	DstIP    netip.Addr
	Protocol uint8
	SrcPort  uint16
	DstPort  uint16
}

// Compare returns -1, 0 or 1 ordering keys by VRF, addresses, protocol and
// ports. The order itself is arbitrary but total, which is all the scan
// cursor needs.
func (k FlowKey) Compare(o FlowKey) int {
	switch {
	case k.VRF < o.VRF:
		return -1
	case k.VRF > o.VRF:
		return 1
	}
	if c := k.SrcIP.Compare(o.SrcIP); c != 0 {
		return c
	}
	if c := k.DstIP.Compare(o.DstIP); c != 0 {
		return c
	}
	switch {
	case k.Protocol < o.Protocol:
		return -1
	case k.Protocol > o.Protocol:
		return 1
	}
	switch {
	case k.SrcPort < o.SrcPort:
		return -1
	case k.SrcPort > o.SrcPort:
		return 1
	}
	switch {
	case k.DstPort < o.DstPort:
		return -1
	case k.DstPort > o.DstPort:
		return 1
	}
	return 0
}

func (k FlowKey) String() string {
	return fmt.Sprintf("vrf %d %s:%d -> %s:%d proto %d",
		k.VRF, k.SrcIP, k.SrcPort, k.DstIP, k.DstPort, k.Protocol)
}

// FlowEntry is one directional flow tracked by the table. Entries are owned
// by the flow table; the aging engine only updates counters and timestamps
// in place and requests deletion.
type FlowEntry struct {
	Key    FlowKey
	Handle uint32

	// Logical monotonic counters. The top 16 bits carry the wrap epoch,
	// the low 48 bits mirror the last reconciled hardware sample.
	Bytes   uint64
	Packets uint64

	SetupTime    time.Time
	LastModified time.Time
	TeardownTime time.Time

	UUID       uuid.UUID
	EgressUUID uuid.UUID

	// Reverse is a weak link to the paired opposite-direction flow,
	// resolved through the table. Nil for unpaired flows.
	Reverse *FlowKey

	Local     bool
	Ingress   bool
	NAT       bool
	ShortFlow bool

	SourceVN string
	DestVN   string
	VMName   string
}

// CounterSample is one kernel counter reading for a flow handle. The
// hardware keeps 48-bit counters split into a 32-bit low word and a 16-bit
// overflow word.
type CounterSample struct {
	BytesLow    uint32
	BytesHigh   uint16
	PacketsLow  uint32
	PacketsHigh uint16
}

// Bytes combines the two byte-counter words into the 48-bit sample value.
func (s CounterSample) Bytes() uint64 {
	return uint64(s.BytesHigh)<<32 | uint64(s.BytesLow)
}

// Packets combines the two packet-counter words into the 48-bit sample value.
func (s CounterSample) Packets() uint64 {
	return uint64(s.PacketsHigh)<<32 | uint64(s.PacketsLow)
}

// StatsRecord is one flow statistics export event. Absolute counters carry
// the reconciled 64-bit values, the diffs cover growth since the previous
// export of the same flow.
type StatsRecord struct {
	FlowUUID    uuid.UUID
	ReverseUUID uuid.UUID

	SrcIP    netip.Addr
	DstIP    netip.Addr
	Protocol uint8
	SrcPort  uint16
	DstPort  uint16

	SourceVN string
	DestVN   string

	Bytes       uint64
	DiffBytes   uint64
	Packets     uint64
	DiffPackets uint64

	Ingress      bool
	SetupTime    time.Time
	TeardownTime time.Time
	VMName       string
}
