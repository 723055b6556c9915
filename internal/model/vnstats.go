package model

// VnStats accumulates traffic totals per virtual-network pair. Update is
// invoked on every counter delta before the corresponding record is
// exported.
type VnStats interface {
	Update(sourceVN, destVN string, diffBytes, diffPackets uint64)
}
