package aging

// The datapath keeps 48-bit traffic counters; the agent widens them to 64
// bits by carrying a wrap epoch in the top 16 bits.
const (
	visibleMask = 0x0000ffffffffffff
	epochMask   = 0xffff000000000000
	epochStep   = 0x0001000000000000
)

// Reconcile folds a fresh 48-bit hardware sample into a 64-bit logical
// counter. A sample below the stored visible portion means the hardware
// counter wrapped since the last poll, which advances the epoch. At most
// one wrap per poll interval is detectable; faster wrapping silently
// under-counts, so the scan interval must stay below the wrap time at line
// rate.
func Reconcile(logical, sample uint64) uint64 {
	epoch := logical & epochMask
	if logical&visibleMask > sample {
		epoch += epochStep
	}
	return epoch | sample
}
