package model

// Datapath is the kernel/hardware side of the flow table: it learns new
// flows, retires closed ones, and answers counter lookups by flow handle.
type Datapath interface {
	// Start begins feeding flow events to the table.
	Start() error

	// Stop terminates polling and releases the underlying source.
	Stop()

	// Sample returns the latest hardware counters for a flow handle.
	// It never blocks; the second result is false when the handle is
	// unknown to the datapath.
	Sample(handle uint32) (CounterSample, bool)
}
