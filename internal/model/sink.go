package model

// RecordSink receives flow statistics records bound for external consumers.
type RecordSink interface {
	// Export hands one record to the sink. Implementations may buffer;
	// a returned error means the record was dropped.
	Export(rec *StatsRecord) error

	// Close flushes buffered records and releases the transport.
	Close()
}
