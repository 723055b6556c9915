package sink

import (
	"github.com/prometheus/client_golang/prometheus"

	"FlowVigil/internal/model"
)

// Counted wraps a sink and counts every record it accepts.
type Counted struct {
	next    model.RecordSink
	records prometheus.Counter
}

func NewCounted(next model.RecordSink, records prometheus.Counter) *Counted {
	return &Counted{next: next, records: records}
}

func (c *Counted) Export(rec *model.StatsRecord) error {
	if err := c.next.Export(rec); err != nil {
		return err
	}
	c.records.Inc()
	return nil
}

func (c *Counted) Close() {
	c.next.Close()
}
