package flowtable

import (
	"log"
	"sync"
)

// Mutator serializes every table mutation onto a single runner goroutine.
// The datapath learner and the aging pass both submit closures here, so the
// table itself needs no locking. Submit must not be called after Stop.
type Mutator struct {
	table *Table
	reqCh chan func(*Table)
	wg    sync.WaitGroup
}

// NewMutator wraps a table with a serialized request queue.
func NewMutator(t *Table, queueSize int) *Mutator {
	return &Mutator{
		table: t,
		reqCh: make(chan func(*Table), queueSize),
	}
}

// Start launches the runner goroutine.
func (m *Mutator) Start() {
	m.wg.Add(1)
	go m.run()
}

func (m *Mutator) run() {
	defer m.wg.Done()
	for op := range m.reqCh {
		op(m.table)
	}
}

// Submit enqueues an operation without waiting for it to run.
func (m *Mutator) Submit(op func(*Table)) {
	m.reqCh <- op
}

// Invoke runs an operation on the runner goroutine and waits for it to
// finish. The aging pass uses this so that at most one pass is in flight.
func (m *Mutator) Invoke(op func(*Table)) {
	done := make(chan struct{})
	m.reqCh <- func(t *Table) {
		op(t)
		close(done)
	}
	<-done
}

// Stop drains all queued operations and stops the runner. Callers must stop
// every producer first.
func (m *Mutator) Stop() {
	close(m.reqCh)
	m.wg.Wait()
	log.Println("Flow table mutator stopped.")
}
