package manager

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"FlowVigil/internal/config"
	"FlowVigil/internal/datapath"
	"FlowVigil/internal/engine/aging"
	"FlowVigil/internal/engine/export"
	"FlowVigil/internal/engine/vnstats"
	"FlowVigil/internal/flowtable"
	"FlowVigil/internal/model"
	"FlowVigil/internal/registry"
	"FlowVigil/internal/sink"
	"FlowVigil/internal/stats"
)

// minPassInterval floors the rearm delay so a huge table cannot spin the
// scan loop hot.
const minPassInterval = time.Millisecond

// mutatorQueueSize bounds learn and retire operations waiting for the
// table goroutine.
const mutatorQueueSize = 1024

// Manager owns the flow table and runs the aging engine around it: the
// datapath feeds new flows in, the scan loop walks them on the adaptive
// schedule, and retired or updated flows leave through the record sink.
type Manager struct {
	table     *flowtable.Table
	mutator   *flowtable.Mutator
	datapath  model.Datapath
	collector *aging.Collector
	vnStats   *vnstats.Matrix
	counters  *stats.Agent
	sink      model.RecordSink

	done chan struct{}
	wg   sync.WaitGroup
}

// New builds the engine from configuration and the record sink the
// collector exports through. The sink is closed by Stop.
func New(cfg *config.Config, recordSink model.RecordSink) (*Manager, error) {
	ageTimeout := 3 * time.Minute
	if cfg.Agent.AgeTimeout != "" {
		var err error
		ageTimeout, err = time.ParseDuration(cfg.Agent.AgeTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid age_timeout: %w", err)
		}
	}
	if ageTimeout < 0 {
		return nil, fmt.Errorf("age_timeout must not be negative")
	}

	defaultInterval := time.Second
	if cfg.Agent.DefaultInterval != "" {
		var err error
		defaultInterval, err = time.ParseDuration(cfg.Agent.DefaultInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid default_interval: %w", err)
		}
	}
	if defaultInterval <= 0 {
		return nil, fmt.Errorf("default_interval must be a positive duration")
	}

	multiplier := cfg.Agent.FlowMultiplier
	if multiplier == 0 {
		multiplier = 2
	}
	minBatch := cfg.Agent.MinFlowsPerPass
	if minBatch == 0 {
		minBatch = 100
	}

	reg, vrf, err := registry.FromConfig(cfg.Datapath.VRF, cfg.Networks, cfg.VMs)
	if err != nil {
		return nil, fmt.Errorf("failed to build network registry: %w", err)
	}

	m := &Manager{
		table:    flowtable.NewTable(),
		vnStats:  vnstats.NewMatrix(),
		counters: stats.NewAgent(),
		done:     make(chan struct{}),
	}
	m.sink = sink.NewCounted(recordSink, m.counters.RecordsExported)
	m.mutator = flowtable.NewMutator(m.table, mutatorQueueSize)

	deps := datapath.Deps{
		Registry: reg,
		VRFID:    vrf.ID,
		Learn:    m.learn,
		MarkShort: func(handle uint32) {
			m.mutator.Submit(func(t *flowtable.Table) {
				if e := t.FindByHandle(handle); e != nil {
					e.ShortFlow = true
				}
			})
		},
	}
	dp, err := datapath.Create(cfg.Datapath, deps)
	if err != nil {
		return nil, err
	}
	m.datapath = dp

	policy := aging.Policy{AgeTimeout: ageTimeout}
	scheduler := aging.Scheduler{
		AgeTimeout:      ageTimeout,
		Multiplier:      multiplier,
		DefaultInterval: defaultInterval,
		MinBatch:        minBatch,
	}
	exporter := export.NewExporter(m.sink)
	m.collector = aging.NewCollector(policy, scheduler, dp, exporter, m.vnStats, nil)

	return m, nil
}

// learn runs on the datapath goroutine: it queues both directions of a new
// flow for insertion.
func (m *Manager) learn(fwd, rev *model.FlowEntry) {
	m.mutator.Submit(func(t *flowtable.Table) {
		t.Add(fwd)
		t.Add(rev)
		t.Link(fwd, rev)
		m.vnStats.AddFlow(fwd.SourceVN, fwd.DestVN)
	})
}

// RegisterMetrics registers the engine's Prometheus collectors.
func (m *Manager) RegisterMetrics(reg prometheus.Registerer) {
	m.vnStats.Register(reg)
	m.counters.Register(reg)
}

// VnStats exposes the per-network traffic matrix for debug endpoints.
func (m *Manager) VnStats() *vnstats.Matrix {
	return m.vnStats
}

// Start launches the table goroutine, the datapath and the scan loop.
func (m *Manager) Start() error {
	m.mutator.Start()
	if err := m.datapath.Start(); err != nil {
		m.mutator.Stop()
		return fmt.Errorf("failed to start datapath: %w", err)
	}

	m.wg.Add(1)
	go m.runScanLoop()
	log.Println("Aging engine started.")
	return nil
}

// runScanLoop fires one scan pass per schedule tick. The timer is re-armed
// after every pass from the schedule the pass itself computed, so the loop
// speeds up and slows down with table occupancy.
func (m *Manager) runScanLoop() {
	defer m.wg.Done()
	timer := time.NewTimer(m.collector.Schedule().Interval)
	defer timer.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-timer.C:
			started := time.Now()
			var active int
			var created, aged, shortAged uint64
			m.mutator.Invoke(func(t *flowtable.Table) {
				m.collector.RunPass(t)
				active = t.Len()
				created = t.Created()
				aged = t.Aged()
				shortAged = m.collector.ShortAged()
			})
			elapsed := time.Since(started)

			sched := m.collector.Schedule()
			m.counters.ObservePass(active, created, aged, shortAged, sched, elapsed)

			next := sched.Interval
			if next < minPassInterval {
				next = minPassInterval
			}
			timer.Reset(next)
		}
	}
}

// Stop shuts the engine down in dependency order: the datapath first so no
// more learn events arrive, then the scan loop, then the table goroutine,
// and finally the sink so buffered records drain.
func (m *Manager) Stop() {
	log.Println("Aging engine stopping...")
	m.datapath.Stop()

	close(m.done)
	m.wg.Wait()

	m.mutator.Stop()
	m.sink.Close()
	log.Println("Aging engine stopped.")
}
