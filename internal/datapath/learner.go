package datapath

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"FlowVigil/internal/model"
)

// observation is one sighting of a connection in the underlying flow
// source: both tuples, both directions' absolute counters and the
// connection's lifecycle hints.
type observation struct {
	key        model.FlowKey
	reverseKey model.FlowKey

	bytes      uint64
	packets    uint64
	revBytes   uint64
	revPackets uint64

	start time.Time
	nat   bool
	dying bool
}

// learner turns observations into flow table entries and keeps the sample
// cache the aging scan reads. Handles are allocated here, one per
// direction, and stay stable for the lifetime of the connection.
type learner struct {
	deps Deps

	mu      sync.RWMutex
	cache   map[uint32]model.CounterSample
	handles map[model.FlowKey]uint32
	seen    map[uint32]bool
	next    uint32
}

func newLearner(deps Deps) *learner {
	return &learner{
		deps:    deps,
		cache:   make(map[uint32]model.CounterSample),
		handles: make(map[model.FlowKey]uint32),
	}
}

// Sample returns the last counters seen for the handle. It never blocks
// beyond the cache lock and reports false for unknown handles.
func (l *learner) Sample(handle uint32) (model.CounterSample, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.cache[handle]
	return s, ok
}

// observe folds one sighting into the cache, learning the pair into the
// flow table on first contact.
func (l *learner) observe(obs observation, now time.Time) {
	l.mu.Lock()
	fwdHandle, known := l.handles[obs.key]
	var revHandle uint32
	if known {
		var ok bool
		revHandle, ok = l.handles[obs.reverseKey]
		if !ok {
			// The tuple matched a stale half pair from another connection.
			// Drop the sighting; prune clears the remnant and a later sweep
			// learns this connection fresh.
			l.mu.Unlock()
			return
		}
	} else {
		l.next++
		fwdHandle = l.next
		l.next++
		revHandle = l.next
		l.handles[obs.key] = fwdHandle
		l.handles[obs.reverseKey] = revHandle
	}
	l.cache[fwdHandle] = splitCounters(obs.bytes, obs.packets)
	l.cache[revHandle] = splitCounters(obs.revBytes, obs.revPackets)
	if l.seen != nil {
		l.seen[fwdHandle] = true
		l.seen[revHandle] = true
	}
	l.mu.Unlock()

	if !known {
		fwd := l.buildEntry(obs.key, fwdHandle, obs, now)
		rev := l.buildEntry(obs.reverseKey, revHandle, obs, now)
		l.deps.Learn(fwd, rev)
	}
	if obs.dying {
		l.deps.MarkShort(fwdHandle)
		l.deps.MarkShort(revHandle)
	}
}

// beginSweep starts tracking which handles the current dump touches.
func (l *learner) beginSweep() {
	l.mu.Lock()
	l.seen = make(map[uint32]bool)
	l.mu.Unlock()
}

// prune forgets every handle the sweep did not touch. The corresponding
// table entries lose their samples and age out on elapsed time alone.
func (l *learner) prune() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seen == nil {
		return
	}
	for key, handle := range l.handles {
		if !l.seen[handle] {
			delete(l.handles, key)
			delete(l.cache, handle)
		}
	}
	l.seen = nil
}

func (l *learner) buildEntry(key model.FlowKey, handle uint32, obs observation, now time.Time) *model.FlowEntry {
	ann := l.deps.Registry.Annotate(key.VRF, key.SrcIP, key.DstIP)
	setup := obs.start
	if setup.IsZero() {
		setup = now
	}
	return &model.FlowEntry{
		Key:          key,
		Handle:       handle,
		UUID:         uuid.New(),
		EgressUUID:   uuid.New(),
		SetupTime:    setup,
		LastModified: now,
		Local:        ann.Local,
		Ingress:      ann.SrcLocal,
		NAT:          obs.nat,
		SourceVN:     ann.SourceVN,
		DestVN:       ann.DestVN,
		VMName:       ann.VMName,
	}
}

// splitCounters narrows an absolute counter pair to the 48 bit window the
// engine reconciles against.
func splitCounters(bytes, packets uint64) model.CounterSample {
	return model.CounterSample{
		BytesLow:    uint32(bytes),
		BytesHigh:   uint16(bytes >> 32),
		PacketsLow:  uint32(packets),
		PacketsHigh: uint16(packets >> 32),
	}
}
