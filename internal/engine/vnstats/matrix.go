package vnstats

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Pair identifies one direction of traffic between two virtual networks.
type Pair struct {
	SourceVN string `json:"source_vn"`
	DestVN   string `json:"dest_vn"`
}

// Totals are the accumulated counters for one network pair.
type Totals struct {
	Bytes   uint64 `json:"bytes"`
	Packets uint64 `json:"packets"`
	Flows   uint64 `json:"flows"`
}

// PairTotals is one row of a matrix snapshot.
type PairTotals struct {
	Pair
	Totals
}

// Matrix accumulates the inter-network traffic matrix. The scan feeds it a
// delta for every counter change before the corresponding record is
// exported, so the matrix and the exported records always agree.
type Matrix struct {
	mu    sync.RWMutex
	pairs map[Pair]*Totals

	pairBytes   *prometheus.CounterVec
	pairPackets *prometheus.CounterVec
}

func NewMatrix() *Matrix {
	return &Matrix{
		pairs: make(map[Pair]*Totals),
		pairBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flowvigil_vn_bytes_total",
			Help: "Bytes exchanged between virtual network pairs",
		}, []string{"source_vn", "dest_vn"}),
		pairPackets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flowvigil_vn_packets_total",
			Help: "Packets exchanged between virtual network pairs",
		}, []string{"source_vn", "dest_vn"}),
	}
}

// Register registers the matrix counters with Prometheus.
func (m *Matrix) Register(reg prometheus.Registerer) {
	reg.MustRegister(m.pairBytes, m.pairPackets)
}

// Update adds one counter delta to the pair's totals.
func (m *Matrix) Update(sourceVN, destVN string, diffBytes, diffPackets uint64) {
	key := Pair{SourceVN: sourceVN, DestVN: destVN}

	m.mu.Lock()
	t, ok := m.pairs[key]
	if !ok {
		t = &Totals{}
		m.pairs[key] = t
	}
	t.Bytes += diffBytes
	t.Packets += diffPackets
	m.mu.Unlock()

	m.pairBytes.WithLabelValues(sourceVN, destVN).Add(float64(diffBytes))
	m.pairPackets.WithLabelValues(sourceVN, destVN).Add(float64(diffPackets))
}

// AddFlow counts a new flow between the pair.
func (m *Matrix) AddFlow(sourceVN, destVN string) {
	key := Pair{SourceVN: sourceVN, DestVN: destVN}

	m.mu.Lock()
	t, ok := m.pairs[key]
	if !ok {
		t = &Totals{}
		m.pairs[key] = t
	}
	t.Flows++
	m.mu.Unlock()
}

// Snapshot returns the matrix rows sorted by pair for stable output.
func (m *Matrix) Snapshot() []PairTotals {
	m.mu.RLock()
	rows := make([]PairTotals, 0, len(m.pairs))
	for pair, totals := range m.pairs {
		rows = append(rows, PairTotals{Pair: pair, Totals: *totals})
	}
	m.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SourceVN != rows[j].SourceVN {
			return rows[i].SourceVN < rows[j].SourceVN
		}
		return rows[i].DestVN < rows[j].DestVN
	})
	return rows
}

// ServeHTTP dumps the matrix as JSON on the agent debug endpoint.
func (m *Matrix) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m.Snapshot())
}
