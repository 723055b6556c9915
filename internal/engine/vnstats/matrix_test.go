package vnstats

import (
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMatrixAccumulates(t *testing.T) {
	m := NewMatrix()

	m.AddFlow("frontend", "backend")
	m.Update("frontend", "backend", 500, 10)
	m.Update("frontend", "backend", 300, 6)
	m.Update("backend", "frontend", 100, 2)

	rows := m.Snapshot()
	if len(rows) != 2 {
		t.Fatalf("got %d pairs, want 2", len(rows))
	}
	// Snapshot is sorted, so backend->frontend comes first.
	if rows[0].SourceVN != "backend" || rows[0].Bytes != 100 || rows[0].Packets != 2 {
		t.Errorf("row 0 = %+v, want backend->frontend 100/2", rows[0])
	}
	if rows[1].SourceVN != "frontend" || rows[1].Bytes != 800 || rows[1].Packets != 16 {
		t.Errorf("row 1 = %+v, want frontend->backend 800/16", rows[1])
	}
	if rows[1].Flows != 1 {
		t.Errorf("row 1 flows = %d, want 1", rows[1].Flows)
	}
}

func TestMatrixSnapshotIsCopy(t *testing.T) {
	m := NewMatrix()
	m.Update("a", "b", 100, 1)

	rows := m.Snapshot()
	rows[0].Bytes = 9999

	if got := m.Snapshot()[0].Bytes; got != 100 {
		t.Errorf("snapshot mutation leaked into the matrix: bytes = %d", got)
	}
}

func TestMatrixConcurrentUpdates(t *testing.T) {
	m := NewMatrix()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.Update("frontend", "backend", 1, 1)
			}
		}()
	}
	wg.Wait()

	if got := m.Snapshot()[0].Bytes; got != 8000 {
		t.Errorf("bytes = %d after concurrent updates, want 8000", got)
	}
}

func TestMatrixRegister(t *testing.T) {
	m := NewMatrix()
	reg := prometheus.NewRegistry()
	m.Register(reg)

	m.Update("frontend", "backend", 500, 10)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	found := make(map[string]float64)
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			found[mf.GetName()] = metric.GetCounter().GetValue()
		}
	}
	if found["flowvigil_vn_bytes_total"] != 500 {
		t.Errorf("vn bytes metric = %v, want 500", found["flowvigil_vn_bytes_total"])
	}
	if found["flowvigil_vn_packets_total"] != 10 {
		t.Errorf("vn packets metric = %v, want 10", found["flowvigil_vn_packets_total"])
	}
}

func TestMatrixServeHTTP(t *testing.T) {
	m := NewMatrix()
	m.Update("frontend", "backend", 500, 10)

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest("GET", "/debug/vn", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}
	var rows []PairTotals
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(rows) != 1 || rows[0].Bytes != 500 {
		t.Fatalf("response rows = %+v, want one frontend->backend row", rows)
	}
}
