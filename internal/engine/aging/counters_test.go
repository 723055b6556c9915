package aging

import "testing"

func TestReconcileGrowth(t *testing.T) {
	if got := Reconcile(1000, 1500); got != 1500 {
		t.Fatalf("Reconcile(1000, 1500) = %d, want 1500", got)
	}
}

func TestReconcileWrapBumpsEpoch(t *testing.T) {
	logical := uint64(0x0000ffffffffff00)
	sample := uint64(0x80)
	want := uint64(1)<<48 | 0x80
	if got := Reconcile(logical, sample); got != want {
		t.Fatalf("Reconcile(%#x, %#x) = %#x, want %#x", logical, sample, got, want)
	}
}

func TestReconcileFixedPoint(t *testing.T) {
	// Feeding a counter its own visible portion back must change nothing,
	// in particular it must not bump the epoch.
	values := []uint64{
		0,
		1500,
		0x0000ffffffffffff,
		0x0001000000000000,
		0x0001000000000080,
		0x7fff123456789abc,
	}
	for _, v := range values {
		if got := Reconcile(v, v&visibleMask); got != v {
			t.Errorf("Reconcile(%#x, visible) = %#x, want unchanged", v, got)
		}
	}
}

func TestReconcileMonotonic(t *testing.T) {
	// Simulate a true cumulative counter polled through a 48-bit window
	// with several wraps. As long as no two wraps happen between polls,
	// the reconciled value must track the true count exactly.
	const window = uint64(1) << 48
	steps := []uint64{
		1000,
		window / 2,
		window - 2000, // forces a wrap
		500,
		window - 1,   // wraps again
		window / 4,
	}

	var truth, logical uint64
	for i, step := range steps {
		truth += step
		logical = Reconcile(logical, truth%window)
		if logical != truth {
			t.Fatalf("step %d: reconciled %#x, want true count %#x", i, logical, truth)
		}
	}
}
