package model

import (
	"testing"
	"time"
)

func TestCallStatsSnapshotPercentiles(t *testing.T) {
	stats := NewCallStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400, 500} {
		stats.Record("m", time.Duration(ms)*time.Millisecond, true)
	}
	stats.Record("m", 600*time.Millisecond, false)

	snap, ok := stats.Snapshot()["m"]
	if !ok {
		t.Fatal("expected snapshot for model m")
	}
	if snap.Count != 6 {
		t.Errorf("count = %d, want 6", snap.Count)
	}
	if snap.Failures != 1 {
		t.Errorf("failures = %d, want 1", snap.Failures)
	}
	if snap.MinMs != 100 || snap.MaxMs != 600 {
		t.Errorf("min/max = %d/%d, want 100/600", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 350 {
		t.Errorf("avg = %f, want 350", snap.AvgMs)
	}
	if snap.P50Ms != 350 {
		t.Errorf("p50 = %f, want 350", snap.P50Ms)
	}
}

func TestCallStatsPerModelIsolation(t *testing.T) {
	stats := NewCallStats(time.Hour)
	stats.Record("a", 100*time.Millisecond, true)
	stats.Record("b", 900*time.Millisecond, true)

	snaps := stats.Snapshot()
	if snaps["a"].MaxMs != 100 {
		t.Errorf("model a max = %d, want 100", snaps["a"].MaxMs)
	}
	if snaps["b"].MinMs != 900 {
		t.Errorf("model b min = %d, want 900", snaps["b"].MinMs)
	}
}

func TestCallStatsEmptySnapshot(t *testing.T) {
	stats := NewCallStats(time.Hour)
	if got := stats.Snapshot(); len(got) != 0 {
		t.Errorf("expected empty snapshot, got %v", got)
	}
}
