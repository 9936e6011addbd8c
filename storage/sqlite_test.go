package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "results.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenCreatesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "a", "b", "results.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestRecordAndListResults(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	results := []Result{
		{PlayedAt: base, Width: 9, Height: 9, Mines: 10, Mode: "classic", Seed: 1, Outcome: "loss", Duration: 1500 * time.Millisecond},
		{PlayedAt: base.Add(time.Minute), Width: 30, Height: 16, Mines: 99, Mode: "win7", Seed: 2, Outcome: "win", Duration: 90 * time.Second},
		{PlayedAt: base.Add(2 * time.Minute), Width: 9, Height: 9, Mines: 10, Mode: "classic", Seed: 3, Outcome: "win"},
	}
	for _, r := range results {
		if _, err := store.RecordResult(r); err != nil {
			t.Fatalf("RecordResult() failed: %v", err)
		}
	}

	got, err := store.Results(2)
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Results(2) returned %d results", len(got))
	}
	if got[0].Seed != 3 || got[1].Seed != 2 {
		t.Errorf("Results() order = seeds %d, %d, want 3, 2", got[0].Seed, got[1].Seed)
	}
	if !got[1].PlayedAt.Equal(base.Add(time.Minute)) || got[1].Duration != 90*time.Second {
		t.Errorf("Results()[1] = %+v", got[1])
	}
	if got[1].Width != 30 || got[1].Height != 16 || got[1].Mines != 99 || got[1].Mode != "win7" || got[1].Outcome != "win" {
		t.Errorf("Results()[1] = %+v", got[1])
	}
}

func TestRecordResultDefaultsPlayedAt(t *testing.T) {
	store := openTestStore(t)
	before := time.Now().Add(-time.Second)

	if _, err := store.RecordResult(Result{Mode: "classic", Outcome: "win"}); err != nil {
		t.Fatalf("RecordResult() failed: %v", err)
	}

	got, err := store.Results(0)
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	if len(got) != 1 || got[0].PlayedAt.Before(before) {
		t.Errorf("Results() = %+v", got)
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)
	for _, r := range []Result{
		{Mode: "classic", Outcome: "win"},
		{Mode: "classic", Outcome: "loss"},
		{Mode: "classic", Outcome: "loss"},
		{Mode: "win7", Outcome: "win"},
	} {
		if _, err := store.RecordResult(r); err != nil {
			t.Fatalf("RecordResult() failed: %v", err)
		}
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	want := []Stats{{"classic", 1, 2}, {"win7", 1, 0}}
	if len(stats) != len(want) {
		t.Fatalf("Stats() = %+v, want %+v", stats, want)
	}
	for i := range want {
		if stats[i] != want[i] {
			t.Errorf("Stats()[%d] = %+v, want %+v", i, stats[i], want[i])
		}
	}
}
