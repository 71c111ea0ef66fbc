package telemetry

import (
	"math"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	store, err := OpenStore(path, 42)
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	defer store.Close()

	samples := []Sample{
		{Day: 0, SimTime: 0, Population: 10, FoodCount: 100, AvgSpeed: 1.0, AvgSense: 120},
		{Day: 1, SimTime: 12, Population: 6, FoodCount: 170, AvgSpeed: 0.97, AvgSense: 121.3},
		{Day: 2, SimTime: 24, Population: 0, FoodCount: 250, AvgSpeed: 0, AvgSense: 0},
	}
	for _, s := range samples {
		if err := store.WriteSample(s); err != nil {
			t.Fatalf("WriteSample failed: %v", err)
		}
	}

	got, err := store.RunSamples(store.RunID())
	if err != nil {
		t.Fatalf("RunSamples failed: %v", err)
	}
	if len(got) != len(samples) {
		t.Fatalf("loaded %d samples, want %d", len(got), len(samples))
	}
	for i := range samples {
		if got[i].Day != samples[i].Day || got[i].Population != samples[i].Population {
			t.Errorf("sample %d = %+v, want %+v", i, got[i], samples[i])
		}
		if math.Abs(got[i].AvgSense-samples[i].AvgSense) > 1e-9 {
			t.Errorf("sample %d avg_sense = %v, want %v", i, got[i].AvgSense, samples[i].AvgSense)
		}
	}
}

func TestStoreSeparatesRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	first, err := OpenStore(path, 1)
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	if err := first.WriteSample(Sample{Day: 0, Population: 10}); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	firstID := first.RunID()
	first.Close()

	second, err := OpenStore(path, 2)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer second.Close()

	if second.RunID() == firstID {
		t.Fatal("second run reused the first run id")
	}

	got, err := second.RunSamples(firstID)
	if err != nil {
		t.Fatalf("RunSamples failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("first run has %d samples, want 1", len(got))
	}
}

func TestStoreNewRunSeparatesRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	store, err := OpenStore(path, 1)
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	defer store.Close()

	if err := store.WriteSample(Sample{Day: 0, Population: 10}); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	firstID := store.RunID()

	if err := store.NewRun(2); err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}
	if store.RunID() == firstID {
		t.Fatal("restart reused the previous run id")
	}
	if err := store.WriteSample(Sample{Day: 0, Population: 25}); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}

	first, err := store.RunSamples(firstID)
	if err != nil {
		t.Fatalf("RunSamples failed: %v", err)
	}
	if len(first) != 1 || first[0].Population != 10 {
		t.Errorf("first run samples = %+v, want the single pre-restart sample", first)
	}

	second, err := store.RunSamples(store.RunID())
	if err != nil {
		t.Fatalf("RunSamples failed: %v", err)
	}
	if len(second) != 1 || second[0].Population != 25 {
		t.Errorf("second run samples = %+v, want the single post-restart sample", second)
	}
}
