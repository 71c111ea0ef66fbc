package telemetry

import (
	"math"
	"testing"
)

func TestCollectorRecordsAverages(t *testing.T) {
	c := NewCollector()

	speeds := []float64{0.8, 1.0, 1.2}
	senses := []float64{100, 120, 140}
	s := c.Record(1, 12.0, 95, speeds, senses)

	if s.Population != 3 {
		t.Errorf("population = %d, want 3", s.Population)
	}
	if s.FoodCount != 95 {
		t.Errorf("food count = %d, want 95", s.FoodCount)
	}
	if math.Abs(s.AvgSpeed-1.0) > 1e-9 {
		t.Errorf("avg speed = %v, want 1.0", s.AvgSpeed)
	}
	if math.Abs(s.AvgSense-120) > 1e-9 {
		t.Errorf("avg sense = %v, want 120", s.AvgSense)
	}
}

func TestCollectorZeroPopulation(t *testing.T) {
	c := NewCollector()

	// Extinction must record cleanly, never divide by zero.
	s := c.Record(3, 36.0, 200, nil, nil)
	if s.Population != 0 {
		t.Errorf("population = %d, want 0", s.Population)
	}
	if s.AvgSpeed != 0 || s.AvgSense != 0 {
		t.Errorf("averages = (%v, %v), want zeros", s.AvgSpeed, s.AvgSense)
	}
}

func TestCollectorSeriesIsOrderedCopy(t *testing.T) {
	c := NewCollector()
	c.Record(0, 0, 100, []float64{1}, []float64{120})
	c.Record(1, 12, 180, []float64{1.1}, []float64{118})
	c.Record(2, 24, 250, []float64{1.2}, []float64{116})

	series := c.Series()
	if len(series) != 3 {
		t.Fatalf("series length = %d, want 3", len(series))
	}
	for i, s := range series {
		if s.Day != i {
			t.Errorf("series[%d].Day = %d, want %d", i, s.Day, i)
		}
	}

	// Mutating the returned slice must not affect the collector.
	series[0].Population = 999
	if c.Series()[0].Population == 999 {
		t.Error("Series returned a live reference to collector state")
	}
}

func TestCollectorLatest(t *testing.T) {
	c := NewCollector()
	if got := c.Latest(); got != (Sample{}) {
		t.Errorf("empty collector Latest = %+v, want zero sample", got)
	}

	c.Record(0, 0, 100, []float64{1}, []float64{120})
	c.Record(1, 12, 90, []float64{1}, []float64{120})
	if got := c.Latest(); got.Day != 1 {
		t.Errorf("Latest().Day = %d, want 1", got.Day)
	}
}
