// Package telemetry aggregates per-dawn simulation statistics into an
// append-only time series consumed read-only by charting and storage sinks.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// Sample is one aggregate snapshot of the population, taken at simulation
// start and at every dawn.
type Sample struct {
	Day        int     `csv:"day" db:"day"`
	SimTime    float64 `csv:"sim_time" db:"sim_time"`
	Population int     `csv:"population" db:"population"`
	FoodCount  int     `csv:"food_count" db:"food_count"`
	AvgSpeed   float64 `csv:"avg_speed" db:"avg_speed"`
	AvgSense   float64 `csv:"avg_sense" db:"avg_sense"`
}

// LogStats writes the sample to the default structured logger.
func (s Sample) LogStats() {
	slog.Info("stats",
		"day", s.Day,
		"sim_time", s.SimTime,
		"population", s.Population,
		"food", s.FoodCount,
		"avg_speed", s.AvgSpeed,
		"avg_sense", s.AvgSense,
	)
}

// Collector accumulates samples in arrival order.
type Collector struct {
	samples []Sample
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record computes trait averages and appends a sample. A zero population
// is recorded as-is with zero averages: extinction is the termination
// condition, not a fault, and must never divide by zero.
func (c *Collector) Record(day int, simTime float64, foodCount int, speeds, senses []float64) Sample {
	s := Sample{
		Day:        day,
		SimTime:    simTime,
		Population: len(speeds),
		FoodCount:  foodCount,
	}
	if len(speeds) > 0 {
		s.AvgSpeed = stat.Mean(speeds, nil)
		s.AvgSense = stat.Mean(senses, nil)
	}

	c.samples = append(c.samples, s)
	return s
}

// Series returns a copy of the recorded samples in order.
func (c *Collector) Series() []Sample {
	out := make([]Sample, len(c.samples))
	copy(out, c.samples)
	return out
}

// Latest returns the most recent sample, or a zero sample if none exist.
func (c *Collector) Latest() Sample {
	if len(c.samples) == 0 {
		return Sample{}
	}
	return c.samples[len(c.samples)-1]
}

// Len returns the number of recorded samples.
func (c *Collector) Len() int {
	return len(c.samples)
}
