package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/homeward/components"
	"github.com/pthm-cable/homeward/systems"
)

// birth carries a queued offspring: the parent's position and a mutated
// copy of its traits.
type birth struct {
	x, y   float32
	traits components.Traits
}

// dawnTransition applies the night boundary in one deterministic drain:
// cull everyone who failed to get home, renew the survivors, spawn the
// offspring of the fertile ones, respawn food, re-randomize headings, and
// sample statistics. The signal lists are collected in a single query pass
// and applied afterwards, outside the iteration.
func (g *Game) dawnTransition() {
	var culls []ecs.Entity
	var renews []ecs.Entity
	var births []birth

	intensity := float32(g.cfg.Traits.MutationIntensity)
	traitMin := float32(g.cfg.Traits.Min)

	query := g.personFilter.Query()
	for query.Next() {
		pos, _, traits, _, life, _ := query.Get()

		if life.State != components.StateAtHome {
			// Caught outside at dawn; membership in AtHome is exclusive,
			// so an agent is never both culled and renewed.
			culls = append(culls, query.Entity())
			continue
		}

		renews = append(renews, query.Entity())
		if life.Fertile {
			births = append(births, birth{
				x:      pos.X,
				y:      pos.Y,
				traits: systems.Mutate(*traits, g.rng, intensity, traitMin),
			})
		}
	}

	for _, e := range culls {
		g.world.RemoveEntity(e)
		g.population--
	}

	base := float32(g.cfg.Energy.Base)
	for _, e := range renews {
		g.renew(e, base)
	}

	for _, b := range births {
		g.spawnPerson(b.x, b.y, b.traits)
	}

	g.spawnFood(g.cfg.Food.Batch)
	g.randomizeHeadings()
	g.day++

	slog.Info("dawn",
		"day", g.day,
		"culled", len(culls),
		"renewed", len(renews),
		"born", len(births),
		"population", g.population,
		"food", g.foodCount,
	)

	g.sampleStats()
	if g.population == 0 {
		g.terminated = true
		slog.Info("extinction", "day", g.day, "sim_time", g.clock.Elapsed, "tick", g.tick)
	}
}

// renew resets a survivor for the new day: full energy, hungry again, no
// fertility, no stale radar target.
func (g *Game) renew(e ecs.Entity, baseEnergy float32) {
	g.energyMap.Get(e).Value = baseEnergy
	life := g.lifeMap.Get(e)
	life.State = components.StateHungry
	life.Fertile = false
	g.trackMap.Get(e).Clear()
}

// sampleStats takes one aggregate sample and forwards it to the sinks.
// It runs at simulation start and once per dawn, after headings are
// re-randomized.
func (g *Game) sampleStats() {
	var speeds, senses []float64

	query := g.personFilter.Query()
	for query.Next() {
		_, _, traits, _, life, _ := query.Get()
		if life.State == components.StateDead {
			continue
		}
		speeds = append(speeds, float64(traits.Speed))
		senses = append(senses, float64(traits.Sense))
	}

	sample := g.collector.Record(g.day, g.clock.Elapsed, g.foodCount, speeds, senses)

	if g.logStats {
		sample.LogStats()
	}
	if g.output != nil {
		if err := g.output.WriteSample(sample); err != nil {
			slog.Error("failed to write sample", "error", err)
		}
	}
	if g.store != nil {
		if err := g.store.WriteSample(sample); err != nil {
			slog.Error("failed to store sample", "error", err)
		}
	}
}
