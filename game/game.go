// Package game wires the simulation core: the ECS world of persons and
// food, the day/night clock, and the per-tick engine ordering.
package game

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/homeward/components"
	"github.com/pthm-cable/homeward/config"
	"github.com/pthm-cable/homeward/systems"
	"github.com/pthm-cable/homeward/telemetry"
)

// BoundsFunc supplies the world dimensions. It is re-read every tick so a
// resizable host window can change the playing field mid-run.
type BoundsFunc func() (w, h float32)

// Options configures a new Game.
type Options struct {
	Config   *config.Config
	Seed     int64
	Bounds   BoundsFunc               // nil = fixed world size from config
	Output   *telemetry.OutputManager // optional CSV sink
	Store    *telemetry.Store         // optional SQLite sink
	LogStats bool
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *config.Config

	// Person entities: spatial state, traits, energy, lifecycle, radar target
	personMapper *ecs.Map6[
		components.Position,
		components.Heading,
		components.Traits,
		components.Energy,
		components.Lifecycle,
		components.Tracked,
	]
	personFilter *ecs.Filter6[
		components.Position,
		components.Heading,
		components.Traits,
		components.Energy,
		components.Lifecycle,
		components.Tracked,
	]

	// Food entities: position plus the consumption flag
	foodMapper *ecs.Map2[components.Position, components.Food]
	foodFilter *ecs.Filter2[components.Position, components.Food]

	// Individual component mappers for lookups
	foodMap   *ecs.Map1[components.Food]
	energyMap *ecs.Map1[components.Energy]
	lifeMap   *ecs.Map1[components.Lifecycle]
	trackMap  *ecs.Map1[components.Tracked]

	clock  *systems.Clock
	placer *systems.Placer

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	store     *telemetry.Store
	logStats  bool

	bounds       BoundsFunc
	halfW, halfH float32

	tick       int64
	day        int // completed dawns
	population int
	foodCount  int
	terminated bool

	// Per-tick scratch buffers
	foodScratch []foodRef
	deadScratch []ecs.Entity
}

// New creates a simulation from the given options and seeds the world:
// the initial population with founder traits, the first food batch, and
// the startup statistics sample.
func New(opts Options) *Game {
	cfg := opts.Config
	rng := rand.New(rand.NewSource(opts.Seed))
	world := ecs.NewWorld()

	g := &Game{
		world: world,
		rng:   rng,
		cfg:   cfg,
		personMapper: ecs.NewMap6[
			components.Position,
			components.Heading,
			components.Traits,
			components.Energy,
			components.Lifecycle,
			components.Tracked,
		](world),
		personFilter: ecs.NewFilter6[
			components.Position,
			components.Heading,
			components.Traits,
			components.Energy,
			components.Lifecycle,
			components.Tracked,
		](world),
		foodMapper: ecs.NewMap2[components.Position, components.Food](world),
		foodFilter: ecs.NewFilter2[components.Position, components.Food](world),
		foodMap:    ecs.NewMap1[components.Food](world),
		energyMap:  ecs.NewMap1[components.Energy](world),
		lifeMap:    ecs.NewMap1[components.Lifecycle](world),
		trackMap:   ecs.NewMap1[components.Tracked](world),
		clock:      systems.NewClock(float32(cfg.Sim.DayLength), float32(cfg.Sim.NightLength)),
		collector:  telemetry.NewCollector(),
		output:     opts.Output,
		store:      opts.Store,
		logStats:   opts.LogStats,
		bounds:     opts.Bounds,
	}

	if g.bounds == nil {
		w, h := cfg.Derived.WorldW32, cfg.Derived.WorldH32
		g.bounds = func() (float32, float32) { return w, h }
	}

	cluster := cfg.Food.Clustering
	if cluster.Enabled {
		g.placer = systems.NewClusteredPlacer(rng, opts.Seed, cluster.Scale, cluster.Threshold)
	} else {
		g.placer = systems.NewPlacer(rng)
	}

	g.readBounds()
	g.seed()

	return g
}

// readBounds refreshes the half extents from the bounds provider.
func (g *Game) readBounds() {
	w, h := g.bounds()
	g.halfW, g.halfH = w/2, h/2
}

// seed spawns the founder population and the first food batch, then takes
// the startup sample.
func (g *Game) seed() {
	founder := components.Traits{
		Speed: float32(g.cfg.Traits.Speed),
		Sense: float32(g.cfg.Traits.Sense),
	}
	for i := 0; i < g.cfg.Population.Initial; i++ {
		x, y := g.placer.Place(g.halfW, g.halfH)
		g.spawnPerson(x, y, founder)
	}
	g.spawnFood(g.cfg.Food.Batch)
	g.sampleStats()
}

// Step runs a single tick. delta is the wall-clock frame time; all engine
// math uses simulated seconds (delta scaled by the speed multiplier).
//
// Engine order within a tick is fixed: clock advance, sensing, movement,
// death marking, the dawn transition at the night boundary, purge. Movement
// in a tick never observes a lifecycle transition that happens later in the
// same tick.
func (g *Game) Step(delta float32) {
	if g.terminated {
		return
	}

	g.readBounds()
	simDT := delta * float32(g.cfg.Sim.Speed)

	dusk, dawn := g.clock.Advance(simDT)
	if dusk {
		slog.Debug("dusk", "day", g.day, "sim_time", g.clock.Elapsed)
	}

	if g.clock.Night {
		// The sunset flag keeps forcing fed agents homeward all night;
		// free-roam and sensing are day behaviors.
		g.forceReturn()
	} else {
		g.updateRadar()
		g.updateFreeRoam(simDT)
	}
	g.updateHomebound(simDT)
	g.markExhausted()

	if dawn {
		g.dawnTransition()
	}

	g.purgeDead()
	g.tick++

	if g.population == 0 && !g.terminated {
		g.finish()
	}
}

// finish records the terminal sample and freezes the simulation. Once the
// population reaches zero no further tick produces state changes.
func (g *Game) finish() {
	g.sampleStats()
	g.terminated = true
	slog.Info("extinction", "day", g.day, "sim_time", g.clock.Elapsed, "tick", g.tick)
}

// spawnPerson creates an agent at the given position: hungry, full base
// energy, random heading.
func (g *Game) spawnPerson(x, y float32, traits components.Traits) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	head := components.Heading{Angle: g.rng.Float32() * 2 * math.Pi}
	energy := components.Energy{Value: float32(g.cfg.Energy.Base)}
	life := components.Lifecycle{State: components.StateHungry}
	tracked := components.Tracked{}

	entity := g.personMapper.NewEntity(&pos, &head, &traits, &energy, &life, &tracked)
	g.population++
	return entity
}

// spawnFood places a batch of unconsumed food items.
func (g *Game) spawnFood(n int) {
	for i := 0; i < n; i++ {
		x, y := g.placer.Place(g.halfW, g.halfH)
		g.spawnFoodAt(x, y)
	}
}

func (g *Game) spawnFoodAt(x, y float32) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	food := components.Food{}
	entity := g.foodMapper.NewEntity(&pos, &food)
	g.foodCount++
	return entity
}

// randomizeHeadings points every agent in a fresh random direction.
func (g *Game) randomizeHeadings() {
	query := g.personFilter.Query()
	for query.Next() {
		_, head, _, _, _, _ := query.Get()
		head.Angle = g.rng.Float32() * 2 * math.Pi
	}
}

// Accessors for the rendering, UI, and charting collaborators. All are
// read-only views over core state.

// Night reports whether it is currently night.
func (g *Game) Night() bool { return g.clock.Night }

// Day returns the number of completed dawns.
func (g *Game) Day() int { return g.day }

// SimTime returns the elapsed simulated seconds.
func (g *Game) SimTime() float64 { return g.clock.Elapsed }

// Tick returns the number of completed ticks.
func (g *Game) Tick() int64 { return g.tick }

// Population returns the live agent count.
func (g *Game) Population() int { return g.population }

// FoodCount returns the live food count.
func (g *Game) FoodCount() int { return g.foodCount }

// Terminated reports whether the population has gone extinct.
func (g *Game) Terminated() bool { return g.terminated }

// Series returns a copy of the statistics time series.
func (g *Game) Series() []telemetry.Sample { return g.collector.Series() }

// VisitAgents calls fn for each live agent with its drawable state.
func (g *Game) VisitAgents(fn func(x, y, heading float32, state components.State, fertile bool)) {
	query := g.personFilter.Query()
	for query.Next() {
		pos, head, _, _, life, _ := query.Get()
		if life.State == components.StateDead {
			continue
		}
		fn(pos.X, pos.Y, head.Angle, life.State, life.Fertile)
	}
}

// VisitFood calls fn for each unconsumed food item.
func (g *Game) VisitFood(fn func(x, y float32)) {
	query := g.foodFilter.Query()
	for query.Next() {
		pos, food := query.Get()
		if food.Eaten {
			continue
		}
		fn(pos.X, pos.Y)
	}
}
