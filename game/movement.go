package game

import (
	"github.com/pthm-cable/homeward/components"
	"github.com/pthm-cable/homeward/systems"
)

// updateFreeRoam moves the day-active foragers. A tracked target fixes the
// heading straight at it; otherwise the heading receives bounded random
// jitter. Moving costs energy per distance scaled by the speed trait, and
// carrying a radar target adds a per-second sensing upkeep.
func (g *Game) updateFreeRoam(simDT float32) {
	moveSpeed := float32(g.cfg.Movement.Speed)
	turnRate := float32(g.cfg.Movement.TurnRate)
	costPerDist := g.cfg.Derived.CostPerDistance32
	senseCost := float32(g.cfg.Energy.SenseCostPerSec)

	query := g.personFilter.Query()
	for query.Next() {
		pos, head, traits, energy, life, tracked := query.Get()
		if !life.Free() {
			continue
		}

		if tracked.Has {
			head.Angle = systems.Aim(pos.X, pos.Y, tracked.X, tracked.Y)
			energy.Value -= senseCost * simDT
		} else {
			head.Angle += (g.rng.Float32() - 0.5) * turnRate * simDT
		}

		distance := traits.Speed * moveSpeed * simDT
		dx, dy := systems.Step(head.Angle, distance)
		pos.X = systems.Wrap(pos.X+dx, g.halfW)
		pos.Y = systems.Wrap(pos.Y+dy, g.halfH)

		energy.Value -= distance * traits.Speed * costPerDist
	}
}

// updateHomebound walks returning agents axis-aligned toward the nearest
// world edge, first minimum winning ties in left, right, bottom, top order.
// Reaching the edge parks the agent at home; it then stops moving and stops
// paying movement energy.
func (g *Game) updateHomebound(simDT float32) {
	moveSpeed := float32(g.cfg.Movement.Speed)
	costPerDist := g.cfg.Derived.CostPerDistance32

	query := g.personFilter.Query()
	for query.Next() {
		pos, head, traits, energy, life, _ := query.Get()
		if life.State != components.StateReturning {
			continue
		}

		edge, min := systems.NearestEdge(pos.X, pos.Y, g.halfW, g.halfH)
		if min <= 0 {
			life.State = components.StateAtHome
			continue
		}

		head.Angle = edge.Heading()
		distance := traits.Speed * moveSpeed * simDT

		switch edge {
		case systems.EdgeLeft:
			pos.X -= distance
		case systems.EdgeRight:
			pos.X += distance
		case systems.EdgeBottom:
			pos.Y -= distance
		case systems.EdgeTop:
			pos.Y += distance
		}

		energy.Value -= distance * traits.Speed * costPerDist
	}
}

// forceReturn sends every fed free-roamer homeward. It runs each tick of
// the night so agents that shed hunger during the final day ticks still
// get turned around.
func (g *Game) forceReturn() {
	query := g.personFilter.Query()
	for query.Next() {
		_, _, _, _, life, tracked := query.Get()
		if life.State == components.StateForaging {
			life.State = components.StateReturning
			tracked.Clear()
		}
	}
}

// markExhausted flags agents whose energy ran out. They are purged before
// the next tick begins.
func (g *Game) markExhausted() {
	query := g.personFilter.Query()
	for query.Next() {
		_, _, _, energy, life, _ := query.Get()
		if life.State != components.StateDead && energy.Value <= 0 {
			life.State = components.StateDead
		}
	}
}

// purgeDead removes agents marked dead this tick.
func (g *Game) purgeDead() {
	g.deadScratch = g.deadScratch[:0]

	query := g.personFilter.Query()
	for query.Next() {
		_, _, _, _, life, _ := query.Get()
		if life.State == components.StateDead {
			g.deadScratch = append(g.deadScratch, query.Entity())
		}
	}

	for _, e := range g.deadScratch {
		g.world.RemoveEntity(e)
		g.population--
	}
}
