package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/homeward/components"
	"github.com/pthm-cable/homeward/systems"
)

// foodRef is a per-tick snapshot of one live food item, taken before the
// agent pass so sensing iterates a stable list in store order.
type foodRef struct {
	entity ecs.Entity
	x, y   float32
}

// updateRadar runs the sensing pass: every live, non-fertile agent against
// every live, unconsumed food item.
//
// Within contact range the food is consumed with an atomic check-and-set on
// its Eaten flag: two agents in range of the same item in the same pass
// resolve to exactly one feeding, and the loser's contact is a no-op.
// Within sensing range the item becomes the tracked target if none is set,
// or if its distance is not less than the current target's distance; the
// replace-on-not-less-than rule is intentional and pinned by tests. Out of
// range, a food item clears the target only if it is the tracked one.
func (g *Game) updateRadar() {
	contact := float32(g.cfg.Food.ContactRadius)

	// Snapshot the live food set; despawns are deferred past the agent
	// pass, the Eaten flag alone guarantees at-most-once consumption.
	g.foodScratch = g.foodScratch[:0]
	fq := g.foodFilter.Query()
	for fq.Next() {
		pos, food := fq.Get()
		if !food.Eaten {
			g.foodScratch = append(g.foodScratch, foodRef{entity: fq.Entity(), x: pos.X, y: pos.Y})
		}
	}

	var consumed []ecs.Entity

	query := g.personFilter.Query()
	for query.Next() {
		pos, _, traits, _, life, tracked := query.Get()
		if life.State == components.StateDead || life.Fertile {
			continue
		}

		// A target consumed by another agent in an earlier pass is gone.
		if tracked.Has {
			if !g.world.Alive(tracked.Food) {
				tracked.Clear()
			} else if f := g.foodMap.Get(tracked.Food); f == nil || f.Eaten {
				tracked.Clear()
			}
		}

		for _, ref := range g.foodScratch {
			// The snapshot can hold items consumed by an earlier agent in
			// this pass; they are no longer candidates for anything.
			food := g.foodMap.Get(ref.entity)
			if food == nil || food.Eaten {
				if tracked.Has && tracked.Food == ref.entity {
					tracked.Clear()
				}
				continue
			}

			dist := systems.Dist(pos.X, pos.Y, ref.x, ref.y)

			switch {
			case dist <= contact:
				food.Eaten = true
				consumed = append(consumed, ref.entity)
				if tracked.Has && tracked.Food == ref.entity {
					tracked.Clear()
				}
				g.feed(life)

			case dist <= traits.Sense:
				if !tracked.Has || dist >= tracked.Dist {
					*tracked = components.Tracked{
						Has:  true,
						Food: ref.entity,
						X:    ref.x,
						Y:    ref.y,
						Dist: dist,
					}
				}

			default:
				if tracked.Has && tracked.Food == ref.entity {
					tracked.Clear()
				}
			}

			// A second meal makes the agent fertile and ends its sensing.
			if life.Fertile {
				tracked.Clear()
				break
			}
		}
	}

	for _, e := range consumed {
		g.world.RemoveEntity(e)
		g.foodCount--
	}
}

// feed applies the lifecycle effect of one food contact: the first meal of
// the day clears hunger, any further meal grants fertility and sends the
// agent home immediately.
func (g *Game) feed(life *components.Lifecycle) {
	if life.State == components.StateHungry {
		life.State = components.StateForaging
		return
	}
	life.Fertile = true
	life.State = components.StateReturning
}
