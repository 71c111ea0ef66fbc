package systems

import (
	"math/rand"

	"github.com/pthm-cable/homeward/components"
)

// Mutate returns a mutated copy of the parent traits. Each trait is
// perturbed by a uniform relative factor in [-intensity, +intensity] and
// floored at min, so traits can never become zero or negative. The
// perturbation is proportional to the parent trait, not absolute:
// intensity is a fractional step size, so one setting tunes both the
// small speed trait and the large sense radius.
func Mutate(parent components.Traits, rng *rand.Rand, intensity, min float32) components.Traits {
	child := components.Traits{
		Speed: parent.Speed + (rng.Float32()*2-1)*intensity*parent.Speed,
		Sense: parent.Sense + (rng.Float32()*2-1)*intensity*parent.Sense,
	}
	if child.Speed < min {
		child.Speed = min
	}
	if child.Sense < min {
		child.Sense = min
	}
	return child
}
