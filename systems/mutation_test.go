package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/homeward/components"
)

func TestMutateStaysInEnvelope(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	parent := components.Traits{Speed: 1.0, Sense: 120.0}

	for i := 0; i < 1000; i++ {
		child := Mutate(parent, rng, 0.1, 0.05)

		if child.Speed < 0.9 || child.Speed > 1.1 {
			t.Fatalf("speed %v outside [0.9, 1.1]", child.Speed)
		}
		if child.Sense < 108 || child.Sense > 132 {
			t.Fatalf("sense %v outside [108, 132]", child.Sense)
		}
		if child.Speed <= 0 || child.Sense <= 0 {
			t.Fatalf("trait went non-positive: %+v", child)
		}
	}
}

func TestMutateActuallyVaries(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	parent := components.Traits{Speed: 1.0, Sense: 120.0}

	varied := false
	for i := 0; i < 10; i++ {
		child := Mutate(parent, rng, 0.1, 0.05)
		if math.Abs(float64(child.Speed-parent.Speed)) > 1e-6 {
			varied = true
			break
		}
	}
	if !varied {
		t.Error("mutation produced identical speed ten times in a row")
	}
}

func TestMutateFloorsTraits(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	parent := components.Traits{Speed: 0.1, Sense: 0.1}

	// An intensity above 1 could push a trait negative without the floor.
	for i := 0; i < 1000; i++ {
		child := Mutate(parent, rng, 2.0, 0.05)
		if child.Speed < 0.05 || child.Sense < 0.05 {
			t.Fatalf("trait fell below floor: %+v", child)
		}
	}
}
