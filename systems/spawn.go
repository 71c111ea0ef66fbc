package systems

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Placer picks spawn locations inside the centered world bounds. With
// clustering enabled, placement is rejection-sampled against a noise
// field so food concentrates in patches instead of spreading uniformly.
type Placer struct {
	rng       *rand.Rand
	noise     opensimplex.Noise
	clustered bool
	scale     float64
	threshold float64
}

// maxPlaceTries bounds the rejection sampling; past it the last candidate
// is used so placement always terminates.
const maxPlaceTries = 32

// NewPlacer creates a uniform placer.
func NewPlacer(rng *rand.Rand) *Placer {
	return &Placer{rng: rng}
}

// NewClusteredPlacer creates a placer biased into noise patches.
func NewClusteredPlacer(rng *rand.Rand, seed int64, scale, threshold float64) *Placer {
	return &Placer{
		rng:       rng,
		noise:     opensimplex.NewNormalized(seed),
		clustered: true,
		scale:     scale,
		threshold: threshold,
	}
}

// Place returns a spawn location within the given half extents.
func (p *Placer) Place(halfW, halfH float32) (x, y float32) {
	for i := 0; i < maxPlaceTries; i++ {
		x = (p.rng.Float32() - 0.5) * 2 * halfW
		y = (p.rng.Float32() - 0.5) * 2 * halfH

		if !p.clustered {
			return x, y
		}
		if p.noise.Eval2(float64(x)*p.scale, float64(y)*p.scale) >= p.threshold {
			return x, y
		}
	}
	return x, y
}
