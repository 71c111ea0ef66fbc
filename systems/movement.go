package systems

import "math"

// Edge identifies one of the four world boundary edges, in the order they
// win distance ties.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeBottom
	EdgeTop
)

// Heading returns the cardinal direction that walks toward the edge.
func (e Edge) Heading() float32 {
	switch e {
	case EdgeLeft:
		return math.Pi
	case EdgeRight:
		return 0
	case EdgeBottom:
		return 3 * math.Pi / 2
	default: // EdgeTop
		return math.Pi / 2
	}
}

// NearestEdge returns the closest boundary edge and its signed distance for
// a position in a centered world with the given half extents. Ties resolve
// in left, right, bottom, top order: the first minimum wins.
func NearestEdge(x, y, halfW, halfH float32) (Edge, float32) {
	dists := [4]float32{
		x + halfW, // left
		halfW - x, // right
		y + halfH, // bottom
		halfH - y, // top
	}

	edge, min := EdgeLeft, dists[0]
	for i := 1; i < len(dists); i++ {
		if dists[i] < min {
			min = dists[i]
			edge = Edge(i)
		}
	}
	return edge, min
}

// Wrap teleports a coordinate that crossed a half extent to the opposite
// edge. The topology is toroidal: crossing is a teleport, never a bounce.
func Wrap(v, half float32) float32 {
	if v > half {
		return -half
	}
	if v < -half {
		return half
	}
	return v
}

// Step returns the displacement of a move of the given distance along a
// heading.
func Step(heading, distance float32) (dx, dy float32) {
	dx = distance * float32(math.Cos(float64(heading)))
	dy = distance * float32(math.Sin(float64(heading)))
	return dx, dy
}

// Aim returns the heading from (x, y) toward (tx, ty).
func Aim(x, y, tx, ty float32) float32 {
	return float32(math.Atan2(float64(ty-y), float64(tx-x)))
}

// Dist returns the Euclidean distance between two points.
func Dist(x1, y1, x2, y2 float32) float32 {
	dx := x2 - x1
	dy := y2 - y1
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}
