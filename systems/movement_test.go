package systems

import (
	"math"
	"testing"
)

func TestNearestEdgeTieBreak(t *testing.T) {
	tests := []struct {
		name         string
		x, y         float32
		halfW, halfH float32
		want         Edge
		wantDist     float32
	}{
		{"center of square resolves left", 0, 0, 100, 100, EdgeLeft, 100},
		{"left-right tie resolves left", 0, 50, 100, 200, EdgeLeft, 100},
		{"bottom-top tie resolves bottom", 50, 0, 200, 100, EdgeBottom, 100},
		{"nearest right wins", 80, 0, 100, 200, EdgeRight, 20},
		{"nearest top wins", 0, 90, 200, 100, EdgeTop, 10},
		{"past the edge is negative", 120, 0, 100, 200, EdgeRight, -20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge, dist := NearestEdge(tt.x, tt.y, tt.halfW, tt.halfH)
			if edge != tt.want {
				t.Errorf("edge = %v, want %v", edge, tt.want)
			}
			if dist != tt.wantDist {
				t.Errorf("dist = %v, want %v", dist, tt.wantDist)
			}
		})
	}
}

func TestEdgeHeadings(t *testing.T) {
	if EdgeLeft.Heading() != math.Pi {
		t.Errorf("left heading = %v, want pi", EdgeLeft.Heading())
	}
	if EdgeRight.Heading() != 0 {
		t.Errorf("right heading = %v, want 0", EdgeRight.Heading())
	}
	if EdgeBottom.Heading() != 3*math.Pi/2 {
		t.Errorf("bottom heading = %v, want 3pi/2", EdgeBottom.Heading())
	}
	if EdgeTop.Heading() != math.Pi/2 {
		t.Errorf("top heading = %v, want pi/2", EdgeTop.Heading())
	}
}

func TestWrapTeleportsToOppositeEdge(t *testing.T) {
	const half = float32(640)

	// Exactly at the half extent is still inside; one step beyond wraps.
	if got := Wrap(half, half); got != half {
		t.Errorf("Wrap(+half) = %v, want %v", got, half)
	}
	if got := Wrap(half+0.1, half); got != -half {
		t.Errorf("Wrap(+half+eps) = %v, want %v", got, -half)
	}
	if got := Wrap(-half-0.1, half); got != half {
		t.Errorf("Wrap(-half-eps) = %v, want %v", got, half)
	}
	if got := Wrap(12.5, half); got != 12.5 {
		t.Errorf("Wrap(interior) = %v, want 12.5", got)
	}
}

func TestStepAndAim(t *testing.T) {
	dx, dy := Step(0, 10)
	if math.Abs(float64(dx-10)) > 1e-5 || math.Abs(float64(dy)) > 1e-5 {
		t.Errorf("Step(0, 10) = (%v, %v), want (10, 0)", dx, dy)
	}

	dx, dy = Step(math.Pi/2, 10)
	if math.Abs(float64(dx)) > 1e-5 || math.Abs(float64(dy-10)) > 1e-5 {
		t.Errorf("Step(pi/2, 10) = (%v, %v), want (0, 10)", dx, dy)
	}

	// Aiming at a target and stepping its distance lands on it.
	h := Aim(3, 4, -2, 16)
	d := Dist(3, 4, -2, 16)
	dx, dy = Step(h, d)
	if math.Abs(float64(3+dx-(-2))) > 1e-4 || math.Abs(float64(4+dy-16)) > 1e-4 {
		t.Errorf("aim+step landed at (%v, %v), want (-2, 16)", 3+dx, 4+dy)
	}
}
