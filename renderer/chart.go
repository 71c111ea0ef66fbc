package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/homeward/telemetry"
)

const chartMaxSamples = 90

// Chart draws the per-day statistics series as a small panel: population
// bars with the average speed trait as a line on top.
type Chart struct {
	width   float32
	height  float32
	padding float32
}

// NewChart creates a chart panel with default dimensions.
func NewChart() *Chart {
	return &Chart{width: 300, height: 120, padding: 8}
}

// Draw renders the chart in the bottom-right corner of the screen. It is
// skipped until at least two samples exist.
func (c *Chart) Draw(series []telemetry.Sample, screenW, screenH float32) {
	if len(series) < 2 {
		return
	}
	if len(series) > chartMaxSamples {
		series = series[len(series)-chartMaxSamples:]
	}

	x := screenW - c.width - 10
	y := screenH - c.height - 10

	rl.DrawRectangle(int32(x), int32(y), int32(c.width), int32(c.height), rl.Color{R: 0, G: 0, B: 0, A: 150})
	rl.DrawRectangleLines(int32(x), int32(y), int32(c.width), int32(c.height), rl.Gray)

	maxPop := 1
	var maxSpeed float64
	for _, s := range series {
		if s.Population > maxPop {
			maxPop = s.Population
		}
		if s.AvgSpeed > maxSpeed {
			maxSpeed = s.AvgSpeed
		}
	}
	if maxSpeed == 0 {
		maxSpeed = 1
	}

	plotX := x + c.padding
	plotY := y + c.padding
	plotW := c.width - c.padding*2
	plotH := c.height - c.padding*2 - 14

	barW := plotW / float32(len(series))
	bw := int32(barW) - 1
	if bw < 1 {
		bw = 1
	}

	for i, s := range series {
		bh := float32(s.Population) / float32(maxPop) * plotH
		rl.DrawRectangle(
			int32(plotX+float32(i)*barW), int32(plotY+plotH-bh),
			bw, int32(bh),
			rl.Color{R: 90, G: 130, B: 200, A: 200},
		)
	}

	for i := 1; i < len(series); i++ {
		x1 := plotX + (float32(i-1)+0.5)*barW
		x2 := plotX + (float32(i)+0.5)*barW
		y1 := plotY + plotH - float32(series[i-1].AvgSpeed/maxSpeed)*plotH
		y2 := plotY + plotH - float32(series[i].AvgSpeed/maxSpeed)*plotH
		rl.DrawLineV(rl.Vector2{X: x1, Y: y1}, rl.Vector2{X: x2, Y: y2}, rl.Gold)
	}

	latest := series[len(series)-1]
	rl.DrawText(
		fmt.Sprintf("pop %d  speed %.2f  sense %.0f", latest.Population, latest.AvgSpeed, latest.AvgSense),
		int32(plotX), int32(plotY+plotH+4), 12, rl.LightGray,
	)
}
