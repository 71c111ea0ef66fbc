// Package renderer draws the simulation with raylib: the world plane
// tinted by the time of day, food dots, agents as oriented triangles, a
// HUD, and the statistics chart.
package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/homeward/components"
	"github.com/pthm-cable/homeward/game"
)

var (
	dayColor   = rl.Color{R: 230, G: 204, B: 204, A: 255}
	nightColor = rl.Color{R: 128, G: 102, B: 102, A: 255}
	foodColor  = rl.Color{R: 46, G: 125, B: 50, A: 255}
)

// Renderer draws one frame of the simulation.
type Renderer struct {
	agentRadius float32
	foodRadius  float32
	chart       *Chart
}

// New creates a renderer with default element sizes.
func New() *Renderer {
	return &Renderer{
		agentRadius: 7,
		foodRadius:  3,
		chart:       NewChart(),
	}
}

// Draw renders a complete frame. The world uses centered coordinates, so
// every position is shifted by the half extents before hitting the screen.
func (r *Renderer) Draw(g *game.Game, paused bool) {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	halfW, halfH := w/2, h/2

	bg := dayColor
	if g.Night() {
		bg = nightColor
	}
	rl.ClearBackground(bg)

	g.VisitFood(func(x, y float32) {
		rl.DrawCircleV(rl.Vector2{X: x + halfW, Y: y + halfH}, r.foodRadius, foodColor)
	})

	g.VisitAgents(func(x, y, heading float32, state components.State, fertile bool) {
		drawOrientedTriangle(x+halfW, y+halfH, heading, r.agentRadius, agentColor(state, fertile))
	})

	r.drawHUD(g, paused, h)
	r.chart.Draw(g.Series(), w, h)
}

// agentColor maps lifecycle state to a body color. Fertile agents are
// highlighted regardless of state.
func agentColor(state components.State, fertile bool) rl.Color {
	if fertile {
		return rl.Color{R: 236, G: 100, B: 168, A: 255}
	}
	switch state {
	case components.StateHungry:
		return rl.Color{R: 120, G: 120, B: 130, A: 255}
	case components.StateForaging:
		return rl.Color{R: 90, G: 170, B: 90, A: 255}
	case components.StateReturning:
		return rl.Color{R: 90, G: 130, B: 200, A: 255}
	case components.StateAtHome:
		return rl.Color{R: 60, G: 90, B: 160, A: 255}
	default:
		return rl.DarkGray
	}
}

// drawHUD renders the status lines in the top-left corner.
func (r *Renderer) drawHUD(g *game.Game, paused bool, h float32) {
	phase := "Day"
	if g.Night() {
		phase = "Night"
	}

	rl.DrawText("Homeward", 10, 10, 20, rl.Black)
	rl.DrawText(
		fmt.Sprintf("Day %d (%s) | Population: %d | Food: %d", g.Day(), phase, g.Population(), g.FoodCount()),
		10, 35, 16, rl.DarkGray,
	)
	rl.DrawText(
		fmt.Sprintf("Sim time: %.1fs | Tick: %d | FPS: %d", g.SimTime(), g.Tick(), rl.GetFPS()),
		10, 55, 16, rl.DarkGray,
	)

	switch {
	case g.Terminated():
		rl.DrawText("EXTINCT", 10, 75, 16, rl.Red)
	case paused:
		rl.DrawText("PAUSED", 10, 75, 16, rl.Orange)
	}

	rl.DrawText("[SPACE] pause  [TAB] options", 10, int32(h)-25, 14, rl.Gray)
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	frontX := x + cos*radius*1.5
	frontY := y + sin*radius*1.5

	backAngle := heading + math.Pi*0.8
	backLeftX := x + float32(math.Cos(float64(backAngle)))*radius
	backLeftY := y + float32(math.Sin(float64(backAngle)))*radius

	backAngle = heading - math.Pi*0.8
	backRightX := x + float32(math.Cos(float64(backAngle)))*radius
	backRightY := y + float32(math.Sin(float64(backAngle)))*radius

	v1 := rl.Vector2{X: frontX, Y: frontY}
	v2 := rl.Vector2{X: backLeftX, Y: backLeftY}
	v3 := rl.Vector2{X: backRightX, Y: backRightY}

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(v1, v3, v2, color)
}
