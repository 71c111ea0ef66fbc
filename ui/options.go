// Package ui renders the raygui options panel. Edits collect in a
// pending set and only take effect through a restart, so a running
// simulation never sees its parameters change.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/homeward/config"
)

const (
	panelWidth  = float32(300)
	rowHeight   = float32(20)
	rowSpacing  = float32(38)
	panelMargin = float32(10)
)

// pending holds the editable parameters as slider values.
type pending struct {
	simSpeed    float32
	dayLength   float32
	nightLength float32
	intensity   float32
	population  float32
	foodBatch   float32
}

// OptionsPanel is the TAB-toggled configuration sidebar.
type OptionsPanel struct {
	visible bool
	pending pending
}

// NewOptionsPanel seeds the pending values from the active config.
func NewOptionsPanel(cfg *config.Config) *OptionsPanel {
	return &OptionsPanel{
		pending: pending{
			simSpeed:    float32(cfg.Sim.Speed),
			dayLength:   float32(cfg.Sim.DayLength),
			nightLength: float32(cfg.Sim.NightLength),
			intensity:   float32(cfg.Traits.MutationIntensity),
			population:  float32(cfg.Population.Initial),
			foodBatch:   float32(cfg.Food.Batch),
		},
	}
}

// Toggle switches panel visibility.
func (p *OptionsPanel) Toggle() { p.visible = !p.visible }

// Visible returns whether the panel is shown.
func (p *OptionsPanel) Visible() bool { return p.visible }

// Draw renders the panel on the right side of the screen and returns true
// when the restart button was pressed.
func (p *OptionsPanel) Draw() bool {
	if !p.visible {
		return false
	}

	screenW := float32(rl.GetScreenWidth())
	x := screenW - panelWidth - panelMargin
	y := panelMargin

	rl.DrawRectangle(int32(x), int32(y), int32(panelWidth), 330, rl.Color{R: 0, G: 0, B: 0, A: 180})
	rl.DrawRectangleLines(int32(x), int32(y), int32(panelWidth), 330, rl.Gray)

	x += panelMargin
	y += panelMargin

	rl.DrawText("Options", int32(x), int32(y), 18, rl.White)
	y += 28

	p.pending.simSpeed = p.slider(x, &y, "Sim speed", "%.0fx", p.pending.simSpeed, 1, 30)
	p.pending.dayLength = p.slider(x, &y, "Day length (s)", "%.0f", p.pending.dayLength, 1, 60)
	p.pending.nightLength = p.slider(x, &y, "Night length (s)", "%.0f", p.pending.nightLength, 1, 30)
	p.pending.intensity = p.slider(x, &y, "Mutation intensity", "%.2f", p.pending.intensity, 0, 0.5)
	p.pending.population = p.slider(x, &y, "Initial population", "%.0f", p.pending.population, 1, 200)
	p.pending.foodBatch = p.slider(x, &y, "Food per day", "%.0f", p.pending.foodBatch, 1, 500)

	return gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 28}, "Restart")
}

// slider draws one labeled slider row and advances the layout cursor.
func (p *OptionsPanel) slider(x float32, y *float32, label, format string, value, min, max float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.LightGray)
	*y += 16

	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: panelWidth - 90, Height: rowHeight},
		"", "", value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, next), int32(x+panelWidth-80), int32(*y+2), 14, rl.White)
	*y += rowSpacing - 16

	return next
}

// Apply copies the pending values onto a fresh config derived from base.
// The result is validated and re-derived; the base is never mutated.
func (p *OptionsPanel) Apply(base *config.Config) (*config.Config, error) {
	cfg := *base
	cfg.Sim.Speed = float64(p.pending.simSpeed)
	cfg.Sim.DayLength = float64(p.pending.dayLength)
	cfg.Sim.NightLength = float64(p.pending.nightLength)
	cfg.Traits.MutationIntensity = float64(p.pending.intensity)
	cfg.Population.Initial = int(p.pending.population)
	cfg.Food.Batch = int(p.pending.foodBatch)

	if err := cfg.Prepare(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
