// Package ui draws the solver parameter panel.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/inkwash/fluid"
)

// PanelWidth is the fixed panel width in pixels.
const PanelWidth = 260

const (
	rowHeight = 24
	padding   = 10
)

// Changed reports which parts of the panel the user touched this frame.
type Changed struct {
	Params          bool
	PerformanceMode bool
}

// Panel is a raygui slider panel over the engine's solver coefficients.
type Panel struct {
	x, y    int32
	visible bool
}

// NewPanel creates a hidden panel anchored at x,y.
func NewPanel(x, y int32) *Panel {
	return &Panel{x: x, y: y}
}

// Toggle flips panel visibility.
func (p *Panel) Toggle() { p.visible = !p.visible }

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool { return p.visible }

// Draw renders the panel and mutates params in place as sliders move.
func (p *Panel) Draw(params *fluid.Params, perfMode bool) Changed {
	var changed Changed
	if !p.visible {
		return changed
	}

	x := float32(p.x)
	y := float32(p.y)
	w := float32(PanelWidth)

	rows := 7
	rl.DrawRectangle(p.x-padding, p.y-padding, PanelWidth+2*padding,
		int32(rows)*rowHeight+3*padding, rl.Color{R: 255, G: 255, B: 255, A: 210})
	rl.DrawText("Solver", p.x, p.y, 18, rl.DarkGray)
	y += rowHeight + 4

	slider := func(label string, value, min, max float32) float32 {
		out := gui.SliderBar(
			rl.Rectangle{X: x + 90, Y: y, Width: w - 90, Height: rowHeight - 6},
			label, fmt.Sprintf("%.2f", value), value, min, max)
		y += rowHeight
		return out
	}

	curl := slider("curl", params.Curl, 0, 60)
	velDis := slider("vel decay", params.VelocityDissipation, 0, 4)
	dyeDis := slider("dye decay", params.DyeDissipation, 0, 4)
	iters := slider("pressure", float32(params.PressureIters), 1, 40)

	if curl != params.Curl || velDis != params.VelocityDissipation ||
		dyeDis != params.DyeDissipation || int(iters) != params.PressureIters {
		params.Curl = curl
		params.VelocityDissipation = velDis
		params.DyeDissipation = dyeDis
		params.PressureIters = int(iters)
		changed.Params = true
	}

	label := "Performance mode: off"
	if perfMode {
		label = "Performance mode: on"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y + 6, Width: w, Height: rowHeight}, label) {
		changed.PerformanceMode = true
	}

	return changed
}
