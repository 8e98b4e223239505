package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/inkwash/config"
	"github.com/pthm-cable/inkwash/fluid"
	"github.com/pthm-cable/inkwash/renderer"
	"github.com/pthm-cable/inkwash/telemetry"
)

// paper is the background the dye layers composite over.
var paper = rl.Color{R: 246, G: 242, B: 232, A: 255}

// Draw renders the composited dye field and the overlay UI.
func (g *Game) Draw() {
	cfg := config.Cfg()

	g.perf.StartPhase(telemetry.PhaseComposite)
	dye := g.engine.DyeTexture()

	g.perf.StartPhase(telemetry.PhaseDraw)
	rl.BeginDrawing()
	rl.ClearBackground(paper)

	renderer.DrawField(dye, 0, 0, cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, rl.White)

	g.perf.StartPhase(telemetry.PhaseUI)
	g.drawHUD()
	if g.panel != nil && g.panel.Visible() {
		params := g.engine.Params()
		changed := g.panel.Draw(&params, g.engine.PerformanceMode())
		if changed.Params {
			g.engine.SetParams(params)
		}
		if changed.PerformanceMode {
			g.engine.SetPerformanceMode(!g.engine.PerformanceMode())
		}
	}

	rl.EndDrawing()
	g.perf.EndFrame()
}

// drawHUD draws the corner status line.
func (g *Game) drawHUD() {
	w, h := g.engine.Size()
	text := fmt.Sprintf("%d fps | sim %dx%d | motes %d | inj %.0f%%",
		rl.GetFPS(), w, h, g.tracker.Count(), g.injectionRate*100)
	rl.DrawText(text, 10, 10, 18, rl.DarkGray)

	if g.paused {
		rl.DrawText("PAUSED", 10, 32, 18, rl.Maroon)
	}
}

// DebugVelocity draws the raw velocity texture in a corner. Bound to a key
// for solver inspection.
func (g *Game) DebugVelocity() {
	var f fluid.Field = g.engine.VelocityTexture()
	if f == nil {
		return
	}
	renderer.DrawField(f, 10, 60, 160, 90, rl.White)
}
