package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/inkwash/config"
	"github.com/pthm-cable/inkwash/fluid"
)

// brushLayer is the dye layer fed by mouse interaction.
const brushLayer = "brush"

// handleInput processes mouse painting and keyboard toggles.
func (g *Game) handleInput(dt float32) {
	cfg := config.Cfg()

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		g.paused = !g.paused
	case rl.IsKeyPressed(rl.KeyP):
		g.engine.SetPerformanceMode(!g.engine.PerformanceMode())
	case rl.IsKeyPressed(rl.KeyTab):
		if g.panel != nil {
			g.panel.Toggle()
		}
	}

	mouse := rl.GetMousePosition()
	mx := mouse.X / cfg.Derived.ScreenW32
	my := mouse.Y / cfg.Derived.ScreenH32

	if rl.IsMouseButtonDown(rl.MouseLeftButton) && dt > 0 {
		delta := rl.GetMouseDelta()
		// Pointer motion in texels/sec drives the wake.
		dx := delta.X / dt * 0.25
		dy := delta.Y / dt * 0.25

		g.engine.InjectVelocity(mx, my, float32(cfg.Scene.InjectRadius)*2, dx, dy, 1)
		g.engine.InjectDye(fluid.DyeInjection{
			X: mx, Y: my,
			R: 0.1, G: 0.35, B: 0.4,
			Strength:      float32(cfg.Scene.InjectStrength),
			Radius:        float32(cfg.Scene.InjectRadius),
			DiffusionRate: 1.2,
			LayerID:       brushLayer,
		})
	}

	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		g.ripples.Spawn(fluid.RippleOptions{
			X: mx, Y: my,
			MaxRadius:     float32(cfg.Ripple.MaxRadius),
			RingWidth:     float32(cfg.Ripple.RingWidth),
			Strength:      float32(cfg.Ripple.Strength),
			WaveFrequency: float32(cfg.Ripple.WaveFrequency),
			WaveAmplitude: float32(cfg.Ripple.WaveAmplitude),
			Lifetime:      float32(cfg.Ripple.Lifetime),
		})
	}
}
