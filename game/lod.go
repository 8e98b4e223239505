package game

import (
	"log/slog"

	"github.com/pthm-cable/inkwash/config"
	"github.com/pthm-cable/inkwash/telemetry"
)

// updateLOD evaluates the quality tier on a throttled interval and applies
// resolution changes behind a cooldown window, so a transient frame spike
// cannot thrash buffer reallocation. The tier decision itself lives in the
// engine; this is the applier the engine deliberately does not own.
func (g *Game) updateLOD(dt float32) {
	cfg := config.Cfg()

	g.lodCooldown -= dt
	g.lodTimer += dt
	if g.lodTimer < float32(cfg.LOD.CheckInterval) {
		return
	}
	g.lodTimer = 0

	fps := g.perf.FPS()
	if g.headless {
		// No display clock; assume the target rate so headless runs
		// exercise the full-quality path.
		fps = float64(cfg.Screen.TargetFPS)
	}
	if fps <= 0 {
		return
	}

	decision := g.engine.CalculateLOD(float32(fps), g.tracker.Count())
	g.injectionRate = decision.InjectionRate

	applied := false
	if decision.Resolution != g.appliedResolution && g.lodCooldown <= 0 {
		g.engine.SetResolution(decision.Resolution)
		g.appliedResolution = decision.Resolution
		g.lodCooldown = float32(cfg.LOD.Cooldown)
		applied = true
		slog.Info("lod_applied",
			"resolution", decision.Resolution,
			"injection_rate", decision.InjectionRate,
			"fps", int(fps),
			"entities", g.tracker.Count(),
		)
	}

	rec := telemetry.LODRecord{
		Time:          float64(g.elapsed),
		FPS:           fps,
		EntityCount:   g.tracker.Count(),
		Resolution:    float64(decision.Resolution),
		InjectionRate: float64(decision.InjectionRate),
		Applied:       applied,
	}
	if err := g.output.WriteLOD(rec); err != nil {
		g.output = nil
	}
}
