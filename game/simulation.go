package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/inkwash/components"
	"github.com/pthm-cable/inkwash/config"
	"github.com/pthm-cable/inkwash/fluid"
	"github.com/pthm-cable/inkwash/telemetry"
)

// Update advances one graphical frame.
func (g *Game) Update() {
	g.perf.StartFrame()
	dt := rl.GetFrameTime()
	g.handleInput(dt)
	g.advance(dt)
}

// UpdateHeadless advances one fixed-step frame without raylib.
func (g *Game) UpdateHeadless() {
	g.perf.StartFrame()
	g.advance(headlessDT)
}

// advance runs the shared per-frame sequence: scene injections first, then
// one solver step, then the LOD and telemetry housekeeping.
func (g *Game) advance(dt float32) {
	if g.paused || dt <= 0 {
		// Graphical frames end in Draw.
		if g.headless {
			g.perf.EndFrame()
		}
		return
	}
	g.elapsed += dt
	g.tick++

	g.perf.StartPhase(telemetry.PhaseInjection)
	g.updateMotes(dt)
	g.updateAmbientRipples(dt)
	g.ripples.Update(dt)

	g.perf.StartPhase(telemetry.PhaseStep)
	g.engine.Step(dt)

	g.updateLOD(dt)
	g.updateStats(dt)

	if g.headless {
		g.perf.EndFrame()
	}
}

// updateMotes drifts every mote, injects its pigment and wake into the fluid,
// and recycles motes past their lifetime.
func (g *Game) updateMotes(dt float32) {
	cfg := config.Cfg()

	g.tracker.Begin()

	var expired []ecs.Entity
	var expiredKinds []components.Kind

	query := g.moteFilter.Query()
	for query.Next() {
		pos, vel, mote := query.Get()

		mote.Age += dt
		if mote.Age >= mote.Lifetime {
			expired = append(expired, query.Entity())
			expiredKinds = append(expiredKinds, mote.Kind)
			continue
		}
		g.tracker.Observe(mote.ID)

		// Gentle heading wander keeps drift organic.
		turn := (g.rng.Float32() - 0.5) * 2 * dt
		sin := float32(math.Sin(float64(turn)))
		cos := float32(math.Cos(float64(turn)))
		vel.X, vel.Y = vel.X*cos-vel.Y*sin, vel.X*sin+vel.Y*cos

		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		if pos.X < 0.02 && vel.X < 0 || pos.X > 0.98 && vel.X > 0 {
			vel.X = -vel.X
		}
		if pos.Y < 0.02 && vel.Y < 0 || pos.Y > 0.98 && vel.Y > 0 {
			vel.Y = -vel.Y
		}

		r, gr, b := mote.Kind.Color()
		g.engine.InjectDye(fluid.DyeInjection{
			X: pos.X, Y: pos.Y,
			R: r, G: gr, B: b,
			Strength:      float32(cfg.Scene.InjectStrength) * g.injectionRate,
			Radius:        float32(cfg.Scene.InjectRadius),
			DiffusionRate: 0.5 + float32(mote.Kind)*0.3,
			LayerID:       mote.Kind.String(),
			Dissipation:   float32(cfg.Scene.DyeDissipation),
		})
		g.engine.InjectVelocity(pos.X, pos.Y,
			float32(cfg.Scene.InjectRadius)*2,
			vel.X*float32(cfg.Scene.VelocityStrength)/float32(cfg.Scene.MoteSpeed),
			vel.Y*float32(cfg.Scene.VelocityStrength)/float32(cfg.Scene.MoteSpeed),
			g.injectionRate)
	}

	for i, entity := range expired {
		// A disappearing mote should eventually trigger a death burst;
		// the burst needs the mote's last-known color and motion, which
		// are not retained past removal yet. See Disappeared below.
		g.moteMapper.Remove(entity)
		g.spawnMote(expiredKinds[i])
	}

	_ = g.tracker.Disappeared()
}

// updateAmbientRipples drops a dye-carrying ripple at a random point on a
// loose timer, keeping the surface alive without input.
func (g *Game) updateAmbientRipples(dt float32) {
	cfg := config.Cfg()

	g.rippleTimer -= dt
	if g.rippleTimer > 0 {
		return
	}
	g.rippleTimer = 2 + g.rng.Float32()*3

	kind := components.Kind(g.rng.Intn(int(components.NumKinds)))
	r, gr, b := kind.Color()
	g.ripples.Spawn(fluid.RippleOptions{
		X:             0.1 + g.rng.Float32()*0.8,
		Y:             0.1 + g.rng.Float32()*0.8,
		MaxRadius:     float32(cfg.Ripple.MaxRadius),
		RingWidth:     float32(cfg.Ripple.RingWidth),
		Strength:      float32(cfg.Ripple.Strength) * g.injectionRate,
		WaveFrequency: float32(cfg.Ripple.WaveFrequency),
		WaveAmplitude: float32(cfg.Ripple.WaveAmplitude),
		Lifetime:      float32(cfg.Ripple.Lifetime),
		Dye:           true,
		R:             r, G: gr, B: b,
		LayerID:       kind.String(),
	})
}

// updateStats logs and exports a perf window on the configured interval.
func (g *Game) updateStats(dt float32) {
	cfg := config.Cfg()

	g.statsTimer += dt
	if g.statsTimer < float32(cfg.Telemetry.LogInterval) {
		return
	}
	g.statsTimer = 0

	stats := g.perf.WindowStats(float64(g.elapsed))
	stats.Log()
	if err := g.output.WritePerf(stats); err != nil {
		// Output is best-effort; stop writing after the first failure.
		g.output = nil
	}
}
