// Package game runs the demo scene: an ECS world of drifting pigment motes
// feeding the fluid engine, plus the LOD loop and telemetry around it.
package game

import (
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/inkwash/components"
	"github.com/pthm-cable/inkwash/config"
	"github.com/pthm-cable/inkwash/fluid"
	"github.com/pthm-cable/inkwash/renderer"
	"github.com/pthm-cable/inkwash/solver"
	"github.com/pthm-cable/inkwash/telemetry"
	"github.com/pthm-cable/inkwash/ui"
)

// headlessDT is the fixed step used without a display clock.
const headlessDT = float32(1.0 / 60.0)

// Options configures game construction.
type Options struct {
	Seed      int64
	Headless  bool
	OutputDir string
}

// Game holds the complete scene state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	moteMapper *ecs.Map3[components.Position, components.Velocity, components.Mote]
	moteFilter *ecs.Filter3[components.Position, components.Velocity, components.Mote]

	engine  *fluid.Engine
	gpu     *renderer.Device
	ripples *fluid.RippleSystem
	tracker *EntityTracker

	perf   *telemetry.PerfCollector
	output *telemetry.OutputManager
	panel  *ui.Panel

	// injectionRate is the LOD throttle applied to every scene injection.
	injectionRate      float32
	appliedResolution  float32
	lodTimer           float32
	lodCooldown        float32
	statsTimer         float32
	elapsed            float32
	rippleTimer        float32
	tick               int32
	nextID             uint32
	paused             bool
	headless           bool
	start              time.Time
}

// NewGame builds the scene. In graphical mode the raylib window must already
// exist; in headless mode the engine runs on the CPU device.
func NewGame(opts Options) *Game {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	g := &Game{
		world:             world,
		rng:               rand.New(rand.NewSource(opts.Seed)),
		moteMapper:        ecs.NewMap3[components.Position, components.Velocity, components.Mote](world),
		moteFilter:        ecs.NewFilter3[components.Position, components.Velocity, components.Mote](world),
		tracker:           NewEntityTracker(),
		perf:              telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		injectionRate:     1.0,
		appliedResolution: 1.0,
		headless:          opts.Headless,
		start:             time.Now(),
	}

	var dev fluid.Device
	if opts.Headless {
		dev = solver.New()
	} else {
		g.gpu = renderer.NewDevice()
		dev = g.gpu
	}

	g.engine = fluid.NewEngine(dev, cfg.Screen.Width, cfg.Screen.Height)
	g.engine.SetParams(fluid.Params{
		Viscosity:           float32(cfg.Sim.Viscosity),
		DyeDissipation:      float32(cfg.Sim.DyeDissipation),
		VelocityDissipation: float32(cfg.Sim.VelocityDissipation),
		Curl:                float32(cfg.Sim.Curl),
		PressureIters:       cfg.Sim.PressureIters,
	})
	g.ripples = fluid.NewRippleSystem(g.engine)

	if !opts.Headless {
		g.panel = ui.NewPanel(int32(cfg.Screen.Width)-ui.PanelWidth-10, 10)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("output_manager_failed", "error", err)
	} else {
		g.output = om
		if err := g.output.WriteConfig(cfg); err != nil {
			slog.Warn("config_snapshot_failed", "error", err)
		}
	}

	g.spawnMotes(cfg.Scene.MoteCount)
	return g
}

// Tick returns the frame counter.
func (g *Game) Tick() int32 { return g.tick }

// Engine exposes the fluid engine for tooling.
func (g *Game) Engine() *fluid.Engine { return g.engine }

// spawnMotes creates the initial emitter population, cycling kinds so every
// dye layer stays active.
func (g *Game) spawnMotes(count int) {
	for i := 0; i < count; i++ {
		g.spawnMote(components.Kind(i % int(components.NumKinds)))
	}
}

func (g *Game) spawnMote(kind components.Kind) {
	cfg := config.Cfg()

	id := g.nextID
	g.nextID++

	heading := g.rng.Float64() * 2 * math.Pi
	speed := float32(cfg.Scene.MoteSpeed) * (0.5 + g.rng.Float32())

	pos := components.Position{X: g.rng.Float32(), Y: g.rng.Float32()}
	vel := components.Velocity{
		X: speed * float32(math.Cos(heading)),
		Y: speed * float32(math.Sin(heading)),
	}
	mote := components.Mote{
		ID:       id,
		Kind:     kind,
		Lifetime: 20 + g.rng.Float32()*20,
	}
	g.moteMapper.NewEntity(&pos, &vel, &mote)
}

// Unload releases engine buffers, GPU kernels and telemetry files.
func (g *Game) Unload() {
	g.engine.Dispose()
	if g.gpu != nil {
		g.gpu.Unload()
	}
	if err := g.output.Close(); err != nil {
		slog.Warn("output_close_failed", "error", err)
	}
}
