package fluid_test

import (
	"math"
	"testing"

	"github.com/pthm-cable/inkwash/fluid"
	"github.com/pthm-cable/inkwash/solver"
)

func newTestEngine(t *testing.T, w, h int) *fluid.Engine {
	t.Helper()
	return fluid.NewEngine(solver.New(), w, h)
}

func gridMax(g *solver.Grid, comp int) float32 {
	var peak float32
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if v := g.At(x, y, comp); v > peak {
				peak = v
			}
		}
	}
	return peak
}

func TestEngine_ResolutionQuantization(t *testing.T) {
	eng := newTestEngine(t, 800, 600)
	defer eng.Dispose()

	if w, h := eng.Size(); w != 800 || h != 600 {
		t.Fatalf("initial size: got %dx%d", w, h)
	}

	eng.SetResolution(0.5)
	if w, h := eng.Size(); w != 400 || h != 300 {
		t.Errorf("half resolution: got %dx%d, want 400x300", w, h)
	}

	// A delta under the tolerance must not reallocate.
	before := eng.DyeTexture()
	eng.SetResolution(0.505)
	if eng.DyeTexture() != before {
		t.Error("sub-epsilon scale change reallocated buffers")
	}

	eng.SetResolution(0.75)
	if w, h := eng.Size(); w != 600 || h != 450 {
		t.Errorf("3/4 resolution: got %dx%d, want 600x450", w, h)
	}
}

func TestEngine_SetResolutionRejectsInvalid(t *testing.T) {
	eng := newTestEngine(t, 320, 240)
	defer eng.Dispose()

	eng.SetResolution(-1)
	eng.SetResolution(0)
	eng.SetResolution(float32(math.NaN()))

	if w, h := eng.Size(); w != 320 || h != 240 {
		t.Errorf("invalid scales should be ignored, size now %dx%d", w, h)
	}
}

func TestEngine_PerformanceMode(t *testing.T) {
	eng := newTestEngine(t, 800, 600)
	defer eng.Dispose()

	eng.SetPerformanceMode(true)
	if !eng.PerformanceMode() {
		t.Fatal("performance mode not reported")
	}
	if w, h := eng.Size(); w != 400 || h != 300 {
		t.Errorf("performance mode size: got %dx%d, want 400x300", w, h)
	}

	// Re-enabling is a no-op, not a reallocation.
	before := eng.DyeTexture()
	eng.SetPerformanceMode(true)
	if eng.DyeTexture() != before {
		t.Error("redundant toggle reallocated buffers")
	}

	eng.SetPerformanceMode(false)
	if w, h := eng.Size(); w != 800 || h != 600 {
		t.Errorf("after disabling: got %dx%d, want 800x600", w, h)
	}
}

func TestEngine_ResizeInvalidIgnored(t *testing.T) {
	eng := newTestEngine(t, 320, 240)
	defer eng.Dispose()

	eng.Resize(0, 240)
	eng.Resize(320, -1)

	if w, h := eng.Size(); w != 320 || h != 240 {
		t.Errorf("invalid resize should be ignored, size now %dx%d", w, h)
	}
}

func TestEngine_ResizeRecreatesLayers(t *testing.T) {
	eng := newTestEngine(t, 320, 240)
	defer eng.Dispose()

	eng.InjectDye(fluid.DyeInjection{
		X: 0.5, Y: 0.5, R: 1, Strength: 1, Radius: 0.2, LayerID: "ink",
	})

	eng.Resize(400, 300)

	l := eng.Layer("ink")
	if l == nil {
		t.Fatal("layer key should survive a resize")
	}
	g := l.Texture().(*solver.Grid)
	if g.Width() != 400 || g.Height() != 300 {
		t.Errorf("layer buffer size after resize: got %dx%d", g.Width(), g.Height())
	}
	if peak := gridMax(g, 0); peak != 0 {
		t.Errorf("accumulated dye should not survive a resize, peak %v", peak)
	}
}

func TestEngine_NoInjectionDecay(t *testing.T) {
	eng := newTestEngine(t, 64, 64)
	defer eng.Dispose()

	eng.InjectDye(fluid.DyeInjection{
		X: 0.5, Y: 0.5, R: 1, G: 1, B: 1,
		Strength: 1, Radius: 0.15, Dissipation: 1.0, LayerID: "wash",
	})

	initial := gridMax(eng.DyeTexture().(*solver.Grid), 0)
	if initial <= 0 {
		t.Fatal("expected dye after injection")
	}

	prev := initial
	for i := 0; i < 30; i++ {
		eng.Step(1.0 / 60.0)
		peak := gridMax(eng.DyeTexture().(*solver.Grid), 0)
		if peak != peak {
			t.Fatalf("NaN in dye field at step %d", i)
		}
		if peak > prev+1e-6 {
			t.Fatalf("dye increased without injection at step %d: %v -> %v", i, prev, peak)
		}
		prev = peak
	}

	if prev > initial*0.8 {
		t.Errorf("dye should decay markedly, went %v -> %v over 30 steps", initial, prev)
	}
}

func TestEngine_VelocityInjectionVisibleAfterSwap(t *testing.T) {
	eng := newTestEngine(t, 64, 64)
	defer eng.Dispose()

	eng.InjectVelocity(0.5, 0.5, 0.1, 30, 0, 1)

	g := eng.VelocityTexture().(*solver.Grid)
	if vx := g.At(32, 32, 0); vx < 1 {
		t.Errorf("velocity splat not visible on read half: vx=%v", vx)
	}
}

func TestEngine_StepIgnoresBadDT(t *testing.T) {
	eng := newTestEngine(t, 64, 64)
	defer eng.Dispose()

	before := eng.VelocityTexture()
	eng.Step(0)
	eng.Step(-1)
	eng.Step(float32(math.NaN()))
	if eng.VelocityTexture() != before {
		t.Error("bad dt should be a no-op, but buffers swapped")
	}
}

func TestEngine_StepClampsLongFrames(t *testing.T) {
	eng := newTestEngine(t, 64, 64)
	defer eng.Dispose()

	eng.InjectVelocity(0.5, 0.5, 0.1, 200, 150, 1)
	eng.Step(1.0) // a one second frame must not destabilize the trace

	g := eng.VelocityTexture().(*solver.Grid)
	for i, v := range g.Data() {
		if v != v {
			t.Fatalf("NaN in velocity field at index %d", i)
		}
	}
}

func TestEngine_SingleLayerPassThrough(t *testing.T) {
	eng := newTestEngine(t, 64, 64)
	defer eng.Dispose()

	eng.InjectDye(fluid.DyeInjection{
		X: 0.5, Y: 0.5, R: 1, Strength: 1, Radius: 0.2, LayerID: "solo",
	})

	if eng.LayerCount() != 1 {
		t.Fatalf("expected one layer, got %d", eng.LayerCount())
	}
	if eng.DyeTexture() != eng.Layer("solo").Texture() {
		t.Error("single layer should be returned directly, not composited")
	}
}

func TestEngine_CompositeWetOnWet(t *testing.T) {
	eng := newTestEngine(t, 64, 64)
	defer eng.Dispose()

	eng.InjectDye(fluid.DyeInjection{
		X: 0.5, Y: 0.5, R: 1, Strength: 0.5, Radius: 0.2, LayerID: "madder",
	})
	eng.InjectDye(fluid.DyeInjection{
		X: 0.5, Y: 0.5, B: 1, Strength: 0.5, Radius: 0.2, LayerID: "indigo",
	})

	out := eng.DyeTexture().(*solver.Grid)
	a := eng.Layer("madder").Texture().(*solver.Grid)
	b := eng.Layer("indigo").Texture().(*solver.Grid)
	if out == a || out == b {
		t.Fatal("two layers should composite into a separate buffer")
	}

	blend := func(base, over float32) float32 {
		subtractive := base*(1-over) + over*(1-base)
		return 0.5 * (subtractive + 0.5*(base+over))
	}
	for c := 0; c < 3; c++ {
		want := blend(a.At(32, 32, c), b.At(32, 32, c))
		got := out.At(32, 32, c)
		if diff := got - want; diff > 1e-5 || diff < -1e-5 {
			t.Errorf("component %d: got %v, want %v", c, got, want)
		}
	}
}

func TestEngine_CompositeCapsAtFiveLayers(t *testing.T) {
	eng := newTestEngine(t, 64, 64)
	defer eng.Dispose()

	for _, key := range []string{"a", "b", "c", "d", "e"} {
		eng.InjectDye(fluid.DyeInjection{
			X: 0.5, Y: 0.5, R: 1, Strength: 0.001, Radius: 0.2, LayerID: key,
		})
	}
	eng.InjectDye(fluid.DyeInjection{
		X: 0.5, Y: 0.5, R: 1, Strength: 1, Radius: 0.2, LayerID: "overflow",
	})

	if eng.LayerCount() != 6 {
		t.Fatalf("expected six layers, got %d", eng.LayerCount())
	}

	sixth := eng.Layer("overflow").Texture().(*solver.Grid)
	if sixth.At(32, 32, 0) < 0.5 {
		t.Fatal("sixth layer should still be simulated")
	}

	out := eng.DyeTexture().(*solver.Grid)
	if v := out.At(32, 32, 0); v > 0.05 {
		t.Errorf("sixth layer leaked into the composite: %v", v)
	}
}

func TestEngine_DefaultLayerKey(t *testing.T) {
	eng := newTestEngine(t, 64, 64)
	defer eng.Dispose()

	eng.InjectDye(fluid.DyeInjection{X: 0.5, Y: 0.5, R: 1, Strength: 1, Radius: 0.2})
	if eng.Layer("default") == nil {
		t.Error("unnamed injections should land in the default layer")
	}
}

func TestEngine_UninitializedReturnsDummy(t *testing.T) {
	eng := fluid.NewEngine(solver.New(), 0, 0)

	// Every operation must be safe before buffers exist.
	eng.Step(1.0 / 60.0)
	eng.InjectDye(fluid.DyeInjection{X: 0.5, Y: 0.5, R: 1, Strength: 1, Radius: 0.1})
	eng.InjectVelocity(0.5, 0.5, 0.1, 1, 0, 1)

	f := eng.DyeTexture()
	if f == nil {
		t.Fatal("uninitialized engine should return a dummy field, not nil")
	}
	if f.Width() != 1 || f.Height() != 1 {
		t.Errorf("dummy field should be 1x1, got %dx%d", f.Width(), f.Height())
	}
	if eng.DyeTexture() != f {
		t.Error("dummy field should be cached, not recreated per call")
	}
}

func TestEngine_DisposeIdempotent(t *testing.T) {
	eng := newTestEngine(t, 64, 64)
	eng.InjectDye(fluid.DyeInjection{X: 0.5, Y: 0.5, R: 1, Strength: 1, Radius: 0.1, LayerID: "ink"})

	eng.Dispose()
	eng.Dispose()

	// All operations no-op after disposal.
	eng.Step(1.0 / 60.0)
	eng.InjectDye(fluid.DyeInjection{X: 0.5, Y: 0.5, R: 1, Strength: 1, Radius: 0.1})
	eng.Resize(128, 128)
	eng.SetResolution(0.5)
	eng.SetPerformanceMode(true)

	if eng.DyeTexture() != nil {
		t.Error("DyeTexture should be nil after dispose")
	}
	if eng.LayerCount() != 0 {
		t.Errorf("layers should be gone after dispose, have %d", eng.LayerCount())
	}
}
