package fluid_test

import (
	"testing"

	"github.com/pthm-cable/inkwash/fluid"
	"github.com/pthm-cable/inkwash/solver"
)

func rippleOpts() fluid.RippleOptions {
	return fluid.RippleOptions{
		X: 0.5, Y: 0.5,
		MaxRadius: 0.25,
		RingWidth: 0.05,
		Strength:  10,
		Lifetime:  1.0,
	}
}

func TestRippleSystem_LifetimeExpiry(t *testing.T) {
	eng := newTestEngine(t, 64, 64)
	defer eng.Dispose()
	rs := fluid.NewRippleSystem(eng)

	rs.Spawn(rippleOpts())
	if rs.Count() != 1 {
		t.Fatalf("expected one live ripple, got %d", rs.Count())
	}

	rs.Update(0.4)
	rs.Update(0.4)
	if rs.Count() != 1 {
		t.Errorf("ripple expired early, count %d", rs.Count())
	}

	rs.Update(0.4)
	if rs.Count() != 0 {
		t.Errorf("ripple should expire past its lifetime, count %d", rs.Count())
	}
}

func TestRippleSystem_SpawnRejectsInvalid(t *testing.T) {
	eng := newTestEngine(t, 64, 64)
	defer eng.Dispose()
	rs := fluid.NewRippleSystem(eng)

	opts := rippleOpts()
	opts.Lifetime = 0
	rs.Spawn(opts)

	opts = rippleOpts()
	opts.MaxRadius = 0
	rs.Spawn(opts)

	if rs.Count() != 0 {
		t.Errorf("invalid ripples should be rejected, count %d", rs.Count())
	}
}

func TestRippleSystem_InjectsVelocity(t *testing.T) {
	eng := newTestEngine(t, 64, 64)
	defer eng.Dispose()
	rs := fluid.NewRippleSystem(eng)

	rs.Spawn(rippleOpts())
	rs.Update(0.5) // ring at half expansion

	g := eng.VelocityTexture().(*solver.Grid)
	var energy float32
	for _, v := range g.Data() {
		if v < 0 {
			v = -v
		}
		energy += v
	}
	if energy == 0 {
		t.Error("expected ring velocity in the field after an update")
	}
}

func TestRippleSystem_DyeRing(t *testing.T) {
	eng := newTestEngine(t, 64, 64)
	defer eng.Dispose()
	rs := fluid.NewRippleSystem(eng)

	opts := rippleOpts()
	opts.Dye = true
	opts.R, opts.G, opts.B = 0.2, 0.3, 0.6
	opts.LayerID = "pond"
	rs.Spawn(opts)
	rs.Update(0.1)

	l := eng.Layer("pond")
	if l == nil {
		t.Fatal("dye-carrying ripple should create its layer")
	}
	if peak := gridMax(l.Texture().(*solver.Grid), 2); peak <= 0 {
		t.Error("expected dye along the ring edge")
	}
}

func TestRippleSystem_UpdateIgnoresBadDT(t *testing.T) {
	eng := newTestEngine(t, 64, 64)
	defer eng.Dispose()
	rs := fluid.NewRippleSystem(eng)

	rs.Spawn(rippleOpts())
	rs.Update(0)
	rs.Update(-1)
	if rs.Count() != 1 {
		t.Errorf("non-positive dt should not age ripples, count %d", rs.Count())
	}
}
