package solver

import (
	"testing"

	"github.com/pthm-cable/inkwash/fluid"
)

func TestSplat_GaussianLocality(t *testing.T) {
	dev := New()
	out := NewGrid(101, 101, 3)
	dev.Splat(out, NewGrid(101, 101, 3), fluid.SplatParams{
		X: 0.5, Y: 0.5, Radius: 0.1, R: 1, Strength: 1,
	})

	peak := out.At(50, 50, 0)
	if peak < 0.95 {
		t.Errorf("center should be near full strength: %v", peak)
	}

	// Two radii out the Gaussian has fallen to e^-4.
	far := out.At(50+20, 50, 0)
	if far > peak*0.05 {
		t.Errorf("value at 2R too large: %v (peak %v)", far, peak)
	}

	if g := out.At(50, 50, 1); g != 0 {
		t.Errorf("green channel should be untouched: %v", g)
	}
}

func TestSplat_AspectCorrection(t *testing.T) {
	dev := New()
	out := NewGrid(200, 100, 1)
	dev.Splat(out, NewGrid(200, 100, 1), fluid.SplatParams{
		X: 0.5, Y: 0.5, Radius: 0.1, R: 1, Strength: 1,
	})

	// Equal pixel offsets along x and y must see equal falloff, or splats
	// stretch into ellipses on wide domains.
	h := out.At(100+10, 50, 0)
	v := out.At(100, 50+10, 0)
	diff := h - v
	if diff < 0 {
		diff = -diff
	}
	if diff > 0.02 {
		t.Errorf("splat not circular in pixels: horizontal %v vs vertical %v", h, v)
	}
}

func TestSplat_Accumulates(t *testing.T) {
	dev := New()
	a := NewGrid(32, 32, 1)
	a.Set(16, 16, 0, 0.5)

	out := NewGrid(32, 32, 1)
	dev.Splat(out, a, fluid.SplatParams{
		X: 0.5, Y: 0.5, Radius: 0.1, R: 1, Strength: 1,
	})

	if got := out.At(16, 16, 0); got <= 0.5 {
		t.Errorf("splat should add onto existing dye: %v", got)
	}
}

func TestBlossomSplat_HaloWidensWithDiffusion(t *testing.T) {
	dev := New()
	splat := func(diffusion float32) *Grid {
		out := NewGrid(101, 101, 3)
		dev.BlossomSplat(out, NewGrid(101, 101, 3), fluid.BlossomParams{
			SplatParams:   fluid.SplatParams{X: 0.5, Y: 0.5, Radius: 0.1, R: 1, Strength: 1},
			DiffusionRate: diffusion,
		})
		return out
	}

	dry := splat(0)
	wet := splat(2)

	// Outside the core, a higher diffusion rate bleeds more pigment.
	if dry.At(50+30, 50, 0) >= wet.At(50+30, 50, 0) {
		t.Errorf("halo should widen with diffusion: dry %v, wet %v",
			dry.At(50+30, 50, 0), wet.At(50+30, 50, 0))
	}

	// Both still peak at the center.
	if dry.At(50, 50, 0) <= dry.At(50+30, 50, 0) {
		t.Error("blossom should peak at its center")
	}
}

func TestRippleSplat_OutwardAnnulus(t *testing.T) {
	dev := New()
	out := NewGrid(64, 64, 2)
	dev.RippleSplat(out, NewGrid(64, 64, 2), fluid.RippleParams{
		X: 0.5, Y: 0.5,
		RingRadius: 0.25, RingWidth: 0.05,
		Strength: 1,
	})

	// Cell (47,31) sits on the ring to the right of center: push is +x.
	if vx := out.At(47, 31, 0); vx <= 0 {
		t.Errorf("right of center should push right: vx=%v", vx)
	}
	// Mirrored on the left.
	if vx := out.At(16, 31, 0); vx >= 0 {
		t.Errorf("left of center should push left: vx=%v", vx)
	}
	// The center is far from the annulus and stays still.
	if vx, vy := out.At(31, 31, 0), out.At(31, 31, 1); vx != 0 || vy != 0 {
		t.Errorf("center should be untouched: (%v, %v)", vx, vy)
	}
}

func TestRippleSplat_WaveModulation(t *testing.T) {
	dev := New()
	flat := NewGrid(128, 128, 2)
	wavy := NewGrid(128, 128, 2)

	params := fluid.RippleParams{
		X: 0.5, Y: 0.5,
		RingRadius: 0.25, RingWidth: 0.05,
		Strength: 1,
	}
	dev.RippleSplat(flat, NewGrid(128, 128, 2), params)

	params.WaveFrequency = 6
	params.WaveAmplitude = 0.5
	dev.RippleSplat(wavy, NewGrid(128, 128, 2), params)

	// The sinusoid redistributes push around the ring, so the two fields
	// must differ somewhere on the annulus.
	var delta float32
	for i := range flat.data {
		delta += abs(wavy.data[i] - flat.data[i])
	}
	if delta == 0 {
		t.Error("wave modulation had no effect on the ring")
	}
}
