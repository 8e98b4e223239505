package solver

import (
	"testing"

	"github.com/pthm-cable/inkwash/fluid"
)

func TestCurl_ShearFlow(t *testing.T) {
	dev := New()
	vel := NewGrid(16, 16, 2)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			vel.Set(x, y, 1, float32(x)) // v = (0, x), curl = 1
		}
	}

	curl := NewGrid(16, 16, 1)
	dev.Curl(curl, vel)

	for y := 1; y < 15; y++ {
		for x := 1; x < 15; x++ {
			if got := curl.At(x, y, 0); got < 0.99 || got > 1.01 {
				t.Fatalf("curl at (%d,%d): got %v, want 1", x, y, got)
			}
		}
	}
}

func TestDivergence_UniformFlow(t *testing.T) {
	dev := New()
	vel := NewGrid(16, 16, 2)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			vel.Set(x, y, 0, 3)
		}
	}

	div := NewGrid(16, 16, 1)
	dev.Divergence(div, vel)

	// Uniform flow is divergence free away from the walls.
	for y := 1; y < 15; y++ {
		for x := 1; x < 15; x++ {
			if got := div.At(x, y, 0); got != 0 {
				t.Fatalf("interior divergence at (%d,%d): got %v, want 0", x, y, got)
			}
		}
	}

	// The mirrored-negated boundary makes flow into a wall read as compression.
	if got := div.At(0, 8, 0); got <= 0 {
		t.Errorf("left wall divergence: got %v, want > 0", got)
	}
	if got := div.At(15, 8, 0); got >= 0 {
		t.Errorf("right wall divergence: got %v, want < 0", got)
	}
}

func TestProjection_ReducesDivergence(t *testing.T) {
	dev := New()
	w, h := 32, 32

	vel := NewGrid(w, h, 2)
	dev.Splat(vel, NewGrid(w, h, 2), fluid.SplatParams{
		X: 0.5, Y: 0.5, Radius: 0.2, R: 5, G: 2, Strength: 1,
	})

	sumDivergence := func(v *Grid) float32 {
		div := NewGrid(w, h, 1)
		dev.Divergence(div, v)
		var sum float32
		for _, d := range div.data {
			sum += abs(d)
		}
		return sum
	}

	before := sumDivergence(vel)
	if before == 0 {
		t.Fatal("splat should produce a divergent field")
	}

	div := NewGrid(w, h, 1)
	dev.Divergence(div, vel)

	pressure := fluid.NewDoubleBuffer(dev, w, h, 1)
	for i := 0; i < 40; i++ {
		dev.PressureJacobi(pressure.Write(), pressure.Read(), div)
		pressure.Swap()
	}

	projected := NewGrid(w, h, 2)
	dev.SubtractGradient(projected, vel, pressure.Read())

	after := sumDivergence(projected)
	if after > before*0.5 {
		t.Errorf("projection should at least halve total divergence: %v -> %v", before, after)
	}
}

func TestAdvect_Transport(t *testing.T) {
	dev := New()
	w, h := 32, 32

	vel := NewGrid(w, h, 2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			vel.Set(x, y, 0, 4) // 4 cells per second in +x
		}
	}

	dye := NewGrid(w, h, 1)
	dye.Set(10, 16, 0, 1)

	out := NewGrid(w, h, 1)
	dev.Advect(out, dye, vel, 1.0, 0)

	if got := out.At(14, 16, 0); got < 0.99 {
		t.Errorf("spike should arrive at x=14: got %v", got)
	}
	if got := out.At(10, 16, 0); got > 0.01 {
		t.Errorf("spike should leave x=10: got %v", got)
	}
}

func TestAdvect_DissipationDecay(t *testing.T) {
	dev := New()
	w, h := 8, 8

	vel := NewGrid(w, h, 2)
	dye := NewGrid(w, h, 1)
	for i := range dye.data {
		dye.data[i] = 1
	}

	out := NewGrid(w, h, 1)
	dev.Advect(out, dye, vel, 0.5, 3)

	want := float32(1.0 / (1.0 + 3*0.5))
	if got := out.At(4, 4, 0); got < want-1e-5 || got > want+1e-5 {
		t.Errorf("decay: got %v, want %v", got, want)
	}
}

func TestVorticityConfinement_PreservesStillFluid(t *testing.T) {
	dev := New()
	w, h := 16, 16

	vel := NewGrid(w, h, 2)
	curl := NewGrid(w, h, 1)
	out := NewGrid(w, h, 2)
	dev.VorticityConfinement(out, vel, curl, 30, 1.0/60.0)

	for i, v := range out.data {
		if v != 0 {
			t.Fatalf("still fluid gained velocity at index %d: %v", i, v)
		}
	}
}

func TestVorticityConfinement_AmplifiesRotation(t *testing.T) {
	dev := New()
	w, h := 32, 32

	// A velocity splat with both components gives the field shear, hence curl.
	vel := NewGrid(w, h, 2)
	dev.Splat(vel, NewGrid(w, h, 2), fluid.SplatParams{
		X: 0.5, Y: 0.5, Radius: 0.15, R: 3, G: -2, Strength: 1,
	})

	curl := NewGrid(w, h, 1)
	dev.Curl(curl, vel)

	out := NewGrid(w, h, 2)
	dev.VorticityConfinement(out, vel, curl, 30, 1.0/60.0)

	var delta float32
	for i := range out.data {
		delta += abs(out.data[i] - vel.data[i])
	}
	if delta == 0 {
		t.Error("confinement should add force where the field rotates")
	}
}

func TestComposite_WetOnWet(t *testing.T) {
	dev := New()
	base := NewGrid(4, 1, 1)
	over := NewGrid(4, 1, 1)

	base.data = []float32{1, 1, 0, 0.5}
	over.data = []float32{0, 1, 0, 0.5}

	out := NewGrid(4, 1, 1)
	dev.Composite(out, base, over)

	want := []float32{0.75, 0.5, 0, 0.5}
	for i, w := range want {
		if got := out.data[i]; got < w-1e-5 || got > w+1e-5 {
			t.Errorf("cell %d: got %v, want %v", i, got, w)
		}
	}
}

func TestClear_Zeroes(t *testing.T) {
	dev := New()
	g := NewGrid(4, 4, 2)
	for i := range g.data {
		g.data[i] = float32(i)
	}
	dev.Clear(g)
	for i, v := range g.data {
		if v != 0 {
			t.Fatalf("index %d not cleared: %v", i, v)
		}
	}
}
