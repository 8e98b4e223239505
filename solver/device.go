package solver

import (
	"math"

	"github.com/pthm-cable/inkwash/fluid"
)

// Device implements fluid.Device on CPU grids. Kernels mirror the shader
// backend pixel for pixel; velocity is stored in cells per second.
type Device struct{}

// New returns a CPU device.
func New() *Device { return &Device{} }

// NewField allocates a zeroed grid.
func (d *Device) NewField(w, h, comps int) fluid.Field {
	return NewGrid(w, h, comps)
}

// Clear zeroes a field in place.
func (d *Device) Clear(f fluid.Field) {
	g := f.(*Grid)
	for i := range g.data {
		g.data[i] = 0
	}
}

// Curl writes dv_y/dx - dv_x/dy via central differences with clamped
// neighbors.
func (d *Device) Curl(dst, velocity fluid.Field) {
	out := dst.(*Grid)
	vel := velocity.(*Grid)
	for y := 0; y < out.h; y++ {
		for x := 0; x < out.w; x++ {
			dvydx := vel.atClamped(x+1, y, 1) - vel.atClamped(x-1, y, 1)
			dvxdy := vel.atClamped(x, y+1, 0) - vel.atClamped(x, y-1, 0)
			out.Set(x, y, 0, 0.5*(dvydx-dvxdy))
		}
	}
}

// VorticityConfinement adds a force perpendicular to the normalized gradient
// of |curl|, re-injecting rotational energy the advection scheme dissipates.
func (d *Device) VorticityConfinement(dst, velocity, curl fluid.Field, strength, dt float32) {
	out := dst.(*Grid)
	vel := velocity.(*Grid)
	crl := curl.(*Grid)
	for y := 0; y < out.h; y++ {
		for x := 0; x < out.w; x++ {
			c := crl.At(x, y, 0)

			gradX := 0.5 * (abs(crl.atClamped(x+1, y, 0)) - abs(crl.atClamped(x-1, y, 0)))
			gradY := 0.5 * (abs(crl.atClamped(x, y+1, 0)) - abs(crl.atClamped(x, y-1, 0)))
			length := float32(math.Sqrt(float64(gradX*gradX+gradY*gradY))) + 1e-5
			nx := gradX / length
			ny := gradY / length

			// Force is the 2D cross of the gradient direction with the
			// curl, which pushes flow around vortex cores.
			fx := strength * c * ny
			fy := strength * c * -nx

			out.Set(x, y, 0, vel.At(x, y, 0)+fx*dt)
			out.Set(x, y, 1, vel.At(x, y, 1)+fy*dt)
		}
	}
}

// Divergence writes the central-difference divergence of velocity. At domain
// edges the out-of-bounds boundary-normal component is mirrored and negated,
// so the domain behaves as a contained fluid.
func (d *Device) Divergence(dst, velocity fluid.Field) {
	out := dst.(*Grid)
	vel := velocity.(*Grid)
	for y := 0; y < out.h; y++ {
		for x := 0; x < out.w; x++ {
			left := vel.atClamped(x-1, y, 0)
			right := vel.atClamped(x+1, y, 0)
			bottom := vel.atClamped(x, y-1, 1)
			top := vel.atClamped(x, y+1, 1)

			if x == 0 {
				left = -vel.At(x, y, 0)
			}
			if x == out.w-1 {
				right = -vel.At(x, y, 0)
			}
			if y == 0 {
				bottom = -vel.At(x, y, 1)
			}
			if y == out.h-1 {
				top = -vel.At(x, y, 1)
			}

			out.Set(x, y, 0, 0.5*(right-left+top-bottom))
		}
	}
}

// PressureJacobi performs one relaxation step of the pressure Poisson
// equation: p' = (pL + pR + pB + pT - div) / 4.
func (d *Device) PressureJacobi(dst, pressure, divergence fluid.Field) {
	out := dst.(*Grid)
	p := pressure.(*Grid)
	div := divergence.(*Grid)
	for y := 0; y < out.h; y++ {
		for x := 0; x < out.w; x++ {
			sum := p.atClamped(x-1, y, 0) + p.atClamped(x+1, y, 0) +
				p.atClamped(x, y-1, 0) + p.atClamped(x, y+1, 0)
			out.Set(x, y, 0, (sum-div.At(x, y, 0))*0.25)
		}
	}
}

// SubtractGradient projects velocity onto its divergence-free component by
// subtracting the central-difference pressure gradient.
func (d *Device) SubtractGradient(dst, velocity, pressure fluid.Field) {
	out := dst.(*Grid)
	vel := velocity.(*Grid)
	p := pressure.(*Grid)
	for y := 0; y < out.h; y++ {
		for x := 0; x < out.w; x++ {
			gradX := 0.5 * (p.atClamped(x+1, y, 0) - p.atClamped(x-1, y, 0))
			gradY := 0.5 * (p.atClamped(x, y+1, 0) - p.atClamped(x, y-1, 0))
			out.Set(x, y, 0, vel.At(x, y, 0)-gradX)
			out.Set(x, y, 1, vel.At(x, y, 1)-gradY)
		}
	}
}

// Advect traces each cell backward through the velocity field, bilinearly
// samples src at the departure point, and applies exponential dissipation
// decay 1/(1+dissipation*dt).
func (d *Device) Advect(dst, src, velocity fluid.Field, dt, dissipation float32) {
	out := dst.(*Grid)
	in := src.(*Grid)
	vel := velocity.(*Grid)

	decay := 1.0 / (1.0 + dissipation*dt)
	for y := 0; y < out.h; y++ {
		for x := 0; x < out.w; x++ {
			fx := float32(x) - dt*vel.At(x, y, 0)
			fy := float32(y) - dt*vel.At(x, y, 1)
			for c := 0; c < out.comps; c++ {
				out.Set(x, y, c, in.sample(fx, fy, c)*decay)
			}
		}
	}
}

// Composite writes the wet-on-wet blend of base and overlay: the midpoint of
// the subtractive pigment mix and a straight average, which darkens overlaps
// without the full harshness of pure subtraction.
func (d *Device) Composite(dst, base, overlay fluid.Field) {
	out := dst.(*Grid)
	b := base.(*Grid)
	o := overlay.(*Grid)
	for i := range out.data {
		bv := b.data[i]
		ov := o.data[i]
		subtractive := bv*(1-ov) + ov*(1-bv)
		average := 0.5 * (bv + ov)
		out.data[i] = 0.5 * (subtractive + average)
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
