// Package fluid implements a staged 2D incompressible fluid solver with a
// layered dye model. The host orchestration in this package is backend
// independent: per-pass kernels run behind the Device interface, with a CPU
// reference implementation in package solver and a shader implementation in
// package renderer.
package fluid

// Field is one half of a simulation buffer resident on a device. A field is
// owned by the engine that allocated it; Release must be called exactly once.
type Field interface {
	Width() int
	Height() int
	Components() int
	Release()
}

// SplatParams describes a plain Gaussian point injection. Position and radius
// are in normalized [0,1] texture coordinates. R,G,B carry the injected
// quantity: dye color for dye fields, (dx,dy,0) for velocity fields.
type SplatParams struct {
	X, Y     float32
	Radius   float32
	R, G, B  float32
	Strength float32
}

// BlossomParams describes a blossoming splat: a tight Gaussian core plus a
// broader exponential halo whose extent grows with the diffusion rate.
type BlossomParams struct {
	SplatParams
	DiffusionRate float32
}

// RippleParams describes an expanding annulus of outward velocity. The ring
// sits at RingRadius with falloff over RingWidth, and its strength is
// modulated around the ring by a sinusoid of WaveFrequency peaks and
// WaveAmplitude depth.
type RippleParams struct {
	X, Y          float32
	RingRadius    float32
	RingWidth     float32
	Strength      float32
	WaveFrequency float32
	WaveAmplitude float32
}

// Device executes the per-pass kernels of the solver. Every kernel has a
// single destination field that is distinct from all of its inputs; the
// engine enforces the ping-pong discipline by always targeting the write half
// of a pair and swapping afterwards. Kernels are data-parallel per pixel and
// must not retain references to their arguments.
type Device interface {
	// NewField allocates a w x h field with the given component count
	// (1 = scalar, 2 = vector, 3 = color), zero initialized.
	NewField(w, h, comps int) Field

	// Clear zeroes a field in place.
	Clear(f Field)

	// Curl writes the scalar curl of velocity via central differences.
	Curl(dst, velocity Field)

	// VorticityConfinement adds a confinement force derived from the curl
	// field to velocity, scaled by strength and dt.
	VorticityConfinement(dst, velocity, curl Field, strength, dt float32)

	// Divergence writes the central-difference divergence of velocity with
	// mirrored boundary-normal components at the domain edges.
	Divergence(dst, velocity Field)

	// PressureJacobi performs one Jacobi relaxation step of the pressure
	// Poisson equation.
	PressureJacobi(dst, pressure, divergence Field)

	// SubtractGradient subtracts the pressure gradient from velocity,
	// producing a near divergence-free field.
	SubtractGradient(dst, velocity, pressure Field)

	// Advect performs a semi-Lagrangian backward trace of src through
	// velocity, applying 1/(1+dissipation*dt) decay to the result.
	Advect(dst, src, velocity Field, dt, dissipation float32)

	// Splat writes src plus a Gaussian point injection into dst.
	Splat(dst, src Field, p SplatParams)

	// BlossomSplat writes src plus a core+halo injection into dst.
	BlossomSplat(dst, src Field, p BlossomParams)

	// RippleSplat writes velocity plus an annulus of outward radial
	// velocity into dst.
	RippleSplat(dst, velocity Field, p RippleParams)

	// Composite writes the wet-on-wet subtractive blend of base and
	// overlay into dst.
	Composite(dst, base, overlay Field)
}
