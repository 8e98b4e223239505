// Package solver is the CPU reference implementation of the fluid kernels.
// It runs the same staged pass sequence as the shader backend on float32
// grids, which makes it the execution device for tests and headless runs.
package solver

// Grid is a dense w x h field with 1 (scalar), 2 (vector) or 3 (color)
// float32 components per cell, row-major.
type Grid struct {
	w, h  int
	comps int
	data  []float32
}

// NewGrid allocates a zeroed grid.
func NewGrid(w, h, comps int) *Grid {
	return &Grid{
		w:     w,
		h:     h,
		comps: comps,
		data:  make([]float32, w*h*comps),
	}
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.w }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.h }

// Components returns the per-cell component count.
func (g *Grid) Components() int { return g.comps }

// Release drops the backing storage. Using the grid afterwards is invalid.
func (g *Grid) Release() { g.data = nil }

// Data exposes the backing slice for bulk access.
func (g *Grid) Data() []float32 { return g.data }

// At reads component c at cell x,y without bounds checking.
func (g *Grid) At(x, y, c int) float32 {
	return g.data[(y*g.w+x)*g.comps+c]
}

// Set writes component c at cell x,y.
func (g *Grid) Set(x, y, c int, v float32) {
	g.data[(y*g.w+x)*g.comps+c] = v
}

// atClamped reads with neighbors clamped to the domain edge, which gives the
// zero-normal-derivative boundary the pressure and gradient kernels need.
func (g *Grid) atClamped(x, y, c int) float32 {
	if x < 0 {
		x = 0
	} else if x >= g.w {
		x = g.w - 1
	}
	if y < 0 {
		y = 0
	} else if y >= g.h {
		y = g.h - 1
	}
	return g.data[(y*g.w+x)*g.comps+c]
}

// sample bilinearly interpolates component c at fractional cell coordinates,
// clamped to the domain.
func (g *Grid) sample(fx, fy float32, c int) float32 {
	if fx < 0 {
		fx = 0
	} else if fx > float32(g.w-1) {
		fx = float32(g.w - 1)
	}
	if fy < 0 {
		fy = 0
	} else if fy > float32(g.h-1) {
		fy = float32(g.h - 1)
	}

	x0 := int(fx)
	y0 := int(fy)
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 >= g.w {
		x1 = g.w - 1
	}
	if y1 >= g.h {
		y1 = g.h - 1
	}
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	v00 := g.At(x0, y0, c)
	v10 := g.At(x1, y0, c)
	v01 := g.At(x0, y1, c)
	v11 := g.At(x1, y1, c)

	v0 := v00 + (v10-v00)*tx
	v1 := v01 + (v11-v01)*tx
	return v0 + (v1-v0)*ty
}
