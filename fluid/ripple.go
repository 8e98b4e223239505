package fluid

import "math"

// dyeEdgeSamples is how many points around the advancing ring edge receive
// dye each update when a ripple carries dye.
const dyeEdgeSamples = 6

// originDyePhase is the fraction of a ripple's lifetime during which dye is
// also injected at the origin point.
const originDyePhase = 0.3

// RippleOptions configures one expanding ripple. Position, radii and widths
// are normalized [0,1]. Lifetime is in seconds.
type RippleOptions struct {
	X, Y          float32
	MaxRadius     float32
	RingWidth     float32
	Strength      float32
	WaveFrequency float32
	WaveAmplitude float32
	Lifetime      float32

	// Dye, when set, also injects R,G,B along the ring edge and at the
	// origin during the ring's early expansion.
	Dye     bool
	R, G, B float32
	LayerID string
}

type ripple struct {
	opts RippleOptions
	age  float32
}

// RippleSystem animates ring radii over their lifetimes, feeding annulus
// velocity (and optionally dye) into an engine each update.
type RippleSystem struct {
	eng    *Engine
	active []ripple
}

// NewRippleSystem creates a ripple animator bound to an engine.
func NewRippleSystem(eng *Engine) *RippleSystem {
	return &RippleSystem{eng: eng}
}

// Spawn starts a new ripple. Zero or negative lifetimes are rejected since
// the ring radius animates linearly over the lifetime.
func (s *RippleSystem) Spawn(opts RippleOptions) {
	if opts.Lifetime <= 0 || opts.MaxRadius <= 0 {
		return
	}
	s.active = append(s.active, ripple{opts: opts})
}

// Count returns the number of live ripples.
func (s *RippleSystem) Count() int { return len(s.active) }

// Update advances every live ripple by dt, injecting its current annulus into
// the engine and dropping ripples past their lifetime.
func (s *RippleSystem) Update(dt float32) {
	if dt <= 0 {
		return
	}
	kept := s.active[:0]
	for _, r := range s.active {
		r.age += dt
		progress := r.age / r.opts.Lifetime
		if progress >= 1 {
			continue
		}

		radius := r.opts.MaxRadius * progress
		s.eng.InjectRippleVelocity(r.opts.X, r.opts.Y,
			radius, r.opts.RingWidth,
			r.opts.Strength*(1-progress),
			r.opts.WaveFrequency, r.opts.WaveAmplitude)

		if r.opts.Dye {
			s.injectEdgeDye(r.opts, radius, progress)
		}
		kept = append(kept, r)
	}
	s.active = kept
}

// injectEdgeDye places dye around the advancing ring edge, plus a blot at the
// origin while the ring is still young.
func (s *RippleSystem) injectEdgeDye(opts RippleOptions, radius, progress float32) {
	strength := opts.Strength * (1 - progress)
	splatRadius := opts.RingWidth * 0.5
	if splatRadius <= 0 {
		return
	}

	for i := 0; i < dyeEdgeSamples; i++ {
		angle := float64(i) / dyeEdgeSamples * 2 * math.Pi
		x := opts.X + radius*float32(math.Cos(angle))
		y := opts.Y + radius*float32(math.Sin(angle))
		s.eng.InjectDye(DyeInjection{
			X: x, Y: y,
			R: opts.R, G: opts.G, B: opts.B,
			Strength: strength,
			Radius:   splatRadius,
			LayerID:  opts.LayerID,
		})
	}

	if progress < originDyePhase {
		s.eng.InjectDye(DyeInjection{
			X: opts.X, Y: opts.Y,
			R: opts.R, G: opts.G, B: opts.B,
			Strength: strength,
			Radius:   splatRadius * 2,
			LayerID:  opts.LayerID,
		})
	}
}
