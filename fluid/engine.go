package fluid

import (
	"log/slog"
	"math"
)

// Solver defaults. PressureIters is halved under performance mode.
const (
	DefaultPressureIters       = 15
	DefaultCurlStrength        = 30.0
	DefaultVelocityDissipation = 0.2
	DefaultDyeDissipation      = 1.0

	// maxDT bounds a single step's advection distance so a long frame
	// cannot destabilize the backward trace.
	maxDT = float32(1.0 / 60.0)

	// performanceDivisor halves simulation resolution in performance mode.
	performanceDivisor = 2

	// resolutionEpsilon is the no-op tolerance for SetResolution.
	resolutionEpsilon = 0.01

	// maxCompositeLayers caps how many dye layers are blended; additional
	// layers are simulated but not rendered.
	maxCompositeLayers = 5
)

// Params holds the solver coefficients applied on subsequent steps.
type Params struct {
	Viscosity           float32
	DyeDissipation      float32
	VelocityDissipation float32
	Curl                float32
	PressureIters       int
}

// DefaultParams returns the coefficients the engine starts with.
func DefaultParams() Params {
	return Params{
		DyeDissipation:      DefaultDyeDissipation,
		VelocityDissipation: DefaultVelocityDissipation,
		Curl:                DefaultCurlStrength,
		PressureIters:       DefaultPressureIters,
	}
}

// DyeInjection describes a blossoming splat into a named layer. Position and
// radius are normalized [0,1]. Dissipation overrides the layer default when
// positive. Viscosity, Temperature and Lifetime are carried per layer for
// callers that tune injection behavior over an effect's life.
type DyeInjection struct {
	X, Y          float32
	R, G, B       float32
	Strength      float32
	Radius        float32
	DiffusionRate float32
	Viscosity     float32
	Temperature   float32
	Lifetime      float32
	LayerID       string
	Dissipation   float32
}

// DyeLayer is an independently advected color field identified by a caller
// supplied key. Layers are created lazily on first injection and persist
// until the engine is resized or disposed.
type DyeLayer struct {
	color *DoubleBuffer

	DiffusionRate float32
	Viscosity     float32
	Dissipation   float32
}

// Engine owns every simulation buffer and runs the fixed per-frame pass
// sequence. All methods are called from a single goroutine (the render loop);
// the engine performs no internal locking.
type Engine struct {
	dev    Device
	params Params

	canvasW, canvasH int
	simW, simH       int
	lodScale         float32
	perfMode         bool

	velocity   *DoubleBuffer
	pressure   *DoubleBuffer
	divergence Field
	curl       Field

	// dye is the unkeyed base layer; keyed layers composite over it only
	// through DyeTexture when more than one layer is active.
	dye        *DoubleBuffer
	layers     map[string]*DyeLayer
	layerOrder []string
	final      *DoubleBuffer

	dummy Field

	lod      LODController
	disposed bool
}

// NewEngine creates an engine and allocates buffers for the given canvas
// size. Invalid dimensions leave the engine uninitialized; every operation on
// an uninitialized engine is a safe no-op.
func NewEngine(dev Device, canvasW, canvasH int) *Engine {
	e := &Engine{
		dev:      dev,
		params:   DefaultParams(),
		lodScale: 1.0,
		layers:   make(map[string]*DyeLayer),
		lod:      LODController{last: 1.0},
	}
	e.Resize(canvasW, canvasH)
	return e
}

// SetParams updates the solver coefficients for subsequent steps.
func (e *Engine) SetParams(p Params) {
	if p.PressureIters < 1 {
		p.PressureIters = DefaultPressureIters
	}
	e.params = p
}

// Params returns the current solver coefficients.
func (e *Engine) Params() Params { return e.params }

// Size returns the current simulation resolution.
func (e *Engine) Size() (int, int) { return e.simW, e.simH }

// PerformanceMode reports whether the 2x resolution divisor is active.
func (e *Engine) PerformanceMode() bool { return e.perfMode }

func (e *Engine) initialized() bool {
	return !e.disposed && e.velocity != nil && e.simW > 0 && e.simH > 0
}

// Step advances the simulation one frame. The pass order is fixed: curl,
// vorticity confinement, divergence, pressure relaxation, gradient
// subtraction, velocity advection, then dye advection for the base buffer and
// every layer. Reordering changes solver semantics.
func (e *Engine) Step(dt float32) {
	if !e.initialized() {
		return
	}
	if dt != dt || dt <= 0 {
		return
	}
	if dt > maxDT {
		dt = maxDT
	}

	dev := e.dev

	dev.Curl(e.curl, e.velocity.Read())
	dev.VorticityConfinement(e.velocity.Write(), e.velocity.Read(), e.curl, e.params.Curl, dt)
	e.velocity.Swap()

	dev.Divergence(e.divergence, e.velocity.Read())

	// Pressure is re-solved from zero each frame, not carried over.
	dev.Clear(e.pressure.Read())
	iters := e.params.PressureIters
	if e.perfMode {
		iters /= 2
	}
	if iters < 1 {
		iters = 1
	}
	for i := 0; i < iters; i++ {
		dev.PressureJacobi(e.pressure.Write(), e.pressure.Read(), e.divergence)
		e.pressure.Swap()
	}

	dev.SubtractGradient(e.velocity.Write(), e.velocity.Read(), e.pressure.Read())
	e.velocity.Swap()

	// The backward trace samples the projected, pre-advection velocity:
	// the read half serves as both carrier and sample source.
	dev.Advect(e.velocity.Write(), e.velocity.Read(), e.velocity.Read(), dt, e.params.VelocityDissipation)
	e.velocity.Swap()

	dev.Advect(e.dye.Write(), e.dye.Read(), e.velocity.Read(), dt, e.params.DyeDissipation)
	e.dye.Swap()

	for _, key := range e.layerOrder {
		l := e.layers[key]
		dev.Advect(l.color.Write(), l.color.Read(), e.velocity.Read(), dt, l.Dissipation)
		l.color.Swap()
	}
}

// InjectDye performs a blossoming splat into the named layer, creating the
// layer on first use. No-op while buffers are unavailable: injection callers
// run every frame and must not be coupled to solver readiness.
func (e *Engine) InjectDye(inj DyeInjection) {
	if !e.initialized() {
		return
	}
	if inj.Radius <= 0 || inj.Strength == 0 {
		return
	}

	layer := e.layer(inj.LayerID, inj)

	e.dev.BlossomSplat(layer.color.Write(), layer.color.Read(), BlossomParams{
		SplatParams: SplatParams{
			X: inj.X, Y: inj.Y,
			Radius:   inj.Radius,
			R:        inj.R,
			G:        inj.G,
			B:        inj.B,
			Strength: inj.Strength,
		},
		DiffusionRate: inj.DiffusionRate,
	})
	layer.color.Swap()
}

// InjectVelocity performs a plain Gaussian splat onto the velocity field.
// dx,dy are in normalized texture units per second.
func (e *Engine) InjectVelocity(x, y, radius, dx, dy, strength float32) {
	if !e.initialized() {
		return
	}
	if radius <= 0 {
		return
	}
	e.dev.Splat(e.velocity.Write(), e.velocity.Read(), SplatParams{
		X: x, Y: y,
		Radius:   radius,
		R:        dx,
		G:        dy,
		Strength: strength,
	})
	e.velocity.Swap()
}

// InjectRippleVelocity injects an expanding, wave-modulated annulus of
// outward velocity centered on x,y.
func (e *Engine) InjectRippleVelocity(x, y, ringRadius, ringWidth, strength, waveFrequency, waveAmplitude float32) {
	if !e.initialized() {
		return
	}
	if ringWidth <= 0 || ringRadius < 0 {
		return
	}
	e.dev.RippleSplat(e.velocity.Write(), e.velocity.Read(), RippleParams{
		X: x, Y: y,
		RingRadius:    ringRadius,
		RingWidth:     ringWidth,
		Strength:      strength,
		WaveFrequency: waveFrequency,
		WaveAmplitude: waveAmplitude,
	})
	e.velocity.Swap()
}

// layer returns the keyed layer, creating it at the shared simulation
// resolution if unseen. An empty key maps to a default keyed layer so callers
// that never name layers still get layered behavior.
func (e *Engine) layer(key string, inj DyeInjection) *DyeLayer {
	if key == "" {
		key = "default"
	}
	if l, ok := e.layers[key]; ok {
		if inj.Dissipation > 0 {
			l.Dissipation = inj.Dissipation
		}
		return l
	}
	l := &DyeLayer{
		color:         NewDoubleBuffer(e.dev, e.simW, e.simH, 3),
		DiffusionRate: inj.DiffusionRate,
		Viscosity:     inj.Viscosity,
		Dissipation:   inj.Dissipation,
	}
	if l.Dissipation <= 0 {
		l.Dissipation = e.params.DyeDissipation
	}
	e.layers[key] = l
	e.layerOrder = append(e.layerOrder, key)
	return l
}

// Texture returns the layer's current color buffer.
func (l *DyeLayer) Texture() Field {
	if l.color == nil {
		return nil
	}
	return l.color.Read()
}

// Layer returns the layer for a key, or nil if it has not been created.
func (e *Engine) Layer(key string) *DyeLayer {
	return e.layers[key]
}

// LayerCount returns the number of active dye layers.
func (e *Engine) LayerCount() int { return len(e.layerOrder) }

// DyeTexture returns the sampleable dye result. A single layer is returned
// directly without compositing; multiple layers are blended pairwise in
// insertion order with the wet-on-wet subtractive mix, capped at five layers.
// An uninitialized engine returns a static 1x1 dummy field so callers always
// receive a valid resource. After Dispose the result is nil.
func (e *Engine) DyeTexture() Field {
	if e.disposed {
		return nil
	}
	if !e.initialized() {
		if e.dummy == nil {
			e.dummy = e.dev.NewField(1, 1, 3)
		}
		return e.dummy
	}

	switch len(e.layerOrder) {
	case 0:
		return e.dye.Read()
	case 1:
		return e.layers[e.layerOrder[0]].color.Read()
	}

	order := e.layerOrder
	if len(order) > maxCompositeLayers {
		order = order[:maxCompositeLayers]
	}

	e.dev.Composite(e.final.Write(),
		e.layers[order[0]].color.Read(),
		e.layers[order[1]].color.Read())
	e.final.Swap()
	for _, key := range order[2:] {
		e.dev.Composite(e.final.Write(), e.final.Read(), e.layers[key].color.Read())
		e.final.Swap()
	}
	return e.final.Read()
}

// VelocityTexture returns the current velocity read half, for debug overlays.
func (e *Engine) VelocityTexture() Field {
	if !e.initialized() {
		return nil
	}
	return e.velocity.Read()
}

// CalculateLOD maps measured frame rate and active entity count to a quality
// tier. Pure apart from the controller's hysteresis state; the caller applies
// the decision on its own throttle and cooldown.
func (e *Engine) CalculateLOD(fps float32, entityCount int) LODDecision {
	return e.lod.Calculate(fps, entityCount)
}

// SetResolution changes the LOD resolution scale. Scale deltas under the
// no-op tolerance are ignored, and buffers are reallocated only when the
// resulting integer dimensions actually differ.
func (e *Engine) SetResolution(scale float32) {
	if e.disposed {
		return
	}
	if scale != scale || scale <= 0 {
		slog.Warn("invalid_resolution_ignored", "scale", scale)
		return
	}
	if math.Abs(float64(scale-e.lodScale)) < resolutionEpsilon {
		return
	}
	e.lodScale = scale
	nw, nh := e.simDims()
	if nw == e.simW && nh == e.simH {
		return
	}
	e.reallocate()
}

// SetPerformanceMode toggles the 2x resolution divisor, reallocating only on
// an actual change.
func (e *Engine) SetPerformanceMode(enabled bool) {
	if e.disposed || e.perfMode == enabled {
		return
	}
	e.perfMode = enabled
	e.reallocate()
}

// Resize recomputes simulation dimensions from a new canvas size and fully
// recreates every buffer and layer. Layer keys survive a resize; accumulated
// dye does not.
func (e *Engine) Resize(width, height int) {
	if e.disposed {
		return
	}
	if width <= 0 || height <= 0 {
		slog.Warn("invalid_resize_ignored", "width", width, "height", height)
		return
	}
	e.canvasW, e.canvasH = width, height
	e.reallocate()
}

// simDims derives the shared simulation resolution: canvas size scaled by the
// performance-mode factor and the LOD scale, clamped to at least one texel
// per axis.
func (e *Engine) simDims() (int, int) {
	factor := e.lodScale
	if e.perfMode {
		factor /= performanceDivisor
	}
	w := int(float32(e.canvasW) * factor)
	h := int(float32(e.canvasH) * factor)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// reallocate drops every buffer and recreates the full set at the current
// derived resolution. Resizing is all-or-nothing: no field is ever left at a
// stale resolution.
func (e *Engine) reallocate() {
	e.releaseBuffers()

	e.simW, e.simH = e.simDims()
	w, h := e.simW, e.simH

	e.velocity = NewDoubleBuffer(e.dev, w, h, 2)
	e.pressure = NewDoubleBuffer(e.dev, w, h, 1)
	e.divergence = e.dev.NewField(w, h, 1)
	e.curl = e.dev.NewField(w, h, 1)
	e.dye = NewDoubleBuffer(e.dev, w, h, 3)
	e.final = NewDoubleBuffer(e.dev, w, h, 3)

	for _, key := range e.layerOrder {
		l := e.layers[key]
		l.color = NewDoubleBuffer(e.dev, w, h, 3)
	}
}

func (e *Engine) releaseBuffers() {
	if e.velocity != nil {
		e.velocity.Release()
		e.velocity = nil
	}
	if e.pressure != nil {
		e.pressure.Release()
		e.pressure = nil
	}
	if e.divergence != nil {
		e.divergence.Release()
		e.divergence = nil
	}
	if e.curl != nil {
		e.curl.Release()
		e.curl = nil
	}
	if e.dye != nil {
		e.dye.Release()
		e.dye = nil
	}
	if e.final != nil {
		e.final.Release()
		e.final = nil
	}
	for _, l := range e.layers {
		if l.color != nil {
			l.color.Release()
			l.color = nil
		}
	}
}

// Dispose releases every buffer and layer. Safe to call more than once;
// all other methods no-op afterwards.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.releaseBuffers()
	if e.dummy != nil {
		e.dummy.Release()
		e.dummy = nil
	}
	e.layers = make(map[string]*DyeLayer)
	e.layerOrder = nil
	e.disposed = true
}
