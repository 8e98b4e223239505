// Package renderer executes the fluid solver kernels as fragment shaders
// into ping-pong render textures, and draws the resulting dye field into the
// scene. Host code only sequences passes; all per-texel work happens on the
// GPU.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/inkwash/fluid"
)

// pass is one loaded kernel with its uniform locations cached.
type pass struct {
	shader rl.Shader
	locs   map[string]int32
}

func loadPass(src string, uniforms ...string) pass {
	shader := rl.LoadShaderFromMemory("", src)
	locs := make(map[string]int32, len(uniforms)+1)
	locs["resolution"] = rl.GetShaderLocation(shader, "resolution")
	for _, name := range uniforms {
		locs[name] = rl.GetShaderLocation(shader, name)
	}
	return pass{shader: shader, locs: locs}
}

func (p *pass) setFloat(name string, v float32) {
	rl.SetShaderValue(p.shader, p.locs[name], []float32{v}, rl.ShaderUniformFloat)
}

func (p *pass) setVec2(name string, x, y float32) {
	rl.SetShaderValue(p.shader, p.locs[name], []float32{x, y}, rl.ShaderUniformVec2)
}

func (p *pass) setVec3(name string, x, y, z float32) {
	rl.SetShaderValue(p.shader, p.locs[name], []float32{x, y, z}, rl.ShaderUniformVec3)
}

func (p *pass) setTexture(name string, t *Texture) {
	rl.SetShaderValueTexture(p.shader, p.locs[name], t.rt.Texture)
}

// Device implements fluid.Device with one fragment shader per kernel.
// Construct after the raylib window exists; Unload before it closes.
type Device struct {
	curl       pass
	vorticity  pass
	divergence pass
	pressure   pass
	gradient   pass
	advectVel  pass
	advectDye  pass
	splatVel   pass
	splatDye   pass
	blossom    pass
	ripple     pass
	composite  pass
}

// NewDevice loads every kernel shader.
func NewDevice() *Device {
	return &Device{
		curl:       loadPass(curlShader, "uVelocity"),
		vorticity:  loadPass(vorticityShader, "uVelocity", "uCurl", "curlStrength", "dt"),
		divergence: loadPass(divergenceShader, "uVelocity"),
		pressure:   loadPass(pressureShader, "uPressure", "uDivergence"),
		gradient:   loadPass(gradientShader, "uVelocity", "uPressure"),
		advectVel:  loadPass(advectVelocityShader, "uVelocity", "uSource", "dt", "dissipation"),
		advectDye:  loadPass(advectDyeShader, "uVelocity", "uSource", "dt", "dissipation"),
		splatVel:   loadPass(splatVelocityShader, "uSource", "point", "delta", "radius", "strength"),
		splatDye:   loadPass(splatDyeShader, "uSource", "point", "color", "radius", "strength"),
		blossom:    loadPass(blossomShader, "uSource", "point", "color", "radius", "strength", "diffusionRate"),
		ripple:     loadPass(rippleShader, "uSource", "point", "ringRadius", "ringWidth", "strength", "waveFrequency", "waveAmplitude"),
		composite:  loadPass(compositeShader, "uBase", "uOverlay"),
	}
}

// Unload releases every kernel shader. Fields are released by their engine.
func (d *Device) Unload() {
	for _, p := range []pass{
		d.curl, d.vorticity, d.divergence, d.pressure, d.gradient,
		d.advectVel, d.advectDye, d.splatVel, d.splatDye,
		d.blossom, d.ripple, d.composite,
	} {
		rl.UnloadShader(p.shader)
	}
}

// NewField allocates a render texture cleared to the field's zero value.
func (d *Device) NewField(w, h, comps int) fluid.Field {
	rt := rl.LoadRenderTexture(int32(w), int32(h))
	rl.SetTextureFilter(rt.Texture, rl.FilterBilinear)
	rl.SetTextureWrap(rt.Texture, rl.WrapClamp)

	t := &Texture{rt: rt, w: w, h: h, comps: comps}
	d.Clear(t)
	return t
}

// Clear resets a field to its zero value.
func (d *Device) Clear(f fluid.Field) {
	t := f.(*Texture)
	rl.BeginTextureMode(t.rt)
	rl.ClearBackground(t.clearColor())
	rl.EndTextureMode()
}

// run issues one fullscreen kernel draw into dst. bind runs inside shader
// mode so sampler uniforms attach to the draw.
func run(p *pass, dst *Texture, bind func()) {
	rl.BeginTextureMode(dst.rt)
	rl.BeginShaderMode(p.shader)
	p.setVec2("resolution", float32(dst.w), float32(dst.h))
	bind()
	rl.DrawRectangle(0, 0, int32(dst.w), int32(dst.h), rl.White)
	rl.EndShaderMode()
	rl.EndTextureMode()
}

// Curl writes the scalar curl of velocity.
func (d *Device) Curl(dst, velocity fluid.Field) {
	run(&d.curl, dst.(*Texture), func() {
		d.curl.setTexture("uVelocity", velocity.(*Texture))
	})
}

// VorticityConfinement adds the confinement force to velocity.
func (d *Device) VorticityConfinement(dst, velocity, curl fluid.Field, strength, dt float32) {
	run(&d.vorticity, dst.(*Texture), func() {
		d.vorticity.setTexture("uVelocity", velocity.(*Texture))
		d.vorticity.setTexture("uCurl", curl.(*Texture))
		d.vorticity.setFloat("curlStrength", strength)
		d.vorticity.setFloat("dt", dt)
	})
}

// Divergence writes the divergence of velocity.
func (d *Device) Divergence(dst, velocity fluid.Field) {
	run(&d.divergence, dst.(*Texture), func() {
		d.divergence.setTexture("uVelocity", velocity.(*Texture))
	})
}

// PressureJacobi performs one pressure relaxation step.
func (d *Device) PressureJacobi(dst, pressure, divergence fluid.Field) {
	run(&d.pressure, dst.(*Texture), func() {
		d.pressure.setTexture("uPressure", pressure.(*Texture))
		d.pressure.setTexture("uDivergence", divergence.(*Texture))
	})
}

// SubtractGradient removes the pressure gradient from velocity.
func (d *Device) SubtractGradient(dst, velocity, pressure fluid.Field) {
	run(&d.gradient, dst.(*Texture), func() {
		d.gradient.setTexture("uVelocity", velocity.(*Texture))
		d.gradient.setTexture("uPressure", pressure.(*Texture))
	})
}

// Advect backward-traces src through velocity. Velocity fields advect through
// the encoded-variant shader, dye through the raw RGB variant.
func (d *Device) Advect(dst, src, velocity fluid.Field, dt, dissipation float32) {
	p := &d.advectDye
	if src.Components() == 2 {
		p = &d.advectVel
	}
	run(p, dst.(*Texture), func() {
		p.setTexture("uVelocity", velocity.(*Texture))
		p.setTexture("uSource", src.(*Texture))
		p.setFloat("dt", dt)
		p.setFloat("dissipation", dissipation)
	})
}

// Splat adds a Gaussian point injection.
func (d *Device) Splat(dst, src fluid.Field, sp fluid.SplatParams) {
	if src.Components() == 2 {
		run(&d.splatVel, dst.(*Texture), func() {
			d.splatVel.setTexture("uSource", src.(*Texture))
			d.splatVel.setVec2("point", sp.X, sp.Y)
			d.splatVel.setVec2("delta", sp.R, sp.G)
			d.splatVel.setFloat("radius", sp.Radius)
			d.splatVel.setFloat("strength", sp.Strength)
		})
		return
	}
	run(&d.splatDye, dst.(*Texture), func() {
		d.splatDye.setTexture("uSource", src.(*Texture))
		d.splatDye.setVec2("point", sp.X, sp.Y)
		d.splatDye.setVec3("color", sp.R, sp.G, sp.B)
		d.splatDye.setFloat("radius", sp.Radius)
		d.splatDye.setFloat("strength", sp.Strength)
	})
}

// BlossomSplat adds a core-plus-halo dye injection.
func (d *Device) BlossomSplat(dst, src fluid.Field, bp fluid.BlossomParams) {
	run(&d.blossom, dst.(*Texture), func() {
		d.blossom.setTexture("uSource", src.(*Texture))
		d.blossom.setVec2("point", bp.X, bp.Y)
		d.blossom.setVec3("color", bp.R, bp.G, bp.B)
		d.blossom.setFloat("radius", bp.Radius)
		d.blossom.setFloat("strength", bp.Strength)
		d.blossom.setFloat("diffusionRate", bp.DiffusionRate)
	})
}

// RippleSplat adds an annulus of outward velocity.
func (d *Device) RippleSplat(dst, velocity fluid.Field, rp fluid.RippleParams) {
	run(&d.ripple, dst.(*Texture), func() {
		d.ripple.setTexture("uSource", velocity.(*Texture))
		d.ripple.setVec2("point", rp.X, rp.Y)
		d.ripple.setFloat("ringRadius", rp.RingRadius)
		d.ripple.setFloat("ringWidth", rp.RingWidth)
		d.ripple.setFloat("strength", rp.Strength)
		d.ripple.setFloat("waveFrequency", rp.WaveFrequency)
		d.ripple.setFloat("waveAmplitude", rp.WaveAmplitude)
	})
}

// Composite blends two dye layers wet-on-wet.
func (d *Device) Composite(dst, base, overlay fluid.Field) {
	run(&d.composite, dst.(*Texture), func() {
		d.composite.setTexture("uBase", base.(*Texture))
		d.composite.setTexture("uOverlay", overlay.(*Texture))
	})
}
