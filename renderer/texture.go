package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Texture is one half of a simulation buffer on the GPU: a render texture
// with bilinear filtering and clamped edges. Scalar and vector fields are
// byte-encoded around the shader ZERO point; dye fields are raw RGB.
type Texture struct {
	rt    rl.RenderTexture2D
	w, h  int
	comps int
}

// Width returns the texture width in texels.
func (t *Texture) Width() int { return t.w }

// Height returns the texture height in texels.
func (t *Texture) Height() int { return t.h }

// Components returns the logical per-texel component count.
func (t *Texture) Components() int { return t.comps }

// Handle exposes the underlying texture for scene drawing.
func (t *Texture) Handle() rl.Texture2D { return t.rt.Texture }

// Release frees the render texture.
func (t *Texture) Release() {
	rl.UnloadRenderTexture(t.rt)
}

// encodedZero is the clear color whose decoded value is exactly zero for
// encoded fields (ZERO = 128/255 in the shader prelude).
var encodedZero = rl.Color{R: 128, G: 128, B: 128, A: 255}

// clearColor returns the color that represents "empty" for this field type.
func (t *Texture) clearColor() rl.Color {
	if t.comps == 3 {
		return rl.Color{R: 0, G: 0, B: 0, A: 255}
	}
	return encodedZero
}

// ExportPNG writes the texture to a PNG file, flipped to top-down order.
// Debug and tooling path only.
func ExportPNG(t *Texture, path string) bool {
	img := rl.LoadImageFromTexture(t.rt.Texture)
	defer rl.UnloadImage(img)
	rl.ImageFlipVertical(img)
	return rl.ExportImage(*img, path)
}

// ReadPixels copies the texture back to CPU memory as RGBA bytes, row-major
// top to bottom. Debug and tooling path only; the per-frame solver never
// reads back.
func (t *Texture) ReadPixels() []rl.Color {
	img := rl.LoadImageFromTexture(t.rt.Texture)
	defer rl.UnloadImage(img)
	rl.ImageFlipVertical(img)

	colors := rl.LoadImageColors(img)
	defer rl.UnloadImageColors(colors)

	out := make([]rl.Color, t.w*t.h)
	copy(out, colors)
	return out
}
