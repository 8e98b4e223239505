package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/inkwash/fluid"
)

// DrawField stretches a simulation field over a screen rectangle. Render
// textures are stored bottom-up, so the source rect flips vertically.
// Fields from a non-GPU device (or nil) are ignored.
func DrawField(f fluid.Field, x, y, w, h float32, tint rl.Color) {
	t, ok := f.(*Texture)
	if !ok || t == nil {
		return
	}

	src := rl.Rectangle{
		X:      0,
		Y:      float32(t.h),
		Width:  float32(t.w),
		Height: -float32(t.h),
	}
	dst := rl.Rectangle{X: x, Y: y, Width: w, Height: h}
	rl.DrawTexturePro(t.rt.Texture, src, dst, rl.Vector2{}, 0, tint)
}
