// Shader debug tool - runs the GPU solver for a fixed number of steps against
// a seeded injection and writes the resulting dye field to a PNG.
//
// Usage: go run ./cmd/shaderdebug -steps 120 -out debug.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/inkwash/fluid"
	"github.com/pthm-cable/inkwash/renderer"
)

func main() {
	outPath := flag.String("out", "debug.png", "Output PNG path")
	width := flag.Int("width", 512, "Simulation width")
	height := flag.Int("height", 512, "Simulation height")
	steps := flag.Int("steps", 120, "Solver steps to run")
	flag.Parse()

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Shader Debug")
	defer rl.CloseWindow()

	dev := renderer.NewDevice()
	defer dev.Unload()

	eng := fluid.NewEngine(dev, *width, *height)
	defer eng.Dispose()

	// Seed a recognizable state: one pigment blot, a cross-stream and an
	// expanding ripple.
	eng.InjectDye(fluid.DyeInjection{
		X: 0.5, Y: 0.5,
		R: 0.2, G: 0.3, B: 0.7,
		Strength: 1.0, Radius: 0.08, DiffusionRate: 1.0,
		LayerID: "debug",
	})
	eng.InjectVelocity(0.3, 0.5, 0.05, 25, 0, 1)
	eng.InjectRippleVelocity(0.6, 0.6, 0.15, 0.04, 15, 6, 0.4)

	for i := 0; i < *steps; i++ {
		eng.Step(1.0 / 60.0)
	}

	tex, ok := eng.DyeTexture().(*renderer.Texture)
	if !ok {
		fmt.Fprintln(os.Stderr, "dye texture is not a GPU texture")
		os.Exit(1)
	}

	if !renderer.ExportPNG(tex, *outPath) {
		fmt.Fprintf(os.Stderr, "Failed to export %s\n", *outPath)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s after %d steps\n", *outPath, *steps)
}
