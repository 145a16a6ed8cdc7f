// Shader debug tool - renders the background haze to PNG files for inspection.
//
// Usage: go run ./cmd/shaderdebug -biome 2 -out debug.png
//
//	go run ./cmd/shaderdebug -all -out biomes.png
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wormsoup/components"
	"github.com/pthm-cable/wormsoup/renderer"
)

func main() {
	outPath := flag.String("out", "debug.png", "Output PNG path")
	width := flag.Int("width", 512, "Render width")
	height := flag.Int("height", 512, "Render height")
	biome := flag.Int("biome", 0, "Biome tint (0-4)")
	all := flag.Bool("all", false, "Render every biome, suffixing the output name")
	t := flag.Float64("time", 0, "Shader time in seconds")
	zoom := flag.Float64("zoom", 1, "Camera zoom")
	flag.Parse()

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Shader Debug")
	defer rl.CloseWindow()

	bg := renderer.NewBackgroundRenderer(int32(*width), int32(*height))
	bg.Init()
	defer bg.Unload()

	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	biomes := []components.Biome{components.Biome(*biome)}
	if *all {
		biomes = biomes[:0]
		for b := 0; b < components.NumBiomes; b++ {
			biomes = append(biomes, components.Biome(b))
		}
	}

	failed := false
	for _, b := range biomes {
		path := *outPath
		if *all {
			path = biomePath(*outPath, b)
		}

		bg.SetBaseColor(renderer.BiomeColor(b))

		rl.BeginTextureMode(target)
		rl.ClearBackground(rl.Black)
		bg.Draw(float32(*t), 0, 0, float32(*zoom))
		rl.EndTextureMode()

		// Get image from texture and flip it (OpenGL convention)
		img := rl.LoadImageFromTexture(target.Texture)
		rl.ImageFlipVertical(img)
		ok := rl.ExportImage(*img, path)
		rl.UnloadImage(img)

		if ok {
			fmt.Printf("%s haze rendered to: %s (%dx%d)\n", b, path, *width, *height)
		} else {
			fmt.Fprintf(os.Stderr, "Failed to export %s\n", path)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// biomePath inserts the lowercase biome name before the extension.
func biomePath(out string, b components.Biome) string {
	ext := filepath.Ext(out)
	return strings.TrimSuffix(out, ext) + "_" + strings.ToLower(b.String()) + ext
}
