// Worm preview tool - interactive worm body styling with sliders.
//
// Usage: go run ./cmd/wormpreview [-config path.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wormsoup/components"
	"github.com/pthm-cable/wormsoup/config"
	"github.com/pthm-cable/wormsoup/renderer"
	"github.com/pthm-cable/wormsoup/telemetry"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 560
	panelWidth   = windowWidth - previewSize - 30
)

// PreviewParams holds the worm look being previewed.
type PreviewParams struct {
	Hue      float32
	Width    float32
	Segments int
	Limbs    int
	Style    components.Style
	Wave     float32 // body wave amplitude in world units
	Rate     float32 // body wave speed (rad/s)
	Boss     bool
}

// defaultParams derives a mid-range worm from the worm config.
func defaultParams(cfg config.WormConfig) PreviewParams {
	return PreviewParams{
		Hue:      200,
		Width:    float32(cfg.MinWidth+cfg.MaxWidth) / 2,
		Segments: (cfg.MinSegments + cfg.MaxSegments) / 2,
		Limbs:    2,
		Style:    components.Ribbon,
		Wave:     14,
		Rate:     3,
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config YAML (empty = embedded defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Worm Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := defaultParams(cfg.Worm)
	worms := renderer.NewWormRenderer()
	layers := renderer.DefaultLayers()

	cam := rl.Camera2D{
		Offset: rl.Vector2{X: 10 + previewSize/2, Y: 10 + previewSize/2},
		Zoom:   1.5,
	}

	var t float32
	animating := true

	for !rl.WindowShouldClose() {
		if animating {
			t += rl.GetFrameTime()
		}
		worm := buildWorm(params, cfg.Worm, float64(t))

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawRectangle(10, 10, previewSize, previewSize, rl.Color{R: 12, G: 16, B: 28, A: 255})
		rl.BeginScissorMode(10, 10, previewSize, previewSize)
		rl.BeginMode2D(cam)
		worms.Draw(&worm, params.Style, float64(t), layers)
		rl.EndMode2D()
		rl.EndScissorMode()
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Style: %s  Segments: %d  Limbs: %d", params.Style, params.Segments, params.Limbs), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Time: %.1f", t), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Worm Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		panelY = slider(panelX, panelY, "Hue (degrees)", &params.Hue, 0, 359, "%.0f")
		panelY = slider(panelX, panelY, "Width", &params.Width, float32(cfg.Worm.MinWidth), float32(cfg.Mutation.RareMaxWidth), "%.1f")

		segments := float32(params.Segments)
		panelY = slider(panelX, panelY, "Segments", &segments, 2, float32(cfg.Worm.MaxSegments+cfg.Worm.LargeSegments), "%.0f")
		params.Segments = int(segments)

		limbs := float32(params.Limbs)
		panelY = slider(panelX, panelY, "Limbs", &limbs, 0, float32(cfg.Worm.MaxLimbs), "%.0f")
		params.Limbs = int(limbs)

		style := float32(params.Style)
		panelY = slider(panelX, panelY, "Style", &style, 0, components.NumStyles-1, "%.0f")
		params.Style = components.Style(style)

		panelY = slider(panelX, panelY, "Wave amplitude", &params.Wave, 0, 40, "%.1f")
		panelY = slider(panelX, panelY, "Wave rate", &params.Rate, 0, 10, "%.1f")
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(params.Boss, "Unboss", "Boss")) {
			params.Boss = !params.Boss
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Hue") {
			params.Hue = float32(rl.GetRandomValue(0, 359))
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams(cfg.Worm)
			t = 0
		}
		panelY += 45

		rl.DrawText("Overlays:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 22
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 26}, toggleText(layers.Limbs, "Hide limbs", "Show limbs")) {
			layers.Limbs = !layers.Limbs
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 26}, toggleText(layers.Headings, "Hide heading", "Show heading")) {
			layers.Headings = !layers.Headings
		}

		rl.DrawText("Press C to copy parameters to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(describe(params))
		}

		rl.EndDrawing()
	}
}

// slider draws a labeled SliderBar bound to v and returns the next Y.
func slider(x, y float32, label string, v *float32, min, max float32, format string) float32 {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	*v = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		"", "",
		*v, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, *v), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.DarkGray)
	return y + 35
}

// buildWorm lays out a worm along a travelling sine wave centered on the
// origin, heading +X, with limbs spread evenly behind the head.
func buildWorm(p PreviewParams, cfg config.WormConfig, t float64) telemetry.WormState {
	n := max(p.Segments, 1)
	w := telemetry.WormState{
		ID:       1,
		Hue:      float64(p.Hue),
		Width:    float64(p.Width),
		Speed:    1,
		IsBoss:   p.Boss,
		Segments: make([]telemetry.SegmentState, n),
	}

	span := float64(n-1) * cfg.SegmentLength
	for i := range w.Segments {
		x := span/2 - float64(i)*cfg.SegmentLength
		phase := float64(p.Rate)*t - float64(i)*0.45
		y := float64(p.Wave) * math.Sin(phase)
		// Heading follows the local wave slope toward the head
		slope := float64(p.Wave) * 0.45 / cfg.SegmentLength * math.Cos(phase)
		w.Segments[i] = telemetry.SegmentState{X: x, Y: y, Heading: math.Atan(slope)}
	}

	if n > 1 {
		limbLen := (cfg.MinLimbLength + cfg.MaxLimbLength) / 2
		for i := 0; i < p.Limbs; i++ {
			side := 1.0
			if i%2 == 1 {
				side = -1
			}
			w.Limbs = append(w.Limbs, components.Limb{
				Attach:     1 + (i*(n-1))/max(p.Limbs, 1),
				Length:     limbLen,
				Angle:      side * math.Pi / 2,
				WobbleRate: 2 + float64(i%3),
			})
		}
	}
	return w
}

// describe renders params as a YAML-like snippet.
func describe(p PreviewParams) string {
	return fmt.Sprintf(`worm:
  hue: %.0f
  width: %.1f
  segments: %d
  limbs: %d
  style: %s
  boss: %t`,
		p.Hue, p.Width, p.Segments, p.Limbs, p.Style, p.Boss)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
