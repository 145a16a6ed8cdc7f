package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wormsoup/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Buyers    int
	Volume    float64
	MarketCap float64
	Growth    float64
	Target    int
	NextSplit float64
	Colonies  int
	Worms     int
	Selected  int
	BossPhase string // empty before the boss emerges
	Tick      int64
	SimTime   float64
	FPS       int32
	Paused    bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD at the top right of the screen.
func (h *HUD) Draw(data HUDData, screenWidth int32) {
	x := screenWidth - 330

	rl.DrawText(data.Title, x, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Cap: %s | Vol: %s | Buyers: %d", FormatAmount(data.MarketCap), FormatAmount(data.Volume), data.Buyers),
		x, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Growth: %.2f | Target: %d | Next split: %s", data.Growth, data.Target, FormatAmount(data.NextSplit)),
		x, 55, 14, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Colonies: %d | Worms: %d | Selected: #%d", data.Colonies, data.Worms, data.Selected),
		x, 73, 14, rl.LightGray,
	)

	boss := "dormant"
	if data.BossPhase != "" {
		boss = data.BossPhase
	}
	rl.DrawText(
		fmt.Sprintf("Tick: %d | %.1fs | FPS: %d | Boss: %s", data.Tick, data.SimTime, data.FPS, boss),
		x, 91, 14, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, x, 111, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// FormatAmount abbreviates large economy values (12.3k, 4.50M).
func FormatAmount(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	}
	return fmt.Sprintf("%.0f", v)
}

// PerfPanel renders the step timing breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	p.renderer.DrawPanel(x-8, y-8, 300, 44+14*telemetry.NumPhases+8)

	rl.DrawText("Step Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Avg: %s  Max: %s  %.0f tps", stats.AvgTick.Round(time.Microsecond), stats.MaxTick.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, 14, rl.Yellow,
	)
	y += 16

	for i := 0; i < telemetry.NumPhases; i++ {
		pct := stats.PhasePct[i]

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(fmt.Sprintf("%-12s %5.1f%%", telemetry.Phase(i), pct), x, y, 12, color)
		y += 14
	}
}
