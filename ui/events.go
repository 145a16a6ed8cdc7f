package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wormsoup/telemetry"
)

// EventPanel shows the most recent world events, newest at the bottom.
type EventPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	lines    int
}

// NewEventPanel creates an event feed showing up to lines events.
func NewEventPanel(x, y, width int32, lines int) *EventPanel {
	return &EventPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		lines:    lines,
	}
}

// SetPosition updates the panel position.
func (p *EventPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Height returns the panel height.
func (p *EventPanel) Height() int32 {
	return p.renderer.Theme.Padding*2 + 20 + int32(p.lines)*p.renderer.Theme.LineHeight
}

// Draw renders the feed from log.
func (p *EventPanel) Draw(log *telemetry.EventLog) {
	r := p.renderer
	r.DrawPanel(p.x, p.y, p.width, p.Height())

	y := p.y + r.Theme.Padding
	rl.DrawText("Events", p.x+r.Theme.Padding, y, 16, rl.White)
	y += 20

	if log == nil {
		return
	}
	for _, e := range log.Recent(p.lines) {
		rl.DrawText(e.String(), p.x+r.Theme.Padding, y, r.Theme.FontSize, EventColor(e))
		y += r.Theme.LineHeight
	}
}

// EventColor returns the feed color for an event.
func EventColor(e telemetry.Event) rl.Color {
	switch e.Kind {
	case telemetry.KindBoss:
		return rl.Color{R: 255, G: 90, B: 90, A: 255}
	case telemetry.KindDash:
		return rl.Orange
	case telemetry.KindMutation:
		if e.Rare {
			return rl.Color{R: 220, G: 120, B: 255, A: 255}
		}
		return rl.Color{R: 150, G: 200, B: 255, A: 255}
	case telemetry.KindHatch:
		return rl.Color{R: 130, G: 220, B: 140, A: 255}
	}
	return rl.Color{R: 250, G: 210, B: 90, A: 255}
}
