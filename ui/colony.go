package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wormsoup/components"
	"github.com/pthm-cable/wormsoup/renderer"
	"github.com/pthm-cable/wormsoup/telemetry"
)

// ColonyPanel shows the DNA and population of the selected colony.
type ColonyPanel struct {
	renderer *Renderer
	desc     PanelDescriptor
	x, y     int32
}

// NewColonyPanel creates a colony panel.
func NewColonyPanel(x, y int32) *ColonyPanel {
	return &ColonyPanel{
		renderer: NewRenderer(),
		desc:     ColonyPanelDescriptor(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *ColonyPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel for c and returns its height.
func (p *ColonyPanel) Draw(c *telemetry.ColonyState) int32 {
	if c == nil {
		return 0
	}
	return p.renderer.DrawPanelDescriptor(p.x, p.y, p.desc, c)
}

func colonyOf(data any) *telemetry.ColonyState {
	c, _ := data.(*telemetry.ColonyState)
	if c == nil {
		return &telemetry.ColonyState{}
	}
	return c
}

// ColonyPanelDescriptor declares the colony panel layout.
func ColonyPanelDescriptor() PanelDescriptor {
	return PanelDescriptor{
		ID:    "colony",
		Width: 240,
		Sections: []SectionDescriptor{
			{
				ID:    "identity",
				Title: "Colony",
				Fields: []FieldDescriptor{
					{ID: "id", Label: "ID", Widget: WidgetText, TextGetter: func(d any) string {
						return fmt.Sprintf("#%d", colonyOf(d).ID)
					}},
					{ID: "temperament", Label: "Temper", Widget: WidgetText, TextGetter: func(d any) string {
						return colonyOf(d).DNA.Temperament.String()
					}},
					{ID: "biome", Label: "Biome", Widget: WidgetText, TextGetter: func(d any) string {
						return colonyOf(d).DNA.Biome.String()
					}},
					{ID: "style", Label: "Style", Widget: WidgetText, TextGetter: func(d any) string {
						return colonyOf(d).DNA.Style.String()
					}},
					{ID: "hue", Label: "Hue", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color {
						return renderer.ColonyColor(colonyOf(d).DNA, 1)
					}},
				},
			},
			{
				ID:    "dna",
				Title: "DNA",
				Fields: []FieldDescriptor{
					{ID: "chaos", Label: "Chaos", Widget: WidgetBar, Range: FieldRange{Min: components.MinChaos, Max: components.MaxChaos}, Getter: func(d any) float32 {
						return float32(colonyOf(d).DNA.Chaos)
					}},
					{ID: "drift", Label: "Drift", Widget: WidgetBar, Range: FieldRange{Min: components.MinDrift, Max: components.MaxDrift}, Getter: func(d any) float32 {
						return float32(colonyOf(d).DNA.Drift)
					}},
					{ID: "aura", Label: "Aura", Widget: WidgetBar, Range: FieldRange{Min: components.MinAura, Max: components.MaxAura}, Getter: func(d any) float32 {
						return float32(colonyOf(d).DNA.Aura)
					}},
				},
			},
			{
				ID:    "population",
				Title: "Population",
				Fields: []FieldDescriptor{
					{ID: "worms", Label: "Worms", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
						return float32(len(colonyOf(d).Worms))
					}},
					{ID: "mutations", Label: "Mutations", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
						return float32(colonyOf(d).MutationCount)
					}},
					{ID: "waves", Label: "Waves", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
						return float32(len(colonyOf(d).Shockwaves))
					}},
					{ID: "width", Label: "Avg width", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: 18}, Format: "%.1f", Getter: func(d any) float32 {
						return float32(avgWidth(colonyOf(d)))
					}, Visible: func(d any) bool {
						return len(colonyOf(d).Worms) > 0
					}},
				},
			},
		},
	}
}

func avgWidth(c *telemetry.ColonyState) float64 {
	if len(c.Worms) == 0 {
		return 0
	}
	sum := 0.0
	for _, w := range c.Worms {
		sum += w.Width
	}
	return sum / float64(len(c.Worms))
}
