package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ActionKind names a user command raised by the controls panel.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionBuy
	ActionVolume
	ActionMarketCap
	ActionMutate
	ActionNextColony
	ActionPause
	ActionSnapshot
)

func (a ActionKind) String() string {
	return [...]string{"none", "buy", "volume", "market_cap", "mutate", "next_colony", "pause", "snapshot"}[a]
}

// Action is one command with its amount. Amount is only meaningful for the
// economy actions.
type Action struct {
	Kind   ActionKind
	Amount float64
}

// StepSizes are the increments the economy buttons apply.
type StepSizes struct {
	Buyers    float32
	Volume    float32
	MarketCap float32
}

// Slider bounds for the step sizes.
const (
	maxBuyerStep  = 50
	maxVolumeStep = 20000
	maxCapStep    = 50000
)

// DefaultStepSizes returns the increments used on startup.
func DefaultStepSizes() StepSizes {
	return StepSizes{Buyers: 1, Volume: 1000, MarketCap: 5000}
}

// ControlsPanel renders the left-side panel: economy buttons, step size
// sliders and the overlay toggle list.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	drawn    int32 // height at the last Draw

	Steps StepSizes
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
		Steps:    DefaultStepSizes(),
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the visible panel, so
// clicks there are not treated as world picks.
func (c *ControlsPanel) Contains(x, y int32) bool {
	return c.visible && x >= c.x && x < c.x+c.width && y >= c.y && y < c.y+c.drawn
}

const (
	buttonHeight = 26
	sliderHeight = 16
)

// Draw renders the panel and returns the actions clicked this frame.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, paused bool) []Action {
	if !c.visible {
		return nil
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := float32(c.width - padding*2)
	half := (inner - 6) / 2

	c.drawn = c.height(overlays)
	r.DrawPanel(c.x, c.y, c.width, c.drawn)

	var actions []Action
	x := float32(c.x + padding)
	y := c.y + padding

	rl.DrawText("Economy", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: buttonHeight}, fmt.Sprintf("Buy x%d", int(c.Steps.Buyers))) {
		actions = append(actions, Action{Kind: ActionBuy, Amount: float64(int(c.Steps.Buyers))})
	}
	y += buttonHeight + 4
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: buttonHeight}, fmt.Sprintf("+%.0f vol", c.Steps.Volume)) {
		actions = append(actions, Action{Kind: ActionVolume, Amount: float64(c.Steps.Volume)})
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: float32(y), Width: half, Height: buttonHeight}, fmt.Sprintf("+%.0f cap", c.Steps.MarketCap)) {
		actions = append(actions, Action{Kind: ActionMarketCap, Amount: float64(c.Steps.MarketCap)})
	}
	y += buttonHeight + 8

	y = c.slider(x, y, inner, "Buyers/click", &c.Steps.Buyers, 1, maxBuyerStep)
	y = c.slider(x, y, inner, "Volume/click", &c.Steps.Volume, 100, maxVolumeStep)
	y = c.slider(x, y, inner, "Cap/click", &c.Steps.MarketCap, 500, maxCapStep)
	y += 4

	rl.DrawText("World", c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += lineHeight
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: buttonHeight}, "Mutate") {
		actions = append(actions, Action{Kind: ActionMutate})
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: float32(y), Width: half, Height: buttonHeight}, "Next colony") {
		actions = append(actions, Action{Kind: ActionNextColony})
	}
	y += buttonHeight + 4
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: buttonHeight}, toggleText(paused, "Resume", "Pause")) {
		actions = append(actions, Action{Kind: ActionPause})
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: float32(y), Width: half, Height: buttonHeight}, "Snapshot") {
		actions = append(actions, Action{Kind: ActionSnapshot})
	}
	y += buttonHeight + 8

	if overlays == nil {
		return actions
	}
	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}
	return actions
}

// slider draws a labeled SliderBar bound to v and returns the next Y.
func (c *ControlsPanel) slider(x float32, y int32, width float32, label string, v *float32, min, max float32) int32 {
	r := c.renderer
	rl.DrawText(fmt.Sprintf("%s: %.0f", label, *v), int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight - 2
	*v = gui.SliderBar(rl.Rectangle{X: x, Y: float32(y), Width: width, Height: sliderHeight}, "", "", *v, min, max)
	return y + sliderHeight + 6
}

// height returns the panel height for the current overlay list.
func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	r := c.renderer
	lh := r.Theme.LineHeight
	h := r.Theme.Padding*2 + lh + 4
	h += 3*buttonHeight + 4 + 8 + 8 + 4
	h += 3 * (lh - 2 + sliderHeight + 6)
	h += 4 + lh
	if overlays != nil {
		for _, cat := range overlays.Categories() {
			h += lh*int32(len(overlays.ByCategory(cat))+1) + 4
		}
	}
	return h
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "world":
		return "World Layers"
	case "debug":
		return "Debug"
	case "panels":
		return "Panels"
	default:
		return cat
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
