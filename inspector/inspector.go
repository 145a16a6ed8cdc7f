package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wormsoup/camera"
	"github.com/pthm-cable/wormsoup/components"
	"github.com/pthm-cable/wormsoup/renderer"
	"github.com/pthm-cable/wormsoup/systems"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30

	// Screen-space pick radius in pixels
	pickRadius = 14
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Inspector manages worm selection and panel rendering. The selection is
// held by worm ID so it survives snapshot refreshes.
type Inspector struct {
	selected     uint32
	hasSelected  bool
	panelX       int32
	panelY       int32
	screenWidth  int32
	screenHeight int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{panelY: 140}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize re-anchors the panel to the right edge.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
}

// HandleInput processes click detection for worm selection. Picking uses the
// scene's last snapshot.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, cam *camera.Camera, scene *renderer.Scene) {
	// Right click or Escape to deselect
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
			int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
			ins.Deselect()
			return
		}

		// Clicks inside the panel are not picks
		if int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+PanelWidth &&
			int32(mouseY) >= ins.panelY {
			return
		}
	}

	wx, wy := cam.ScreenToWorld(mouseX, mouseY)
	radius := float64(pickRadius / cam.Zoom)
	if w := scene.WormAt(float64(wx), float64(wy), radius); w != nil {
		ins.Select(w.ID)
	}
}

// Select makes the worm with id the inspected worm.
func (ins *Inspector) Select(id uint32) {
	ins.selected = id
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected worm ID.
func (ins *Inspector) Selected() (uint32, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the inspector panel for the live worm if one is selected.
func (ins *Inspector) Draw(reg *systems.ColonyRegistry) {
	if !ins.hasSelected {
		return
	}
	e, ok := reg.FindWorm(ins.selected)
	if !ok {
		ins.Deselect()
		return
	}
	worm := reg.Worm(e)
	colony := reg.ColonyOf(e)
	dash := reg.Dash(e)

	wormFields := ExtractFields(worm)
	var dashFields []Field
	if dash != nil {
		dashFields = ExtractFields(dash)
	}

	panelHeight := ins.calculatePanelHeight(wormFields, dashFields)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	colonyText := "-"
	if colony != nil {
		colonyText = fmt.Sprintf("#%d %s", colony.ID, colony.DNA.Temperament)
	}
	rl.DrawRectangle(x, y+1, 12, 12, renderer.WormColor(worm.Hue, 1))
	rl.DrawText(fmt.Sprintf("Worm %d  Colony %s", worm.ID, colonyText), x+18, y, 14, ColorHeaderText)
	y += 22

	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	if len(worm.Segments) > 0 {
		head := worm.Head()
		y += DrawLabel(x, y, "Head", fmt.Sprintf("(%.0f, %.0f)", head.X, head.Y), nil)
		orbit := "-"
		if colony != nil {
			orbit = fmt.Sprintf("%.0f", math.Hypot(head.X-colony.Pos.X, head.Y-colony.Pos.Y))
		}
		y += DrawLabel(x, y, "Orbit", orbit, nil)
		y += DrawAngle(x, y, "Heading", float32(worm.Heading()), nil)
	}

	y += 4
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	ins.drawSectionHeader(x, y, "TRAITS")
	y += 20
	for _, f := range wormFields {
		y += DrawField(x, y, f)
	}

	if dash != nil {
		y += 4
		ins.drawSectionHeader(x, y, "BOSS DASH")
		y += 20
		for _, f := range dashFields {
			y += DrawField(x, y, f)
		}
	}
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// calculatePanelHeight computes the dynamic panel height.
func (ins *Inspector) calculatePanelHeight(wormFields, dashFields []Field) int32 {
	height := int32(HeaderHeight + PanelPadding)
	height += 22 // title line
	height += 8  // separator
	height += 20 // head
	height += 20 // orbit
	height += 44 // heading
	height += 12 // separator
	height += 20 // traits header
	for _, f := range wormFields {
		height += FieldHeight(f)
	}
	if len(dashFields) > 0 {
		height += 24
		for _, f := range dashFields {
			height += FieldHeight(f)
		}
	}
	return height + PanelPadding
}

// DrawSelectionHighlight draws a ring around the selected worm's head, its
// current orbit around the colony and, for a dashing boss, the dash cone.
// Call between BeginMode2D and EndMode2D.
func (ins *Inspector) DrawSelectionHighlight(reg *systems.ColonyRegistry) {
	if !ins.hasSelected {
		return
	}
	e, ok := reg.FindWorm(ins.selected)
	if !ok {
		return
	}
	worm := reg.Worm(e)
	if len(worm.Segments) == 0 {
		return
	}
	head := worm.Head()
	hx, hy := float32(head.X), float32(head.Y)

	rl.DrawCircleLinesV(rl.Vector2{X: hx, Y: hy}, float32(worm.Width)*1.8+4, rl.Yellow)

	colony := reg.ColonyOf(e)
	if colony == nil {
		return
	}
	cx, cy := float32(colony.Pos.X), float32(colony.Pos.Y)
	orbit := float32(math.Hypot(head.X-colony.Pos.X, head.Y-colony.Pos.Y))
	drawArc(cx, cy, orbit, 0, 2*math.Pi, rl.Color{R: 255, G: 255, B: 120, A: 60})
	drawSectorEdge(cx, cy, orbit, float32(math.Atan2(head.Y-colony.Pos.Y, head.X-colony.Pos.X)), rl.Color{R: 255, G: 255, B: 120, A: 80})

	if dash := reg.Dash(e); dash != nil && dash.Phase == components.DashDashing {
		const spread = math.Pi / 10
		h := float32(dash.Heading)
		drawSectorFilled(hx, hy, 120, h-spread, h+spread, rl.Color{R: 255, G: 120, B: 80, A: 50})
	}
}

// drawSectorFilled draws a filled pie sector.
func drawSectorFilled(cx, cy, radius, startAngle, endAngle float32, color rl.Color) {
	const segments = 12
	angleStep := (endAngle - startAngle) / float32(segments)

	for i := 0; i < segments; i++ {
		a1 := startAngle + float32(i)*angleStep
		a2 := a1 + angleStep

		x1 := cx + radius*float32(math.Cos(float64(a1)))
		y1 := cy + radius*float32(math.Sin(float64(a1)))
		x2 := cx + radius*float32(math.Cos(float64(a2)))
		y2 := cy + radius*float32(math.Sin(float64(a2)))

		// DrawTriangle requires counter-clockwise winding (screen coords: Y down)
		rl.DrawTriangle(
			rl.Vector2{X: cx, Y: cy},
			rl.Vector2{X: x2, Y: y2},
			rl.Vector2{X: x1, Y: y1},
			color,
		)
	}
}

// drawSectorEdge draws a line from center to the circle edge at angle.
func drawSectorEdge(cx, cy, radius, angle float32, color rl.Color) {
	ex := cx + radius*float32(math.Cos(float64(angle)))
	ey := cy + radius*float32(math.Sin(float64(angle)))
	rl.DrawLineV(rl.Vector2{X: cx, Y: cy}, rl.Vector2{X: ex, Y: ey}, color)
}

// drawArc draws an arc between two angles.
func drawArc(cx, cy, radius, startAngle, endAngle float32, color rl.Color) {
	const segments = 48
	angleStep := (endAngle - startAngle) / float32(segments)

	for i := 0; i < segments; i++ {
		a1 := startAngle + float32(i)*angleStep
		a2 := a1 + angleStep

		x1 := cx + radius*float32(math.Cos(float64(a1)))
		y1 := cy + radius*float32(math.Sin(float64(a1)))
		x2 := cx + radius*float32(math.Cos(float64(a2)))
		y2 := cy + radius*float32(math.Sin(float64(a2)))

		rl.DrawLineV(rl.Vector2{X: x1, Y: y1}, rl.Vector2{X: x2, Y: y2}, color)
	}
}
