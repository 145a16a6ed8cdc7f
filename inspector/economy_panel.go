package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wormsoup/config"
	"github.com/pthm-cable/wormsoup/telemetry"
)

const (
	// History buffer size (number of data points to keep)
	economyHistorySize = 120 // 10 minutes at 5s windows

	// Line series indices
	seriesMarketCap = 0
	seriesVolume    = 1
	seriesBuyers    = 2
	seriesGrowth    = 3
	seriesWorms     = 4
	seriesColonies  = 5
	seriesMutations = 6
	seriesHatches   = 7
	numSeries       = 8
)

// Series scaled against the left (market) axis; the rest use the right axis.
var (
	marketSeries = []int{seriesMarketCap, seriesVolume}
	countSeries  = []int{seriesBuyers, seriesGrowth, seriesWorms, seriesColonies, seriesMutations, seriesHatches}
)

// EconomyPanel displays the economy and the population it drives with line
// graphs over recent stats windows.
type EconomyPanel struct {
	screenWidth  int32
	screenHeight int32

	panelWidth  int32
	panelHeight int32
	panelX      int32
	panelY      int32

	divisors config.EconomyConfig
	last     telemetry.WindowStats

	// Historical data for line graphs (ring buffers)
	history      [numSeries][]float64
	historyIndex int
	historyCount int

	// Series visibility (toggled by clicking legend)
	seriesVisible [numSeries]bool

	seriesNames  [numSeries]string
	seriesColors [numSeries]rl.Color
}

// Economy panel colors
var (
	colorEconomyTitle   = rl.Color{R: 200, G: 200, B: 220, A: 255}
	colorEconomyPanelBg = rl.Color{R: 20, G: 20, B: 30, A: 230}
	colorGraphBg        = rl.Color{R: 15, G: 15, B: 25, A: 255}
	colorGraphGrid      = rl.Color{R: 40, G: 40, B: 50, A: 255}
	colorGraphBorder    = rl.Color{R: 60, G: 60, B: 70, A: 255}

	colorSeriesCap       = rl.Color{R: 250, G: 210, B: 90, A: 255}  // Gold
	colorSeriesVolume    = rl.Color{R: 100, G: 149, B: 237, A: 255} // Cornflower blue
	colorSeriesBuyers    = rl.Color{R: 80, G: 180, B: 80, A: 255}   // Green
	colorSeriesGrowth    = rl.Color{R: 255, G: 255, B: 255, A: 255} // White
	colorSeriesWorms     = rl.Color{R: 150, G: 255, B: 150, A: 255} // Light green
	colorSeriesColonies  = rl.Color{R: 255, G: 150, B: 130, A: 255} // Light red
	colorSeriesMutations = rl.Color{R: 220, G: 120, B: 255, A: 255} // Violet
	colorSeriesHatches   = rl.Color{R: 150, G: 200, B: 255, A: 255} // Light blue
)

// NewEconomyPanel creates a new economy panel. divisors scale the growth
// breakdown bars.
func NewEconomyPanel(screenWidth, screenHeight int32, divisors config.EconomyConfig) *EconomyPanel {
	p := &EconomyPanel{
		panelHeight: 200,
		panelX:      10,
		divisors:    divisors,
	}
	p.Resize(screenWidth, screenHeight)

	for i := 0; i < numSeries; i++ {
		p.history[i] = make([]float64, economyHistorySize)
	}

	p.seriesVisible = [numSeries]bool{
		true,  // Market cap
		true,  // Volume
		false, // Buyers
		true,  // Growth
		true,  // Worms
		false, // Colonies
		false, // Mutations
		false, // Hatches
	}

	p.seriesNames = [numSeries]string{
		"Cap",
		"Volume",
		"Buyers",
		"Growth",
		"Worms",
		"Colonies",
		"Mutations",
		"Hatches",
	}

	p.seriesColors = [numSeries]rl.Color{
		colorSeriesCap,
		colorSeriesVolume,
		colorSeriesBuyers,
		colorSeriesGrowth,
		colorSeriesWorms,
		colorSeriesColonies,
		colorSeriesMutations,
		colorSeriesHatches,
	}

	return p
}

// Resize updates panel dimensions when the window is resized.
func (p *EconomyPanel) Resize(screenWidth, screenHeight int32) {
	p.screenWidth = screenWidth
	p.screenHeight = screenHeight

	// Leave room on the right for the inspector
	p.panelWidth = screenWidth - PanelWidth - 40
	if p.panelWidth < 400 {
		p.panelWidth = 400
	}
	p.panelY = screenHeight - p.panelHeight - 40
}

// Update records one stats window.
func (p *EconomyPanel) Update(s telemetry.WindowStats) {
	p.last = s

	idx := p.historyIndex
	p.history[seriesMarketCap][idx] = s.MarketCap
	p.history[seriesVolume][idx] = s.Volume
	p.history[seriesBuyers][idx] = float64(s.Buyers)
	p.history[seriesGrowth][idx] = s.Growth
	p.history[seriesWorms][idx] = float64(s.Worms)
	p.history[seriesColonies][idx] = float64(s.Colonies)
	p.history[seriesMutations][idx] = float64(s.Mutations)
	p.history[seriesHatches][idx] = float64(s.Hatches)

	p.historyIndex = (p.historyIndex + 1) % economyHistorySize
	if p.historyCount < economyHistorySize {
		p.historyCount++
	}
}

// Len returns the number of recorded windows.
func (p *EconomyPanel) Len() int {
	return p.historyCount
}

// Series returns the recorded values of one series, oldest first.
func (p *EconomyPanel) Series(series int) []float64 {
	out := make([]float64, p.historyCount)
	for i := range out {
		out[i] = p.history[series][p.ringIndex(i)]
	}
	return out
}

func (p *EconomyPanel) ringIndex(i int) int {
	return (p.historyIndex - p.historyCount + i + economyHistorySize) % economyHistorySize
}

// Contributions splits the last window's growth score into its cap, volume
// and buyer terms.
func (p *EconomyPanel) Contributions() (capTerm, volumeTerm, buyerTerm float64) {
	if p.divisors.CapDivisor > 0 {
		capTerm = p.last.MarketCap / p.divisors.CapDivisor
	}
	if p.divisors.VolumeDivisor > 0 {
		volumeTerm = p.last.Volume / p.divisors.VolumeDivisor
	}
	if p.divisors.BuyerDivisor > 0 {
		buyerTerm = float64(p.last.Buyers) / p.divisors.BuyerDivisor
	}
	return capTerm, volumeTerm, buyerTerm
}

// HandleInput processes mouse clicks for legend toggling.
func (p *EconomyPanel) HandleInput() {
	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}

	mx := rl.GetMouseX()
	my := rl.GetMouseY()

	legendY := p.panelY + p.panelHeight - 24
	legendX := p.panelX + 10

	for i := 0; i < numSeries; i++ {
		itemX := legendX + int32(i)*legendItemWidth
		if mx >= itemX && mx < itemX+legendItemWidth-4 && my >= legendY && my < legendY+18 {
			p.seriesVisible[i] = !p.seriesVisible[i]
			return
		}
	}
}

// Draw renders the economy panel with graphs.
func (p *EconomyPanel) Draw() {
	rl.DrawRectangle(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorEconomyPanelBg)
	rl.DrawRectangleLines(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorGraphBorder)

	rl.DrawText("ECONOMY", p.panelX+10, p.panelY+6, 14, colorEconomyTitle)

	if p.historyCount == 0 {
		rl.DrawText("Waiting for data...", p.panelX+100, p.panelY+80, 14, ColorTextDim)
		return
	}

	barsWidth := int32(180)
	graphX := p.panelX + barsWidth + 20
	graphY := p.panelY + 24
	graphW := p.panelWidth - barsWidth - 40
	graphH := p.panelHeight - 54 // Leave room for legend

	p.drawGrowthBars(p.panelX+10, p.panelY+28, barsWidth-20)
	p.drawGraph(graphX, graphY, graphW, graphH)
	p.drawLegend(p.panelX+10, p.panelY+p.panelHeight-24)
}

// drawGrowthBars draws each term's share of the growth score.
func (p *EconomyPanel) drawGrowthBars(x, y, width int32) {
	capTerm, volTerm, buyerTerm := p.Contributions()
	total := capTerm + volTerm + buyerTerm
	if total <= 0 {
		total = 1
	}

	barHeight := int32(14)
	spacing := int32(18)

	rl.DrawText(fmt.Sprintf("Growth %.2f", p.last.Growth), x, y, 12, ColorText)
	y += spacing

	p.drawSingleBar(x, y, width, barHeight, "Cap", capTerm, total, colorSeriesCap)
	y += spacing
	p.drawSingleBar(x, y, width, barHeight, "Vol", volTerm, total, colorSeriesVolume)
	y += spacing
	p.drawSingleBar(x, y, width, barHeight, "Buy", buyerTerm, total, colorSeriesBuyers)
	y += spacing + 4

	rl.DrawText(fmt.Sprintf("Worms %d  Colonies %d", p.last.Worms, p.last.Colonies), x, y, 11, ColorTextDim)
	y += 14
	rl.DrawText(fmt.Sprintf("Width %.1f  Speed %.2f", p.last.Width.Mean, p.last.Speed.Mean), x, y, 11, ColorTextDim)
}

// drawSingleBar draws one horizontal bar.
func (p *EconomyPanel) drawSingleBar(x, y, width, height int32, label string, value, total float64, color rl.Color) {
	labelW := int32(35)
	barW := width - labelW - 45

	rl.DrawText(label, x, y, 11, ColorText)

	barX := x + labelW
	rl.DrawRectangle(barX, y, barW, height, ColorBarBg)

	ratio := float32(value / total)
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	rl.DrawRectangle(barX, y, int32(float32(barW)*ratio), height, color)

	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barW+4, y, 10, ColorTextDim)
}

// drawGraph renders the line graph.
func (p *EconomyPanel) drawGraph(x, y, w, h int32) {
	rl.DrawRectangle(x, y, w, h, colorGraphBg)
	rl.DrawRectangleLines(x, y, w, h, colorGraphBorder)

	for i := int32(1); i < 4; i++ {
		gridY := y + (h * i / 4)
		rl.DrawLine(x, gridY, x+w, gridY, colorGraphGrid)
	}
	for i := int32(1); i < 6; i++ {
		gridX := x + (w * i / 6)
		rl.DrawLine(gridX, y, gridX, y+h, colorGraphGrid)
	}

	if p.historyCount < 2 {
		return
	}

	// Separate scaling for market values vs counts
	marketMin, marketMax := p.seriesRange(marketSeries)
	countMin, countMax := p.seriesRange(countSeries)

	for _, series := range marketSeries {
		if p.seriesVisible[series] {
			p.drawSeriesLine(x, y, w, h, series, marketMin, marketMax)
		}
	}
	for _, series := range countSeries {
		if p.seriesVisible[series] {
			p.drawSeriesLine(x, y, w, h, series, countMin, countMax)
		}
	}

	p.drawAxisLabels(x, y, w, h, marketMin, marketMax, countMin, countMax)
}

// seriesRange finds min/max across the visible series, padded by 10%.
func (p *EconomyPanel) seriesRange(seriesIndices []int) (min, max float64) {
	min = math.MaxFloat64
	max = -math.MaxFloat64
	hasVisible := false

	for _, s := range seriesIndices {
		if !p.seriesVisible[s] {
			continue
		}
		hasVisible = true

		for i := 0; i < p.historyCount; i++ {
			v := p.history[s][p.ringIndex(i)]
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	if !hasVisible || min >= max {
		return 0, 1
	}

	padding := (max - min) * 0.1
	if padding < 0.001 {
		padding = 0.001
	}
	return min - padding, max + padding
}

// drawSeriesLine draws one data series as a line.
func (p *EconomyPanel) drawSeriesLine(x, y, w, h int32, series int, minVal, maxVal float64) {
	color := p.seriesColors[series]
	valueRange := maxVal - minVal
	if valueRange <= 0 {
		valueRange = 1
	}

	var prevX, prevY int32
	for i := 0; i < p.historyCount; i++ {
		v := p.history[series][p.ringIndex(i)]

		px := x + int32(float64(i)*float64(w)/float64(p.historyCount-1))
		py := y + h - int32((v-minVal)/valueRange*float64(h))

		if py < y {
			py = y
		}
		if py > y+h {
			py = y + h
		}

		if i > 0 {
			rl.DrawLine(prevX, prevY, px, py, color)
		}
		prevX, prevY = px, py
	}
}

// drawAxisLabels draws Y-axis scale labels.
func (p *EconomyPanel) drawAxisLabels(x, y, w, h int32, marketMin, marketMax, countMin, countMax float64) {
	rl.DrawText(formatAmount(marketMax), x+2, y+2, 9, ColorTextDim)
	rl.DrawText(formatAmount(marketMin), x+2, y+h-10, 9, ColorTextDim)

	hasCountVisible := false
	for _, s := range countSeries {
		if p.seriesVisible[s] {
			hasCountVisible = true
			break
		}
	}
	if hasCountVisible {
		maxLabel := fmt.Sprintf("%.1f", countMax)
		minLabel := fmt.Sprintf("%.1f", countMin)
		textW := rl.MeasureText(maxLabel, 9)
		rl.DrawText(maxLabel, x+w-textW-2, y+2, 9, ColorTextDim)
		textW = rl.MeasureText(minLabel, 9)
		rl.DrawText(minLabel, x+w-textW-2, y+h-10, 9, ColorTextDim)
	}
}

const legendItemWidth = int32(88)

// drawLegend draws the interactive legend.
func (p *EconomyPanel) drawLegend(x, y int32) {
	for i := 0; i < numSeries; i++ {
		itemX := x + int32(i)*legendItemWidth
		color := p.seriesColors[i]

		if !p.seriesVisible[i] {
			color.A = 80
		}

		rl.DrawRectangle(itemX, y+2, 10, 10, color)

		textColor := ColorText
		if !p.seriesVisible[i] {
			textColor = ColorTextDim
		}
		rl.DrawText(p.seriesNames[i], itemX+14, y, 11, textColor)
	}

	hintX := x + int32(numSeries)*legendItemWidth + 10
	rl.DrawText("(click to toggle)", hintX, y, 10, ColorTextDim)
}

// formatAmount formats a market value for display.
func formatAmount(v float64) string {
	switch {
	case math.Abs(v) >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case math.Abs(v) >= 10000:
		return fmt.Sprintf("%.0fk", v/1000)
	case math.Abs(v) >= 1000:
		return fmt.Sprintf("%.1fk", v/1000)
	case math.Abs(v) >= 100:
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
