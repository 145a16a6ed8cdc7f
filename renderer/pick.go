package renderer

import (
	"math"

	"github.com/pthm-cable/wormsoup/telemetry"
)

// pickCellSize is the grid cell edge in world units.
const pickCellSize = 48

type cellKey struct{ col, row int32 }

// segmentRef locates one body point in a snapshot.
type segmentRef struct {
	worm *telemetry.WormState
	x, y float64
}

// SegmentGrid buckets every body point of a snapshot into square cells for
// radius picks. The plane is unbounded, so cells are keyed sparsely.
type SegmentGrid struct {
	cellSize float64
	cells    map[cellKey][]segmentRef
}

// NewSegmentGrid creates an empty grid.
func NewSegmentGrid(cellSize float64) *SegmentGrid {
	return &SegmentGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]segmentRef),
	}
}

// Clear removes all points, keeping cell storage for reuse.
func (g *SegmentGrid) Clear() {
	for k, refs := range g.cells {
		g.cells[k] = refs[:0]
	}
}

// Build indexes every segment of snap. The grid holds pointers into snap.
func (g *SegmentGrid) Build(snap *telemetry.WorldSnapshot) {
	g.Clear()
	if snap == nil {
		return
	}
	for i := range snap.Colonies {
		c := &snap.Colonies[i]
		for j := range c.Worms {
			w := &c.Worms[j]
			for _, s := range w.Segments {
				k := g.key(s.X, s.Y)
				g.cells[k] = append(g.cells[k], segmentRef{worm: w, x: s.X, y: s.Y})
			}
		}
	}
}

// Nearest returns the worm with a body point closest to (x, y), within
// radius, or nil.
func (g *SegmentGrid) Nearest(x, y, radius float64) *telemetry.WormState {
	var best *telemetry.WormState
	bestDist := radius * radius

	span := int32(math.Ceil(radius / g.cellSize))
	center := g.key(x, y)
	for dc := -span; dc <= span; dc++ {
		for dr := -span; dr <= span; dr++ {
			for _, ref := range g.cells[cellKey{center.col + dc, center.row + dr}] {
				dx, dy := ref.x-x, ref.y-y
				if d := dx*dx + dy*dy; d < bestDist {
					bestDist = d
					best = ref.worm
				}
			}
		}
	}
	return best
}

func (g *SegmentGrid) key(x, y float64) cellKey {
	return cellKey{
		col: int32(math.Floor(x / g.cellSize)),
		row: int32(math.Floor(y / g.cellSize)),
	}
}
