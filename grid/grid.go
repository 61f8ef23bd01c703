package grid

import (
	"math"

	"github.com/vekarion/chronocollide/hitbox"
	"github.com/vekarion/chronocollide/solve"
	"github.com/vekarion/chronocollide/vec2"
)

type gridKey struct {
	coord Coord
	group hitbox.HbGroup
}

type gridArea struct {
	rect  IndexRect
	group hitbox.HbGroup
}

func (a gridArea) contains(key gridKey) bool {
	return a.group == key.group && a.rect.Contains(key.coord)
}

// Grid is a sparse map from (cell, group) to the hitbox ids currently
// touching that cell, used to prune collision checks to nearby pairs.
type Grid struct {
	cells     map[gridKey]map[hitbox.HbId]struct{}
	cellWidth float64
}

// New builds an empty Grid with the given cell width.
func New(cellWidth float64) *Grid {
	return &Grid{cells: make(map[gridKey]map[hitbox.HbId]struct{}), cellWidth: cellWidth}
}

// CellPeriod returns how long, at worst, a hitbox with the given
// max edge speed can move before it might cross
// into a new grid cell, or +Inf if the hitbox has no group (so grid
// membership is irrelevant) or is not moving along any edge.
func (g *Grid) CellPeriod(maxEdgeSpeed float64, hasGroup bool) float64 {
	if !hasGroup {
		return math.Inf(1)
	}
	if maxEdgeSpeed <= 0 {
		return math.Inf(1)
	}

	return g.cellWidth / maxEdgeSpeed
}

// ShapeCellmates returns the set of tracked hitbox ids whose cells
// overlap shape's index bounds, restricted to the given groups.
func (g *Grid) ShapeCellmates(shape vec2.PlacedShape, groups []hitbox.HbGroup) map[hitbox.HbId]struct{} {
	bounds := g.indexBounds(shape)

	return g.overlappingIDs(nil, bounds, groups)
}

// UpdateHitbox repositions id's membership from oldHitbox's area to
// newHitbox's area (either may be nil for add/remove), then, if
// newHitbox is non-nil, returns the ids sharing newHitbox's new cells
// restricted to groups (excluding id itself). groups must be empty
// when newHitbox is nil.
func (g *Grid) UpdateHitbox(id hitbox.HbId, group hitbox.HbGroup, oldHitbox, newHitbox *solve.DurHitbox, groups []hitbox.HbGroup) map[hitbox.HbId]struct{} {
	if newHitbox == nil && len(groups) != 0 {
		panic("grid: groups must be empty when newHitbox is nil")
	}

	var oldArea, newArea *gridArea
	if oldHitbox != nil {
		a := g.gridArea(*oldHitbox, group)
		oldArea = &a
	}
	if newHitbox != nil {
		a := g.gridArea(*newHitbox, group)
		newArea = &a
	}
	g.updateArea(id, oldArea, newArea)
	if newArea == nil {
		return nil
	}

	return g.overlappingIDs(&id, newArea.rect, groups)
}

func (g *Grid) gridArea(hb solve.DurHitbox, group hitbox.HbGroup) gridArea {
	return gridArea{rect: g.indexBounds(hb.BoundingBox()), group: group}
}

func (g *Grid) indexBounds(bounds vec2.PlacedShape) IndexRect {
	startX := int(math.Floor(bounds.MinX() / g.cellWidth))
	startY := int(math.Floor(bounds.MinY() / g.cellWidth))
	endX := int(math.Ceil(bounds.MaxX() / g.cellWidth))
	if endX < startX+1 {
		endX = startX + 1
	}
	endY := int(math.Ceil(bounds.MaxY() / g.cellWidth))
	if endY < startY+1 {
		endY = startY + 1
	}

	return NewIndexRect(Coord{X: startX, Y: startY}, Coord{X: endX, Y: endY})
}

func (g *Grid) overlappingIDs(excludeID *hitbox.HbId, rect IndexRect, groups []hitbox.HbGroup) map[hitbox.HbId]struct{} {
	result := make(map[hitbox.HbId]struct{})
	for _, group := range groups {
		rect.ForEach(func(coord Coord) {
			key := gridKey{coord: coord, group: group}
			for otherID := range g.cells[key] {
				if excludeID == nil || otherID != *excludeID {
					result[otherID] = struct{}{}
				}
			}
		})
	}

	return result
}

func (g *Grid) updateArea(id hitbox.HbId, oldArea, newArea *gridArea) {
	if oldArea != nil {
		oldArea.rect.ForEach(func(coord Coord) {
			key := gridKey{coord: coord, group: oldArea.group}
			if newArea != nil && newArea.contains(key) {
				return
			}
			set := g.cells[key]
			if _, ok := set[id]; !ok {
				panic("grid: hitbox not present in expected cell")
			}
			delete(set, id)
			if len(set) == 0 {
				delete(g.cells, key)
			}
		})
	}
	if newArea != nil {
		newArea.rect.ForEach(func(coord Coord) {
			key := gridKey{coord: coord, group: newArea.group}
			if oldArea != nil && oldArea.contains(key) {
				return
			}
			set, ok := g.cells[key]
			if !ok {
				set = make(map[hitbox.HbId]struct{})
				g.cells[key] = set
			}
			if _, exists := set[id]; exists {
				panic("grid: hitbox already present in cell")
			}
			set[id] = struct{}{}
		})
	}
}
