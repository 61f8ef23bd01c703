package vec2

import "math"

// ShapeKind is the discriminator between the two shapes Collider
// understands: axis-aligned rectangles and circles.
type ShapeKind int

const (
	// Rect is an axis-aligned rectangle shape.
	Rect ShapeKind = iota
	// Circle requires equal width and height.
	Circle
)

// Shape is a kind plus dimensions, without a position. Dims are
// allowed to go negative transiently inside the solvers (a resize
// velocity applied over elapsed time can shrink a shape below zero
// before the caller notices), so construction through the exported
// constructors enforces non-negativity while the package-private
// advance step does not.
type Shape struct {
	kind ShapeKind
	dims Vec2
}

// NewRect builds a Rect shape with the given width/height in dims.
// Panics if either dimension is negative.
func NewRect(dims Vec2) Shape {
	if dims.X < 0 || dims.Y < 0 {
		panic(ErrNegativeDims.Error())
	}

	return Shape{kind: Rect, dims: dims}
}

// NewCircle builds a Circle shape with the given diameter as both
// width and height. Panics if diameter is negative.
func NewCircle(diameter float64) Shape {
	if diameter < 0 {
		panic(ErrNegativeDims.Error())
	}

	return Shape{kind: Circle, dims: Vec2{X: diameter, Y: diameter}}
}

// NewSquare builds a Rect shape with equal width and height.
func NewSquare(width float64) Shape {
	return NewRect(Vec2{X: width, Y: width})
}

// withAnyDims builds a shape allowing negative dims, used internally
// by advance where a resize velocity may transiently cross zero.
func withAnyDims(kind ShapeKind, dims Vec2) Shape {
	if kind == Circle && dims.X != dims.Y {
		panic(ErrNonIsotropicCircle.Error())
	}

	return Shape{kind: kind, dims: dims}
}

// Kind returns the shape's kind.
func (s Shape) Kind() ShapeKind { return s.kind }

// Dims returns the shape's width/height.
func (s Shape) Dims() Vec2 { return s.dims }

// Place attaches a position to the shape, yielding a PlacedShape.
func (s Shape) Place(pos Vec2) PlacedShape { return PlacedShape{Pos: pos, Shape: s} }

// RawPlacedShape builds a PlacedShape without the non-negative-dims
// check, for representing velocity/resize pairs as a pseudo-shape so
// the edge/card-overlap machinery can be reused on them.
func RawPlacedShape(pos Vec2, kind ShapeKind, dims Vec2) PlacedShape {
	return PlacedShape{Pos: pos, Shape: withAnyDims(kind, dims)}
}

// advance returns the shape resized by resizeVel over elapsed time.
func (s Shape) advance(resizeVel Vec2, elapsed float64) Shape {
	return withAnyDims(s.kind, s.dims.Add(resizeVel.Scale(elapsed)))
}

// PlacedShape is a Shape located at a center position.
type PlacedShape struct {
	Pos   Vec2
	Shape Shape
}

// Kind is shorthand for Shape.Kind().
func (p PlacedShape) Kind() ShapeKind { return p.Shape.Kind() }

// Dims is shorthand for Shape.Dims().
func (p PlacedShape) Dims() Vec2 { return p.Shape.Dims() }

func (p PlacedShape) boundsCenter() Vec2 { return p.Pos }
func (p PlacedShape) boundsDims() Vec2   { return p.Shape.dims }

// MinX returns the lowest x coordinate covered by the shape.
func (p PlacedShape) MinX() float64 { return p.boundsLeft() }

// MinY returns the lowest y coordinate covered by the shape.
func (p PlacedShape) MinY() float64 { return p.boundsBottom() }

// MaxX returns the highest x coordinate covered by the shape.
func (p PlacedShape) MaxX() float64 { return p.boundsRight() }

// MaxY returns the highest y coordinate covered by the shape.
func (p PlacedShape) MaxY() float64 { return p.boundsTop() }

func (p PlacedShape) boundsBottom() float64 { return p.boundsCenter().Y - p.boundsDims().Y*0.5 }
func (p PlacedShape) boundsLeft() float64   { return p.boundsCenter().X - p.boundsDims().X*0.5 }
func (p PlacedShape) boundsTop() float64    { return p.boundsCenter().Y + p.boundsDims().Y*0.5 }
func (p PlacedShape) boundsRight() float64  { return p.boundsCenter().X + p.boundsDims().X*0.5 }

// edge returns the (possibly negated) boundary position in direction
// card, oriented so that a larger edge value always means "further
// out" in that direction -- MinusX/MinusY edges are negated so every
// edge value increases outward.
func (p PlacedShape) edge(card Card) float64 {
	switch card {
	case MinusY:
		return -p.boundsBottom()
	case MinusX:
		return -p.boundsLeft()
	case PlusY:
		return p.boundsTop()
	default: // PlusX
		return p.boundsRight()
	}
}

// maxEdge returns the largest absolute edge value over all four
// cardinal directions. On a velocity/resize pseudo-shape this is the
// fastest speed of any edge, which bounds a hitbox's grid cell period.
func (p PlacedShape) maxEdge() float64 {
	best := math.Inf(-1)
	for _, card := range Values() {
		e := math.Abs(p.edge(card))
		if e > best {
			best = e
		}
	}

	return best
}

// MaxEdge is the exported form of maxEdge, used by the grid package
// to compute a hitbox's cell period.
func (p PlacedShape) MaxEdge() float64 { return p.maxEdge() }

// cardOverlap measures how far src overlaps p along card: positive
// when src's edge in direction card extends past p's matching edge.
func (p PlacedShape) cardOverlap(src PlacedShape, card Card) float64 {
	return src.edge(card) + p.edge(card.Flip())
}

// CardOverlap is the exported form of cardOverlap, used by the
// continuous-time solvers to measure per-axis overlap and overlap
// velocity (the latter by calling CardOverlap on a pseudo-shape built
// from a velocity/resize pair via RawPlacedShape).
func (p PlacedShape) CardOverlap(src PlacedShape, card Card) float64 {
	return p.cardOverlap(src, card)
}

// Edge is the exported form of edge.
func (p PlacedShape) Edge(card Card) float64 { return p.edge(card) }

// corner returns the (x, y) position of the shape's corner in the
// given Sector. Panics if sector is not a corner sector.
func (p PlacedShape) corner(sector Sector) Vec2 {
	var x, y float64
	switch {
	case sector.x < 0:
		x = p.boundsLeft()
	case sector.x > 0:
		x = p.boundsRight()
	default:
		panic(ErrNotCorner.Error())
	}
	switch {
	case sector.y < 0:
		y = p.boundsBottom()
	case sector.y > 0:
		y = p.boundsTop()
	default:
		panic(ErrNotCorner.Error())
	}

	return Vec2{X: x, Y: y}
}

// Corner is the exported form of corner.
func (p PlacedShape) Corner(sector Sector) Vec2 { return p.corner(sector) }

// Overlaps reports whether p and other overlap (subject to negligible
// numerical error).
func (p PlacedShape) Overlaps(other PlacedShape) bool {
	return p.NormalFrom(other).Len() >= 0
}

// NormalFrom returns a vector pointing from other toward p, whose
// length is the minimum distance p would need to move along that
// direction to stop overlapping other. If the shapes do not overlap,
// the length is negative: the minimum distance p would need to move
// to start overlapping.
func (p PlacedShape) NormalFrom(other PlacedShape) DirVec2 {
	switch {
	case p.Kind() == Rect && other.Kind() == Rect:
		return rectRectNormal(p, other)
	case p.Kind() == Rect && other.Kind() == Circle:
		return rectCircleNormal(p, other)
	case p.Kind() == Circle && other.Kind() == Rect:
		return rectCircleNormal(other, p).Flip()
	default: // Circle, Circle
		return circleCircleNormal(p, other)
	}
}

// MaskedNormalFrom is like NormalFrom, but restricts the returned
// normal direction to cardinal directions present in mask. Panics if
// mask is empty, or if both shapes are circles and mask is not full.
func (p PlacedShape) MaskedNormalFrom(other PlacedShape, mask CardMask) DirVec2 {
	switch {
	case p.Kind() == Rect && other.Kind() == Rect:
		return maskedRectRectNormal(p, other, mask)
	case p.Kind() == Rect && other.Kind() == Circle:
		return maskedRectCircleNormal(p, other, mask)
	case p.Kind() == Circle && other.Kind() == Rect:
		return maskedRectCircleNormal(other, p, mask.Flip()).Flip()
	default: // Circle, Circle
		return maskedCircleCircleNormal(p, other, mask)
	}
}

// ContactPoint returns the point of contact between p and other, or
// the nearest point between them if they do not overlap.
func (p PlacedShape) ContactPoint(other PlacedShape) Vec2 {
	switch {
	case p.Kind() == Rect && other.Kind() == Rect:
		return rectRectContact(p, other)
	case p.Kind() == Circle:
		return circleAnyContact(p, other)
	default: // Rect, Circle
		return circleAnyContact(other, p)
	}
}

func (p PlacedShape) sector(point Vec2) Sector {
	x := intervalSector(p.MinX(), p.MaxX(), point.X)
	y := intervalSector(p.MinY(), p.MaxY(), point.Y)

	return Sector{x: x, y: y}
}

// Sector is the exported form of sector.
func (p PlacedShape) Sector(point Vec2) Sector { return p.sector(point) }

func (p PlacedShape) asRect() PlacedShape {
	return PlacedShape{Pos: p.Pos, Shape: NewRect(p.Shape.dims)}
}

// AsRect is the exported form of asRect.
func (p PlacedShape) AsRect() PlacedShape { return p.asRect() }

// BoundingBox returns the smallest Rect PlacedShape covering both p and other.
func (p PlacedShape) BoundingBox(other PlacedShape) PlacedShape {
	right := math.Max(p.MaxX(), other.MaxX())
	top := math.Max(p.MaxY(), other.MaxY())
	left := math.Min(p.MinX(), other.MinX())
	bottom := math.Min(p.MinY(), other.MinY())

	shape := NewRect(Vec2{X: right - left, Y: top - bottom})
	pos := Vec2{X: left + shape.dims.X*0.5, Y: bottom + shape.dims.Y*0.5}

	return PlacedShape{Pos: pos, Shape: shape}
}

// advance returns p moved by vel and resized by resizeVel over elapsed time.
func (p PlacedShape) advance(vel, resizeVel Vec2, elapsed float64) PlacedShape {
	return PlacedShape{
		Pos:   p.Pos.Add(vel.Scale(elapsed)),
		Shape: p.Shape.advance(resizeVel, elapsed),
	}
}

// Advance is the exported form of advance.
func (p PlacedShape) Advance(vel, resizeVel Vec2, elapsed float64) PlacedShape {
	return p.advance(vel, resizeVel, elapsed)
}

// Sector classifies a point's position relative to a shape's bounds
// along each axis independently: negative (below/left of the
// interval), zero (inside the interval), or positive (above/right).
type Sector struct {
	x, y int
}

func intervalSector(left, right, val float64) int {
	switch {
	case val < left:
		return -1
	case val > right:
		return 1
	default:
		return 0
	}
}

// IsCorner reports whether the sector lies strictly outside the
// shape's bounds on both axes, i.e. is diagonal to one of its corners.
func (s Sector) IsCorner() bool { return s.x != 0 && s.y != 0 }

// CornerCards returns the pair of cardinal directions forming the
// corner this sector points at, and true, or the zero value and false
// if the sector is not a corner.
func (s Sector) CornerCards() (h, v Card, ok bool) {
	if !s.IsCorner() {
		return 0, 0, false
	}

	h = MinusX
	if s.x > 0 {
		h = PlusX
	}
	v = MinusY
	if s.y > 0 {
		v = PlusY
	}

	return h, v, true
}
