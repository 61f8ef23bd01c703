package vec2

// Card enumerates the four cardinal directions used to describe the
// edges of an axis-aligned rectangle: MinusX (left), MinusY (bottom),
// PlusX (right), PlusY (top). The enumeration order returned by
// Values is load-bearing: the rect/rect normal (PlacedShape.NormalFrom)
// iterates it in this exact order and keeps the first card among those
// with equal smallest overlap.
type Card int

const (
	MinusX Card = iota
	MinusY
	PlusX
	PlusY
)

var cardValues = [4]Card{MinusX, MinusY, PlusX, PlusY}

// Values returns the four Card values in their canonical iteration order.
func Values() [4]Card { return cardValues }

// Flip returns the opposite cardinal direction.
func (c Card) Flip() Card {
	switch c {
	case MinusX:
		return PlusX
	case PlusY:
		return MinusY
	case PlusX:
		return MinusX
	default: // MinusY
		return PlusY
	}
}

// Vec2 returns the unit vector pointing in direction c.
func (c Card) Vec2() Vec2 {
	switch c {
	case MinusX:
		return Vec2{X: -1, Y: 0}
	case MinusY:
		return Vec2{X: 0, Y: -1}
	case PlusX:
		return Vec2{X: 1, Y: 0}
	default: // PlusY
		return Vec2{X: 0, Y: 1}
	}
}

// CardMask is a set of Card values, indexed by Card.
type CardMask [4]bool

// EmptyMask returns a CardMask with no direction set.
func EmptyMask() CardMask { return CardMask{} }

// FullMask returns a CardMask with all four directions set.
func FullMask() CardMask { return CardMask{true, true, true, true} }

// FromCard returns a CardMask with only c set.
func FromCard(c Card) CardMask {
	var m CardMask
	m[c] = true
	return m
}

// Has reports whether c is set in the mask.
func (m CardMask) Has(c Card) bool { return m[c] }

// Flip returns the mask with the X pair and Y pair of flags swapped,
// mirroring the fact that a normal measured from the other shape's
// perspective sees the opposite edges.
func (m CardMask) Flip() CardMask {
	return CardMask{m[PlusX], m[PlusY], m[MinusX], m[MinusY]}
}
