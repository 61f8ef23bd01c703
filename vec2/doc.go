// Package vec2 provides the 2D geometry building blocks used across the
// collision engine: plain vectors, directed vectors (direction + signed
// length), the four cardinal directions and their masks, and the
// Rect/Circle Shape and PlacedShape types with their overlap, normal,
// and contact-point calculations.
//
// Nothing in this package depends on time; advancing a shape by a
// velocity over an elapsed duration (PlacedShape.Advance) is the one
// exception, and the hitbox and solve packages drive shape motion
// through it.
package vec2
