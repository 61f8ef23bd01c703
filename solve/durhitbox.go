package solve

import "github.com/vekarion/chronocollide/vec2"

// DurHbVel is a hitbox velocity expressed relative to an internal
// snapshot time: Value is the linear position velocity, Resize is the
// linear dimension (width/height) velocity, and Duration is how long
// this velocity remains valid before the snapshot must be retaken.
// This mirrors the public HbVel (which uses an absolute end time)
// but in a form convenient for the solvers, which only ever need "how
// much longer is this velocity good for" rather than "until when".
type DurHbVel struct {
	Value, Resize vec2.Vec2
	Duration      float64
}

// Still returns a DurHbVel with zero velocity and the given duration.
func Still(duration float64) DurHbVel {
	return DurHbVel{Duration: duration}
}

// IsStill reports whether the velocity has no motion or resizing.
func (v DurHbVel) IsStill() bool {
	return v.Value == vec2.Vec2{} && v.Resize == vec2.Vec2{}
}

// Negate returns the velocity with Value and Resize reversed, used to
// run a solver "backwards in time" from a later snapshot.
func (v DurHbVel) Negate() DurHbVel {
	return DurHbVel{Value: v.Value.Neg(), Resize: v.Resize.Neg(), Duration: v.Duration}
}

// asPlaced represents Value (as position) and Resize (as dims) as a
// pseudo-PlacedShape so the
// per-Card overlap machinery in vec2 can be reused on velocities.
func (v DurHbVel) asPlaced(kind vec2.ShapeKind) vec2.PlacedShape {
	return vec2.RawPlacedShape(v.Value, kind, v.Resize)
}

// DurHitbox is a shape plus a DurHbVel, snapshotted at some internal
// time 0 -- i.e. Value already reflects the shape's position/size at
// the snapshot instant, and Vel describes how it evolves from there.
type DurHitbox struct {
	Value vec2.PlacedShape
	Vel   DurHbVel
}

// NewDurHitbox pairs a shape with the given velocity.
func NewDurHitbox(value vec2.PlacedShape, vel DurHbVel) DurHitbox {
	return DurHitbox{Value: value, Vel: vel}
}

// AdvancedShape returns the shape as it will be at elapsed time after
// the snapshot.
func (h DurHitbox) AdvancedShape(elapsed float64) vec2.PlacedShape {
	return h.Value.Advance(h.Vel.Value, h.Vel.Resize, elapsed)
}

// BoundingBox returns the smallest rect covering the shape across its
// entire remaining duration.
func (h DurHitbox) BoundingBox() vec2.PlacedShape {
	return h.BoundingBoxFor(h.Vel.Duration)
}

// BoundingBoxFor returns the smallest rect covering the shape from
// now through elapsed time from now.
func (h DurHitbox) BoundingBoxFor(elapsed float64) vec2.PlacedShape {
	if h.Vel.IsStill() {
		return h.Value.AsRect()
	}

	return h.Value.BoundingBox(h.AdvancedShape(elapsed))
}

func (h DurHitbox) velAsPlaced() vec2.PlacedShape {
	return h.Vel.asPlaced(h.Value.Kind())
}

// rebasedAt returns h as it will appear after elapsed time, with its
// velocity unchanged -- used to align two hitboxes' snapshots to a
// common instant before running a further solve from there.
func (h DurHitbox) rebasedAt(elapsed float64) DurHitbox {
	return DurHitbox{Value: h.AdvancedShape(elapsed), Vel: h.Vel}
}

// rebasedAndReversed returns h as it will appear after elapsed time, with its
// velocity reversed -- used to run a solver backwards in time from a
// later snapshot.
func (h DurHitbox) rebasedAndReversed(elapsed float64) DurHitbox {
	return DurHitbox{Value: h.AdvancedShape(elapsed), Vel: h.Vel.Negate()}
}
