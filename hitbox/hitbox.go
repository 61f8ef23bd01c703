// Package hitbox defines the public-facing moving-shape types tracked
// by the orchestrator: HbVel/Hitbox (expressed with an absolute end
// time, the representation callers set and read) and their internal
// DurHitbox counterpart (expressed with a duration, the representation
// the solve package consumes), plus the HbProfile metadata contract a
// caller implements to identify and filter its own hitboxes.
//
// Errors:
//
//	ErrEndTimeBeforePresent - a Hitbox's end time precedes the current time.
//	ErrNonIsotropicResize - a circle's resize velocity does not keep width==height.
//	ErrShapeTooSmall - a shape's dimensions fell below the configured minimum.
package hitbox

import (
	"errors"
	"math"

	"github.com/vekarion/chronocollide/solve"
	"github.com/vekarion/chronocollide/vec2"
)

// Sentinel errors for the hitbox package. These back panics raised on
// contract violations (invalid configuration supplied by the caller),
// consistent with how invalid-option panics are raised elsewhere in
// this module: a fatal misuse is reported immediately, not threaded
// back as an error value the caller might ignore.
var (
	// ErrEndTimeBeforePresent indicates a Hitbox's end time precedes the present time.
	ErrEndTimeBeforePresent = errors.New("hitbox: end time must not precede the present time")

	// ErrNonIsotropicResize indicates a circle's resize velocity does not preserve width==height.
	ErrNonIsotropicResize = errors.New("hitbox: circle resize velocity must maintain aspect ratio")

	// ErrShapeTooSmall indicates a shape's dims fell below the configured minimum.
	ErrShapeTooSmall = errors.New("hitbox: shape width/height below minimum size")

	// ErrTimeBeyondEnd indicates advancement was requested past the velocity's end time.
	ErrTimeBeyondEnd = errors.New("hitbox: time exceeds velocity end time")
)

// HbId identifies a tracked hitbox.
type HbId = uint64

// HbGroup groups hitboxes for coarse interaction filtering.
type HbGroup = uint32

// DefaultGroups is the single-group list (group 0) that
// BasicProfile.InteractGroups returns; BasicProfile.Group reports the
// same group 0.
var DefaultGroups = [1]HbGroup{0}

// HbVel describes how a hitbox's position and dimensions change over
// time, valid up to an absolute EndTime.
type HbVel struct {
	Value, Resize vec2.Vec2
	EndTime       float64
}

// Moving returns an HbVel with the given position velocity, valid forever.
func Moving(value vec2.Vec2) HbVel {
	return HbVel{Value: value, EndTime: math.Inf(1)}
}

// MovingUntil returns an HbVel with the given position velocity, valid until endTime.
func MovingUntil(value vec2.Vec2, endTime float64) HbVel {
	return HbVel{Value: value, EndTime: endTime}
}

// Still returns a stationary HbVel, valid forever.
func Still() HbVel { return HbVel{EndTime: math.Inf(1)} }

// StillUntil returns a stationary HbVel, valid until endTime.
func StillUntil(endTime float64) HbVel { return HbVel{EndTime: endTime} }

// Hitbox is a shape plus its velocity, as tracked through the public API.
type Hitbox struct {
	Value vec2.PlacedShape
	Vel   HbVel
}

// New builds a Hitbox from a shape and velocity.
func New(value vec2.PlacedShape, vel HbVel) Hitbox {
	return Hitbox{Value: value, Vel: vel}
}

// NewMoving builds a Hitbox at shape moving with the given position
// velocity, valid forever. Shorthand for New(shape, Moving(vel)); kept
// here rather than as a PlacedShape method since vec2 cannot import
// hitbox without creating an import cycle back through solve.
func NewMoving(shape vec2.PlacedShape, vel vec2.Vec2) Hitbox {
	return New(shape, Moving(vel))
}

// NewMovingUntil is NewMoving with an absolute end time.
func NewMovingUntil(shape vec2.PlacedShape, vel vec2.Vec2, endTime float64) Hitbox {
	return New(shape, MovingUntil(vel, endTime))
}

// NewStill builds a stationary Hitbox at shape, valid forever.
func NewStill(shape vec2.PlacedShape) Hitbox {
	return New(shape, Still())
}

// NewStillUntil builds a stationary Hitbox at shape, valid until endTime.
func NewStillUntil(shape vec2.PlacedShape, endTime float64) Hitbox {
	return New(shape, StillUntil(endTime))
}

// MaxEdge returns the largest-magnitude rate of change, over all four
// cardinal directions, of the shape's own edges under this velocity --
// the fastest speed at which the shape's outline can be sweeping
// through space. Used by the grid to bound how soon a hitbox might
// cross into a new cell.
func (v HbVel) MaxEdge() float64 {
	return vec2.RawPlacedShape(v.Value, vec2.Rect, v.Resize).MaxEdge()
}

// AdvancedShape returns the shape moved and resized by the velocity
// over elapsed time. elapsed is not checked against EndTime.
func (h Hitbox) AdvancedShape(elapsed float64) vec2.PlacedShape {
	return h.Value.Advance(h.Vel.Value, h.Vel.Resize, elapsed)
}

// Validate enforces the invariants a tracked hitbox must satisfy:
// EndTime is not NaN and has not already passed, a circle's resize
// velocity keeps it a circle, and the shape is not already below the
// minimum tracked size. Panics on violation.
func (h Hitbox) Validate(minSize, presentTime float64) {
	if math.IsNaN(h.Vel.EndTime) || h.Vel.EndTime < presentTime {
		panic(ErrEndTimeBeforePresent.Error())
	}
	if h.Value.Kind() == vec2.Circle && h.Vel.Resize.X != h.Vel.Resize.Y {
		panic(ErrNonIsotropicResize.Error())
	}
	dims := h.Value.Dims()
	if dims.X < minSize || dims.Y < minSize {
		panic(ErrShapeTooSmall.Error())
	}
}

// TimeUntilTooSmall returns how much longer, from now, the shape can
// shrink before either dimension drops below 0.9*minSize. Returns
// +Inf if the shape is not shrinking on any dimension whose resize
// velocity is negative.
//
// This divides by the dimension (resize) velocity, not the position
// velocity: the two are easy to conflate since both live on HbVel, but
// only the resize velocity governs how fast the shape's own size is
// changing.
func (h Hitbox) TimeUntilTooSmall(minSize float64) float64 {
	threshold := minSize * 0.9
	dims := h.Value.Dims()
	if dims.X <= threshold || dims.Y <= threshold {
		panic(ErrShapeTooSmall.Error())
	}

	t := math.Inf(1)
	if h.Vel.Resize.X < 0 {
		t = math.Min(t, (threshold-dims.X)/h.Vel.Resize.X)
	}
	if h.Vel.Resize.Y < 0 {
		t = math.Min(t, (threshold-dims.Y)/h.Vel.Resize.Y)
	}

	return t
}

// ToDurHitbox snapshots the hitbox at the given absolute time,
// producing the duration-based representation the solve package
// consumes. Panics if time is beyond the velocity's end time.
func (h Hitbox) ToDurHitbox(time float64) solve.DurHitbox {
	if time > h.Vel.EndTime {
		panic(ErrTimeBeyondEnd.Error())
	}

	return solve.DurHitbox{
		Value: h.Value,
		Vel: solve.DurHbVel{
			Value:    h.Vel.Value,
			Resize:   h.Vel.Resize,
			Duration: h.Vel.EndTime - time,
		},
	}
}

// CollideTime returns the time from now until h and other start overlapping.
func (h Hitbox) CollideTime(other Hitbox, now float64) float64 {
	return solve.CollideTime(h.ToDurHitbox(now), other.ToDurHitbox(now))
}

// SeparateTime returns the time from now until h and other, inflated
// by padding, stop overlapping.
func (h Hitbox) SeparateTime(other Hitbox, padding, now float64) float64 {
	return solve.SeparateTime(h.ToDurHitbox(now), other.ToDurHitbox(now), padding)
}

// HbProfile is metadata a caller attaches to each tracked hitbox: an
// identifier, optional grouping for broad-phase filtering, and the
// symmetric interaction predicate deciding whether two hitboxes should
// ever be checked against each other at all.
type HbProfile interface {
	// ID uniquely identifies the hitbox. Adding a second hitbox with an
	// ID already tracked by the same Collider is a fatal misuse.
	ID() HbId

	// Group returns the hitbox's group, or ok=false to exclude it from
	// all collision reporting.
	Group() (group HbGroup, ok bool)

	// InteractGroups lists the groups this hitbox's group is willing to
	// interact with.
	InteractGroups() []HbGroup

	// CanInteract reports whether this hitbox and other should ever be
	// checked against each other. Must be symmetric: a.CanInteract(b)
	// must equal b.CanInteract(a).
	CanInteract(other HbProfile) bool
}

// BasicProfile is a ready-to-use HbProfile for callers that don't need
// custom grouping or interaction rules: every BasicProfile interacts
// with every other.
type BasicProfile struct {
	IDValue HbId
}

// ID returns the profile's id.
func (p BasicProfile) ID() HbId { return p.IDValue }

// Group always returns (0, true): every BasicProfile belongs to the
// single default group.
func (p BasicProfile) Group() (HbGroup, bool) { return 0, true }

// InteractGroups always returns the default single-group list.
func (p BasicProfile) InteractGroups() []HbGroup { return DefaultGroups[:] }

// CanInteract always returns true.
func (p BasicProfile) CanInteract(HbProfile) bool { return true }
