package solve

import (
	"math"

	"github.com/vekarion/chronocollide/vec2"
)

// CollideTime returns the time from now until a and b start
// overlapping, or +Inf if they will not overlap within either
// hitbox's remaining duration.
func CollideTime(a, b DurHitbox) float64 {
	duration := math.Min(a.Vel.Duration, b.Vel.Duration)
	if !a.BoundingBoxFor(duration).Overlaps(b.BoundingBoxFor(duration)) {
		return math.Inf(1)
	}

	return timeUnpadded(a, b, true, duration)
}

// SeparateTime returns the time from now until a and b, inflated by
// padding on all sides, stop overlapping, or +Inf if they remain
// within padding of each other for the rest of either hitbox's
// remaining duration.
func SeparateTime(a, b DurHitbox, padding float64) float64 {
	if a.Value.Kind() == vec2.Rect && b.Value.Kind() == vec2.Circle {
		a, b = b, a
	}

	inflated := a
	inflated.Value = inflatePlacedShape(a.Value, padding)

	return timeUnpadded(inflated, b, false, math.Min(inflated.Vel.Duration, b.Vel.Duration))
}

func inflatePlacedShape(p vec2.PlacedShape, padding float64) vec2.PlacedShape {
	dims := p.Shape.Dims()
	grown := vec2.Vec2{X: dims.X + 2*padding, Y: dims.Y + 2*padding}
	if p.Kind() == vec2.Circle {
		return vec2.NewCircle(grown.X).Place(p.Pos)
	}

	return vec2.NewRect(grown).Place(p.Pos)
}

func timeUnpadded(a, b DurHitbox, forCollide bool, duration float64) float64 {
	var result float64
	switch {
	case a.Value.Kind() == vec2.Rect && b.Value.Kind() == vec2.Rect:
		result = rectRectTime(a, b, forCollide)
	case a.Value.Kind() == vec2.Circle && b.Value.Kind() == vec2.Circle:
		result = circleCircleTime(a, b, forCollide)
	case a.Value.Kind() == vec2.Rect && b.Value.Kind() == vec2.Circle:
		result = rectCircleTime(a, b, forCollide, duration)
	default: // Circle, Rect
		result = rectCircleTime(b, a, forCollide, duration)
	}
	if result >= duration {
		return math.Inf(1)
	}

	return result
}

func rectRectTime(a, b DurHitbox, forCollide bool) float64 {
	overlapStart := 0.0
	overlapEnd := math.Inf(1)
	aVel, bVel := a.velAsPlaced(), b.velAsPlaced()
	for _, card := range vec2.Values() {
		overlap := a.Value.CardOverlap(b.Value, card)
		overlapVel := aVel.CardOverlap(bVel, card)
		switch {
		case overlap < 0:
			if !forCollide {
				return 0
			} else if overlapVel <= 0 {
				return math.Inf(1)
			}
			overlapStart = math.Max(overlapStart, -overlap/overlapVel)
		case overlapVel < 0:
			overlapEnd = math.Min(overlapEnd, -overlap/overlapVel)
		}
		if overlapStart >= overlapEnd {
			if forCollide {
				return math.Inf(1)
			}
			return 0
		}
	}
	if forCollide {
		return overlapStart
	}

	return overlapEnd
}

func circleCircleTime(a, b DurHitbox, forCollide bool) float64 {
	sign := -1.0
	if forCollide {
		sign = 1.0
	}

	netRad := 0.5 * (a.Value.Dims().X + b.Value.Dims().X)
	dist := a.Value.Pos.Sub(b.Value.Pos)

	coeffC := sign * (netRad*netRad - dist.LenSq())
	if coeffC > 0 {
		return 0
	}

	netRadVel := 0.5 * (a.Vel.Resize.X + b.Vel.Resize.X)
	distVel := a.Vel.Value.Sub(b.Vel.Value)

	coeffA := sign * (netRadVel*netRadVel - distVel.LenSq())
	coeffB := sign * 2 * (netRad*netRadVel - dist.Dot(distVel))

	root, ok := quadRootAscending(coeffA, coeffB, coeffC)
	if ok && root >= 0 {
		return root
	}

	return math.Inf(1)
}

func rectCircleTime(rect, circle DurHitbox, forCollide bool, duration float64) float64 {
	if forCollide {
		return rectCircleCollideTime(rect, circle, duration)
	}

	return rectCircleSeparateTime(rect, circle)
}

func rectCircleCollideTime(rect, circle DurHitbox, duration float64) float64 {
	baseTime := rectRectTime(rect, circle, true)
	if baseTime >= duration {
		return math.Inf(1)
	}

	rebasedRect := rect.rebasedAt(baseTime)
	rebasedCircle := circle.rebasedAt(baseTime)

	return baseTime + rebasedRectCircleCollideTime(rebasedRect, rebasedCircle)
}

// highTime mirrors the orchestrator's HIGH_TIME sentinel -- defined
// here too since rect/circle separation needs to recognize "already
// past the scheduling horizon" without importing the collider package.
const highTime = 1e50

func rectCircleSeparateTime(rect, circle DurHitbox) float64 {
	baseTime := rectRectTime(rect, circle, false)
	if baseTime == 0 {
		return 0
	}
	if baseTime >= highTime {
		return math.Inf(1)
	}

	rebasedRect := rect.rebasedAndReversed(baseTime)
	rebasedCircle := circle.rebasedAndReversed(baseTime)

	return math.Max(baseTime-rebasedRectCircleCollideTime(rebasedRect, rebasedCircle), 0)
}

func rebasedRectCircleCollideTime(rect, circle DurHitbox) float64 {
	sector := rect.Value.Sector(circle.Value.Pos)
	if !sector.IsCorner() {
		return 0
	}

	cornerPos := rect.Value.Corner(sector)
	cornerVelPos := rect.velAsPlaced().Corner(sector)
	corner := DurHitbox{
		Value: vec2.NewCircle(0).Place(cornerPos),
		Vel:   DurHbVel{Value: cornerVelPos, Duration: math.Inf(1)},
	}

	return circleCircleTime(corner, circle, true)
}
