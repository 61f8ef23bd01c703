// Package solve_test exercises the continuous-time collide/separate
// solvers against hand-computed geometric scenarios: rectangles and
// circles approaching or receding from each other at known velocities,
// where the exact collision/separation instant can be derived by hand.
package solve_test

import (
	"math"
	"testing"

	"github.com/vekarion/chronocollide/solve"
	"github.com/vekarion/chronocollide/vec2"
)

func still(value vec2.PlacedShape, duration float64) solve.DurHitbox {
	return solve.DurHitbox{Value: value, Vel: solve.DurHbVel{Duration: duration}}
}

const eps = 1e-7

func assertClose(t *testing.T, got, want float64) {
	t.Helper()
	if math.IsInf(want, 1) {
		if !math.IsInf(got, 1) {
			t.Fatalf("expected +Inf, got %v", got)
		}
		return
	}
	if math.Abs(got-want) > eps {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRectRectCollision(t *testing.T) {
	a := still(vec2.NewRect(vec2.Vec2{X: 2, Y: 2}).Place(vec2.Vec2{X: -11, Y: 0}), 100)
	a.Vel.Value = vec2.Vec2{X: 2, Y: 0}

	b := still(vec2.NewRect(vec2.Vec2{X: 2, Y: 4}).Place(vec2.Vec2{X: 12, Y: 2}), 100)
	b.Vel.Value = vec2.Vec2{X: -0.5, Y: 0}
	b.Vel.Resize = vec2.Vec2{X: 1, Y: 0}

	assertClose(t, solve.CollideTime(a, b), 7.0)
	assertClose(t, solve.CollideTime(b, a), 7.0)
	assertClose(t, solve.SeparateTime(a, b, 0.1), 0.0)
}

func TestCircleCircleCollision(t *testing.T) {
	sqrt2 := math.Sqrt2
	a := still(vec2.NewCircle(2).Place(vec2.Vec2{X: -0.1 * sqrt2, Y: 0}), 100)
	a.Vel.Value = vec2.Vec2{X: 0.1, Y: 0}

	b := still(vec2.NewCircle(2+sqrt2*0.1).Place(vec2.Vec2{X: 3 * sqrt2, Y: 0}), 100)
	b.Vel.Value = vec2.Vec2{X: -2, Y: 1}
	b.Vel.Resize = vec2.Vec2{X: -0.1, Y: -0.1}

	assertClose(t, solve.CollideTime(a, b), sqrt2)
	assertClose(t, solve.SeparateTime(a, b, 0.1), 0.0)
}

func TestRectCircleCollision(t *testing.T) {
	a := still(vec2.NewCircle(2).Place(vec2.Vec2{X: -11, Y: 0}), 100)
	a.Vel.Value = vec2.Vec2{X: 2, Y: 0}

	b := still(vec2.NewRect(vec2.Vec2{X: 2, Y: 4}).Place(vec2.Vec2{X: 12, Y: 2}), 100)
	b.Vel.Value = vec2.Vec2{X: -1, Y: 0}

	assertClose(t, solve.CollideTime(a, b), 7.0)
	assertClose(t, solve.CollideTime(b, a), 7.0)
	assertClose(t, solve.SeparateTime(a, b, 0.1), 0.0)
}

func TestRectCircleAngledCollision(t *testing.T) {
	a := still(vec2.NewSquare(2).Place(vec2.Vec2{}), 100)

	b := still(vec2.NewCircle(2).Place(vec2.Vec2{X: 5, Y: 5}), 100)
	b.Vel.Value = vec2.Vec2{X: -1, Y: -1}

	expected := 4 - 1/math.Sqrt2
	assertClose(t, solve.CollideTime(a, b), expected)
}

func TestRectRectSeparation(t *testing.T) {
	a := still(vec2.NewRect(vec2.Vec2{X: 6, Y: 4}).Place(vec2.Vec2{X: 0, Y: 0}), 100)
	a.Vel.Value = vec2.Vec2{X: 1, Y: 1}

	b := still(vec2.NewRect(vec2.Vec2{X: 4, Y: 4}).Place(vec2.Vec2{X: 1, Y: 0}), 100)
	b.Vel.Value = vec2.Vec2{X: 0.5, Y: 0}

	assertClose(t, solve.SeparateTime(a, b, 0.1), 4.1)
	assertClose(t, solve.SeparateTime(b, a, 0.1), 4.1)
	assertClose(t, solve.CollideTime(a, b), 0.0)
}

func TestCircleCircleSeparation(t *testing.T) {
	sqrt2 := math.Sqrt2
	a := still(vec2.NewCircle(2).Place(vec2.Vec2{X: 2, Y: 5}), 100)

	b := still(vec2.NewCircle(1.8).Place(vec2.Vec2{X: 3, Y: 4}), 100)
	b.Vel.Value = vec2.Vec2{X: -1, Y: 1}

	assertClose(t, solve.SeparateTime(a, b, 0.1), 1.0+sqrt2)
	assertClose(t, solve.SeparateTime(b, a, 0.1), 1.0+sqrt2)
	assertClose(t, solve.CollideTime(a, b), 0.0)
}

func TestRectCircleSeparation(t *testing.T) {
	sqrt2 := math.Sqrt2
	a := still(vec2.NewRect(vec2.Vec2{X: 4, Y: 6}).Place(vec2.Vec2{X: 4, Y: 2}), 100)

	b := still(vec2.NewCircle(3.8).Place(vec2.Vec2{X: 3, Y: 4}), 100)
	b.Vel.Value = vec2.Vec2{X: -1, Y: 1}

	assertClose(t, solve.SeparateTime(a, b, 0.1), 1.0+sqrt2)
	assertClose(t, solve.SeparateTime(b, a, 0.1), 1.0+sqrt2)
	assertClose(t, solve.CollideTime(a, b), 0.0)
}

func TestRectCircleAngledSeparation(t *testing.T) {
	a := still(vec2.NewSquare(2).Place(vec2.Vec2{}), 100)

	b := still(vec2.NewCircle(2).Place(vec2.Vec2{X: -1, Y: 1}), 100)
	b.Vel.Value = vec2.Vec2{X: 1, Y: -1}

	expected := 2 + 1.1/math.Sqrt2
	assertClose(t, solve.SeparateTime(a, b, 0.1), expected)
}

func TestNoCollision(t *testing.T) {
	a := still(vec2.NewRect(vec2.Vec2{X: 2, Y: 2}).Place(vec2.Vec2{X: -11, Y: 0}), 100)
	a.Vel.Value = vec2.Vec2{X: 2, Y: 0}

	b := still(vec2.NewRect(vec2.Vec2{X: 2, Y: 4}).Place(vec2.Vec2{X: 12, Y: 2}), 100)
	b.Vel.Value = vec2.Vec2{X: -1, Y: 1}

	assertClose(t, solve.CollideTime(a, b), math.Inf(1))
	assertClose(t, solve.SeparateTime(a, b, 0.1), 0.0)

	b = still(vec2.NewCircle(2).Place(vec2.Vec2{X: 12, Y: 2}), 100)
	b.Vel.Value = vec2.Vec2{X: -1, Y: 1}
	assertClose(t, solve.CollideTime(a, b), math.Inf(1))
	assertClose(t, solve.SeparateTime(a, b, 0.1), 0.0)

	a = still(vec2.NewCircle(2).Place(vec2.Vec2{X: -11, Y: 0}), 100)
	a.Vel.Value = vec2.Vec2{X: 2, Y: 0}
	assertClose(t, solve.CollideTime(a, b), math.Inf(1))
	assertClose(t, solve.SeparateTime(a, b, 0.1), 0.0)
}

func TestNoSeparation(t *testing.T) {
	a := still(vec2.NewRect(vec2.Vec2{X: 2, Y: 2}).Place(vec2.Vec2{X: 5, Y: 1}), 100)
	a.Vel.Value = vec2.Vec2{X: 2, Y: 1}

	b := still(vec2.NewRect(vec2.Vec2{X: 2, Y: 4}).Place(vec2.Vec2{X: 5, Y: 1}), 100)
	b.Vel.Value = vec2.Vec2{X: 2, Y: 1}

	assertClose(t, solve.SeparateTime(a, b, 0.1), math.Inf(1))
	assertClose(t, solve.CollideTime(a, b), 0.0)

	b = still(vec2.NewCircle(2).Place(vec2.Vec2{X: 5, Y: 1}), 100)
	b.Vel.Value = vec2.Vec2{X: 2, Y: 1}
	assertClose(t, solve.SeparateTime(a, b, 0.1), math.Inf(1))
	assertClose(t, solve.CollideTime(a, b), 0.0)

	a = still(vec2.NewCircle(2).Place(vec2.Vec2{X: 5, Y: 1}), 100)
	a.Vel.Value = vec2.Vec2{X: 2, Y: 1}
	assertClose(t, solve.SeparateTime(a, b, 0.1), math.Inf(1))
	assertClose(t, solve.CollideTime(a, b), 0.0)
}

func TestLowDuration(t *testing.T) {
	sqrt2 := math.Sqrt2
	a := still(vec2.NewCircle(2).Place(vec2.Vec2{}), 4-sqrt2+0.01)

	b := still(vec2.NewCircle(2).Place(vec2.Vec2{X: 4, Y: 4}), 4-sqrt2+0.01)
	b.Vel.Value = vec2.Vec2{X: -1, Y: -1}

	assertClose(t, solve.CollideTime(a, b), 4-sqrt2)

	a.Vel.Duration -= 0.02
	assertClose(t, solve.CollideTime(a, b), math.Inf(1))

	b.Vel.Duration -= 0.02
	assertClose(t, solve.CollideTime(a, b), math.Inf(1))
}
