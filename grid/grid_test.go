package grid_test

import (
	"math"
	"testing"

	"github.com/vekarion/chronocollide/grid"
	"github.com/vekarion/chronocollide/hitbox"
	"github.com/vekarion/chronocollide/solve"
	"github.com/vekarion/chronocollide/vec2"
)

func TestIndexRectContains(t *testing.T) {
	r := grid.NewIndexRect(grid.Coord{X: 0, Y: 0}, grid.Coord{X: 2, Y: 2})
	if !r.Contains(grid.Coord{X: 0, Y: 0}) {
		t.Fatal("expected (0,0) inside [0,2)x[0,2)")
	}
	if r.Contains(grid.Coord{X: 2, Y: 0}) {
		t.Fatal("rect is half-open: x==2 must be excluded")
	}
}

func TestIndexRectPanicsOnEmptyRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic constructing an empty IndexRect")
		}
	}()
	grid.NewIndexRect(grid.Coord{X: 2, Y: 0}, grid.Coord{X: 0, Y: 2})
}

func TestIndexRectCellsOrder(t *testing.T) {
	r := grid.NewIndexRect(grid.Coord{X: 0, Y: 0}, grid.Coord{X: 2, Y: 2})
	want := []grid.Coord{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	got := r.Cells()
	if len(got) != len(want) {
		t.Fatalf("expected %d cells, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func still(shape vec2.PlacedShape) solve.DurHitbox {
	return solve.DurHitbox{Value: shape, Vel: solve.DurHbVel{Duration: math.Inf(1)}}
}

func TestGridCellPeriod(t *testing.T) {
	g := grid.New(4)
	if !math.IsInf(g.CellPeriod(10, false), 1) {
		t.Fatal("hitbox with no group should never need a reiterate")
	}
	if !math.IsInf(g.CellPeriod(0, true), 1) {
		t.Fatal("a motionless hitbox should never need a reiterate")
	}
	if got := g.CellPeriod(2, true); got != 2 {
		t.Fatalf("cell width 4 / edge speed 2, got %v", got)
	}
}

func TestGridUpdateHitboxFindsCellmates(t *testing.T) {
	g := grid.New(4)
	a := still(vec2.NewSquare(2).Place(vec2.New(0, 0)))
	b := still(vec2.NewSquare(2).Place(vec2.New(1, 0)))

	if got := g.UpdateHitbox(0, 0, nil, &a, []hitbox.HbGroup{0}); len(got) != 0 {
		t.Fatalf("expected no cellmates before b is added, got %v", got)
	}
	got := g.UpdateHitbox(1, 0, nil, &b, []hitbox.HbGroup{0})
	if _, ok := got[0]; !ok || len(got) != 1 {
		t.Fatalf("expected {0} as cellmate of b, got %v", got)
	}
}

func TestGridUpdateHitboxMovesBetweenCells(t *testing.T) {
	g := grid.New(4)
	a := still(vec2.NewSquare(2).Place(vec2.New(0, 0)))
	g.UpdateHitbox(0, 0, nil, &a, nil)

	moved := still(vec2.NewSquare(2).Place(vec2.New(100, 100)))
	g.UpdateHitbox(0, 0, &a, &moved, nil)

	mates := g.ShapeCellmates(vec2.NewSquare(2).Place(vec2.New(0, 0)), []hitbox.HbGroup{0})
	if len(mates) != 0 {
		t.Fatalf("expected no cellmates left behind at the old position, got %v", mates)
	}
	mates = g.ShapeCellmates(vec2.NewSquare(2).Place(vec2.New(100, 100)), []hitbox.HbGroup{0})
	if _, ok := mates[0]; !ok {
		t.Fatalf("expected hitbox 0 at its new position, got %v", mates)
	}
}

func TestGridUpdateHitboxRemove(t *testing.T) {
	g := grid.New(4)
	a := still(vec2.NewSquare(2).Place(vec2.New(0, 0)))
	g.UpdateHitbox(0, 0, nil, &a, nil)
	g.UpdateHitbox(0, 0, &a, nil, nil)

	mates := g.ShapeCellmates(vec2.NewSquare(2).Place(vec2.New(0, 0)), []hitbox.HbGroup{0})
	if len(mates) != 0 {
		t.Fatalf("expected no cellmates after removal, got %v", mates)
	}
}

func TestGridShapeCellmatesRespectsGroups(t *testing.T) {
	g := grid.New(4)
	a := still(vec2.NewSquare(2).Place(vec2.New(0, 0)))
	g.UpdateHitbox(0, 7, nil, &a, nil)

	mates := g.ShapeCellmates(vec2.NewSquare(2).Place(vec2.New(0, 0)), []hitbox.HbGroup{9})
	if len(mates) != 0 {
		t.Fatalf("expected no cellmates when querying an unrelated group, got %v", mates)
	}
	mates = g.ShapeCellmates(vec2.NewSquare(2).Place(vec2.New(0, 0)), []hitbox.HbGroup{7})
	if _, ok := mates[0]; !ok {
		t.Fatalf("expected hitbox 0 when querying its own group, got %v", mates)
	}
}
