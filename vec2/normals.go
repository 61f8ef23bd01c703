package vec2

// This file solves for the normal vector between two PlacedShapes,
// grounded directly on the rect/rect, circle/circle, and rect/circle
// corner-sector reduction used throughout the solver layer.

func rectRectNormal(dst, src PlacedShape) DirVec2 {
	cards := Values()
	bestCard := cards[0]
	bestOverlap := dst.cardOverlap(src, bestCard)
	for _, card := range cards[1:] {
		overlap := dst.cardOverlap(src, card)
		if overlap < bestOverlap {
			bestCard, bestOverlap = card, overlap
		}
	}

	return NewDirVec2(bestCard.Vec2(), bestOverlap)
}

func circleCircleNormal(dst, src PlacedShape) DirVec2 {
	dir := dst.Pos.Sub(src.Pos)
	dist := dir.Len()
	if dist == 0 {
		dir = Vec2{X: 1, Y: 0}
	}

	return NewDirVec2(dir, (src.Dims().X+dst.Dims().X)*0.5-dist)
}

func rectCircleNormal(dst, src PlacedShape) DirVec2 {
	sector := dst.sector(src.Pos)
	if sector.IsCorner() {
		return circleCircleNormal(dst.corner(sector).Place(NewCircle(0)), src)
	}

	return rectRectNormal(dst, src)
}

func maskedRectRectNormal(dst, src PlacedShape, mask CardMask) DirVec2 {
	var (
		bestCard    Card
		bestOverlap float64
		found       bool
	)
	for _, card := range Values() {
		if !mask.Has(card) {
			continue
		}
		overlap := dst.cardOverlap(src, card)
		if !found || overlap < bestOverlap {
			bestCard, bestOverlap, found = card, overlap, true
		}
	}
	if !found {
		panic("vec2: CardMask must be non-empty")
	}

	return NewDirVec2(bestCard.Vec2(), bestOverlap)
}

func maskedCircleCircleNormal(dst, src PlacedShape, mask CardMask) DirVec2 {
	if mask != FullMask() {
		panic("vec2: CardMask for circle-circle normal must be full")
	}

	return circleCircleNormal(dst, src)
}

func maskedRectCircleNormal(dst, src PlacedShape, mask CardMask) DirVec2 {
	sector := dst.sector(src.Pos)
	if maskHasCornerSector(sector, mask.Flip()) {
		return circleCircleNormal(dst.corner(sector).Place(NewCircle(0)), src)
	}

	return maskedRectRectNormal(dst, src, mask)
}

func maskHasCornerSector(sector Sector, mask CardMask) bool {
	h, v, ok := sector.CornerCards()
	if !ok {
		return false
	}

	return mask.Has(h) && mask.Has(v)
}

func circleAnyContact(a, b PlacedShape) Vec2 {
	normal := a.NormalFrom(b)

	return a.Pos.Add(normal.Dir().Scale((normal.Len() - a.Dims().X) * 0.5))
}

func rectRectContact(a, b PlacedShape) Vec2 {
	return Vec2{
		X: rectRectContact1D(a.MinX(), a.MaxX(), b.MinX(), b.MaxX()),
		Y: rectRectContact1D(a.MinY(), a.MaxY(), b.MinY(), b.MaxY()),
	}
}

func rectRectContact1D(aMin, aMax, bMin, bMax float64) float64 {
	hi := aMax
	if bMax < hi {
		hi = bMax
	}
	lo := bMin
	if aMin > lo {
		lo = aMin
	}

	return 0.5 * (lo + hi)
}

func (p Vec2) Place(shape Shape) PlacedShape { return shape.Place(p) }
