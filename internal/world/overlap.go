package world

// Overlap tests the closed intervals [aStart,aEnd] and [bStart,bEnd].
// When they are disjoint, aLower reports whether a lies entirely below b;
// it carries no meaning when they overlap.
func Overlap(aStart, aEnd, bStart, bEnd int) (overlaps, aLower bool) {
	if aEnd >= bStart && bEnd >= aStart {
		return true, false
	}
	return false, aEnd < bStart
}

// Footprint is the fixed size shared by every entity in a world.
type Footprint struct {
	W, H int
}

// At returns the rectangle covered by a footprint anchored at (x, y).
func (f Footprint) At(x, y int) Rect {
	return Rect{X0: x, Y0: y, X1: x + f.W - 1, Y1: y + f.H - 1}
}

// Rect is an axis-aligned rectangle with inclusive bounds.
type Rect struct {
	X0, Y0, X1, Y1 int
}

func (r Rect) Overlaps(o Rect) bool {
	if ok, _ := Overlap(r.X0, r.X1, o.X0, o.X1); !ok {
		return false
	}
	ok, _ := Overlap(r.Y0, r.Y1, o.Y0, o.Y1)
	return ok
}
