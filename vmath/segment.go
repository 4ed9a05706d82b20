package vmath

// Segment utilities for beam intersection

// ClosestPointOnSegment projects p onto segment [a, b], clamping the parameter to [0, 1]
// A zero-length segment yields a
func ClosestPointOnSegment(p, a, b Vec2) Vec2 {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq == 0 {
		return a
	}

	t := p.Sub(a).Dot(ab) / lenSq
	switch {
	case t < 0:
		return a
	case t > 1:
		return b
	}
	return a.Add(ab.Scale(t))
}

// PointSegmentDistance returns the distance from p to the closest point of segment [a, b]
func PointSegmentDistance(p, a, b Vec2) float64 {
	return Distance(p, ClosestPointOnSegment(p, a, b))
}

// Rect is an axis-aligned rectangle, Min inclusive
type Rect struct {
	Min, Max Vec2
}

// Contains reports whether p lies inside r, borders included
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Inset grows (negative d) or shrinks (positive d) r on every side
func (r Rect) Inset(d float64) Rect {
	return Rect{
		Min: Vec2{r.Min.X + d, r.Min.Y + d},
		Max: Vec2{r.Max.X - d, r.Max.Y - d},
	}
}
