package render

import "github.com/tepi-engine/tepi/pkg/linear"

// Triangle is three points in clockwise winding (screen convention, which
// is counterclockwise with Y up). Points in the other order are never
// inside; use Wound to normalize.
type Triangle struct {
	A, B, C linear.Pos2D
}

// NewTriangle creates a triangle from three points.
func NewTriangle(a, b, c linear.Pos2D) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (t Triangle) Bounds() (minPt, maxPt linear.Pos2D) {
	return t.A.Min(t.B.Min(t.C)), t.A.Max(t.B.Max(t.C))
}

// Inside reports whether p lies strictly inside the triangle.
// Points exactly on an edge are outside.
func (t Triangle) Inside(p linear.Pos2D) bool {
	w0 := EdgeFunction(t.B, t.C, p)
	w1 := EdgeFunction(t.C, t.A, p)
	w2 := EdgeFunction(t.A, t.B, p)
	return w0 > 0 && w1 > 0 && w2 > 0
}

// Area returns the signed doubled area. It is positive when the winding
// matches what Inside expects and zero for a degenerate triangle.
func (t Triangle) Area() float64 {
	return EdgeFunction(t.A, t.B, t.C)
}

// Wound returns the triangle with B and C swapped if needed so that Inside
// can accept points.
func (t Triangle) Wound() Triangle {
	if t.Area() < 0 {
		t.B, t.C = t.C, t.B
	}
	return t
}

// Translate shifts every vertex in place.
func (t *Triangle) Translate(dx, dy float64) {
	t.A.Translate(dx, dy)
	t.B.Translate(dx, dy)
	t.C.Translate(dx, dy)
}

// Points returns the vertices in order.
func (t Triangle) Points() []linear.Pos2D {
	return []linear.Pos2D{t.A, t.B, t.C}
}

// Transform re-points the triangle. Exactly three points are required.
func (t *Triangle) Transform(points []linear.Pos2D) error {
	if len(points) != 3 {
		return &InvalidPointCountError{Kind: KindTriangle, Got: len(points), Want: 3}
	}
	t.A, t.B, t.C = points[0], points[1], points[2]
	return nil
}

// EdgeFunction returns (c.x-a.x)*(b.y-a.y) - (c.y-a.y)*(b.x-a.x), whose sign
// tells which side of the directed edge a->c the point b falls on.
func EdgeFunction(a, c, b linear.Pos2D) float64 {
	return (c.X-a.X)*(b.Y-a.Y) - (c.Y-a.Y)*(b.X-a.X)
}
