package render

import "github.com/tepi-engine/tepi/pkg/linear"

// Rect is an axis-aligned rectangle hanging down from its top-left origin.
// Corners are cached: A top-left, B top-right, C bottom-right, D bottom-left.
type Rect struct {
	A, B, C, D linear.Pos2D
}

// NewRect creates a rectangle whose top-left corner is origin, extending
// length along +X and height along -Y.
func NewRect(origin linear.Pos2D, length, height float64) Rect {
	return Rect{
		A: origin,
		B: linear.P2(origin.X+length, origin.Y),
		C: linear.P2(origin.X+length, origin.Y-height),
		D: linear.P2(origin.X, origin.Y-height),
	}
}

// Length returns the extent along X.
func (r Rect) Length() float64 {
	return r.B.X - r.A.X
}

// Height returns the extent along Y.
func (r Rect) Height() float64 {
	return r.A.Y - r.D.Y
}

// Bounds returns the bottom-left and top-right corners.
func (r Rect) Bounds() (minPt, maxPt linear.Pos2D) {
	return r.D, r.B
}

// Inside reports whether p lies in the rectangle, edges included.
func (r Rect) Inside(p linear.Pos2D) bool {
	return r.D.X <= p.X && p.X <= r.B.X &&
		r.D.Y <= p.Y && p.Y <= r.A.Y
}

// Translate shifts every corner in place.
func (r *Rect) Translate(dx, dy float64) {
	r.A.Translate(dx, dy)
	r.B.Translate(dx, dy)
	r.C.Translate(dx, dy)
	r.D.Translate(dx, dy)
}

// Points returns the top-left and bottom-right corners, the pair Transform
// accepts.
func (r Rect) Points() []linear.Pos2D {
	return []linear.Pos2D{r.A, r.C}
}

// Transform re-points the rectangle from two opposite corners, in any
// order. The result stays axis-aligned.
func (r *Rect) Transform(points []linear.Pos2D) error {
	if len(points) != 2 {
		return &InvalidPointCountError{Kind: KindRect, Got: len(points), Want: 2}
	}
	lo := points[0].Min(points[1])
	hi := points[0].Max(points[1])
	*r = NewRect(linear.P2(lo.X, hi.Y), hi.X-lo.X, hi.Y-lo.Y)
	return nil
}
