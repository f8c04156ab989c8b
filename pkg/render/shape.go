package render

import (
	"fmt"
	"math"

	"github.com/tepi-engine/tepi/pkg/linear"
)

// ShapeKind tags which variant a Shape holds.
type ShapeKind uint8

const (
	KindNone ShapeKind = iota
	KindTriangle
	KindRect
)

func (k ShapeKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTriangle:
		return "triangle"
	case KindRect:
		return "rect"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
}

// Shape is a closed tagged union over the drawable primitives. Only the
// field selected by Kind is meaningful.
type Shape struct {
	Kind     ShapeKind
	Triangle Triangle
	Rect     Rect
}

// NewTriangleShape wraps a triangle.
func NewTriangleShape(a, b, c linear.Pos2D) Shape {
	return Shape{Kind: KindTriangle, Triangle: NewTriangle(a, b, c)}
}

// NewRectShape wraps a rectangle.
func NewRectShape(origin linear.Pos2D, length, height float64) Shape {
	return Shape{Kind: KindRect, Rect: NewRect(origin, length, height)}
}

// Valid reports whether Kind names a drawable variant.
func (s Shape) Valid() bool {
	return s.Kind == KindTriangle || s.Kind == KindRect
}

// Bounds returns the axis-aligned bounding box of the shape's vertices.
// Invalid shapes report an empty box at the origin.
func (s Shape) Bounds() (minPt, maxPt linear.Pos2D) {
	switch s.Kind {
	case KindTriangle:
		return s.Triangle.Bounds()
	case KindRect:
		return s.Rect.Bounds()
	default:
		return linear.Pos2D{}, linear.Pos2D{}
	}
}

// Inside reports whether p is contained in the shape.
func (s Shape) Inside(p linear.Pos2D) bool {
	switch s.Kind {
	case KindTriangle:
		return s.Triangle.Inside(p)
	case KindRect:
		return s.Rect.Inside(p)
	default:
		return false
	}
}

// Translate shifts the shape in place.
func (s *Shape) Translate(dx, dy float64) {
	switch s.Kind {
	case KindTriangle:
		s.Triangle.Translate(dx, dy)
	case KindRect:
		s.Rect.Translate(dx, dy)
	}
}

// Translated returns a shifted copy.
func (s Shape) Translated(v linear.Vec2D) Shape {
	s.Translate(v.DX, v.DY)
	return s
}

// Points returns the control points Transform accepts.
func (s Shape) Points() []linear.Pos2D {
	switch s.Kind {
	case KindTriangle:
		return s.Triangle.Points()
	case KindRect:
		return s.Rect.Points()
	default:
		return nil
	}
}

// Transform re-points the shape. Triangles take three points, rects two
// opposite corners.
func (s *Shape) Transform(points []linear.Pos2D) error {
	switch s.Kind {
	case KindTriangle:
		return s.Triangle.Transform(points)
	case KindRect:
		return s.Rect.Transform(points)
	default:
		return fmt.Errorf("transform %s: %w", s.Kind, ErrUnknownShape)
	}
}

// Draw fills the shape in normalized coordinates, where (0, 0)..(1, 1)
// spans the whole framebuffer. Pixels are overwritten with color.
func (s Shape) Draw(fb *Framebuffer, color Color) error {
	return s.drawRelative(fb, color, fullSpan(fb.Width, fb.Height))
}

// DrawAbs fills the shape in world coordinates as seen by cam. It reports
// false without touching the framebuffer when the render guard rejects the
// shape.
func (s Shape) DrawAbs(fb *Framebuffer, color Color, cam *Camera2D) (bool, error) {
	return s.drawAbsolute(fb, color, cam, fullSpan(fb.Width, fb.Height))
}

func (s Shape) drawRelative(fb *Framebuffer, color Color, clip span) error {
	if !s.Valid() {
		return fmt.Errorf("draw %s: %w", s.Kind, ErrUnknownShape)
	}
	w, h := float64(fb.Width), float64(fb.Height)
	if w == 0 || h == 0 {
		return nil
	}

	// Clamp to the unit square, then scale to pixels.
	minPt, maxPt := s.Bounds()
	minPx := minPt.Max(linear.Zero2()).Mul(linear.P2(w, h))
	maxPx := maxPt.Min(linear.One2()).Mul(linear.P2(w, h))
	area := span{
		x0: int(minPx.X),
		y0: int(minPx.Y),
		x1: int(maxPx.X),
		y1: int(maxPx.Y),
	}.clip(clip)
	if area.empty() {
		return nil
	}

	for y := area.y0; y < area.y1; y++ {
		for x := area.x0; x < area.x1; x++ {
			p := linear.P2(float64(x)/w, float64(y)/h)
			if !s.Inside(p) {
				continue
			}
			if err := fb.SetPixel(x, y, color); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s Shape) drawAbsolute(fb *Framebuffer, color Color, cam *Camera2D, clip span) (bool, error) {
	if !s.Valid() {
		return false, fmt.Errorf("draw %s: %w", s.Kind, ErrUnknownShape)
	}
	minPt, maxPt := s.Bounds()
	if !cam.RenderGuard(minPt, maxPt, fb.Width, fb.Height) {
		return false, nil
	}

	off := cam.Offset(fb.Width, fb.Height)
	area := cam.pixelSpan(minPt, maxPt, fb.Width, fb.Height).clip(clip)
	if area.empty() {
		return true, nil
	}
	for y := area.y0; y < area.y1; y++ {
		for x := area.x0; x < area.x1; x++ {
			p := linear.P2(float64(x)-off.DX, float64(y)-off.DY)
			if !s.Inside(p) {
				continue
			}
			if err := fb.SetPixel(x, y, color); err != nil {
				return true, err
			}
		}
	}
	return true, nil
}

// DrawOutline traces the shape's edges in world coordinates as seen by cam.
func (s Shape) DrawOutline(fb *Framebuffer, color Color, cam *Camera2D) error {
	var corners []linear.Pos2D
	switch s.Kind {
	case KindTriangle:
		corners = s.Triangle.Points()
	case KindRect:
		corners = []linear.Pos2D{s.Rect.A, s.Rect.B, s.Rect.C, s.Rect.D}
	default:
		return fmt.Errorf("outline %s: %w", s.Kind, ErrUnknownShape)
	}

	off := cam.Offset(fb.Width, fb.Height)
	for i, a := range corners {
		b := corners[(i+1)%len(corners)]
		fb.DrawLine(
			int(math.Floor(a.X+off.DX)), int(math.Floor(a.Y+off.DY)),
			int(math.Floor(b.X+off.DX)), int(math.Floor(b.Y+off.DY)),
			color,
		)
	}
	return nil
}
