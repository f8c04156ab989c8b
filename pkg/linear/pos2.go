// Package linear provides the positions, displacements and directions the
// tepi engine builds its geometry from.
//
// Positions (Pos2D, Pos3D) are points in world space. Displacements (Vec2D,
// Vec3D) move them. All types are small values meant to be passed by copy;
// the in-place helpers (Translate, Set) take pointer receivers.
package linear

import (
	"fmt"
	"math"
)

// Pos2D is a point in 2D world space.
type Pos2D struct {
	X, Y float64
}

// P2 creates a new Pos2D.
func P2(x, y float64) Pos2D {
	return Pos2D{x, y}
}

// Zero2 returns the origin (0, 0).
func Zero2() Pos2D {
	return Pos2D{}
}

// One2 returns the point (1, 1).
func One2() Pos2D {
	return Pos2D{1, 1}
}

// Add returns the point displaced by v.
func (p Pos2D) Add(v Vec2D) Pos2D {
	return Pos2D{p.X + v.DX, p.Y + v.DY}
}

// Sub returns the displacement that moves q onto p.
func (p Pos2D) Sub(q Pos2D) Vec2D {
	return Vec2D{p.X - q.X, p.Y - q.Y}
}

// Mul returns the component-wise product of two points.
func (p Pos2D) Mul(q Pos2D) Pos2D {
	return Pos2D{p.X * q.X, p.Y * q.Y}
}

// Min returns the component-wise minimum.
func (p Pos2D) Min(q Pos2D) Pos2D {
	return Pos2D{math.Min(p.X, q.X), math.Min(p.Y, q.Y)}
}

// Max returns the component-wise maximum.
func (p Pos2D) Max(q Pos2D) Pos2D {
	return Pos2D{math.Max(p.X, q.X), math.Max(p.Y, q.Y)}
}

// Translate shifts the point in place.
func (p *Pos2D) Translate(dx, dy float64) {
	p.X += dx
	p.Y += dy
}

// TranslateX shifts the point along X in place.
func (p *Pos2D) TranslateX(dx float64) {
	p.Translate(dx, 0)
}

// TranslateY shifts the point along Y in place.
func (p *Pos2D) TranslateY(dy float64) {
	p.Translate(0, dy)
}

// Set overwrites both coordinates.
func (p *Pos2D) Set(x, y float64) {
	p.X, p.Y = x, y
}

// SetX overwrites the X coordinate.
func (p *Pos2D) SetX(x float64) {
	p.X = x
}

// SetY overwrites the Y coordinate.
func (p *Pos2D) SetY(y float64) {
	p.Y = y
}

// Lerp returns the point a fraction t of the way from p to q.
// t is not clamped, so values outside [0, 1] extrapolate.
func (p Pos2D) Lerp(q Pos2D, t float64) Pos2D {
	return Pos2D{lerp(p.X, q.X, t), lerp(p.Y, q.Y, t)}
}

// LerpSteps returns n+1 evenly spaced points from p to q inclusive.
// n <= 0 yields the single point p.
func (p Pos2D) LerpSteps(q Pos2D, n int) []Pos2D {
	if n <= 0 {
		return []Pos2D{p}
	}
	out := make([]Pos2D, n+1)
	for i := range n + 1 {
		out[i] = p.Lerp(q, float64(i)/float64(n))
	}
	return out
}

// Polar converts the point to polar coordinates around the origin.
func (p Pos2D) Polar() (r, theta float64) {
	return math.Sqrt(p.X*p.X + p.Y*p.Y), math.Atan2(p.Y, p.X)
}

// To3D lifts the point into 3D space at depth z.
func (p Pos2D) To3D(z float64) Pos3D {
	return Pos3D{p.X, p.Y, z}
}

func (p Pos2D) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// lerp is written as a*(1-t) + b*t so that t=0 and t=1 return the
// endpoints exactly.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
