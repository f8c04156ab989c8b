package linear

import (
	"fmt"
	"math"
)

// Pos3D is a point in 3D world space.
type Pos3D struct {
	X, Y, Z float64
}

// P3 creates a new Pos3D.
func P3(x, y, z float64) Pos3D {
	return Pos3D{x, y, z}
}

// Zero3 returns the origin (0, 0, 0).
func Zero3() Pos3D {
	return Pos3D{}
}

// One3 returns the point (1, 1, 1).
func One3() Pos3D {
	return Pos3D{1, 1, 1}
}

// Add returns the point displaced by v.
func (p Pos3D) Add(v Vec3D) Pos3D {
	return Pos3D{p.X + v.DX, p.Y + v.DY, p.Z + v.DZ}
}

// Sub returns the displacement that moves q onto p.
func (p Pos3D) Sub(q Pos3D) Vec3D {
	return Vec3D{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Min returns the component-wise minimum.
func (p Pos3D) Min(q Pos3D) Pos3D {
	return Pos3D{
		math.Min(p.X, q.X),
		math.Min(p.Y, q.Y),
		math.Min(p.Z, q.Z),
	}
}

// Max returns the component-wise maximum.
func (p Pos3D) Max(q Pos3D) Pos3D {
	return Pos3D{
		math.Max(p.X, q.X),
		math.Max(p.Y, q.Y),
		math.Max(p.Z, q.Z),
	}
}

// Translate shifts the point in place.
func (p *Pos3D) Translate(dx, dy, dz float64) {
	p.X += dx
	p.Y += dy
	p.Z += dz
}

// TranslateX shifts the point along X in place.
func (p *Pos3D) TranslateX(dx float64) { p.Translate(dx, 0, 0) }

// TranslateY shifts the point along Y in place.
func (p *Pos3D) TranslateY(dy float64) { p.Translate(0, dy, 0) }

// TranslateZ shifts the point along Z in place.
func (p *Pos3D) TranslateZ(dz float64) { p.Translate(0, 0, dz) }

// Set overwrites all three coordinates.
func (p *Pos3D) Set(x, y, z float64) {
	p.X, p.Y, p.Z = x, y, z
}

func (p *Pos3D) SetX(x float64) { p.X = x }
func (p *Pos3D) SetY(y float64) { p.Y = y }
func (p *Pos3D) SetZ(z float64) { p.Z = z }

// Lerp returns the point a fraction t of the way from p to q.
// t is not clamped.
func (p Pos3D) Lerp(q Pos3D, t float64) Pos3D {
	return Pos3D{lerp(p.X, q.X, t), lerp(p.Y, q.Y, t), lerp(p.Z, q.Z, t)}
}

// LerpSteps returns n+1 evenly spaced points from p to q inclusive.
// n <= 0 yields the single point p.
func (p Pos3D) LerpSteps(q Pos3D, n int) []Pos3D {
	if n <= 0 {
		return []Pos3D{p}
	}
	out := make([]Pos3D, n+1)
	for i := range n + 1 {
		out[i] = p.Lerp(q, float64(i)/float64(n))
	}
	return out
}

// XY drops the Z coordinate.
func (p Pos3D) XY() Pos2D {
	return Pos2D{p.X, p.Y}
}

func (p Pos3D) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}
