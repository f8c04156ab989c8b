package linear

import (
	"fmt"
	"math"
)

// Vec2D is a displacement in 2D space.
type Vec2D struct {
	DX, DY float64
}

// V2 creates a new Vec2D.
func V2(dx, dy float64) Vec2D {
	return Vec2D{dx, dy}
}

// Add returns the vector sum a + b.
func (a Vec2D) Add(b Vec2D) Vec2D {
	return Vec2D{a.DX + b.DX, a.DY + b.DY}
}

// Sub returns the vector difference a - b.
func (a Vec2D) Sub(b Vec2D) Vec2D {
	return Vec2D{a.DX - b.DX, a.DY - b.DY}
}

// Scale returns the scalar product a * s.
func (a Vec2D) Scale(s float64) Vec2D {
	return Vec2D{a.DX * s, a.DY * s}
}

// Len returns the magnitude.
func (a Vec2D) Len() float64 {
	return math.Hypot(a.DX, a.DY)
}

// Set overwrites both components.
func (a *Vec2D) Set(dx, dy float64) {
	a.DX, a.DY = dx, dy
}

func (a *Vec2D) SetDX(dx float64) { a.DX = dx }
func (a *Vec2D) SetDY(dy float64) { a.DY = dy }

// To3D extends the displacement with a Z component.
func (a Vec2D) To3D(dz float64) Vec3D {
	return Vec3D{a.DX, a.DY, dz}
}

func (a Vec2D) String() string {
	return fmt.Sprintf("<%g, %g>", a.DX, a.DY)
}

// Vec3D is a displacement in 3D space.
type Vec3D struct {
	DX, DY, DZ float64
}

// V3 creates a new Vec3D.
func V3(dx, dy, dz float64) Vec3D {
	return Vec3D{dx, dy, dz}
}

// Add returns the vector sum a + b.
func (a Vec3D) Add(b Vec3D) Vec3D {
	return Vec3D{a.DX + b.DX, a.DY + b.DY, a.DZ + b.DZ}
}

// Sub returns the vector difference a - b.
func (a Vec3D) Sub(b Vec3D) Vec3D {
	return Vec3D{a.DX - b.DX, a.DY - b.DY, a.DZ - b.DZ}
}

// Scale returns the scalar product a * s.
func (a Vec3D) Scale(s float64) Vec3D {
	return Vec3D{a.DX * s, a.DY * s, a.DZ * s}
}

// Len returns the magnitude.
func (a Vec3D) Len() float64 {
	return math.Sqrt(a.DX*a.DX + a.DY*a.DY + a.DZ*a.DZ)
}

func (a Vec3D) String() string {
	return fmt.Sprintf("<%g, %g, %g>", a.DX, a.DY, a.DZ)
}
