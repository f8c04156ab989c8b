package linear

import (
	"fmt"
	"math"
)

// Direction3D is a unit vector.
type Direction3D struct {
	X, Y, Z float64
}

// Canonical axis directions.
var (
	North = Direction3D{X: 1}
	South = Direction3D{X: -1}
	East  = Direction3D{Z: 1}
	West  = Direction3D{Z: -1}
	Up    = Direction3D{Y: 1}
	Down  = Direction3D{Y: -1}
)

// NewDirection3D normalizes (x, y, z) into a unit vector.
// The zero vector and non-finite input have no direction and are rejected
// with a *DegenerateInputError.
func NewDirection3D(x, y, z float64) (Direction3D, error) {
	mag := math.Hypot(math.Hypot(x, y), z)
	if mag == 0 || math.IsNaN(mag) || math.IsInf(mag, 0) {
		return Direction3D{}, &DegenerateInputError{
			Op:     "NewDirection3D",
			Reason: fmt.Sprintf("vector (%g, %g, %g) has magnitude %g", x, y, z, mag),
		}
	}
	return Direction3D{x / mag, y / mag, z / mag}, nil
}

// Vec returns the direction as a unit displacement.
func (d Direction3D) Vec() Vec3D {
	return Vec3D{d.X, d.Y, d.Z}
}

// DegenerateInputError reports geometry that an operation cannot handle,
// such as normalizing a zero-length vector.
type DegenerateInputError struct {
	Op     string
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("linear: degenerate input to %s: %s", e.Op, e.Reason)
}
