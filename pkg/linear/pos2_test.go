package linear

import (
	"errors"
	"math"
	"testing"
)

func TestPos2DTranslate(t *testing.T) {
	p1 := P2(2, 4)
	p2 := P2(5, 2)

	p1.TranslateX(3)
	p2.TranslateY(-1)

	if p1 != P2(5, 4) {
		t.Errorf("p1 = %v, want (5, 4)", p1)
	}
	if p2 != P2(5, 1) {
		t.Errorf("p2 = %v, want (5, 1)", p2)
	}

	v := V2(1, 3)
	p1 = p1.Add(v)
	if p1 != P2(6, 7) {
		t.Errorf("p1 + v = %v, want (6, 7)", p1)
	}
}

func TestPos2DTranslateRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		p      Pos2D
		dx, dy float64
	}{
		{"origin", Zero2(), 3, -7},
		{"negative", P2(-120, -141), 0.5, 0.25},
		{"large", P2(1e6, -2e6), -1024, 4096},
		{"no-op", P2(1, 1), 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.p
			p.Translate(tc.dx, tc.dy)
			p.Translate(-tc.dx, -tc.dy)
			if p != tc.p {
				t.Errorf("round trip = %v, want %v", p, tc.p)
			}
		})
	}
}

func TestPos2DSet(t *testing.T) {
	p1 := P2(6, 7)
	p1.SetX(0)
	p1.SetY(0)
	p2 := P2(6, 4)
	p2.Set(0, 0)

	if p1 != Zero2() || p2 != Zero2() {
		t.Errorf("got %v and %v, want origin", p1, p2)
	}
}

func TestPos2DLerp(t *testing.T) {
	points := []Pos2D{
		Zero2(), One2(), P2(100, 100), P2(-0.1, 0.3), P2(0.7, -1e9), P2(1.0/3, 2.0/3),
	}

	for _, a := range points {
		for _, b := range points {
			if got := a.Lerp(b, 0); got != a {
				t.Errorf("Lerp(%v, %v, 0) = %v, want %v", a, b, got, a)
			}
			if got := a.Lerp(b, 1); got != b {
				t.Errorf("Lerp(%v, %v, 1) = %v, want %v", a, b, got, b)
			}
		}
	}

	if got := Zero2().Lerp(P2(100, 100), 0.5); got != P2(50, 50) {
		t.Errorf("midpoint = %v, want (50, 50)", got)
	}
	if got := Zero2().Lerp(P2(10, 10), 2); got != P2(20, 20) {
		t.Errorf("extrapolation = %v, want (20, 20)", got)
	}
}

func TestPos2DLerpSteps(t *testing.T) {
	a, b := Zero2(), P2(100, 100)

	for _, n := range []int{1, 2, 7, 20} {
		steps := a.LerpSteps(b, n)
		if len(steps) != n+1 {
			t.Fatalf("n=%d: got %d points, want %d", n, len(steps), n+1)
		}
		if steps[0] != a {
			t.Errorf("n=%d: first = %v, want %v", n, steps[0], a)
		}
		if steps[n] != b {
			t.Errorf("n=%d: last = %v, want %v", n, steps[n], b)
		}
	}

	steps := a.LerpSteps(b, 4)
	if steps[2] != P2(50, 50) {
		t.Errorf("middle step = %v, want (50, 50)", steps[2])
	}

	if got := a.LerpSteps(b, 0); len(got) != 1 || got[0] != a {
		t.Errorf("LerpSteps(n=0) = %v, want [%v]", got, a)
	}
}

func TestPos2DMinMax(t *testing.T) {
	points := []Pos2D{Zero2(), P2(100, 100), P2(-3, 8), P2(5, -2), P2(0.5, 0.5)}

	for _, a := range points {
		for _, b := range points {
			lo, hi := a.Min(b), a.Max(b)
			if lo != b.Min(a) {
				t.Errorf("Min not commutative for %v, %v", a, b)
			}
			if hi != b.Max(a) {
				t.Errorf("Max not commutative for %v, %v", a, b)
			}
			if lo.X > hi.X || lo.Y > hi.Y {
				t.Errorf("Min(%v, %v) = %v exceeds Max = %v", a, b, lo, hi)
			}
		}
	}

	if got := Zero2().Min(P2(100, 100)); got != Zero2() {
		t.Errorf("Min = %v, want origin", got)
	}
	if got := P2(-3, 8).Max(P2(5, -2)); got != P2(5, 8) {
		t.Errorf("Max = %v, want (5, 8)", got)
	}
}

func TestPos2DPolar(t *testing.T) {
	tests := []struct {
		name     string
		p        Pos2D
		r, theta float64
	}{
		{"positive x", P2(2, 0), 2, 0},
		{"positive y", P2(0, 3), 3, math.Pi / 2},
		{"3-4-5", P2(3, 4), 5, math.Atan2(4, 3)},
		{"negative x", P2(-1, 0), 1, math.Pi},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, theta := tc.p.Polar()
			if math.Abs(r-tc.r) > 1e-12 || math.Abs(theta-tc.theta) > 1e-12 {
				t.Errorf("Polar(%v) = (%v, %v), want (%v, %v)", tc.p, r, theta, tc.r, tc.theta)
			}
		})
	}
}

func TestPos3D(t *testing.T) {
	p1 := P3(2, 4, 2)
	p2 := P3(5, 2, 4)

	p1.TranslateX(3)
	p2.TranslateY(-1)
	p2.TranslateZ(10)
	if p1 != P3(5, 4, 2) || p2 != P3(5, 1, 14) {
		t.Fatalf("translate: got %v and %v", p1, p2)
	}

	v := V3(1, 3, -3)
	p1 = p1.Add(v)
	p2 = p2.Add(v)
	if p1 != P3(6, 7, -1) || p2 != P3(6, 4, 11) {
		t.Fatalf("add: got %v and %v", p1, p2)
	}

	a, b := Zero3(), P3(100, 100, 100)
	if got := a.Lerp(b, 0.5); got != P3(50, 50, 50) {
		t.Errorf("Lerp = %v, want (50, 50, 50)", got)
	}
	steps := a.LerpSteps(b, 20)
	if len(steps) != 21 || steps[0] != a || steps[20] != b {
		t.Errorf("LerpSteps endpoints wrong: len=%d first=%v last=%v", len(steps), steps[0], steps[len(steps)-1])
	}
	if a.Min(b) != a || a.Max(b) != b {
		t.Error("Min/Max of origin and (100,100,100) wrong")
	}

	p1.Set(0, 0, 0)
	p2.SetX(0)
	p2.SetY(0)
	p2.SetZ(0)
	if p1 != Zero3() || p2 != Zero3() {
		t.Errorf("set: got %v and %v", p1, p2)
	}
}

func TestVec2D(t *testing.T) {
	v1 := V2(1, 2)
	v2 := V2(3, -1)

	if got := v1.Add(v2); got != V2(4, 1) {
		t.Errorf("v1 + v2 = %v, want <4, 1>", got)
	}
	if got := v1.Sub(v2); got != V2(-2, 3) {
		t.Errorf("v1 - v2 = %v, want <-2, 3>", got)
	}
	v3 := V2(2, 4)
	if got := v1.Scale(2); got != v3 {
		t.Errorf("v1 * 2 = %v, want %v", got, v3)
	}

	v1.SetDX(3)
	v2.SetDY(2)
	if v1 != v2 {
		t.Errorf("after setters v1 = %v, v2 = %v", v1, v2)
	}
	v1.Set(2, 4)
	if v1 != v3 {
		t.Errorf("Set = %v, want %v", v1, v3)
	}

	if got := v1.To3D(7); got != V3(2, 4, 7) {
		t.Errorf("To3D = %v, want <2, 4, 7>", got)
	}
}

func TestDirection3D(t *testing.T) {
	d, err := NewDirection3D(0, 3, 4)
	if err != nil {
		t.Fatalf("NewDirection3D: %v", err)
	}
	if math.Abs(d.Vec().Len()-1) > 1e-12 {
		t.Errorf("length = %v, want 1", d.Vec().Len())
	}
	if math.Abs(d.Y-0.6) > 1e-12 || math.Abs(d.Z-0.8) > 1e-12 {
		t.Errorf("direction = %+v, want (0, 0.6, 0.8)", d)
	}

	for _, c := range []Direction3D{North, South, East, West, Up, Down} {
		if c.Vec().Len() != 1 {
			t.Errorf("%+v is not a unit vector", c)
		}
	}

	_, err = NewDirection3D(0, 0, 0)
	var degen *DegenerateInputError
	if !errors.As(err, &degen) {
		t.Fatalf("zero vector error = %v, want *DegenerateInputError", err)
	}
	if degen.Op != "NewDirection3D" {
		t.Errorf("Op = %q", degen.Op)
	}

	if _, err := NewDirection3D(math.NaN(), 0, 1); err == nil {
		t.Error("NaN input should be rejected")
	}

	large := []struct {
		x, y, z float64
		want    Direction3D
	}{
		{1e200, 0, 0, North},
		{0, -1e300, 0, Down},
		{0, 0, 1e-300, East},
	}
	for _, tc := range large {
		got, err := NewDirection3D(tc.x, tc.y, tc.z)
		if err != nil {
			t.Errorf("NewDirection3D(%g, %g, %g): %v", tc.x, tc.y, tc.z, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NewDirection3D(%g, %g, %g) = %+v, want %+v", tc.x, tc.y, tc.z, got, tc.want)
		}
	}
}
