package render

import (
	"math"
	"testing"

	"github.com/tepi-engine/tepi/pkg/linear"
)

func TestViewport(t *testing.T) {
	tests := []struct {
		name          string
		pos           linear.Pos2D
		width, height int
		bl, tr        linear.Pos2D
	}{
		{"origin", linear.Zero2(), 512, 512, linear.P2(-256, -256), linear.P2(256, 256)},
		{"offset", linear.P2(10, 20), 100, 50, linear.P2(-40, -5), linear.P2(60, 45)},
		{"odd size", linear.Zero2(), 3, 1, linear.P2(-1.5, -0.5), linear.P2(1.5, 0.5)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bl, tr := NewCamera2D(tc.pos).Viewport(tc.width, tc.height)
			if bl != tc.bl || tr != tc.tr {
				t.Errorf("Viewport = %v, %v, want %v, %v", bl, tr, tc.bl, tc.tr)
			}
		})
	}
}

func TestRenderGuard(t *testing.T) {
	cam := NewCamera2D(linear.Zero2())

	tests := []struct {
		name     string
		min, max linear.Pos2D
		want     bool
	}{
		{"inside", linear.P2(-10, -10), linear.P2(10, 10), true},
		{"covers window", linear.P2(-1000, -1000), linear.P2(1000, 1000), true},
		{"straddles left edge", linear.P2(-300, -10), linear.P2(-200, 10), true},
		{"touches right edge", linear.P2(256, 0), linear.P2(300, 10), true},
		{"left of window", linear.P2(-400, -10), linear.P2(-300, 10), false},
		{"above window", linear.P2(-10, 300), linear.P2(10, 400), false},
		{"right of window", linear.P2(257, 0), linear.P2(300, 10), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cam.RenderGuard(tc.min, tc.max, 512, 512); got != tc.want {
				t.Errorf("RenderGuard = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCameraTranslate(t *testing.T) {
	cam := NewCamera2D(linear.Zero2())
	cam.Translate(1, 2)
	cam.TranslateX(3)
	cam.TranslateY(-4)
	if cam.Position != linear.P2(4, -2) {
		t.Errorf("Position = %v", cam.Position)
	}
	if off := cam.Offset(10, 10); off != linear.V2(1, 7) {
		t.Errorf("Offset = %v", off)
	}
}

func TestCameraFollow(t *testing.T) {
	cam := NewCamera2D(linear.Zero2())
	cam.Track(linear.P2(50, 50))
	if cam.Position != linear.Zero2() {
		t.Error("Track without follow should not move the camera")
	}

	cam.EnableFollow(60, 6, 1)
	if !cam.Following() {
		t.Fatal("follow not enabled")
	}
	target := linear.P2(100, -40)
	for range 600 {
		cam.Track(target)
	}
	if math.Abs(cam.Position.X-target.X) > 1e-3 || math.Abs(cam.Position.Y-target.Y) > 1e-3 {
		t.Errorf("camera settled at %v, want %v", cam.Position, target)
	}

	cam.DisableFollow()
	if cam.Following() {
		t.Error("follow still enabled")
	}
}
