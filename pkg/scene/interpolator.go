package scene

import (
	"errors"
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/tepi-engine/tepi/pkg/linear"
)

// State is the phase of an Interpolator.
type State uint8

const (
	Idle State = iota
	Interpolating
)

func (s State) String() string {
	if s == Interpolating {
		return "interpolating"
	}
	return "idle"
}

// ErrPointMismatch is returned when start and end point sets differ in
// length or are empty.
var ErrPointMismatch = errors.New("scene: interpolation endpoints do not match")

// Interpolator moves a set of points from start to end over a duration,
// one tick at a time. The zero value is Idle.
type Interpolator struct {
	state    State
	start    []linear.Pos2D
	end      []linear.Pos2D
	current  []linear.Pos2D
	elapsed  float64
	duration float64
	tween    *gween.Tween
}

// Start begins interpolating from start to end over duration seconds,
// replacing any interpolation in progress. A non-positive duration jumps
// straight to end and leaves the interpolator Idle. A nil fn is linear.
func (ip *Interpolator) Start(start, end []linear.Pos2D, duration float64, fn ease.TweenFunc) error {
	if len(start) == 0 || len(start) != len(end) {
		return fmt.Errorf("%w: %d start points, %d end points", ErrPointMismatch, len(start), len(end))
	}
	if fn == nil {
		fn = ease.Linear
	}

	ip.start = append(ip.start[:0], start...)
	ip.end = append(ip.end[:0], end...)
	ip.elapsed = 0
	ip.duration = duration
	if duration <= 0 {
		ip.current = append(ip.current[:0], end...)
		ip.state = Idle
		ip.tween = nil
		return nil
	}
	ip.current = append(ip.current[:0], start...)
	ip.state = Interpolating
	ip.tween = gween.New(0, 1, float32(duration), fn)
	return nil
}

// Tick advances by dt seconds and reports whether the interpolator is
// still running afterwards. On the finishing tick Value is exactly end.
func (ip *Interpolator) Tick(dt float64) bool {
	if ip.state != Interpolating {
		return false
	}
	dt = max(dt, 0)
	ip.elapsed += dt
	progress, finished := ip.tween.Update(float32(dt))

	// Summed float steps land a hair short of duration.
	if finished || ip.elapsed >= ip.duration-finishTolerance*max(ip.duration, 1) {
		copy(ip.current, ip.end)
		ip.elapsed = ip.duration
		ip.state = Idle
		ip.tween = nil
		return false
	}
	for i := range ip.current {
		ip.current[i] = ip.start[i].Lerp(ip.end[i], float64(progress))
	}
	return true
}

const finishTolerance = 1e-9

// Cancel stops interpolating, leaving Value where it is.
func (ip *Interpolator) Cancel() {
	ip.state = Idle
	ip.tween = nil
}

// State returns the current phase.
func (ip *Interpolator) State() State {
	return ip.state
}

// Value returns the current points. The slice is reused across ticks.
func (ip *Interpolator) Value() []linear.Pos2D {
	return ip.current
}

// Elapsed returns the time advanced since Start.
func (ip *Interpolator) Elapsed() float64 {
	return ip.elapsed
}

// Duration returns the length of the current or last interpolation.
func (ip *Interpolator) Duration() float64 {
	return ip.duration
}

// Done reports whether an interpolation was started and has finished.
func (ip *Interpolator) Done() bool {
	return ip.state == Idle && len(ip.end) > 0
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
	"out-bounce":   ease.OutBounce,
}

// Easing looks up an easing function by name, e.g. "in-out-quad".
// The empty name is linear.
func Easing(name string) (ease.TweenFunc, bool) {
	if name == "" {
		return ease.Linear, true
	}
	fn, ok := easings[name]
	return fn, ok
}
