package geom

import "time"

// Tween is a constant-speed linear move between two points, advanced by the
// frame loop. It has no completion callback; callers watch the position
// converge on the target instead (the motion primitive can be swapped for one
// that eases, which may overshoot on the final frame).
type Tween struct {
	from     Point3
	to       Point3
	duration time.Duration
	elapsed  time.Duration
}

// NewTween creates a move from a to b at the given speed (meters per second).
func NewTween(a, b Point3, speed float64) *Tween {
	return &Tween{
		from:     a,
		to:       b,
		duration: a.TravelTime(b, speed),
	}
}

// Advance moves the tween forward by dt and returns the new position.
func (t *Tween) Advance(dt time.Duration) Point3 {
	t.elapsed += dt
	return t.Position()
}

// Position returns the current interpolated position.
func (t *Tween) Position() Point3 {
	if t.duration <= 0 {
		return t.to
	}
	return t.from.Lerp(t.to, float64(t.elapsed)/float64(t.duration))
}

// Target returns the destination point.
func (t *Tween) Target() Point3 {
	return t.to
}

// Done reports whether the tween has consumed its full duration.
func (t *Tween) Done() bool {
	return t.elapsed >= t.duration
}
