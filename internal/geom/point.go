package geom

import (
	"math"
	"time"
)

// Point3 is a position in scene space. Units are meters.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (p Point3) Add(q Point3) Point3 {
	return Point3{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

func (p Point3) Sub(q Point3) Point3 {
	return Point3{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

func (p Point3) Scale(s float64) Point3 {
	return Point3{X: p.X * s, Y: p.Y * s, Z: p.Z * s}
}

// Dist returns the Euclidean distance between p and q.
func (p Point3) Dist(q Point3) float64 {
	d := p.Sub(q)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// Norm returns the unit vector pointing the same direction as p.
// The zero vector norms to itself.
func (p Point3) Norm() Point3 {
	l := p.Dist(Point3{})
	if l == 0 {
		return p
	}
	return p.Scale(1 / l)
}

// Lerp returns the point a fraction t of the way from p to q.
// t is clamped to [0, 1].
func (p Point3) Lerp(q Point3, t float64) Point3 {
	if t <= 0 {
		return p
	}
	if t >= 1 {
		return q
	}
	return p.Add(q.Sub(p).Scale(t))
}

// TravelTime returns how long a constant-speed move from p to q takes.
// speed is in meters per second and must be positive.
func (p Point3) TravelTime(q Point3, speed float64) time.Duration {
	return time.Duration(p.Dist(q) / speed * float64(time.Second))
}
