package scene

import (
	"errors"
	"fmt"
	"math"

	"rayprobe/internal/mathutil"
)

// PathKind names the shape of a cursor path.
type PathKind string

const (
	PathLine      PathKind = "line"
	PathOrbit     PathKind = "orbit"
	PathWaypoints PathKind = "waypoints"
)

// Path is a scripted cursor trajectory. It stands in for sampling the mouse
// once per frame so a run is reproducible.
type Path struct {
	Kind PathKind `json:"kind" yaml:"kind"`

	// line
	From mathutil.Vec3 `json:"from" yaml:"from"`
	To   mathutil.Vec3 `json:"to" yaml:"to"`

	// orbit, angles in degrees
	Center   mathutil.Vec3 `json:"center" yaml:"center"`
	Radius   float64       `json:"radius,omitempty" yaml:"radius,omitempty"`
	StartDeg float64       `json:"start_deg,omitempty" yaml:"start_deg,omitempty"`
	SweepDeg float64       `json:"sweep_deg,omitempty" yaml:"sweep_deg,omitempty"`

	// waypoints
	Points []mathutil.Vec3 `json:"points,omitempty" yaml:"points,omitempty"`
}

func (p Path) Validate() error {
	switch p.Kind {
	case PathLine:
	case PathOrbit:
		if p.Radius < 0 {
			return fmt.Errorf("path: negative orbit radius %v", p.Radius)
		}
	case PathWaypoints:
		if len(p.Points) == 0 {
			return errors.New("path: waypoints needs at least one point")
		}
	default:
		return fmt.Errorf("path: unknown kind %q", p.Kind)
	}
	return nil
}

// At returns the cursor position at t in [0, 1]; t is clamped.
func (p Path) At(t float64) mathutil.Vec3 {
	t = math.Max(0, math.Min(1, t))

	switch p.Kind {
	case PathOrbit:
		sweep := p.SweepDeg
		if sweep == 0 {
			sweep = 360
		}
		a := mathutil.Deg2Rad(p.StartDeg + sweep*t)
		return p.Center.Add(mathutil.V3(math.Cos(a), math.Sin(a), 0).Scale(p.Radius))
	case PathWaypoints:
		return p.alongWaypoints(t)
	default:
		return lerp(p.From, p.To, t)
	}
}

// Samples returns n positions evenly spaced in t, endpoints included.
func (p Path) Samples(n int) []mathutil.Vec3 {
	if n <= 0 {
		return nil
	}
	out := make([]mathutil.Vec3, n)
	if n == 1 {
		out[0] = p.At(0)
		return out
	}
	for i := range out {
		out[i] = p.At(float64(i) / float64(n-1))
	}
	return out
}

// alongWaypoints walks the polyline at constant speed.
func (p Path) alongWaypoints(t float64) mathutil.Vec3 {
	pts := p.Points
	if len(pts) == 0 {
		return mathutil.Zero
	}
	if len(pts) == 1 {
		return pts[0]
	}

	var total float64
	for i := 1; i < len(pts); i++ {
		total += pts[i].Distance(pts[i-1])
	}
	if total == 0 {
		return pts[0]
	}

	remaining := t * total
	for i := 1; i < len(pts); i++ {
		seg := pts[i].Distance(pts[i-1])
		if remaining <= seg && seg > 0 {
			return lerp(pts[i-1], pts[i], remaining/seg)
		}
		remaining -= seg
	}
	return pts[len(pts)-1]
}

func lerp(a, b mathutil.Vec3, t float64) mathutil.Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}
