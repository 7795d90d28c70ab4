package raycast

import (
	"math"

	"rayprobe/internal/geom"
	"rayprobe/internal/mathutil"
)

// Intersection is the outcome of testing one sphere against a segment.
type Intersection struct {
	Hit bool `json:"hit"`
	// Projected is the point on the segment closest to the sphere center.
	// It is set whether or not the sphere was hit.
	Projected mathutil.Vec3 `json:"projected"`
}

// IntersectSphere tests whether sphere touches the finite segment start→target.
//
// The sphere center is projected onto the segment direction and the projection
// length is clamped to [0, |target-start|], so centers behind start or past
// target are measured from the nearest endpoint. The sphere is hit when that
// closest point lies within its radius.
func IntersectSphere(start, target mathutil.Vec3, sphere geom.Sphere) Intersection {
	targetAxis := target.Sub(start)
	obstacleAxis := sphere.Center.Sub(start)

	// A zero-length or non-finite axis has no direction: the closest point
	// degenerates to start.
	var proj float64
	if angle, err := mathutil.Angle(targetAxis, obstacleAxis); err == nil {
		proj = obstacleAxis.Len() * math.Cos(angle)
		proj = math.Max(0, math.Min(proj, targetAxis.Len()))
	}

	projected := start
	if dir, err := targetAxis.Normalize(); err == nil {
		projected = start.Add(dir.Scale(proj))
	}

	return Intersection{
		Hit:       projected.Distance(sphere.Center) <= sphere.Radius,
		Projected: projected,
	}
}
