package raycast

import (
	"rayprobe/internal/geom"
	"rayprobe/internal/mathutil"
)

// Target reports whether start has a clear line of sight to target, that is,
// no obstacle touches the segment between them.
func Target(start, target mathutil.Vec3, obstacles []geom.Sphere) bool {
	for _, o := range obstacles {
		if IntersectSphere(start, target, o).Hit {
			return false
		}
	}
	return true
}

// Probe runs IntersectSphere for every obstacle, in order.
func Probe(start, target mathutil.Vec3, obstacles []geom.Sphere) []Intersection {
	out := make([]Intersection, len(obstacles))
	for i, o := range obstacles {
		out[i] = IntersectSphere(start, target, o)
	}
	return out
}
