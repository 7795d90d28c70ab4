package geom

import "rayprobe/internal/mathutil"

// PointInRange reports whether pos lies within r of target (boundary included).
func PointInRange(pos, target mathutil.Vec3, r float64) bool {
	return pos.Distance(target) <= r
}

// PointInSphere reports whether pos lies inside s or on its surface.
func PointInSphere(pos mathutil.Vec3, s Sphere) bool {
	return pos.Distance(s.Center) <= s.Radius
}

// PointInCuboid reports whether pos lies inside c. Faces count as inside.
func PointInCuboid(pos mathutil.Vec3, c Cuboid) bool {
	lo, hi := c.Min(), c.Max()
	for i := 0; i < 3; i++ {
		if pos[i] < lo[i] || pos[i] > hi[i] {
			return false
		}
	}
	return true
}

// PointInCube is PointInCuboid for a cube built with NewCube.
func PointInCube(pos mathutil.Vec3, cube Cuboid) bool {
	return PointInCuboid(pos, cube)
}
