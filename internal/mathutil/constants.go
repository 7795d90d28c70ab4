package mathutil

import "math"

// Reference vectors. Screen space: x grows right, y grows up the axis the
// caller picks, z points out of the screen.
//
// They are read-only: never index-assign into them or pass their address to
// the *Assign methods. Every Vec3 method takes its operands by value, so
// arithmetic on them works on copies.
var (
	Zero    = Vec3{0, 0, 0}
	One     = Vec3{1, 1, 1}
	Right   = Vec3{1, 0, 0}
	Left    = Vec3{-1, 0, 0}
	Up      = Vec3{0, 1, 0}
	Down    = Vec3{0, -1, 0}
	Forward = Vec3{0, 0, 1}
	Back    = Vec3{0, 0, -1}
)

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}
