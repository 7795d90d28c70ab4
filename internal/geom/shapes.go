package geom

import "rayprobe/internal/mathutil"

// Sphere is a ball around Center. In the screen-plane demo it is drawn as a circle.
type Sphere struct {
	Center mathutil.Vec3 `json:"center" yaml:"center"`
	Radius float64       `json:"radius" yaml:"radius"`
}

// Contains is PointInSphere as a method.
func (s Sphere) Contains(p mathutil.Vec3) bool {
	return PointInSphere(p, s)
}

// Cuboid is an axis-aligned box centered on Center.
// Length runs along x, Height along y, Depth along z.
type Cuboid struct {
	Center mathutil.Vec3 `json:"center" yaml:"center"`
	Length float64       `json:"length" yaml:"length"`
	Height float64       `json:"height" yaml:"height"`
	Depth  float64       `json:"depth" yaml:"depth"`
}

// NewCube returns a cuboid whose three extents equal size.
func NewCube(center mathutil.Vec3, size float64) Cuboid {
	return Cuboid{Center: center, Length: size, Height: size, Depth: size}
}

// IsCube reports whether all three extents match.
func (c Cuboid) IsCube() bool {
	return c.Length == c.Height && c.Height == c.Depth
}

// HalfExtents returns (length/2, height/2, depth/2).
func (c Cuboid) HalfExtents() mathutil.Vec3 {
	return mathutil.Vec3{c.Length / 2, c.Height / 2, c.Depth / 2}
}

func (c Cuboid) Min() mathutil.Vec3 {
	return c.Center.Sub(c.HalfExtents())
}

func (c Cuboid) Max() mathutil.Vec3 {
	return c.Center.Add(c.HalfExtents())
}

// Contains is PointInCuboid as a method.
func (c Cuboid) Contains(p mathutil.Vec3) bool {
	return PointInCuboid(p, c)
}
