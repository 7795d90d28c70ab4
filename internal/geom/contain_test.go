package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rayprobe/internal/mathutil"
)

func TestPointInRange(t *testing.T) {
	target := mathutil.V3(10, 10, 0)

	assert.True(t, PointInRange(target, target, 0))
	assert.True(t, PointInRange(mathutil.V3(13, 14, 0), target, 5), "boundary is inclusive")
	assert.False(t, PointInRange(mathutil.V3(13, 14, 0), target, 4.999))
	assert.False(t, PointInRange(mathutil.V3(10, 10, 6), target, 5), "z counts")
}

func TestPointInSphere(t *testing.T) {
	for _, r := range []float64{0, 0.5, 1, 100} {
		s := Sphere{Center: mathutil.V3(-3, 7, 2), Radius: r}
		assert.True(t, PointInSphere(s.Center, s), "center contained for r=%v", r)
		assert.True(t, s.Contains(s.Center))
	}

	s := Sphere{Center: mathutil.V3(0, 0, 0), Radius: 2}
	tests := []struct {
		name string
		pos  mathutil.Vec3
		want bool
	}{
		{"inside", mathutil.V3(1, 1, 0), true},
		{"on surface", mathutil.V3(0, 2, 0), true},
		{"just outside", mathutil.V3(0, 2.0001, 0), false},
		{"outside on z", mathutil.V3(0, 0, -3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointInSphere(tt.pos, s))
		})
	}
}

func TestPointInCuboid(t *testing.T) {
	c := Cuboid{Center: mathutil.V3(1, 2, 3), Length: 4, Height: 6, Depth: 8}

	assert.Equal(t, mathutil.V3(-1, -1, -1), c.Min())
	assert.Equal(t, mathutil.V3(3, 5, 7), c.Max())

	tests := []struct {
		name string
		pos  mathutil.Vec3
		want bool
	}{
		{"center", c.Center, true},
		{"max x face", mathutil.V3(c.Center.X()+c.Length/2, 2, 3), true},
		{"min x face", mathutil.V3(c.Center.X()-c.Length/2, 2, 3), true},
		{"max y face", mathutil.V3(1, c.Center.Y()+c.Height/2, 3), true},
		{"min z face", mathutil.V3(1, 2, c.Center.Z()-c.Depth/2), true},
		{"corner", c.Max(), true},
		{"past x", mathutil.V3(3.001, 2, 3), false},
		{"below y", mathutil.V3(1, -1.001, 3), false},
		{"past z", mathutil.V3(1, 2, 7.5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointInCuboid(tt.pos, c))
			assert.Equal(t, tt.want, c.Contains(tt.pos))
		})
	}
}

func TestPointInCube(t *testing.T) {
	cube := NewCube(mathutil.V3(0, 0, 0), 2)
	assert.True(t, cube.IsCube())
	assert.False(t, Cuboid{Length: 1, Height: 2, Depth: 1}.IsCube())
	assert.Equal(t, mathutil.One, cube.HalfExtents())

	pts := []mathutil.Vec3{
		{0, 0, 0}, {1, 1, 1}, {-1, 0.5, 0}, {1.5, 0, 0}, {0, 0, -1.01},
	}
	for _, p := range pts {
		assert.Equal(t, PointInCuboid(p, cube), PointInCube(p, cube), "%v", p)
	}
	assert.True(t, PointInCube(mathutil.V3(1, -1, 1), cube))
	assert.False(t, PointInCube(mathutil.V3(1.5, 0, 0), cube))
}
