package raycast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"rayprobe/internal/geom"
	"rayprobe/internal/mathutil"
)

const eps = 1e-9

func sphere(x, y, z, r float64) geom.Sphere {
	return geom.Sphere{Center: mathutil.V3(x, y, z), Radius: r}
}

func TestIntersectSphere(t *testing.T) {
	start := mathutil.V3(0, 0, 0)
	target := mathutil.V3(10, 0, 0)

	tests := []struct {
		name      string
		sphere    geom.Sphere
		hit       bool
		projected mathutil.Vec3
	}{
		{"on segment", sphere(5, 0, 0, 1), true, mathutil.V3(5, 0, 0)},
		{"far off segment", sphere(5, 20, 0, 1), false, mathutil.V3(5, 0, 0)},
		{"touching off axis", sphere(5, 1, 0, 1.5), true, mathutil.V3(5, 0, 0)},
		{"exactly at radius", sphere(5, 1, 0, 1), true, mathutil.V3(5, 0, 0)},
		{"just beyond radius", sphere(5, 1, 0, 0.999), false, mathutil.V3(5, 0, 0)},
		{"behind start clamps to start", sphere(-5, 0, 0, 1), false, start},
		{"behind start but touching", sphere(-0.5, 0.5, 0, 1), true, start},
		{"past target clamps to target", sphere(15, 0, 0, 4), false, target},
		{"past target but touching", sphere(15, 0, 0, 6), true, target},
		{"out of plane", sphere(5, 0, 3, 2), false, mathutil.V3(5, 0, 0)},
		{"center at start", sphere(0, 0, 0, 0), true, start},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntersectSphere(start, target, tt.sphere)
			assert.Equal(t, tt.hit, got.Hit)
			assert.True(t, got.Projected.ApproxEqual(tt.projected, 1e-6),
				"projected %v, want %v", got.Projected, tt.projected)
		})
	}
}

func TestIntersectSphereClampDiffersFromInfiniteLine(t *testing.T) {
	// The infinite line through the segment passes straight through the
	// sphere, but the segment itself stops well short of it.
	start := mathutil.V3(0, 0, 0)
	target := mathutil.V3(10, 0, 0)
	s := sphere(-5, 0, 0, 1)

	got := IntersectSphere(start, target, s)
	assert.False(t, got.Hit)
	assert.Equal(t, start, got.Projected)
	assert.NotEqual(t, s.Center, got.Projected, "must not use the unclamped projection")
}

func TestIntersectSphereDegenerateSegment(t *testing.T) {
	p := mathutil.V3(3, 3, 0)

	got := IntersectSphere(p, p, sphere(4, 3, 0, 1))
	assert.True(t, got.Hit)
	assert.Equal(t, p, got.Projected)

	got = IntersectSphere(p, p, sphere(10, 3, 0, 1))
	assert.False(t, got.Hit)
	assert.Equal(t, p, got.Projected)
}

func TestIntersectSphereScreenSpace(t *testing.T) {
	// Coordinates from the single-sphere demo scene.
	start := mathutil.V3(360, 480, 0)
	target := mathutil.V3(470, 60, 0)

	hit := IntersectSphere(start, target, sphere(415, 270, 0, 100))
	assert.True(t, hit.Hit)
	assert.InDelta(t, 0, hit.Projected.Distance(mathutil.V3(415, 270, 0)), 1e-6)

	miss := IntersectSphere(start, target, sphere(800, 300, 0, 100))
	assert.False(t, miss.Hit)
	onSegment := miss.Projected.Sub(start).Len() <= target.Sub(start).Len()+eps
	assert.True(t, onSegment)
}

func TestIntersectSphereHugeCoordinates(t *testing.T) {
	start := mathutil.V3(480, 500, 0)
	target := mathutil.V3(1e308, 1e308, 0)

	got := IntersectSphere(start, target, sphere(800, 350, 0, 70))
	assert.False(t, got.Hit)
	assert.True(t, got.Projected.IsFinite())
	want := 170 / math.Sqrt2 / math.Sqrt2
	assert.True(t, got.Projected.ApproxEqual(mathutil.V3(480+want, 500+want, 0), 1e-6),
		"projected %v", got.Projected)

	got = IntersectSphere(start, target, sphere(600, 620, 0, 10))
	assert.True(t, got.Hit)
	assert.True(t, got.Projected.IsFinite())
}

func TestTarget(t *testing.T) {
	start := mathutil.V3(0, 0, 0)
	target := mathutil.V3(10, 0, 0)

	assert.True(t, Target(start, target, nil), "no obstacles means clear")
	assert.True(t, Target(start, target, []geom.Sphere{}))
	assert.False(t, Target(start, target, []geom.Sphere{sphere(5, 0, 0, 1)}))
	assert.True(t, Target(start, target, []geom.Sphere{sphere(5, 20, 0, 1), sphere(-5, 0, 0, 1)}))
	assert.False(t, Target(start, target, []geom.Sphere{sphere(5, 20, 0, 1), sphere(9, 0.5, 0, 1)}))
}

func TestProbe(t *testing.T) {
	start := mathutil.V3(0, 0, 0)
	target := mathutil.V3(10, 0, 0)
	obstacles := []geom.Sphere{
		sphere(5, 20, 0, 1),
		sphere(5, 0, 0, 1),
		sphere(-5, 0, 0, 1),
		sphere(9, 0.5, 0, 1),
	}

	hits := Probe(start, target, obstacles)
	assert.Len(t, hits, len(obstacles))
	for i, o := range obstacles {
		assert.Equal(t, IntersectSphere(start, target, o), hits[i])
	}
	assert.Empty(t, Probe(start, target, nil))
}
