package scene

import (
	"slices"

	"rayprobe/internal/geom"
	"rayprobe/internal/mathutil"
)

// Canvas size of the built-in scenes.
const (
	DefaultWidth  = 960
	DefaultHeight = 540
)

// Builtins returns the stock scenes. Each call returns fresh copies.
func Builtins() []Scene {
	return []Scene{
		{
			Name:   "line-vs-sphere",
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Start:  mathutil.V3(360, 480, 0),
			Target: mathutil.V3(470, 60, 0),
			Obstacles: []geom.Sphere{
				{Center: mathutil.V3(480, 270, 0), Radius: 100},
			},
			Follow: FollowSphere,
			Guides: GuidesAlways,
			Path: &Path{
				Kind: PathLine,
				From: mathutil.V3(60, 270, 0),
				To:   mathutil.V3(900, 270, 0),
			},
		},
		{
			Name:   "line-vs-spheres",
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Start:  mathutil.V3(480, 500, 0),
			Target: mathutil.V3(480, 40, 0),
			Obstacles: []geom.Sphere{
				{Center: mathutil.V3(100, 100, 0), Radius: 50},
				{Center: mathutil.V3(800, 350, 0), Radius: 70},
				{Center: mathutil.V3(500, 250, 0), Radius: 100},
			},
			Follow: FollowTarget,
			Guides: GuidesOnHit,
			Path: &Path{
				Kind:     PathOrbit,
				Center:   mathutil.V3(480, 500, 0),
				Radius:   460,
				StartDeg: 180,
				SweepDeg: 180,
			},
		},
	}
}

// Lookup finds a scene by name in set.
func Lookup(set []Scene, name string) (Scene, bool) {
	i := slices.IndexFunc(set, func(s Scene) bool { return s.Name == name })
	if i < 0 {
		return Scene{}, false
	}
	return set[i], true
}

// Names lists the scene names in order.
func Names(set []Scene) []string {
	names := make([]string, len(set))
	for i, s := range set {
		names[i] = s.Name
	}
	return names
}
