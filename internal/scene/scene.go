package scene

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"rayprobe/internal/geom"
	"rayprobe/internal/mathutil"
	"rayprobe/internal/raycast"
)

// FollowMode selects what the cursor drives.
type FollowMode string

const (
	FollowSphere FollowMode = "sphere" // cursor moves Obstacles[FollowIndex]
	FollowTarget FollowMode = "target" // cursor moves the segment end
)

// GuideMode selects when start→center and center→projected guides are drawn.
type GuideMode string

const (
	GuidesAlways GuideMode = "always"
	GuidesOnHit  GuideMode = "on-hit"
)

// Scene is one interactive setup: a segment, a set of obstacles and the
// element the cursor controls.
type Scene struct {
	Name        string        `json:"name" yaml:"name"`
	Width       int           `json:"width" yaml:"width"`
	Height      int           `json:"height" yaml:"height"`
	Start       mathutil.Vec3 `json:"start" yaml:"start"`
	Target      mathutil.Vec3 `json:"target" yaml:"target"`
	Obstacles   []geom.Sphere `json:"obstacles" yaml:"obstacles"`
	Follow      FollowMode    `json:"follow" yaml:"follow"`
	FollowIndex int           `json:"follow_index" yaml:"follow_index"`
	Guides      GuideMode     `json:"guides" yaml:"guides"`
	Path        *Path         `json:"path,omitempty" yaml:"path,omitempty"`
}

// ObstacleView is an obstacle together with its intersection result.
type ObstacleView struct {
	geom.Sphere
	raycast.Intersection
}

// Frame is the evaluated state of a scene for one cursor sample.
type Frame struct {
	Scene     string         `json:"scene"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Guides    GuideMode      `json:"guides"`
	Cursor    mathutil.Vec3  `json:"cursor"`
	Start     mathutil.Vec3  `json:"start"`
	Target    mathutil.Vec3  `json:"target"`
	Obstacles []ObstacleView `json:"obstacles"`
	Clear     bool           `json:"clear"`
}

// Validate checks the scene for values Evaluate cannot work with.
func (s Scene) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("missing name"))
	}
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("bad size %dx%d", s.Width, s.Height))
	}
	if !s.Start.IsFinite() || !s.Target.IsFinite() {
		errs = append(errs, errors.New("start and target must be finite"))
	}
	for i, o := range s.Obstacles {
		if !o.Center.IsFinite() || math.IsNaN(o.Radius) || math.IsInf(o.Radius, 0) {
			errs = append(errs, fmt.Errorf("obstacle %d: non-finite center or radius", i))
		}
		if o.Radius < 0 {
			errs = append(errs, fmt.Errorf("obstacle %d: negative radius %v", i, o.Radius))
		}
	}
	switch s.Follow {
	case FollowTarget:
	case FollowSphere:
		if s.FollowIndex < 0 || s.FollowIndex >= len(s.Obstacles) {
			errs = append(errs, fmt.Errorf("follow_index %d out of range [0,%d)", s.FollowIndex, len(s.Obstacles)))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown follow mode %q", s.Follow))
	}
	switch s.Guides {
	case GuidesAlways, GuidesOnHit:
	default:
		errs = append(errs, fmt.Errorf("unknown guides mode %q", s.Guides))
	}
	if s.Path != nil {
		if err := s.Path.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return nil
}

// Evaluate places the cursor-driven element at cursor and tests every obstacle
// against the start→target segment. The scene itself is not modified.
func (s Scene) Evaluate(cursor mathutil.Vec3) Frame {
	obstacles := slices.Clone(s.Obstacles)
	target := s.Target

	switch s.Follow {
	case FollowSphere:
		if s.FollowIndex >= 0 && s.FollowIndex < len(obstacles) {
			obstacles[s.FollowIndex].Center = cursor
		}
	case FollowTarget:
		target = cursor
	}

	hits := raycast.Probe(s.Start, target, obstacles)
	views := make([]ObstacleView, len(obstacles))
	for i, o := range obstacles {
		views[i] = ObstacleView{Sphere: o, Intersection: hits[i]}
	}

	return Frame{
		Scene:     s.Name,
		Width:     s.Width,
		Height:    s.Height,
		Guides:    s.Guides,
		Cursor:    cursor,
		Start:     s.Start,
		Target:    target,
		Obstacles: views,
		Clear:     raycast.Target(s.Start, target, obstacles),
	}
}

// Cursors samples the scene's path n times. Scenes without a path keep the
// cursor on the element it drives.
func (s Scene) Cursors(n int) []mathutil.Vec3 {
	if s.Path != nil {
		return s.Path.Samples(n)
	}
	rest := s.Target
	if s.Follow == FollowSphere && s.FollowIndex >= 0 && s.FollowIndex < len(s.Obstacles) {
		rest = s.Obstacles[s.FollowIndex].Center
	}
	return Path{Kind: PathLine, From: rest, To: rest}.Samples(n)
}

// Hits returns the indices of obstacles touching the segment.
func (f Frame) Hits() []int {
	idx := []int{}
	for i, o := range f.Obstacles {
		if o.Hit {
			idx = append(idx, i)
		}
	}
	return idx
}

// IsFinite reports whether every coordinate and radius in the frame is a
// finite number, which JSON and the rasterizer both require.
func (f Frame) IsFinite() bool {
	if !f.Cursor.IsFinite() || !f.Start.IsFinite() || !f.Target.IsFinite() {
		return false
	}
	for _, o := range f.Obstacles {
		if !o.Center.IsFinite() || !o.Projected.IsFinite() || math.IsNaN(o.Radius) || math.IsInf(o.Radius, 0) {
			return false
		}
	}
	return true
}
