package raster

import (
	"image"

	"rayprobe/internal/scene"
)

// Options controls how a frame is drawn.
type Options struct {
	// Supersample multiplies the backing resolution; callers downsample afterwards.
	Supersample int
	// Backdrop, if set, is drawn over the background before any shape. It must
	// match the supersampled canvas size.
	Backdrop     image.Image
	LineWidth    float64
	OutlineWidth float64
}

// DefaultOptions returns the stock line widths with no supersampling.
func DefaultOptions() Options {
	return Options{
		Supersample:  1,
		LineWidth:    2,
		OutlineWidth: 2,
	}
}

// RenderFrame draws the frame's shapes onto a fresh canvas and returns the
// (possibly supersampled) image.
func RenderFrame(f scene.Frame, opts Options) *image.NRGBA {
	c := NewCanvas(f.Width, f.Height, opts.Supersample)
	c.Clear(scene.Background)
	if opts.Backdrop != nil {
		c.Blit(opts.Backdrop)
	}

	for _, s := range f.Shapes() {
		switch s.Kind {
		case scene.ShapeCircle:
			c.Circle(s.A, s.Radius, s.Fill, s.Stroke, opts.OutlineWidth)
		case scene.ShapeSegment:
			c.Segment(s.A, s.B, s.Stroke, opts.LineWidth)
		}
	}

	return c.Image()
}
