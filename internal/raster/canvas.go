package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"rayprobe/internal/mathutil"
)

// Canvas is an NRGBA drawing target addressed in scene pixels. With a scale
// above 1 the backing image is that many times larger, for supersampling.
type Canvas struct {
	img   *image.NRGBA
	scale float64
	z     *vector.Rasterizer
}

// NewCanvas allocates a w×h scene-pixel canvas backed by a (w*scale)×(h*scale) image.
func NewCanvas(w, h, scale int) *Canvas {
	if scale < 1 {
		scale = 1
	}
	pw, ph := w*scale, h*scale
	return &Canvas{
		img:   image.NewNRGBA(image.Rect(0, 0, pw, ph)),
		scale: float64(scale),
		z:     vector.NewRasterizer(pw, ph),
	}
}

// Image returns the backing image (not a copy).
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col color.NRGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Blit copies src over the canvas. src is expected to already match the
// backing image size (see texture.Fit).
func (c *Canvas) Blit(src image.Image) {
	draw.Draw(c.img, c.img.Bounds(), src, src.Bounds().Min, draw.Over)
}

// Circle fills a disc of radius r around center, then strokes a ring of the
// given width just outside it. Colors with zero alpha are skipped.
func (c *Canvas) Circle(center mathutil.Vec3, r float64, fill, stroke color.NRGBA, width float64) {
	cx, cy := center.X()*c.scale, center.Y()*c.scale
	rr := r * c.scale
	w := width * c.scale

	if fill.A > 0 && rr > 0 {
		c.begin()
		c.ring(cx, cy, rr, false)
		c.paint(fill)
	}
	if stroke.A > 0 && w > 0 {
		c.begin()
		c.ring(cx, cy, rr+w, false)
		if rr > 0 {
			c.ring(cx, cy, rr, true)
		}
		c.paint(stroke)
	}
}

// Segment draws a straight line of the given width from a to b.
func (c *Canvas) Segment(a, b mathutil.Vec3, col color.NRGBA, width float64) {
	if col.A == 0 || width <= 0 {
		return
	}
	ax, ay := a.X()*c.scale, a.Y()*c.scale
	bx, by := b.X()*c.scale, b.Y()*c.scale
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	hw := width * c.scale / 2
	nx, ny := -dy/l*hw, dx/l*hw

	c.begin()
	c.z.MoveTo(float32(ax+nx), float32(ay+ny))
	c.z.LineTo(float32(bx+nx), float32(by+ny))
	c.z.LineTo(float32(bx-nx), float32(by-ny))
	c.z.LineTo(float32(ax-nx), float32(ay-ny))
	c.z.ClosePath()
	c.paint(col)
}

func (c *Canvas) begin() {
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.z.DrawOp = draw.Over
}

func (c *Canvas) paint(col color.NRGBA) {
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// ring adds a closed polygon approximating a circle. Reversed rings cut holes.
func (c *Canvas) ring(cx, cy, r float64, reverse bool) {
	n := int(math.Ceil(2 * math.Pi * r / 4))
	n = max(32, min(n, 720))
	step := 2 * math.Pi / float64(n)
	if reverse {
		step = -step
	}
	c.z.MoveTo(float32(cx+r), float32(cy))
	for i := 1; i < n; i++ {
		a := step * float64(i)
		c.z.LineTo(float32(cx+r*math.Cos(a)), float32(cy+r*math.Sin(a)))
	}
	c.z.ClosePath()
}
