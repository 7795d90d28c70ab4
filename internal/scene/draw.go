package scene

import (
	"image/color"

	"golang.org/x/image/colornames"

	"rayprobe/internal/mathutil"
)

// ShapeKind tells the rasterizer how to read a Shape.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeSegment
)

// Shape is one draw command in scene pixels.
// Circles use A and Radius; segments run from A to B.
type Shape struct {
	Kind   ShapeKind
	A, B   mathutil.Vec3
	Radius float64
	Fill   color.NRGBA
	Stroke color.NRGBA
}

// Palette used by Frame.Shapes.
var (
	Background    = opaque(colornames.Black)
	ObstacleFill  = color.NRGBA{20, 20, 20, 255}
	HitOutline    = opaque(colornames.Lime)
	SegmentColor  = opaque(colornames.White)
	ApproachColor = opaque(colornames.Yellow)
	OffsetColor   = opaque(colornames.Red)
)

func opaque(c color.RGBA) color.NRGBA {
	return color.NRGBA{c.R, c.G, c.B, 255}
}

// Shapes returns the frame's draw list in paint order: each obstacle with its
// guides, then the start→target segment on top.
func (f Frame) Shapes() []Shape {
	shapes := make([]Shape, 0, 3*len(f.Obstacles)+1)
	for _, o := range f.Obstacles {
		circle := Shape{Kind: ShapeCircle, A: o.Center, Radius: o.Radius, Fill: ObstacleFill}
		if o.Hit {
			circle.Stroke = HitOutline
		}
		shapes = append(shapes, circle)

		if f.Guides == GuidesAlways || o.Hit {
			shapes = append(shapes,
				Shape{Kind: ShapeSegment, A: f.Start, B: o.Center, Stroke: ApproachColor},
				Shape{Kind: ShapeSegment, A: o.Center, B: o.Projected, Stroke: OffsetColor},
			)
		}
	}
	return append(shapes, Shape{Kind: ShapeSegment, A: f.Start, B: f.Target, Stroke: SegmentColor})
}
