// Package canvas is a raster surface backed by gg's software renderer.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/ItsNotGoodName/x-smiley/internal/surface"
	"github.com/gogpu/gg"
	"seehuhn.de/go/geom/matrix"
)

type Options struct {
	LineWidth  float64
	Stroke     color.Color
	Background color.Color
}

func DefaultOptions() Options {
	return Options{
		LineWidth:  1,
		Stroke:     color.Black,
		Background: color.White,
	}
}

// HexOptions builds options from "#rrggbb" style colors.
func HexOptions(lineWidth float64, stroke, background string) Options {
	return Options{
		LineWidth:  lineWidth,
		Stroke:     gg.Hex(stroke).Color(),
		Background: gg.Hex(background).Color(),
	}
}

// Canvas is a raster surface. It is not safe for concurrent use.
type Canvas struct {
	dc      *gg.Context
	ctx     *Context
	opts    Options
	display surface.Size
	closed  bool
}

var _ surface.Surface = (*Canvas)(nil)

// New returns a canvas with a width by height pixel buffer.
func New(width, height int, opts Options) *Canvas {
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}
	if opts.Stroke == nil {
		opts.Stroke = color.Black
	}
	if opts.Background == nil {
		opts.Background = color.White
	}

	dc := gg.NewContext(max(width, 1), max(height, 1))
	c := &Canvas{
		dc:   dc,
		opts: opts,
		display: surface.Size{
			Width:  float64(max(width, 1)),
			Height: float64(max(height, 1)),
		},
	}
	c.ctx = &Context{canvas: c, matrix: matrix.Identity}
	dc.ClearWithColor(gg.FromColor(opts.Background))
	return c
}

func (c *Canvas) Context() (surface.Context, error) {
	if c.closed {
		return nil, fmt.Errorf("%w: canvas closed", surface.ErrSurfaceUnavailable)
	}
	return c.ctx, nil
}

func (c *Canvas) SetDisplaySize(width, height float64) {
	c.display = surface.Size{Width: width, Height: height}
}

func (c *Canvas) DisplaySize() surface.Size {
	return c.display
}

func (c *Canvas) SetBufferSize(width, height int) error {
	if c.closed {
		return surface.ErrSurfaceUnavailable
	}
	return c.dc.Resize(width, height)
}

func (c *Canvas) BufferSize() surface.PhysicalSize {
	return surface.PhysicalSize{Width: c.dc.Width(), Height: c.dc.Height()}
}

// Image returns the current buffer.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// Pixmap exposes the backing RGBA pixels.
func (c *Canvas) Pixmap() *gg.Pixmap {
	return c.dc.ResizeTarget()
}

func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.dc.Close()
}

// Context draws into a Canvas.
type Context struct {
	canvas *Canvas
	matrix matrix.Matrix
}

func (c *Context) BeginPath() {
	c.canvas.dc.ClearPath()
}

func (c *Context) MoveTo(x, y float64) {
	c.canvas.dc.MoveTo(x, y)
}

// Arc appends the arc in user space and lets the context transform every
// point, so the radius follows the transform as well as the center.
func (c *Context) Arc(x, y, radius, startAngle, endAngle float64) error {
	for _, v := range []float64{x, y, radius, startAngle, endAngle} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("arc: non-finite argument")
		}
	}
	if radius < 0 {
		return fmt.Errorf("arc: negative radius %g", radius)
	}

	dc := c.canvas.dc
	p := gg.NewPath()
	p.Arc(x, y, radius, startAngle, endAngle)
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case gg.MoveTo:
			c.joinTo(e.Point)
		case gg.LineTo:
			dc.LineTo(e.Point.X, e.Point.Y)
		case gg.CubicTo:
			dc.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		}
	}
	return nil
}

// joinTo starts the arc at pt, connecting it to the current point with a
// line when the two differ.
func (c *Context) joinTo(pt gg.Point) {
	dc := c.canvas.dc
	cx, cy, ok := dc.GetCurrentPoint()
	if !ok {
		dc.MoveTo(pt.X, pt.Y)
		return
	}
	dx, dy := dc.TransformPoint(pt.X, pt.Y)
	if math.Hypot(dx-cx, dy-cy) > 1e-9 {
		dc.LineTo(pt.X, pt.Y)
	}
}

func (c *Context) Stroke() error {
	dc := c.canvas.dc
	dc.SetColor(c.canvas.opts.Stroke)
	dc.SetLineWidth(c.canvas.opts.LineWidth)
	return dc.Stroke()
}

func (c *Context) SetTransform(m matrix.Matrix) {
	c.matrix = m
	c.canvas.dc.SetTransform(ggMatrix(m))
}

func (c *Context) Transform() matrix.Matrix {
	return c.matrix
}

// ClearRect fills the rectangle with the background color.
func (c *Context) ClearRect(x, y, width, height float64) {
	pm := c.canvas.Pixmap()
	bg := gg.FromColor(c.canvas.opts.Background)

	m := c.matrix
	x0, y0 := m[0]*x+m[2]*y+m[4], m[1]*x+m[3]*y+m[5]
	x1, y1 := m[0]*(x+width)+m[2]*(y+height)+m[4], m[1]*(x+width)+m[3]*(y+height)+m[5]

	r := image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1))).
		Intersect(image.Rect(0, 0, pm.Width(), pm.Height()))
	if r.Empty() {
		return
	}
	if r == image.Rect(0, 0, pm.Width(), pm.Height()) {
		pm.Clear(bg)
		return
	}
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			pm.SetPixel(px, py, bg)
		}
	}
}

// ggMatrix converts from the (a b c d e f) row vector form to gg's layout.
func ggMatrix(m matrix.Matrix) gg.Matrix {
	return gg.Matrix{
		A: m[0], B: m[2], C: m[4],
		D: m[1], E: m[3], F: m[5],
	}
}
