// Package record implements a surface that records path commands instead of
// rasterizing them.
package record

import (
	"fmt"
	"math"

	"github.com/ItsNotGoodName/x-smiley/internal/surface"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

type Op string

const (
	OpBeginPath Op = "begin_path"
	OpMoveTo    Op = "move_to"
	OpArc       Op = "arc"
	OpStroke    Op = "stroke"
	OpTransform Op = "set_transform"
	OpClearRect Op = "clear_rect"
)

// Command is one recorded call. Point and Radius are in the coordinates the
// caller used; Device and DeviceRadius are mapped through the transform that
// was active at the time of the call.
type Command struct {
	Op           Op            `json:"op"`
	Point        vec.Vec2      `json:"point"`
	Device       vec.Vec2      `json:"device"`
	Radius       float64       `json:"radius,omitempty"`
	DeviceRadius float64       `json:"device_radius,omitempty"`
	Start        float64       `json:"start,omitempty"`
	End          float64       `json:"end,omitempty"`
	Width        float64       `json:"width,omitempty"`
	Height       float64       `json:"height,omitempty"`
	Matrix       matrix.Matrix `json:"matrix"`
}

// Surface records every command issued through its context.
type Surface struct {
	// Unavailable makes Context fail.
	Unavailable bool
	// ArcErr, when set, is returned by the FailArc-th call to Arc (1-based, 0 means every call).
	ArcErr  error
	FailArc int
	// StrokeErr, when set, is returned by Stroke.
	StrokeErr error

	display  surface.Size
	buffer   surface.PhysicalSize
	ctx      *Context
	arcCalls int
}

var _ surface.Surface = (*Surface)(nil)

func New() *Surface {
	s := &Surface{}
	s.ctx = &Context{surface: s, matrix: matrix.Identity}
	return s
}

func (s *Surface) Context() (surface.Context, error) {
	if s.Unavailable {
		return nil, fmt.Errorf("%w: recorder disabled", surface.ErrSurfaceUnavailable)
	}
	return s.ctx, nil
}

func (s *Surface) SetDisplaySize(width, height float64) {
	s.display = surface.Size{Width: width, Height: height}
}

func (s *Surface) DisplaySize() surface.Size {
	return s.display
}

func (s *Surface) SetBufferSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid buffer size %dx%d", width, height)
	}
	s.buffer = surface.PhysicalSize{Width: width, Height: height}
	return nil
}

func (s *Surface) BufferSize() surface.PhysicalSize {
	return s.buffer
}

// Commands returns every recorded command.
func (s *Surface) Commands() []Command {
	return s.ctx.commands
}

// Strokes returns the commands of each stroked path, in order. Paths
// discarded by BeginPath without a stroke are not included.
func (s *Surface) Strokes() [][]Command {
	var (
		strokes [][]Command
		current []Command
	)
	for _, cmd := range s.ctx.commands {
		switch cmd.Op {
		case OpBeginPath:
			current = nil
		case OpMoveTo, OpArc:
			current = append(current, cmd)
		case OpStroke:
			strokes = append(strokes, current)
			current = nil
		}
	}
	return strokes
}

// Reset drops recorded commands.
func (s *Surface) Reset() {
	s.ctx.commands = nil
	s.arcCalls = 0
}

// Context records commands for a Surface.
type Context struct {
	surface  *Surface
	matrix   matrix.Matrix
	commands []Command
}

func (c *Context) BeginPath() {
	c.record(Command{Op: OpBeginPath})
}

func (c *Context) MoveTo(x, y float64) {
	c.record(Command{Op: OpMoveTo, Point: vec.Vec2{X: x, Y: y}})
}

func (c *Context) Arc(x, y, radius, startAngle, endAngle float64) error {
	c.surface.arcCalls++
	if c.surface.ArcErr != nil && (c.surface.FailArc == 0 || c.surface.FailArc == c.surface.arcCalls) {
		return c.surface.ArcErr
	}
	if radius < 0 || math.IsNaN(radius) {
		return fmt.Errorf("negative radius %g", radius)
	}
	c.record(Command{
		Op:     OpArc,
		Point:  vec.Vec2{X: x, Y: y},
		Radius: radius,
		Start:  startAngle,
		End:    endAngle,
	})
	return nil
}

func (c *Context) Stroke() error {
	if c.surface.StrokeErr != nil {
		return c.surface.StrokeErr
	}
	c.record(Command{Op: OpStroke})
	return nil
}

func (c *Context) SetTransform(m matrix.Matrix) {
	c.matrix = m
	c.record(Command{Op: OpTransform})
}

func (c *Context) Transform() matrix.Matrix {
	return c.matrix
}

func (c *Context) ClearRect(x, y, width, height float64) {
	c.record(Command{Op: OpClearRect, Point: vec.Vec2{X: x, Y: y}, Width: width, Height: height})
}

func (c *Context) record(cmd Command) {
	m := c.matrix
	cmd.Matrix = m
	cmd.Device = vec.Vec2{
		X: m[0]*cmd.Point.X + m[2]*cmd.Point.Y + m[4],
		Y: m[1]*cmd.Point.X + m[3]*cmd.Point.Y + m[5],
	}
	if cmd.Radius != 0 {
		cmd.DeviceRadius = cmd.Radius * math.Hypot(m[0], m[1])
	}
	c.commands = append(c.commands, cmd)
}
