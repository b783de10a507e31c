// Package glyph draws the smiley glyph.
package glyph

import (
	"fmt"
	"math"

	"github.com/ItsNotGoodName/x-smiley/internal/surface"
	"seehuhn.de/go/geom/vec"
)

// Reference geometry at scale 1.
const (
	FaceRadius  = 50.0
	MouthRadius = 35.0
	EyeRadius   = 5.0
	EyeOffsetX  = 10.0
	EyeOffsetY  = 10.0
)

// Instance is one glyph placement.
type Instance struct {
	CenterX float64 `json:"x"`
	CenterY float64 `json:"y"`
	Scale   float64 `json:"scale"`
}

// Arc is one sub-path of the glyph. When HasPen is set the pen is moved to
// Pen before the arc is appended.
type Arc struct {
	Pen    vec.Vec2
	HasPen bool
	Center vec.Vec2
	Radius float64
	Start  float64
	End    float64
}

// Shapes returns the sub-paths of a glyph centered at (x, y): outline,
// mouth, left eye, right eye.
func Shapes(x, y, scale float64) [4]Arc {
	eyeY := y - EyeOffsetY*scale
	return [4]Arc{
		{
			Center: vec.Vec2{X: x, Y: y},
			Radius: FaceRadius * scale,
			Start:  0,
			End:    2 * math.Pi,
		},
		{
			Pen:    vec.Vec2{X: x + MouthRadius*scale, Y: y},
			HasPen: true,
			Center: vec.Vec2{X: x, Y: y},
			Radius: MouthRadius * scale,
			Start:  0,
			End:    math.Pi,
		},
		{
			Pen:    vec.Vec2{X: x - (EyeOffsetX-EyeRadius)*scale, Y: eyeY},
			HasPen: true,
			Center: vec.Vec2{X: x - EyeOffsetX*scale, Y: eyeY},
			Radius: EyeRadius * scale,
			Start:  0,
			End:    2 * math.Pi,
		},
		{
			Pen:    vec.Vec2{X: x + (EyeOffsetX-EyeRadius)*scale, Y: eyeY},
			HasPen: true,
			Center: vec.Vec2{X: x + EyeOffsetX*scale, Y: eyeY},
			Radius: EyeRadius * scale,
			Start:  0,
			End:    2 * math.Pi,
		},
	}
}

// Draw strokes one glyph at (x, y) in logical coordinates.
//
// Nothing is stroked unless every sub-path was accepted; a rejected primitive
// leaves the context with an empty path.
func Draw(s surface.Surface, x, y, scale float64) error {
	ctx, err := s.Context()
	if err != nil {
		return err
	}

	if !finite(x) || !finite(y) || !finite(scale) || scale <= 0 {
		return fmt.Errorf("%w: invalid glyph x=%g y=%g scale=%g", surface.ErrDrawFailed, x, y, scale)
	}

	ctx.BeginPath()
	for _, arc := range Shapes(x, y, scale) {
		if arc.HasPen {
			ctx.MoveTo(arc.Pen.X, arc.Pen.Y)
		}
		if err := ctx.Arc(arc.Center.X, arc.Center.Y, arc.Radius, arc.Start, arc.End); err != nil {
			ctx.BeginPath()
			return fmt.Errorf("%w: arc: %w", surface.ErrDrawFailed, err)
		}
	}

	if err := ctx.Stroke(); err != nil {
		ctx.BeginPath()
		return fmt.Errorf("%w: stroke: %w", surface.ErrDrawFailed, err)
	}

	return nil
}

// DrawInstance is Draw for an Instance.
func DrawInstance(s surface.Surface, g Instance) error {
	return Draw(s, g.CenterX, g.CenterY, g.Scale)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
