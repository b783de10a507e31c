package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ItsNotGoodName/x-smiley/internal/glyph"
	"github.com/ItsNotGoodName/x-smiley/internal/grid"
	"github.com/ItsNotGoodName/x-smiley/internal/surface"
)

// Point is a logical coordinate on the surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ParsePoints parses "x:y,x:y".
func ParsePoints(s string) ([]Point, error) {
	var points []Point
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		xs, ys, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("point %q: expected x:y", field)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", field, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", field, err)
		}

		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}

type RenderOptions struct {
	Viewport   surface.Size
	Density    float64
	Engine     grid.Engine
	Clicks     []Point
	ClickScale float64
	// Legacy draws the fixed 5x5 layout at density 1 instead of the grid.
	Legacy bool
}

type RenderResult struct {
	Buffer surface.PhysicalSize `json:"buffer"`
	Grid   grid.Spec            `json:"grid"`
	Glyphs int                  `json:"glyphs"`
}

// Render performs one grid pass on s followed by a glyph per click, the same
// sequence a resize followed by clicks produces.
func Render(s surface.Surface, opts RenderOptions) (RenderResult, error) {
	if opts.ClickScale <= 0 {
		opts.ClickScale = DefaultClickScale
	}

	var res RenderResult
	if opts.Legacy {
		drawn, err := grid.DrawLegacy(s, opts.Viewport)
		res.Glyphs = drawn
		res.Buffer = s.BufferSize()
		if err != nil {
			return res, err
		}
	} else {
		if opts.Engine == (grid.Engine{}) {
			opts.Engine = grid.NewEngine()
		}

		physical, err := surface.Configure(s, opts.Viewport, opts.Density)
		if err != nil {
			return res, err
		}
		res.Buffer = physical

		spec, err := opts.Engine.Compute(opts.Viewport)
		if err != nil {
			return res, err
		}
		res.Grid = spec

		drawn, err := opts.Engine.LayoutAndDraw(s, opts.Viewport)
		res.Glyphs = drawn
		if err != nil {
			return res, err
		}
	}

	for _, p := range opts.Clicks {
		if err := glyph.Draw(s, p.X, p.Y, opts.ClickScale); err != nil {
			return res, err
		}
		res.Glyphs++
	}

	return res, nil
}
