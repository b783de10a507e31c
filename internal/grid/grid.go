// Package grid lays glyphs out on a viewport sized grid.
package grid

import (
	"fmt"
	"math"

	"github.com/ItsNotGoodName/x-smiley/internal/glyph"
	"github.com/ItsNotGoodName/x-smiley/internal/surface"
)

const (
	DefaultCellSize   = 120.0
	DefaultMaxColumns = 10
	DefaultMaxRows    = 10
	DefaultScale      = 0.9
)

// Spec is one computed grid. Cell centers keep a margin of one step on every
// side of the viewport.
type Spec struct {
	Cols  int     `json:"cols"`
	Rows  int     `json:"rows"`
	XStep float64 `json:"x_step"`
	YStep float64 `json:"y_step"`
}

// Center returns the center of the zero based cell (i, j).
func (s Spec) Center(i, j int) (x, y float64) {
	return s.XStep * float64(i+1), s.YStep * float64(j+1)
}

func (s Spec) Count() int {
	return s.Cols * s.Rows
}

// Cell is a grid cell and its center.
type Cell struct {
	Col int     `json:"col"`
	Row int     `json:"row"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

func (s Spec) Cells() []Cell {
	cells := make([]Cell, 0, s.Count())
	for j := 0; j < s.Rows; j++ {
		for i := 0; i < s.Cols; i++ {
			x, y := s.Center(i, j)
			cells = append(cells, Cell{Col: i, Row: j, X: x, Y: y})
		}
	}
	return cells
}

// Engine computes grids and draws a glyph in each cell.
type Engine struct {
	CellSize   float64
	MaxColumns int
	MaxRows    int
	Scale      float64
}

func NewEngine() Engine {
	return Engine{
		CellSize:   DefaultCellSize,
		MaxColumns: DefaultMaxColumns,
		MaxRows:    DefaultMaxRows,
		Scale:      DefaultScale,
	}
}

// Compute returns the grid that fits viewport.
func (e Engine) Compute(viewport surface.Size) (Spec, error) {
	if !viewport.Valid() {
		return Spec{}, fmt.Errorf("%w: %gx%g", surface.ErrViewportUnreadable, viewport.Width, viewport.Height)
	}

	cols := fit(viewport.Width, e.CellSize, e.MaxColumns)
	rows := fit(viewport.Height, e.CellSize, e.MaxRows)

	return Spec{
		Cols:  cols,
		Rows:  rows,
		XStep: viewport.Width / float64(cols+1),
		YStep: viewport.Height / float64(rows+1),
	}, nil
}

// LayoutAndDraw computes the grid for viewport and draws every cell. It stops
// at the first failing cell and returns how many glyphs were drawn; glyphs
// drawn before the failure stay on the surface.
func (e Engine) LayoutAndDraw(s surface.Surface, viewport surface.Size) (int, error) {
	spec, err := e.Compute(viewport)
	if err != nil {
		return 0, err
	}

	drawn := 0
	for _, cell := range spec.Cells() {
		if err := glyph.Draw(s, cell.X, cell.Y, e.Scale); err != nil {
			return drawn, fmt.Errorf("cell %d,%d: %w", cell.Col, cell.Row, err)
		}
		drawn++
	}

	return drawn, nil
}

func fit(length, cell float64, limit int) int {
	if limit < 1 {
		limit = 1
	}
	if cell <= 0 {
		return limit
	}
	n := math.Floor(length / cell)
	return int(math.Max(1, math.Min(n, float64(limit))))
}
