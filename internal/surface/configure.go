package surface

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
)

// Configure sizes the surface for viewport at the given pixel density and
// installs a transform so drawing can be issued in logical coordinates.
//
// The backing buffer is rounded to whole device pixels before the transform
// is installed, so one logical unit always covers exactly density pixels.
func Configure(s Surface, viewport Size, density float64) (PhysicalSize, error) {
	ctx, err := s.Context()
	if err != nil {
		return PhysicalSize{}, err
	}

	if !viewport.Valid() {
		return PhysicalSize{}, fmt.Errorf("%w: %gx%g", ErrViewportUnreadable, viewport.Width, viewport.Height)
	}

	density = ClampDensity(density)
	physical := PhysicalSizeOf(viewport, density)

	s.SetDisplaySize(viewport.Width, viewport.Height)
	if err := s.SetBufferSize(physical.Width, physical.Height); err != nil {
		return PhysicalSize{}, fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}

	ctx.SetTransform(matrix.Identity)
	ctx.ClearRect(0, 0, float64(physical.Width), float64(physical.Height))
	ctx.SetTransform(DensityTransform(density))

	return physical, nil
}

// PhysicalSizeOf returns the backing buffer size for viewport at density.
func PhysicalSizeOf(viewport Size, density float64) PhysicalSize {
	return PhysicalSize{
		Width:  max(1, int(math.Round(viewport.Width*density))),
		Height: max(1, int(math.Round(viewport.Height*density))),
	}
}

// DensityTransform maps logical coordinates to device pixels.
func DensityTransform(density float64) matrix.Matrix {
	return matrix.Scale(density, density)
}
