package surface

import (
	"math"

	"seehuhn.de/go/geom/matrix"
)

// Context is a 2D path drawing context.
type Context interface {
	BeginPath()
	MoveTo(x, y float64)
	// Arc appends a circular arc around (x, y) from startAngle to endAngle.
	Arc(x, y, radius, startAngle, endAngle float64) error
	Stroke() error

	// SetTransform replaces the current transform.
	SetTransform(m matrix.Matrix)
	Transform() matrix.Matrix
	// ClearRect clears a rectangle given in the current transform's space.
	ClearRect(x, y, width, height float64)
}

// Surface is a pixel buffer that hands out a 2D context.
type Surface interface {
	// Context fails with ErrSurfaceUnavailable when no drawing context can be obtained.
	Context() (Context, error)

	SetDisplaySize(width, height float64)
	DisplaySize() Size

	SetBufferSize(width, height int) error
	BufferSize() PhysicalSize
}

// Size is a size in logical pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s Size) Valid() bool {
	return isPositive(s.Width) && isPositive(s.Height)
}

// PhysicalSize is a size in device pixels.
type PhysicalSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

const MinDensity = 1.0

// ClampDensity returns density clamped to MinDensity.
func ClampDensity(density float64) float64 {
	if math.IsNaN(density) || math.IsInf(density, 0) || density < MinDensity {
		return MinDensity
	}
	return density
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
