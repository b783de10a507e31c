package grid

import (
	"fmt"

	"github.com/ItsNotGoodName/x-smiley/internal/glyph"
	"github.com/ItsNotGoodName/x-smiley/internal/surface"
)

// Fixed layout of the first version: 5x5 glyphs at scale 1, 100 units apart,
// the first one 50 units from the top left corner, no density scaling.
const (
	LegacyCount   = 5
	LegacyOrigin  = 50.0
	LegacySpacing = 100.0
)

// LegacyInstances returns the glyphs of the fixed 5x5 layout.
func LegacyInstances() []glyph.Instance {
	instances := make([]glyph.Instance, 0, LegacyCount*LegacyCount)
	for i := 0; i < LegacyCount; i++ {
		for j := 0; j < LegacyCount; j++ {
			instances = append(instances, glyph.Instance{
				CenterX: LegacyOrigin + float64(i)*LegacySpacing,
				CenterY: LegacyOrigin + float64(j)*LegacySpacing,
				Scale:   1,
			})
		}
	}
	return instances
}

// DrawLegacy configures s at density 1 and draws the fixed layout.
func DrawLegacy(s surface.Surface, viewport surface.Size) (int, error) {
	if _, err := surface.Configure(s, viewport, surface.MinDensity); err != nil {
		return 0, err
	}

	drawn := 0
	for _, g := range LegacyInstances() {
		if err := glyph.DrawInstance(s, g); err != nil {
			return drawn, fmt.Errorf("legacy glyph %d: %w", drawn, err)
		}
		drawn++
	}
	return drawn, nil
}
