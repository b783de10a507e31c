package config

var defaultConfig = Config{
	SurfaceID:  "canvas",
	Density:    0,
	ClickScale: 0.75,
	Grid: Grid{
		CellSize:   120,
		MaxColumns: 10,
		MaxRows:    10,
		Scale:      0.9,
	},
	Style: Style{
		LineWidth:  1,
		Stroke:     "#000000",
		Background: "#ffffff",
	},
	Window: Window{},
}

func Default() Config {
	return defaultConfig
}

type Config struct {
	SurfaceID  string  `json:"surface_id" yaml:"surface_id"`
	Density    float64 `json:"density" yaml:"density"` // 0 detects the screen density
	ClickScale float64 `json:"click_scale" yaml:"click_scale"`
	Grid       Grid    `json:"grid" yaml:"grid"`
	Style      Style   `json:"style" yaml:"style"`
	Window     Window  `json:"window" yaml:"window"`
}

type Grid struct {
	CellSize   float64 `json:"cell_size" yaml:"cell_size"`
	MaxColumns int     `json:"max_columns" yaml:"max_columns"`
	MaxRows    int     `json:"max_rows" yaml:"max_rows"`
	Scale      float64 `json:"scale" yaml:"scale"`
}

type Style struct {
	LineWidth  float64 `json:"line_width" yaml:"line_width"`
	Stroke     string  `json:"stroke" yaml:"stroke"`
	Background string  `json:"background" yaml:"background"`
}

// Window is the initial X11 window size, zero means the screen size.
type Window struct {
	Width  uint16 `json:"width" yaml:"width"`
	Height uint16 `json:"height" yaml:"height"`
}
