package api

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/ItsNotGoodName/x-smiley/internal/app"
	"github.com/ItsNotGoodName/x-smiley/internal/build"
	"github.com/ItsNotGoodName/x-smiley/internal/canvas"
	"github.com/ItsNotGoodName/x-smiley/internal/grid"
	"github.com/ItsNotGoodName/x-smiley/internal/record"
	"github.com/ItsNotGoodName/x-smiley/internal/surface"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
)

// Limits on a single render. Larger requests are scaled down to fit rather
// than rejected, so any browser window gets an image.
const (
	maxLength  = 4096
	maxDensity = 4.0
	maxPixels  = maxLength * maxLength
)

type Options struct {
	Engine     grid.Engine
	ClickScale float64
	Canvas     canvas.Options
}

// API renders grids on request. Every request draws on its own surface.
type API struct {
	opts Options
}

func New(opts Options) *API {
	if opts.Engine == (grid.Engine{}) {
		opts.Engine = grid.NewEngine()
	}
	if opts.ClickScale <= 0 {
		opts.ClickScale = app.DefaultClickScale
	}
	return &API{opts: opts}
}

type ViewportInput struct {
	Width  float64 `query:"width" minimum:"0" doc:"viewport width in logical pixels"`
	Height float64 `query:"height" minimum:"0" doc:"viewport height in logical pixels"`
}

type GridOutput struct {
	Body struct {
		Spec  grid.Spec   `json:"spec"`
		Cells []grid.Cell `json:"cells"`
	}
}

type DrawInput struct {
	ViewportInput
	Density float64 `query:"density" default:"1" minimum:"0" doc:"device pixel ratio"`
	Clicks  string  `query:"clicks" doc:"glyphs to place after the grid as x:y,x:y"`
	Legacy  bool    `query:"legacy" doc:"draw the fixed 5x5 layout"`
}

type RenderInput struct {
	DrawInput
	Format string `query:"format" default:"png" enum:"png,jpeg,bmp,tiff"`
}

type RenderOutput struct {
	ContentType string `header:"Content-Type"`
	RenderID    string `header:"X-Render-Id"`
	Body        []byte
}

type CommandsOutput struct {
	Body struct {
		app.RenderResult
		Commands []record.Command `json:"commands"`
	}
}

type BuildOutput struct {
	Body build.Build
}

func (a *API) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-grid",
		Method:      http.MethodGet,
		Path:        "/api/grid",
		Summary:     "Compute the grid for a viewport",
	}, a.Grid)
	huma.Register(api, huma.Operation{
		OperationID: "get-render",
		Method:      http.MethodGet,
		Path:        "/api/render",
		Summary:     "Render the grid as an image",
	}, a.Render)
	huma.Register(api, huma.Operation{
		OperationID: "get-commands",
		Method:      http.MethodGet,
		Path:        "/api/commands",
		Summary:     "List the path commands of a render in device pixels",
	}, a.Commands)
	huma.Register(api, huma.Operation{
		OperationID: "get-build",
		Method:      http.MethodGet,
		Path:        "/api/build",
		Summary:     "Build information",
	}, func(ctx context.Context, input *struct{}) (*BuildOutput, error) {
		return &BuildOutput{Body: build.Current}, nil
	})
}

func (a *API) Grid(ctx context.Context, input *ViewportInput) (*GridOutput, error) {
	spec, err := a.opts.Engine.Compute(input.viewport())
	if err != nil {
		return nil, toHumaError(err)
	}

	out := &GridOutput{}
	out.Body.Spec = spec
	out.Body.Cells = spec.Cells()
	return out, nil
}

func (a *API) Render(ctx context.Context, input *RenderInput) (*RenderOutput, error) {
	format, err := canvas.ParseFormat(input.Format)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	opts, err := a.renderOptions(input.DrawInput)
	if err != nil {
		return nil, err
	}

	c := canvas.New(1, 1, a.opts.Canvas)
	defer c.Close()

	id := uuid.NewString()
	res, err := app.Render(c, opts)
	if err != nil {
		slog.Error("Failed to render", "package", "api", "render", id, "error", err)
		return nil, toHumaError(err)
	}

	var buf bytes.Buffer
	if err := c.Encode(&buf, format); err != nil {
		return nil, huma.Error500InternalServerError("failed to encode image", err)
	}
	slog.Debug("Rendered", "package", "api", "render", id, "buffer", res.Buffer, "glyphs", res.Glyphs)

	return &RenderOutput{
		ContentType: format.ContentType(),
		RenderID:    id,
		Body:        buf.Bytes(),
	}, nil
}

func (a *API) Commands(ctx context.Context, input *DrawInput) (*CommandsOutput, error) {
	opts, err := a.renderOptions(*input)
	if err != nil {
		return nil, err
	}

	s := record.New()
	res, err := app.Render(s, opts)
	if err != nil {
		return nil, toHumaError(err)
	}

	out := &CommandsOutput{}
	out.Body.RenderResult = res
	out.Body.Commands = s.Commands()
	return out, nil
}

func (a *API) renderOptions(input DrawInput) (app.RenderOptions, error) {
	clicks, err := app.ParsePoints(input.Clicks)
	if err != nil {
		return app.RenderOptions{}, huma.Error400BadRequest("invalid clicks", err)
	}

	viewport, density := fitBuffer(input.viewport(), input.Density)

	return app.RenderOptions{
		Viewport:   viewport,
		Density:    density,
		Engine:     a.opts.Engine,
		Clicks:     clicks,
		ClickScale: a.opts.ClickScale,
		Legacy:     input.Legacy,
	}, nil
}

// fitBuffer clamps the viewport to maxLength per side and lowers the density
// until the buffer holds at most maxPixels.
func fitBuffer(viewport surface.Size, density float64) (surface.Size, float64) {
	viewport.Width = math.Min(viewport.Width, maxLength)
	viewport.Height = math.Min(viewport.Height, maxLength)
	if !viewport.Valid() {
		return viewport, density
	}

	density = math.Min(surface.ClampDensity(density), maxDensity)
	if area := viewport.Width * viewport.Height; area*density*density > maxPixels {
		density = math.Max(surface.MinDensity, math.Floor(math.Sqrt(maxPixels/area)*100)/100)
	}
	for density > surface.MinDensity {
		physical := surface.PhysicalSizeOf(viewport, density)
		if physical.Width*physical.Height <= maxPixels {
			break
		}
		density = math.Max(surface.MinDensity, density-0.01)
	}

	return viewport, density
}

func (i ViewportInput) viewport() surface.Size {
	return surface.Size{Width: i.Width, Height: i.Height}
}

func toHumaError(err error) error {
	switch {
	case errors.Is(err, surface.ErrViewportUnreadable):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, surface.ErrSurfaceUnavailable):
		return huma.Error503ServiceUnavailable(err.Error())
	default:
		return huma.Error500InternalServerError(err.Error())
	}
}
