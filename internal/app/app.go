package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ItsNotGoodName/x-smiley/internal/bus"
	"github.com/ItsNotGoodName/x-smiley/internal/glyph"
	"github.com/ItsNotGoodName/x-smiley/internal/grid"
	"github.com/ItsNotGoodName/x-smiley/internal/surface"
)

const DefaultClickScale = 0.75

// Viewport reports the current logical size and pixel density.
type Viewport interface {
	Size() (surface.Size, error)
	Density() float64
}

// Presenter shows the surface's buffer after it changed.
type Presenter interface {
	Present(ctx context.Context) error
}

type Options struct {
	Engine     grid.Engine
	ClickScale float64
	// Presenter is optional.
	Presenter Presenter
}

// App redraws a surface in response to resize and click events. All drawing
// happens on the goroutine running Serve.
type App struct {
	surface  surface.Surface
	viewport Viewport
	hub      *bus.Hub[Event]
	opts     Options
}

// New looks up the surface registered under id.
func New(registry *surface.Registry, id string, viewport Viewport, hub *bus.Hub[Event], opts Options) (App, error) {
	s, err := registry.Lookup(id)
	if err != nil {
		slog.Error("Failed to locate surface", "package", "app", "id", id, "registered", registry.IDs(), "error", err)
		return App{}, err
	}
	if opts.ClickScale <= 0 {
		opts.ClickScale = DefaultClickScale
	}
	if opts.Engine == (grid.Engine{}) {
		opts.Engine = grid.NewEngine()
	}

	return App{
		surface:  s,
		viewport: viewport,
		hub:      hub,
		opts:     opts,
	}, nil
}

func (a App) String() string {
	return "app.App"
}

// Resize reads the viewport, configures the surface and draws the grid.
func (a App) Resize(ctx context.Context) (int, error) {
	size, err := a.viewport.Size()
	if err != nil {
		if !errors.Is(err, surface.ErrViewportUnreadable) {
			err = fmt.Errorf("%w: %w", surface.ErrViewportUnreadable, err)
		}
		return 0, err
	}

	physical, err := surface.Configure(a.surface, size, a.viewport.Density())
	if err != nil {
		return 0, err
	}

	drawn, err := a.opts.Engine.LayoutAndDraw(a.surface, size)
	slog.Debug("Drew grid", "package", "app", "width", size.Width, "height", size.Height, "physical", physical, "glyphs", drawn)
	if perr := a.present(ctx); perr != nil && err == nil {
		err = perr
	}
	return drawn, err
}

// Click draws one glyph at (x, y), leaving the grid as it is.
func (a App) Click(ctx context.Context, x, y float64) error {
	if err := glyph.Draw(a.surface, x, y, a.opts.ClickScale); err != nil {
		return err
	}
	return a.present(ctx)
}

func (a App) present(ctx context.Context) error {
	if a.opts.Presenter == nil {
		return nil
	}
	return a.opts.Presenter.Present(ctx)
}

// Serve draws once and then handles events until ctx is done.
func (a App) Serve(ctx context.Context) error {
	sub := a.hub.Subscribe(64)
	defer sub.Unsubscribe()

	a.handle(ctx, ResizeEvent{})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-sub.C:
			for _, event := range Coalesce(append([]Event{event}, drain(sub.C)...)) {
				a.handle(ctx, event)
			}
		}
	}
}

func (a App) handle(ctx context.Context, event Event) {
	switch ev := event.(type) {
	case ResizeEvent:
		if _, err := a.Resize(ctx); err != nil {
			slog.Error("Failed to draw grid", "package", "app", "error", err)
		}
	case ClickEvent:
		if err := a.Click(ctx, ev.X, ev.Y); err != nil {
			slog.Error("Failed to draw glyph", "package", "app", "x", ev.X, "y", ev.Y, "error", err)
		}
	case ExposeEvent:
		if err := a.present(ctx); err != nil {
			slog.Error("Failed to present", "package", "app", "error", err)
		}
	default:
		slog.Debug("unknown event", "package", "app", "event", ev)
	}
}

func drain(c <-chan Event) []Event {
	var events []Event
	for {
		select {
		case event := <-c:
			events = append(events, event)
		default:
			return events
		}
	}
}

// Coalesce drops every event before the last resize since the resize clears
// whatever they drew. Only one expose is kept, at the end.
func Coalesce(events []Event) []Event {
	last := -1
	for i, event := range events {
		if _, ok := event.(ResizeEvent); ok {
			last = i
		}
	}
	if last > 0 {
		events = events[last:]
	}

	out := make([]Event, 0, len(events))
	expose := false
	for _, event := range events {
		if _, ok := event.(ExposeEvent); ok {
			expose = true
			continue
		}
		out = append(out, event)
	}
	if expose && !presents(out) {
		out = append(out, ExposeEvent{})
	}
	return out
}

// presents reports whether handling events already presents the buffer.
func presents(events []Event) bool {
	for _, event := range events {
		switch event.(type) {
		case ResizeEvent, ClickEvent:
			return true
		}
	}
	return false
}
