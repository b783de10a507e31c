package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ItsNotGoodName/x-smiley/internal/bus"
	"github.com/ItsNotGoodName/x-smiley/internal/grid"
	"github.com/ItsNotGoodName/x-smiley/internal/record"
	"github.com/ItsNotGoodName/x-smiley/internal/surface"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testViewport struct {
	size    surface.Size
	err     error
	density float64
}

func (v *testViewport) Size() (surface.Size, error) { return v.size, v.err }
func (v *testViewport) Density() float64            { return v.density }

type testPresenter struct {
	c chan struct{}
}

func (p testPresenter) Present(ctx context.Context) error {
	select {
	case p.c <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newTestApp(t *testing.T, viewport Viewport, opts Options) (App, *record.Surface, *bus.Hub[Event]) {
	t.Helper()

	s := record.New()
	registry := surface.NewRegistry()
	registry.Register(surface.DefaultID, s)
	hub := bus.NewHub[Event]()

	a, err := New(registry, surface.DefaultID, viewport, hub, opts)
	require.NoError(t, err)
	return a, s, hub
}

func TestNewMissingSurface(t *testing.T) {
	_, err := New(surface.NewRegistry(), surface.DefaultID, &testViewport{}, bus.NewHub[Event](), Options{})
	assert.ErrorIs(t, err, surface.ErrSurfaceUnavailable)
}

func TestResize(t *testing.T) {
	viewport := &testViewport{size: surface.Size{Width: 800, Height: 600}, density: 2}
	a, s, _ := newTestApp(t, viewport, Options{})

	drawn, err := a.Resize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, drawn)
	assert.Equal(t, surface.PhysicalSize{Width: 1600, Height: 1200}, s.BufferSize())

	// Every glyph is issued in logical units and lands at twice that in device pixels.
	for _, stroke := range s.Strokes() {
		for _, cmd := range stroke {
			assert.InDelta(t, cmd.Point.X*2, cmd.Device.X, 1e-9)
			assert.InDelta(t, cmd.Point.Y*2, cmd.Device.Y, 1e-9)
		}
	}
}

func TestResizeUsesLatestViewport(t *testing.T) {
	viewport := &testViewport{size: surface.Size{Width: 800, Height: 600}, density: 1}
	a, s, _ := newTestApp(t, viewport, Options{})

	_, err := a.Resize(context.Background())
	require.NoError(t, err)

	viewport.size = surface.Size{Width: 50, Height: 50}
	s.Reset()
	drawn, err := a.Resize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, drawn)
	assert.Equal(t, surface.PhysicalSize{Width: 50, Height: 50}, s.BufferSize())
}

func TestResizeViewportUnreadable(t *testing.T) {
	viewport := &testViewport{err: errors.New("no window")}
	a, s, _ := newTestApp(t, viewport, Options{})

	_, err := a.Resize(context.Background())
	assert.ErrorIs(t, err, surface.ErrViewportUnreadable)
	assert.Empty(t, s.Commands())
}

func TestClick(t *testing.T) {
	viewport := &testViewport{size: surface.Size{Width: 800, Height: 600}, density: 1}
	a, s, _ := newTestApp(t, viewport, Options{})

	_, err := a.Resize(context.Background())
	require.NoError(t, err)
	s.Reset()

	require.NoError(t, a.Click(context.Background(), 42, 17))

	strokes := s.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, 42.0, strokes[0][0].Point.X)
	assert.Equal(t, 17.0, strokes[0][0].Point.Y)
	assert.Equal(t, 50*DefaultClickScale, strokes[0][0].Radius)

	// The grid is left alone.
	for _, cmd := range s.Commands() {
		assert.NotEqual(t, record.OpClearRect, cmd.Op)
	}
}

func TestClickWithoutGrid(t *testing.T) {
	a, s, _ := newTestApp(t, &testViewport{}, Options{ClickScale: 0.5})

	require.NoError(t, a.Click(context.Background(), 42, 17))
	require.Len(t, s.Strokes(), 1)
	assert.Equal(t, 25.0, s.Strokes()[0][0].Radius)
}

func TestServe(t *testing.T) {
	viewport := &testViewport{size: surface.Size{Width: 800, Height: 600}, density: 1}
	presenter := testPresenter{c: make(chan struct{})}
	a, s, hub := newTestApp(t, viewport, Options{Engine: grid.NewEngine(), Presenter: presenter})

	ctx, cancel := context.WithCancel(context.Background())
	errC := make(chan error, 1)
	go func() { errC <- a.Serve(ctx) }()

	wait := func() {
		t.Helper()
		select {
		case <-presenter.c:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for present")
		}
	}

	// Initial draw.
	wait()
	assert.Len(t, s.Strokes(), 30)

	require.NoError(t, hub.Broadcast(ctx, ClickEvent{X: 42, Y: 17}))
	wait()
	assert.Len(t, s.Strokes(), 31)

	cancel()
	assert.ErrorIs(t, <-errC, context.Canceled)
}

func TestCoalesce(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   []Event
	}{
		{
			name:   "empty",
			events: nil,
			want:   []Event{},
		},
		{
			name:   "clicks kept in order",
			events: []Event{ClickEvent{X: 1}, ClickEvent{X: 2}},
			want:   []Event{ClickEvent{X: 1}, ClickEvent{X: 2}},
		},
		{
			name:   "stale resizes dropped",
			events: []Event{ResizeEvent{}, ClickEvent{X: 1}, ResizeEvent{}, ClickEvent{X: 2}},
			want:   []Event{ResizeEvent{}, ClickEvent{X: 2}},
		},
		{
			name:   "expose after draw dropped",
			events: []Event{ExposeEvent{}, ResizeEvent{}, ExposeEvent{}},
			want:   []Event{ResizeEvent{}},
		},
		{
			name:   "exposes merged",
			events: []Event{ExposeEvent{}, ExposeEvent{}, ExposeEvent{}},
			want:   []Event{ExposeEvent{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Coalesce(tt.events)); diff != "" {
				t.Errorf("Coalesce() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
