package xwm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ItsNotGoodName/x-smiley/internal/app"
	"github.com/ItsNotGoodName/x-smiley/internal/bus"
	"github.com/ItsNotGoodName/x-smiley/internal/canvas"
	"github.com/ItsNotGoodName/x-smiley/internal/core"
	"github.com/ItsNotGoodName/x-smiley/internal/surface"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/thejerf/suture/v4"
)

type HostOptions struct {
	Width   uint16
	Height  uint16
	Title   string
	Density float64 // 0 detects the screen density
	Canvas  canvas.Options
}

// Host is an X11 window that reports its viewport, turns X events into app
// events and presents a canvas.
type Host struct {
	conn    *xgb.Conn
	setup   *xproto.SetupInfo
	screen  *xproto.ScreenInfo
	window  Window
	gc      xproto.Gcontext
	canvas  *canvas.Canvas
	hub     *bus.Hub[app.Event]
	density float64

	mu     sync.Mutex
	width  uint16
	height uint16

	buf []byte

	pump   *Pump
	ctx    context.Context
	cancel context.CancelFunc
}

var (
	_ app.Viewport  = (*Host)(nil)
	_ app.Presenter = (*Host)(nil)
)

func NewHost(conn *xgb.Conn, hub *bus.Hub[app.Event], opts HostOptions) (*Host, error) {
	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)

	window, err := CreateWindow(conn, screen, opts.Width, opts.Height, opts.Title)
	if err != nil {
		return nil, err
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		DestroyWindow(conn, window.WID)
		return nil, err
	}
	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(window.WID), 0, []uint32{}).Check(); err != nil {
		DestroyWindow(conn, window.WID)
		return nil, err
	}

	density := opts.Density
	if density <= 0 {
		density = ScreenDensity(screen)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Host{
		pump:    NewPump(conn),
		ctx:     ctx,
		cancel:  cancel,
		conn:    conn,
		setup:   setup,
		screen:  screen,
		window:  window,
		gc:      gc,
		canvas:  canvas.New(int(window.Width), int(window.Height), opts.Canvas),
		hub:     hub,
		density: surface.ClampDensity(density),
		width:   window.Width,
		height:  window.Height,
	}, nil
}

func (h *Host) String() string {
	return fmt.Sprintf("xwm.Host(wid=%d)", h.window.WID)
}

// Canvas is the surface presented in the window.
func (h *Host) Canvas() *canvas.Canvas {
	return h.canvas
}

func (h *Host) Density() float64 {
	return h.density
}

// Size returns the window size in logical pixels.
func (h *Host) Size() (surface.Size, error) {
	h.mu.Lock()
	width, height := h.width, h.height
	h.mu.Unlock()

	if width == 0 || height == 0 {
		return surface.Size{}, fmt.Errorf("%w: window is %dx%d", surface.ErrViewportUnreadable, width, height)
	}

	return surface.Size{
		Width:  float64(width) / h.density,
		Height: float64(height) / h.density,
	}, nil
}

// Present copies the canvas into the window.
func (h *Host) Present(ctx context.Context) error {
	pm := h.canvas.Pixmap()

	h.mu.Lock()
	width := min(pm.Width(), int(h.width))
	height := min(pm.Height(), int(h.height))
	h.mu.Unlock()
	if width <= 0 || height <= 0 {
		return nil
	}

	data := pm.Data()
	stride := pm.Width() * 4
	rows := RowsPerRequest(h.setup.MaximumRequestLength, width)

	for y := 0; y < height; y += rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := min(rows, height-y)
		h.buf = h.buf[:0]
		for row := y; row < y+n; row++ {
			start := row * stride
			h.buf = ZPixmap(h.buf, data[start:start+width*4], h.setup.ImageByteOrder)
		}

		if err := xproto.PutImageChecked(h.conn, xproto.ImageFormatZPixmap, xproto.Drawable(h.window.WID), h.gc,
			uint16(width), uint16(n), 0, int16(y), 0, h.screen.RootDepth, h.buf).Check(); err != nil {
			return err
		}
	}

	return nil
}

// Serve forwards X events to the hub until the window goes away.
func (h *Host) Serve(ctx context.Context) error {
	eventC := h.pump.Start(h.ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-eventC:
			if !ok {
				slog.Debug("exit: connection closed", "package", "xwm")
				return suture.ErrTerminateSupervisorTree
			}

			quit, err := h.handle(ctx, ev)
			if err != nil {
				return err
			}
			if quit {
				return suture.ErrTerminateSupervisorTree
			}
		}
	}
}

func (h *Host) handle(ctx context.Context, ev any) (bool, error) {
	switch ev := ev.(type) {
	case xproto.ConfigureNotifyEvent:
		if ev.Window != h.window.WID {
			return false, nil
		}

		h.mu.Lock()
		changed := ev.Width != h.width || ev.Height != h.height
		h.width, h.height = ev.Width, ev.Height
		h.mu.Unlock()

		if changed {
			slog.Debug("ConfigureNotifyEvent", "package", "xwm", "width", ev.Width, "height", ev.Height)
			return false, h.hub.Broadcast(ctx, app.ResizeEvent{})
		}
	case xproto.ExposeEvent:
		if ev.Count == 0 {
			return false, h.hub.Broadcast(ctx, app.ExposeEvent{})
		}
	case xproto.ButtonPressEvent:
		slog.Debug("ButtonPressEvent", "package", "xwm", "detail", ev.Detail, "x", ev.EventX, "y", ev.EventY)

		if ev.Detail == xproto.ButtonIndex1 { // Left click
			return false, h.hub.Broadcast(ctx, app.ClickEvent{
				X: float64(ev.EventX) / h.density,
				Y: float64(ev.EventY) / h.density,
			})
		}
	case xproto.KeyPressEvent:
		// The Detail value depends on the keyboard layout, for QWERTY q is 24.
		if ev.Detail == 24 {
			slog.Debug("exit: quit key pressed", "package", "xwm")
			return true, nil
		}
	case xproto.DestroyNotifyEvent:
		// Some window managers keep the X connection open after the window is
		// killed, so the destroy notification is the only signal to exit on.
		slog.Debug("exit: destroy notify event", "package", "xwm")
		return true, nil
	default:
		slog.Debug("unknown event", "package", "xwm", "event", ev)
	}

	return false, nil
}

func (h *Host) Close() error {
	h.cancel()
	return core.MultiCloser{
		func() error { return xproto.FreeGCChecked(h.conn, h.gc).Check() },
		func() error { return DestroyWindow(h.conn, h.window.WID) },
		h.canvas.Close,
	}.Close()
}
