package xwm

import (
	"github.com/ItsNotGoodName/x-smiley/internal/xcursor"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

type Window struct {
	WID    xproto.Window
	Width  uint16
	Height uint16
}

// CreateWindow creates and maps a top level window. A zero width or height
// uses the screen's.
func CreateWindow(conn *xgb.Conn, screen *xproto.ScreenInfo, width, height uint16, title string) (Window, error) {
	if width == 0 || height == 0 {
		width, height = screen.WidthInPixels, screen.HeightInPixels
	}

	cursor, err := xcursor.CreateCursor(conn, xcursor.Crosshair)
	if err != nil {
		return Window{}, err
	}

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return Window{}, err
	}

	if err := xproto.CreateWindowChecked(conn, screen.RootDepth,
		wid, screen.Root,
		0, 0, width, height, 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask|xproto.CwCursor, // 1, 2, 3
		[]uint32{
			screen.WhitePixel, // 1
			xproto.EventMaskStructureNotify |
				xproto.EventMaskExposure |
				xproto.EventMaskKeyPress |
				xproto.EventMaskButtonPress, // 2
			uint32(cursor), // 3
		}).Check(); err != nil {
		xcursor.FreeCursor(conn, cursor)
		return Window{}, err
	}
	// The window keeps its own reference to the cursor.
	if err := xcursor.FreeCursor(conn, cursor); err != nil {
		xproto.DestroyWindow(conn, wid)
		return Window{}, err
	}

	if title != "" {
		if err := xproto.ChangePropertyChecked(conn, xproto.PropModeReplace, wid,
			xproto.AtomWmName, xproto.AtomString, 8,
			uint32(len(title)), []byte(title)).Check(); err != nil {
			xproto.DestroyWindow(conn, wid)
			return Window{}, err
		}
	}

	if err := xproto.MapWindowChecked(conn, wid).Check(); err != nil {
		xproto.DestroyWindow(conn, wid)
		return Window{}, err
	}

	return Window{
		WID:    wid,
		Width:  width,
		Height: height,
	}, nil
}

func DestroyWindow(conn *xgb.Conn, wid xproto.Window) error {
	return xproto.DestroyWindowChecked(conn, wid).Check()
}

// ScreenDensity estimates the pixel density from the screen's physical size,
// relative to 96 DPI.
func ScreenDensity(screen *xproto.ScreenInfo) float64 {
	if screen.WidthInMillimeters == 0 {
		return 1
	}
	dpi := float64(screen.WidthInPixels) / (float64(screen.WidthInMillimeters) / 25.4)
	return dpi / 96
}
