// xcursor creates glyph cursors from the X core "cursor" font, forked from
// https://github.com/BurntSushi/xgbutil/blob/master/xcursor/xcursor.go
package xcursor

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Crosshair is the crosshair glyph index in the cursor font.
const Crosshair = 34

// Color is a 16 bit per channel X color.
type Color struct {
	R, G, B uint16
}

var (
	White = Color{0xffff, 0xffff, 0xffff}
	Black = Color{0, 0, 0}
)

func CreateCursor(x *xgb.Conn, cursor uint16) (xproto.Cursor, error) {
	return CreateCursorColor(x, cursor, Black, White)
}

func CreateCursorColor(x *xgb.Conn, cursor uint16, fore, back Color) (xproto.Cursor, error) {
	fontId, err := xproto.NewFontId(x)
	if err != nil {
		return 0, err
	}

	cursorId, err := xproto.NewCursorId(x)
	if err != nil {
		return 0, err
	}

	err = xproto.OpenFontChecked(x, fontId,
		uint16(len("cursor")), "cursor").Check()
	if err != nil {
		return 0, err
	}

	// The mask glyph follows the cursor glyph.
	err = xproto.CreateGlyphCursorChecked(x, cursorId, fontId, fontId,
		cursor, cursor+1,
		fore.R, fore.G, fore.B,
		back.R, back.G, back.B).Check()
	if err != nil {
		xproto.CloseFont(x, fontId)
		return 0, err
	}

	err = xproto.CloseFontChecked(x, fontId).Check()
	if err != nil {
		return 0, err
	}

	return cursorId, nil
}

func FreeCursor(x *xgb.Conn, cursor xproto.Cursor) error {
	return xproto.FreeCursorChecked(x, cursor).Check()
}
