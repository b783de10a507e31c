package xwm

import (
	"testing"

	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
)

func TestRowsPerRequest(t *testing.T) {
	// 65535 units is the largest request without BIG-REQUESTS.
	assert.Equal(t, (65535*4-24)/(1920*4), RowsPerRequest(65535, 1920))
	assert.Equal(t, 1, RowsPerRequest(16, 1920))
	assert.Equal(t, 0, RowsPerRequest(65535, 0))
}

func TestZPixmap(t *testing.T) {
	rgba := []byte{
		1, 2, 3, 255,
		4, 5, 6, 255,
	}

	assert.Equal(t, []byte{3, 2, 1, 0, 6, 5, 4, 0}, ZPixmap(nil, rgba, xproto.ImageOrderLSBFirst))
	assert.Equal(t, []byte{0, 1, 2, 3, 0, 4, 5, 6}, ZPixmap(nil, rgba, xproto.ImageOrderMSBFirst))

	// Rows are appended.
	dst := ZPixmap(nil, rgba[:4], xproto.ImageOrderLSBFirst)
	dst = ZPixmap(dst, rgba[4:], xproto.ImageOrderLSBFirst)
	assert.Equal(t, []byte{3, 2, 1, 0, 6, 5, 4, 0}, dst)
}

func TestScreenDensity(t *testing.T) {
	screen := &xproto.ScreenInfo{
		WidthInPixels:      3840,
		WidthInMillimeters: 508, // 20 inches at 192 DPI
	}
	assert.InDelta(t, 2, ScreenDensity(screen), 0.01)

	assert.Equal(t, 1.0, ScreenDensity(&xproto.ScreenInfo{WidthInPixels: 1920}))
}
