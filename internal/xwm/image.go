package xwm

import (
	"github.com/jezek/xgb/xproto"
)

// putImageHeader is the size of a PutImage request without its data.
const putImageHeader = 24

// RowsPerRequest returns how many rows of a width pixel wide 32 bpp image fit
// in one PutImage request. maxRequestLength is in 4 byte units.
func RowsPerRequest(maxRequestLength uint16, width int) int {
	if width <= 0 {
		return 0
	}
	rows := (int(maxRequestLength)*4 - putImageHeader) / (width * 4)
	return max(rows, 1)
}

// ZPixmap appends RGBA pixels to dst as a 32 bpp, 24 bit depth ZPixmap in the
// server's byte order.
func ZPixmap(dst, rgba []byte, byteOrder byte) []byte {
	for i := 0; i+3 < len(rgba); i += 4 {
		r, g, b := rgba[i], rgba[i+1], rgba[i+2]
		if byteOrder == xproto.ImageOrderMSBFirst {
			dst = append(dst, 0, r, g, b)
		} else {
			dst = append(dst, b, g, r, 0)
		}
	}
	return dst
}
