package surface

import "errors"

var (
	ErrSurfaceUnavailable = errors.New("surface unavailable")
	ErrViewportUnreadable = errors.New("viewport unreadable")
	ErrDrawFailed         = errors.New("draw failed")
)
