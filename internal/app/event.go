package app

// Event is delivered to the controller through a bus.Hub.
type Event interface{}

type (
	// ResizeEvent asks for the viewport to be read again and the grid redrawn.
	ResizeEvent struct{}
	// ClickEvent places a glyph at X, Y in surface local logical coordinates.
	ClickEvent struct {
		X float64
		Y float64
	}
	// ExposeEvent asks for the current buffer to be presented again.
	ExposeEvent struct{}
)
