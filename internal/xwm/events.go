package xwm

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jezek/xgb"
)

// EventSource is satisfied by *xgb.Conn.
type EventSource interface {
	WaitForEvent() (xgb.Event, xgb.Error)
}

func ReceiveEvents(ctx context.Context, src EventSource, eventC chan<- any) {
	defer close(eventC)
	slog := slog.With("func", "xwm.ReceiveEvents")

	for {
		// WaitForEvent either returns an event or an error and never both.
		// If both are nil the connection was closed.
		ev, err := src.WaitForEvent()
		if ev == nil && err == nil {
			slog.Debug("exit: no event or error")
			return
		}

		if err != nil {
			slog.Error("failed to read event", "error", err)
			continue
		}

		select {
		case <-ctx.Done():
			return
		case eventC <- ev:
		}
	}
}

// Pump reads events on a single goroutine no matter how often Start is
// called, so a restarted consumer picks up where the last one stopped.
type Pump struct {
	src  EventSource
	c    chan any
	once sync.Once
}

func NewPump(src EventSource) *Pump {
	return &Pump{
		src: src,
		c:   make(chan any),
	}
}

// Start begins reading until ctx is done or the source closes. The returned
// channel is closed when reading stops.
func (p *Pump) Start(ctx context.Context) <-chan any {
	p.once.Do(func() { go ReceiveEvents(ctx, p.src, p.c) })
	return p.c
}
