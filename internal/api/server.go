package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ItsNotGoodName/x-smiley/internal/core"
)

const shutdownTimeout = 5 * time.Second

// Server is a supervised HTTP server.
type Server struct {
	srv *http.Server
}

func NewServer(address string, handler http.Handler) Server {
	return Server{
		srv: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s Server) String() string {
	return "api.Server"
}

func (s Server) Serve(ctx context.Context) error {
	errC := make(chan error, 1)
	go func() { errC <- s.srv.ListenAndServe() }()

	host, port := core.SplitAddress(s.srv.Addr)
	slog.Info("Listening", "package", "api", "host", host, "port", port)

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shutdown", "package", "api", "error", err)
	}
	if err := <-errC; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
