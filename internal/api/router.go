package api

import (
	"io/fs"
	"net/http"

	"github.com/ItsNotGoodName/x-smiley/internal/build"
	"github.com/ItsNotGoodName/x-smiley/pkg/chiext"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the API under /api and serves the viewer page from web.
func NewRouter(a *API, web fs.FS) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(chiext.Logger())
	r.Use(middleware.Recoverer)

	if web != nil {
		static, err := chiext.StaticFS(web, "")
		if err != nil {
			return nil, err
		}
		r.Use(static)
	}

	a.Register(NewHuma(r))

	return r, nil
}

func NewHuma(r chi.Router) huma.API {
	config := huma.DefaultConfig("x-smiley", build.Current.Version)
	config.DocsPath = "/api/docs"
	config.OpenAPIPath = "/api/openapi"
	return humachi.New(r, config)
}
