package chiext

import (
	"io/fs"
	"net/http"
	"strings"
)

// StaticFS serves the top-level files of fsys and "/" as index.html. Other
// paths fall through to next.
func StaticFS(fsys fs.FS, root string) (func(next http.Handler) http.Handler, error) {
	if root != "" {
		sub, err := fs.Sub(fsys, root)
		if err != nil {
			return nil, err
		}
		fsys = sub
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	routes := make([]string, 0, len(entries))
	for _, e := range entries {
		routes = append(routes, "/"+e.Name())
	}

	fileServer := http.FileServer(http.FS(fsys))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			if r.URL.Path == "/" {
				fileServer.ServeHTTP(w, r)
				return
			}
			for _, route := range routes {
				if r.URL.Path == route || strings.HasPrefix(r.URL.Path, route+"/") {
					fileServer.ServeHTTP(w, r)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}, nil
}
