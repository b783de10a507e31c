package web

import (
	"embed"
	"io/fs"
)

//go:embed dist
var dist embed.FS

// FS returns the viewer page.
func FS() fs.FS {
	fsys, err := fs.Sub(dist, "dist")
	if err != nil {
		panic(err)
	}
	return fsys
}
