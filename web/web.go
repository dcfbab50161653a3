// Package web embeds the shell templates and static assets.
package web

import (
	"embed"
	"io/fs"
	"time"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// buildTime versions embedded assets; embed.FS reports zero mod times.
var buildTime = time.Now()

func Templates() fs.FS {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// AssetModTime resolves /static/ paths against the embedded assets.
func AssetModTime(path string) (time.Time, error) {
	const prefix = "/static/"
	if len(path) <= len(prefix) || path[:len(prefix)] != prefix {
		return time.Time{}, fs.ErrNotExist
	}
	if _, err := fs.Stat(Static(), path[len(prefix):]); err != nil {
		return time.Time{}, err
	}
	return buildTime, nil
}
