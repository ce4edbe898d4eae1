// Package static embeds the front page served at the site root.
package static

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed all:dist
var distFS embed.FS

const indexFile = "index.html"

// ReadFile returns an embedded file by its URL path. The root path maps to
// the front page; directories and missing files return an error.
func ReadFile(urlPath string) ([]byte, error) {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		name = indexFile
	}
	return fs.ReadFile(distFS, path.Join("dist", name))
}

// Index returns the front page.
func Index() ([]byte, error) {
	return ReadFile(indexFile)
}
