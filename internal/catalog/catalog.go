// Package catalog holds the fixed, ordered list of photos offered for selection.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Photo is one catalog entry. Index is zero-based; Number is what users see.
type Photo struct {
	Index int    `json:"index"`
	Path  string `json:"path"`
}

// Number returns the 1-based photo number.
func (p Photo) Number() int {
	return p.Index + 1
}

// Catalog is immutable for the lifetime of a session.
type Catalog struct {
	photos []Photo
}

// New builds a catalog of size photos whose paths come from a printf pattern
// applied to the 1-based photo number (e.g. "images/foto%04d.webp").
func New(size int, pattern string) (*Catalog, error) {
	if size <= 0 {
		return nil, fmt.Errorf("catalog size must be positive, got %d", size)
	}
	if err := checkPattern(pattern); err != nil {
		return nil, err
	}
	photos := make([]Photo, size)
	for i := range photos {
		photos[i] = Photo{Index: i, Path: fmt.Sprintf(pattern, i+1)}
	}
	return &Catalog{photos: photos}, nil
}

// checkPattern requires exactly one verb that formats an int cleanly.
func checkPattern(pattern string) error {
	sample := fmt.Sprintf(pattern, 1)
	if strings.Contains(sample, "%!") {
		return fmt.Errorf("photo pattern %q must contain one integer verb such as %%04d", pattern)
	}
	return nil
}

// imageExtensions lists the file types picked up by Scan.
var imageExtensions = map[string]bool{
	".webp": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// IsImage reports whether a file name has a supported image extension.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Scan lists the image files of a directory in lexical order.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read images dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsImage(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	slices.Sort(paths)
	return paths, nil
}

// Size returns the number of photos.
func (c *Catalog) Size() int {
	return len(c.photos)
}

// Contains reports whether index addresses a photo.
func (c *Catalog) Contains(index int) bool {
	return index >= 0 && index < len(c.photos)
}

// Photo returns the photo at index.
func (c *Catalog) Photo(index int) (Photo, bool) {
	if !c.Contains(index) {
		return Photo{}, false
	}
	return c.photos[index], true
}

// Path returns the resource path of the photo at index, or "" when out of range.
func (c *Catalog) Path(index int) string {
	if !c.Contains(index) {
		return ""
	}
	return c.photos[index].Path
}

// Photos returns a copy of all photos in order.
func (c *Catalog) Photos() []Photo {
	return slices.Clone(c.photos)
}
