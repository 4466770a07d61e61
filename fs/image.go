// Package fs provides file-based image lookup and scoped temporary files.
package fs

import (
	"os"
	"strings"

	"github.com/fwojciec/marketway"
)

// Ensure ImageDir implements marketway.ImageFinder at compile time.
var _ marketway.ImageFinder = (*ImageDir)(nil)

// ImageDir finds line pictures in a directory. A picture belongs to a line
// when its file name starts with the line name, ignoring case, so
// "Mothers Line.jpg" and "mothers line 2.png" both match "Mothers Line".
type ImageDir struct {
	dir string
}

// NewImageDir creates an ImageDir reading from dir.
func NewImageDir(dir string) *ImageDir {
	return &ImageDir{dir: dir}
}

// Dir returns the directory images are read from.
func (d *ImageDir) Dir() string {
	return d.dir
}

// FindImage returns the first matching file name in directory order.
// A missing directory yields no image.
func (d *ImageDir) FindImage(lineName string) (string, bool) {
	prefix := strings.ToLower(strings.TrimSpace(lineName))
	if prefix == "" || d.dir == "" {
		return "", false
	}

	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return "", false
	}

	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.HasPrefix(strings.ToLower(e.Name()), prefix) {
			return e.Name(), true
		}
	}
	return "", false
}
