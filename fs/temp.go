package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// maxExtLength bounds extensions taken from client file names.
const maxExtLength = 8

// TempDir hands out uniquely named temporary files.
type TempDir struct {
	dir string
}

// NewTempDir creates a TempDir under dir, or the system temp directory if
// dir is empty.
func NewTempDir(dir string) *TempDir {
	if dir == "" {
		dir = os.TempDir()
	}
	return &TempDir{dir: dir}
}

// Create opens a new file with the given extension. The returned cleanup
// closes and removes the file; it is safe to call more than once.
func (d *TempDir) Create(ext string) (*os.File, func(), error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	path := filepath.Join(d.dir, "marketway-"+uuid.New().String()+SafeExt(ext))
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	cleanup := func() {
		f.Close()
		os.Remove(path)
	}
	return f, cleanup, nil
}

// Save copies r into a new temporary file and returns its path. The returned
// cleanup removes the file.
func (d *TempDir) Save(r io.Reader, ext string) (string, func(), error) {
	f, cleanup, err := d.Create(ext)
	if err != nil {
		return "", nil, err
	}
	if _, err := io.Copy(f, r); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	return f.Name(), cleanup, nil
}

// SafeExt returns ext lowercased with a leading dot when it is a short
// alphanumeric extension, and ".bin" otherwise.
func SafeExt(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" || len(ext) > maxExtLength {
		return ".bin"
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ".bin"
		}
	}
	return "." + ext
}
