package localstorage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cw-roy/ytfetch/internal/core/domain"
)

// MediaStore manages the run's output directory tree on the local filesystem.
// Downloads land in a per-mode subdirectory under the base directory.
type MediaStore struct {
	baseDir string
}

// New creates a MediaStore rooted at baseDir.
func New(baseDir string) *MediaStore {
	return &MediaStore{baseDir: baseDir}
}

// BaseDir returns the root output directory.
func (s *MediaStore) BaseDir() string {
	return s.baseDir
}

// EnsureDir creates the per-mode output directory if absent and returns its
// path. Idempotent.
func (s *MediaStore) EnsureDir(mode domain.Mode) (string, error) {
	path := filepath.Join(s.baseDir, mode.Subdir())
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", path, err)
	}
	return path, nil
}
