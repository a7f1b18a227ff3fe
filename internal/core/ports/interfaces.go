package ports

import (
	"context"

	"github.com/cw-roy/ytfetch/internal/core/domain"
)

// Downloader defines the contract for the external media-extraction tool.
type Downloader interface {
	// Download fetches the media at url into destDir according to mode and
	// returns the path of the produced file. Returns
	// domain.ErrFileNotLocated (possibly wrapped) when the tool succeeded
	// but the produced file could not be identified.
	Download(ctx context.Context, url, destDir string, mode domain.Mode) (string, error)

	// Available reports whether the external binary can be invoked.
	Available() error
}

// MetadataStripper defines the contract for the external transcoding tool,
// used solely to remove embedded metadata from an already-downloaded file.
type MetadataStripper interface {
	// Strip removes metadata from the file at path in place, preserving the
	// media streams losslessly.
	Strip(ctx context.Context, path string) error

	// Available reports whether the external binary can be invoked.
	Available() error
}

// MediaStore manages the run's output directory tree.
type MediaStore interface {
	// EnsureDir creates the per-mode output directory if absent and returns
	// its path. Idempotent.
	EnsureDir(mode domain.Mode) (string, error)

	// BaseDir returns the root output directory for the run.
	BaseDir() string
}
