package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/apex/log"

	"github.com/cw-roy/ytfetch/internal/core/domain"
)

const strippedSuffix = "_stripped"

// Stripper invokes the ffmpeg binary to remove embedded metadata from a
// downloaded file while copying the media streams untouched.
type Stripper struct {
	binaryPath string
	logger     log.Interface
}

// New creates a Stripper.
func New(binaryPath string, logger log.Interface) *Stripper {
	return &Stripper{binaryPath: binaryPath, logger: logger}
}

// Available reports whether the ffmpeg binary can be invoked.
func (s *Stripper) Available() error {
	if _, err := exec.LookPath(s.binaryPath); err != nil {
		return &domain.MissingDependencyError{Binary: s.binaryPath, Err: err}
	}
	return nil
}

// Strip writes a metadata-free copy of the file next to the original, then
// renames it over the original. A non-zero ffmpeg exit that still produced
// the output file is treated as a warning and the file is replaced anyway.
func (s *Stripper) Strip(ctx context.Context, path string) error {
	tmp := strippedPath(path)
	args := buildArgs(path, tmp)

	s.logger.WithField("command", shellescape.QuoteCommand(append([]string{s.binaryPath}, args...))).
		Info("stripping metadata")

	cmd := exec.CommandContext(ctx, s.binaryPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if runErr := cmd.Run(); runErr != nil {
		if _, statErr := os.Stat(tmp); statErr != nil {
			return fmt.Errorf("ffmpeg failed: %w, stderr: %s", runErr, strings.TrimSpace(stderr.String()))
		}
		s.logger.WithField("file", path).
			WithField("stderr", strings.TrimSpace(stderr.String())).
			Warn("ffmpeg reported a non-critical issue while stripping metadata")
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace original with stripped file: %w", err)
	}
	return nil
}

func strippedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + strippedSuffix + ext
}

func buildArgs(in, out string) []string {
	return []string{
		"-hide_banner",
		"-i", in,
		"-map_metadata", "-1",
		"-c:v", "copy",
		"-c:a", "copy",
		"-y",
		out,
	}
}
