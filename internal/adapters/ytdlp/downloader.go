package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alessio/shellescape"
	"github.com/apex/log"

	"github.com/cw-roy/ytfetch/internal/core/domain"
)

// Options passed through to yt-dlp unchanged.
const (
	outputTemplate = "%(title)s.%(ext)s"
	videoFormat    = "bestvideo+bestaudio/best"
	videoContainer = "mp4"
	audioFormat    = "bestaudio"
	audioContainer = "mp3"
)

// yt-dlp reports where files land on stdout. Merged and extracted outputs
// supersede the raw download destinations.
var (
	downloadDestRe = regexp.MustCompile(`\[download\] Destination: (.+)`)
	mergerDestRe   = regexp.MustCompile(`\[Merger\] Merging formats into "(.+)"`)
	extractDestRe  = regexp.MustCompile(`\[ExtractAudio\] Destination: (.+)`)
)

// Downloader invokes the yt-dlp binary to fetch media.
type Downloader struct {
	binaryPath string
	timeout    time.Duration
	logger     log.Interface
}

// New creates a Downloader. binaryPath may be a bare name resolved via PATH
// or an absolute path.
func New(binaryPath string, timeout time.Duration, logger log.Interface) *Downloader {
	return &Downloader{binaryPath: binaryPath, timeout: timeout, logger: logger}
}

// Available reports whether the yt-dlp binary can be invoked.
func (d *Downloader) Available() error {
	if _, err := exec.LookPath(d.binaryPath); err != nil {
		return &domain.MissingDependencyError{Binary: d.binaryPath, Err: err}
	}
	return nil
}

// Download fetches url into destDir according to mode and returns the path of
// the produced file.
func (d *Downloader) Download(ctx context.Context, url, destDir string, mode domain.Mode) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	args := buildArgs(url, destDir, mode)
	d.logger.WithField("command", shellescape.QuoteCommand(append([]string{d.binaryPath}, args...))).
		Info("invoking downloader")

	cmd := exec.CommandContext(ctx, d.binaryPath, args...)
	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp failed: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	path := locateProducedFile(out.String())
	if path == "" {
		return "", domain.ErrFileNotLocated
	}
	return path, nil
}

func buildArgs(url, destDir string, mode domain.Mode) []string {
	args := []string{
		"--output", filepath.Join(destDir, outputTemplate),
		"--restrict-filenames",
		"--no-mtime",
		"--no-embed-metadata",
		"--no-progress",
	}

	switch mode {
	case domain.ModeAudio:
		args = append(args, "-f", audioFormat, "--extract-audio", "--audio-format", audioContainer)
	default:
		args = append(args, "-f", videoFormat, "--merge-output-format", videoContainer)
	}

	return append(args, url)
}

// locateProducedFile finds the final artifact in yt-dlp's stdout, preferring
// post-processed destinations over the raw per-stream ones.
func locateProducedFile(output string) string {
	for _, re := range []*regexp.Regexp{extractDestRe, mergerDestRe, downloadDestRe} {
		if matches := re.FindAllStringSubmatch(output, -1); len(matches) > 0 {
			return strings.TrimSpace(matches[len(matches)-1][1])
		}
	}
	return ""
}
