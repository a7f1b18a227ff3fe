package domain

import (
	"errors"
	"fmt"
)

// ErrFileNotLocated means the downloader exited cleanly but its output did not
// reveal where the produced file landed. The URL is counted as failed; there
// is nothing to strip.
var ErrFileNotLocated = errors.New("could not locate produced file in downloader output")

// InputError reports unusable URL or list-file input. Fatal for the run.
type InputError struct {
	Input  string
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unusable input %q: %s: %v", e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("unusable input %q: %s", e.Input, e.Reason)
}

func (e *InputError) Unwrap() error { return e.Err }

// InvalidModeError reports an unrecognized media-mode choice.
type InvalidModeError struct {
	Input string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode choice %q: enter 'V' for video or 'A' for audio", e.Input)
}

// MissingDependencyError reports an absent external binary. Fatal for the run:
// the batch is aborted before any URL is attempted.
type MissingDependencyError struct {
	Binary string
	Err    error
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("required external binary %q not found: %v", e.Binary, e.Err)
}

func (e *MissingDependencyError) Unwrap() error { return e.Err }

// DownloadError wraps a single URL's failed download or metadata-strip step.
// Recovered locally by the orchestrator: logged, batch continues.
type DownloadError struct {
	URL   string
	Stage string // "prepare", "download" or "strip"
	Err   error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Stage, e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }
