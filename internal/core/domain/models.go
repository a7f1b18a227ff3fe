package domain

import (
	"strings"
	"time"
)

// Mode is the run-wide choice between full-video and audio-only extraction.
type Mode int

const (
	ModeVideo Mode = iota
	ModeAudio
)

func (m Mode) String() string {
	if m == ModeAudio {
		return "audio"
	}
	return "video"
}

// Subdir returns the output subdirectory used for this mode.
func (m Mode) Subdir() string {
	if m == ModeAudio {
		return "Audio"
	}
	return "Video"
}

// ParseMode maps a single operator character to a Mode: `v`/`V` selects
// ModeVideo, `a`/`A` selects ModeAudio. Anything else is an InvalidModeError.
func ParseMode(input string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "v":
		return ModeVideo, nil
	case "a":
		return ModeAudio, nil
	default:
		return ModeVideo, &InvalidModeError{Input: input}
	}
}

// Batch is the ordered set of URLs collected from a single run's input.
type Batch struct {
	Source string   // raw operator input: a URL or a list-file path
	URLs   []string // order preserved from input, duplicates allowed
}

// Run identifies one batch execution.
type Run struct {
	ID        string
	Mode      Mode
	OutputDir string
	StartedAt time.Time
}

// URLResult records the outcome for a single URL in a batch.
type URLResult struct {
	URL      string
	FilePath string // produced media file, empty if the download failed
	Stripped bool   // metadata was removed from FilePath
	Err      error
}

// RunSummary aggregates the outcome of a completed batch.
type RunSummary struct {
	Run         Run
	Results     []URLResult
	Succeeded   int
	Failed      int
	CompletedAt time.Time
}
