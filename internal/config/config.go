package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults anchored beside the executable, matching the tool's on-disk layout.
const (
	defaultOutputDirName = "YouTube_downloads"
	defaultLogFileName   = "download_log.log"
	defaultDownloaderBin = "yt-dlp"
	defaultTranscoderBin = "ffmpeg"
	defaultURLTimeout    = time.Hour

	// Log rotation: weekly boundary, two rotated segments retained, 2 MiB
	// cap per segment.
	logRotationPeriod = 7 * 24 * time.Hour
	logBackups        = 2
	logMaxSize        = 2 * 1024 * 1024
)

// Config holds the run configuration. Values come from YTFETCH_* environment
// variables (a .env file is honored when present) with defaults co-located
// with the executable.
type Config struct {
	OutputDir     string
	LogFile       string
	DownloaderBin string
	TranscoderBin string
	URLTimeout    time.Duration

	LogRotationPeriod time.Duration
	LogBackups        int
	LogMaxSize        int64
}

// Load builds the configuration from the environment.
func Load() (Config, error) {
	baseDir := executableDir()

	cfg := Config{
		OutputDir:     getenv("YTFETCH_OUTPUT_DIR", filepath.Join(baseDir, defaultOutputDirName)),
		LogFile:       getenv("YTFETCH_LOG_FILE", filepath.Join(baseDir, defaultLogFileName)),
		DownloaderBin: getenv("YTFETCH_YTDLP", defaultDownloaderBin),
		TranscoderBin: getenv("YTFETCH_FFMPEG", defaultTranscoderBin),
		URLTimeout:    defaultURLTimeout,

		LogRotationPeriod: logRotationPeriod,
		LogBackups:        logBackups,
		LogMaxSize:        logMaxSize,
	}

	if v := os.Getenv("YTFETCH_URL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid YTFETCH_URL_TIMEOUT %q: %w", v, err)
		}
		cfg.URLTimeout = d
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
