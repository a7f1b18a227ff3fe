package logging

import (
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/apex/log/handlers/logfmt"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"

	"github.com/cw-roy/ytfetch/internal/config"
)

// New builds the run logger writing to a time-rotated file. Segments carry a
// date suffix; cfg.LogFile is maintained as a symlink to the active segment.
// The returned closer flushes and releases the underlying file.
func New(cfg config.Config) (*log.Logger, io.Closer, error) {
	sink, err := rotatelogs.New(
		cfg.LogFile+".%Y-%m-%d",
		rotatelogs.WithLinkName(cfg.LogFile),
		rotatelogs.WithRotationTime(cfg.LogRotationPeriod),
		// rotation count includes the active segment
		rotatelogs.WithRotationCount(uint(cfg.LogBackups+1)),
		rotatelogs.WithRotationSize(cfg.LogMaxSize),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", cfg.LogFile, err)
	}

	logger := &log.Logger{
		Handler: logfmt.New(sink),
		Level:   log.InfoLevel,
	}
	return logger, sink, nil
}
