package service

import (
	"context"
	"errors"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/cw-roy/ytfetch/internal/core/domain"
	"github.com/cw-roy/ytfetch/internal/core/ports"
)

// Orchestrator drives the download and metadata-strip steps for each URL in a
// batch, isolating failures so one bad URL does not abort the rest.
type Orchestrator struct {
	downloader ports.Downloader
	stripper   ports.MetadataStripper
	store      ports.MediaStore
	logger     log.Interface
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(
	downloader ports.Downloader,
	stripper ports.MetadataStripper,
	store ports.MediaStore,
	logger log.Interface,
) *Orchestrator {
	return &Orchestrator{
		downloader: downloader,
		stripper:   stripper,
		store:      store,
		logger:     logger,
	}
}

// CheckDependencies verifies both external binaries are invocable. Called
// before any URL is attempted; a failure aborts the whole run.
func (o *Orchestrator) CheckDependencies() error {
	if err := o.downloader.Available(); err != nil {
		o.logger.WithError(err).Error("external downloader unavailable")
		return err
	}
	if err := o.stripper.Available(); err != nil {
		o.logger.WithError(err).Error("external transcoder unavailable")
		return err
	}
	return nil
}

// Run processes every URL in the batch sequentially, in input order. Per-URL
// failures are recorded and the loop continues; the returned error is non-nil
// only when the run context is cancelled mid-batch.
func (o *Orchestrator) Run(ctx context.Context, batch domain.Batch, mode domain.Mode) (*domain.RunSummary, error) {
	run := domain.Run{
		ID:        uuid.New().String(),
		Mode:      mode,
		OutputDir: o.store.BaseDir(),
		StartedAt: time.Now().UTC(),
	}
	logger := o.logger.WithField("run_id", run.ID)
	logger.WithField("mode", mode.String()).
		WithField("urls", len(batch.URLs)).
		WithField("source", batch.Source).
		Info("starting batch")

	summary := &domain.RunSummary{Run: run}
	for _, url := range batch.URLs {
		if err := ctx.Err(); err != nil {
			logger.WithError(err).Warn("batch cancelled")
			summary.CompletedAt = time.Now().UTC()
			return summary, err
		}

		result := o.processURL(ctx, logger, url, mode)
		summary.Results = append(summary.Results, result)
		if result.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}

	summary.CompletedAt = time.Now().UTC()
	logger.WithField("succeeded", summary.Succeeded).
		WithField("failed", summary.Failed).
		Info("batch finished")
	return summary, nil
}

func (o *Orchestrator) processURL(ctx context.Context, logger log.Interface, url string, mode domain.Mode) domain.URLResult {
	result := domain.URLResult{URL: url}

	destDir, err := o.store.EnsureDir(mode)
	if err != nil {
		logger.WithField("url", url).WithError(err).Error("failed to prepare output directory")
		result.Err = &domain.DownloadError{URL: url, Stage: "prepare", Err: err}
		return result
	}

	logger.WithField("url", url).WithField("dir", destDir).Info("downloading started")

	path, err := o.downloader.Download(ctx, url, destDir, mode)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotLocated) {
			logger.WithField("url", url).Warn("could not locate final file in downloader output")
		} else {
			logger.WithField("url", url).WithError(err).Error("download failed")
		}
		result.Err = &domain.DownloadError{URL: url, Stage: "download", Err: err}
		return result
	}
	result.FilePath = path
	logger.WithField("url", url).WithField("file", path).Info("download completed")

	if err := o.stripper.Strip(ctx, path); err != nil {
		logger.WithField("url", url).WithField("file", path).WithError(err).Error("metadata strip failed")
		result.Err = &domain.DownloadError{URL: url, Stage: "strip", Err: err}
		return result
	}
	result.Stripped = true
	logger.WithField("url", url).Info("media downloaded and metadata stripped successfully")

	return result
}
