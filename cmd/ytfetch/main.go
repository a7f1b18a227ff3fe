package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cw-roy/ytfetch/internal/adapters/ffmpeg"
	"github.com/cw-roy/ytfetch/internal/adapters/localstorage"
	"github.com/cw-roy/ytfetch/internal/adapters/ytdlp"
	"github.com/cw-roy/ytfetch/internal/config"
	"github.com/cw-roy/ytfetch/internal/core/domain"
	"github.com/cw-roy/ytfetch/internal/logging"
	"github.com/cw-roy/ytfetch/internal/prompt"
	"github.com/cw-roy/ytfetch/internal/service"
)

const version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "ytfetch",
		Short:         "Download YouTube media via yt-dlp and strip metadata with ffmpeg",
		Long:          "ytfetch downloads one URL or a .txt file of URLs as video or audio,\nthen removes embedded metadata from every produced file.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
}

func run(cmd *cobra.Command, _ []string) error {
	// environment variables may also be set manually
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}

	logger, logCloser, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	defer logCloser.Close()

	store := localstorage.New(cfg.OutputDir)
	downloader := ytdlp.New(cfg.DownloaderBin, cfg.URLTimeout, logger)
	stripper := ffmpeg.New(cfg.TranscoderBin, logger)
	orchestrator := service.NewOrchestrator(downloader, stripper, store, logger)

	if err := orchestrator.CheckDependencies(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v. See %s for details.\n", err, cfg.LogFile)
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "YouTube Media Downloader using yt-dlp")
	collector := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

	batch, err := collector.CollectBatch()
	if err != nil {
		logger.WithError(err).Error("unusable input")
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v. See %s for details.\n", err, cfg.LogFile)
		return err
	}

	mode, err := collector.SelectMode()
	if err != nil {
		logger.WithError(err).Error("invalid mode choice")
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v. See %s for details.\n", err, cfg.LogFile)
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		fmt.Fprintln(cmd.ErrOrStderr(), "\nReceived interrupt signal, cancelling...")
		cancel()
	}()

	summary, runErr := orchestrator.Run(ctx, batch, mode)
	printSummary(cmd, cfg, summary)

	if runErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Run interrupted. See %s for details.\n", cfg.LogFile)
		return runErr
	}
	// per-URL failures are logged and reported but do not fail the run
	return nil
}

func printSummary(cmd *cobra.Command, cfg config.Config, summary *domain.RunSummary) {
	out := cmd.OutOrStdout()

	for _, result := range summary.Results {
		if result.Err != nil {
			fmt.Fprintf(out, "Error: Failed to process URL: %s. Check the log for more details.\n", result.URL)
		} else {
			fmt.Fprintf(out, "Media downloaded and metadata stripped successfully for URL: %s\n", result.URL)
		}
	}

	fmt.Fprintln(out, "\n=== Run Summary ===")
	fmt.Fprintf(out, "Run ID:       %s\n", summary.Run.ID)
	fmt.Fprintf(out, "Mode:         %s\n", summary.Run.Mode)
	fmt.Fprintf(out, "Output Dir:   %s\n", summary.Run.OutputDir)
	fmt.Fprintf(out, "Succeeded:    %d\n", summary.Succeeded)
	fmt.Fprintf(out, "Failed:       %d\n", summary.Failed)
	fmt.Fprintf(out, "Completed At: %s\n", summary.CompletedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(out, "Log File:     %s\n", cfg.LogFile)
}
