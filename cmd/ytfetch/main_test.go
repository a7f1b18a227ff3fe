package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStub(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("writing stub %s: %v", name, err)
	}
	return path
}

func TestRun_EndToEndAudio(t *testing.T) {
	base := t.TempDir()
	outDir := filepath.Join(base, "YouTube_downloads")
	logFile := filepath.Join(base, "download_log.log")
	dest := filepath.Join(outDir, "Audio", "Example_Title.mp3")
	argsFile := filepath.Join(base, "ytdlp_args")

	ytdlpStub := writeStub(t, base, "yt-dlp",
		fmt.Sprintf("echo \"$@\" > %s\necho '[ExtractAudio] Destination: %s'\n", argsFile, dest))
	ffmpegStub := writeStub(t, base, "ffmpeg",
		"for arg; do last=$arg; done\nprintf stripped > \"$last\"\n")

	t.Setenv("YTFETCH_OUTPUT_DIR", outDir)
	t.Setenv("YTFETCH_LOG_FILE", logFile)
	t.Setenv("YTFETCH_YTDLP", ytdlpStub)
	t.Setenv("YTFETCH_FFMPEG", ffmpegStub)

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader("https://example.com/video\na\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v (stderr: %s)", err, errOut.String())
	}

	if !strings.Contains(out.String(), "Media downloaded and metadata stripped successfully for URL: https://example.com/video") {
		t.Errorf("missing success message, stdout:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Succeeded:    1") {
		t.Errorf("summary should report one success, stdout:\n%s", out.String())
	}

	args, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("downloader stub was not invoked: %v", err)
	}
	if !strings.Contains(string(args), "--extract-audio") {
		t.Errorf("audio mode should pass --extract-audio, got args: %s", args)
	}
	if !strings.Contains(string(args), filepath.Join(outDir, "Audio")) {
		t.Errorf("download should target the Audio subdirectory, got args: %s", args)
	}

	content, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("expected stripped file at %s: %v", dest, err)
	}
	if string(content) != "stripped" {
		t.Errorf("file content = %q, expected the stripped copy", content)
	}

	segments, err := filepath.Glob(logFile + ".*")
	if err != nil || len(segments) == 0 {
		t.Errorf("expected a log segment beside %s, found %v (err: %v)", logFile, segments, err)
	}
}

func TestRun_FatalInputErrorsPointAtLog(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
	}{
		{"unusable input", "not-a-url\n"},
		{"mode attempts exhausted", "https://example.com/video\nx\ny\nz\n"},
	}

	for _, test := range tests {
		base := t.TempDir()
		logFile := filepath.Join(base, "download_log.log")

		t.Setenv("YTFETCH_OUTPUT_DIR", filepath.Join(base, "YouTube_downloads"))
		t.Setenv("YTFETCH_LOG_FILE", logFile)
		t.Setenv("YTFETCH_YTDLP", writeStub(t, base, "yt-dlp", "exit 0\n"))
		t.Setenv("YTFETCH_FFMPEG", writeStub(t, base, "ffmpeg", "exit 0\n"))

		cmd := newRootCmd()
		var out, errOut bytes.Buffer
		cmd.SetIn(strings.NewReader(test.stdin))
		cmd.SetOut(&out)
		cmd.SetErr(&errOut)

		if err := cmd.Execute(); err == nil {
			t.Errorf("%s: expected error", test.name)
			continue
		}
		if !strings.Contains(errOut.String(), "See "+logFile+" for details") {
			t.Errorf("%s: fatal message should point at the log file, stderr:\n%s", test.name, errOut.String())
		}
	}
}

func TestRun_MissingDownloaderAborts(t *testing.T) {
	base := t.TempDir()

	t.Setenv("YTFETCH_OUTPUT_DIR", filepath.Join(base, "YouTube_downloads"))
	t.Setenv("YTFETCH_LOG_FILE", filepath.Join(base, "download_log.log"))
	t.Setenv("YTFETCH_YTDLP", filepath.Join(base, "no-such-binary"))
	t.Setenv("YTFETCH_FFMPEG", writeStub(t, base, "ffmpeg", "exit 0\n"))

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader("https://example.com/video\na\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing downloader binary")
	}
	if !strings.Contains(errOut.String(), "See") || !strings.Contains(errOut.String(), "download_log.log") {
		t.Errorf("fatal message should point at the log file, stderr:\n%s", errOut.String())
	}
	// aborts before prompting: no URL prompt reached
	if strings.Contains(out.String(), "Enter the video URL") {
		t.Errorf("run should abort before collecting input, stdout:\n%s", out.String())
	}
}
