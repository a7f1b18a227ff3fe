package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"

	"github.com/cw-roy/ytfetch/internal/core/domain"
)

func testLogger() log.Interface {
	return &log.Logger{Handler: discard.New(), Level: log.InfoLevel}
}

// writeStub installs a fake ffmpeg. The script sees the output path as its
// last argument.
func writeStub(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg-stub")
	full := "#!/bin/sh\nfor arg; do last=$arg; done\n" + script
	if err := os.WriteFile(path, []byte(full), 0755); err != nil {
		t.Fatalf("writing stub binary: %v", err)
	}
	return path
}

func writeMediaFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "video.mp4")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing media file: %v", err)
	}
	return path
}

func TestBuildArgs(t *testing.T) {
	expected := []string{
		"-hide_banner",
		"-i", "/out/video.mp4",
		"-map_metadata", "-1",
		"-c:v", "copy",
		"-c:a", "copy",
		"-y",
		"/out/video_stripped.mp4",
	}
	args := buildArgs("/out/video.mp4", "/out/video_stripped.mp4")
	if !reflect.DeepEqual(args, expected) {
		t.Errorf("buildArgs = %v, expected %v", args, expected)
	}
}

func TestStrippedPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/out/video.mp4", "/out/video_stripped.mp4"},
		{"/out/track.mp3", "/out/track_stripped.mp3"},
		{"/out/noext", "/out/noext_stripped"},
	}

	for _, test := range tests {
		if got := strippedPath(test.input); got != test.expected {
			t.Errorf("strippedPath(%s) = %s, expected %s", test.input, got, test.expected)
		}
	}
}

func TestStrip_ReplacesOriginal(t *testing.T) {
	media := writeMediaFile(t, "original-with-metadata")
	stub := writeStub(t, `printf stripped > "$last"`)

	s := New(stub, testLogger())
	if err := s.Strip(context.Background(), media); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(media)
	if err != nil {
		t.Fatalf("reading replaced file: %v", err)
	}
	if string(content) != "stripped" {
		t.Errorf("file content = %q, expected the stripped copy", content)
	}
	if _, err := os.Stat(strippedPath(media)); !os.IsNotExist(err) {
		t.Error("temporary stripped file should have been renamed away")
	}
}

func TestStrip_FailureWithoutOutput(t *testing.T) {
	media := writeMediaFile(t, "original")
	stub := writeStub(t, `echo "invalid data" >&2; exit 1`)

	s := New(stub, testLogger())
	if err := s.Strip(context.Background(), media); err == nil {
		t.Fatal("expected error when ffmpeg fails without producing output")
	}

	content, _ := os.ReadFile(media)
	if string(content) != "original" {
		t.Errorf("original file should be untouched, got %q", content)
	}
}

func TestStrip_NonCriticalFailureStillReplaces(t *testing.T) {
	media := writeMediaFile(t, "original")
	stub := writeStub(t, `printf stripped > "$last"; echo "no metadata found" >&2; exit 1`)

	s := New(stub, testLogger())
	if err := s.Strip(context.Background(), media); err != nil {
		t.Fatalf("non-critical ffmpeg failure should not error, got: %v", err)
	}

	content, _ := os.ReadFile(media)
	if string(content) != "stripped" {
		t.Errorf("file content = %q, expected the stripped copy", content)
	}
}

func TestAvailable_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-binary")
	err := New(missing, testLogger()).Available()

	var depErr *domain.MissingDependencyError
	if !errors.As(err, &depErr) {
		t.Fatalf("error = %v, expected MissingDependencyError", err)
	}
}
