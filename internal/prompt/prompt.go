package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cw-roy/ytfetch/internal/core/domain"
)

const (
	listExt = ".txt"

	// re-prompt limit for the mode choice; keeps a closed or garbage stdin
	// from looping forever
	modeAttempts = 3
)

// Collector reads operator input for a run.
type Collector struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Collector reading prompts' answers from in and writing the
// prompts themselves to out.
func New(in io.Reader, out io.Writer) *Collector {
	return &Collector{in: bufio.NewReader(in), out: out}
}

// CollectBatch prompts for a URL or a .txt list file and returns the batch.
func (c *Collector) CollectBatch() (domain.Batch, error) {
	fmt.Fprintln(c.out, "Provide a single URL, or a .txt file containing a list of URLs. Example: `url_list.txt`")
	fmt.Fprint(c.out, "Enter the video URL or path to a .txt file: ")

	line, err := c.readLine()
	if err != nil {
		return domain.Batch{}, &domain.InputError{Input: line, Reason: "failed to read input", Err: err}
	}

	urls, err := ResolveInput(line)
	if err != nil {
		return domain.Batch{}, err
	}
	return domain.Batch{Source: line, URLs: urls}, nil
}

// SelectMode prompts for the media mode, re-prompting on invalid input.
func (c *Collector) SelectMode() (domain.Mode, error) {
	var lastErr error
	for i := 0; i < modeAttempts; i++ {
		fmt.Fprint(c.out, "Download the full (V)ideo or (A)udio only? (V/A): ")

		line, err := c.readLine()
		if err != nil {
			return domain.ModeVideo, &domain.InvalidModeError{Input: line}
		}

		mode, err := domain.ParseMode(line)
		if err == nil {
			return mode, nil
		}
		lastErr = err
		fmt.Fprintln(c.out, "Invalid choice. Please enter 'V' for video or 'A' for audio.")
	}
	return domain.ModeVideo, lastErr
}

func (c *Collector) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && (err != io.EOF || line == "") {
		return line, err
	}
	return line, nil
}

// ResolveInput turns raw operator input into an ordered URL list. An existing
// .txt path is read line by line; anything starting with "http" is taken as a
// single URL; everything else is an InputError. Validation is deliberately
// minimal, the downloader ultimately rejects unusable URLs.
func ResolveInput(input string) ([]string, error) {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return nil, &domain.InputError{Input: input, Reason: "empty input"}
	case strings.HasPrefix(input, "http"):
		return []string{input}, nil
	case strings.EqualFold(filepath.Ext(input), listExt):
		return readURLFile(input)
	default:
		return nil, &domain.InputError{Input: input, Reason: "unknown input format"}
	}
}

func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.InputError{Input: path, Reason: "cannot open URL list", Err: err}
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &domain.InputError{Input: path, Reason: "cannot read URL list", Err: err}
	}
	if len(urls) == 0 {
		return nil, &domain.InputError{Input: path, Reason: "the .txt file does not contain valid URLs"}
	}
	return urls, nil
}
