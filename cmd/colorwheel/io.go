package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/esimov/colorwheel/utils"
	"golang.org/x/term"
)

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// readSource reads the source image from a remote URL, the standard input or a local file.
func readSource(ctx context.Context, in string) ([]byte, error) {
	if utils.IsValidUrl(in) {
		return utils.DownloadImage(ctx, in)
	}
	if in == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(in)
	if err != nil {
		return nil, fmt.Errorf("unable to open the source file: %w", err)
	}
	return data, nil
}

// openDestination returns a writer for a regular file or the standard output.
func openDestination(out string) (io.WriteCloser, error) {
	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to create the destination file: %w", err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
