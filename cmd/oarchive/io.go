package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

func inputFileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "input-file",
		Aliases: []string{"i"},
		Usage:   "Read the archive from this file instead of stdin",
	}
}

func outputFileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output-file",
		Aliases: []string{"o"},
		Usage:   "Write the archive to this file instead of stdout",
	}
}

func forceFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "force",
		Usage: "Write archive data to stdout even when it is a terminal",
	}
}

// openInput opens path for reading; "" and "-" mean stdin.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return f, nil
}

// bufferedOutput is a buffered writer over a file or stdout. Close flushes
// and closes the file; stdout is left open.
type bufferedOutput struct {
	*bufio.Writer
	file *os.File
}

func (o *bufferedOutput) Close() error {
	err := o.Flush()
	if o.file != nil {
		err = errors.Join(err, o.file.Close())
	}
	return err
}

// openOutput creates path for writing archive data, or uses stdout when path
// is empty or "-".
func openOutput(ctx context.Context, path string, force bool) (*bufferedOutput, error) {
	if path == "" || path == "-" {
		if err := checkBinaryStdout(ctx, force); err != nil {
			return nil, err
		}
		return &bufferedOutput{Writer: bufio.NewWriter(os.Stdout)}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &bufferedOutput{Writer: bufio.NewWriter(f), file: f}, nil
}
