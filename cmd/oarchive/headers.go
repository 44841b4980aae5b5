package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/infracollect/oarchive/internal/runner"
	"github.com/urfave/cli/v3"
)

var headersCommand = &cli.Command{
	Name:  "headers",
	Usage: "Print every member header as key=value lines",
	Flags: []cli.Flag{
		inputFileFlag(),
	},
	Action: func(ctx context.Context, command *cli.Command) (err error) {
		logger := getLogger(ctx)

		in, err := openInput(command.String("input-file"))
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, in.Close())
		}()

		out := bufio.NewWriter(os.Stdout)
		defer func() {
			err = errors.Join(err, out.Flush())
		}()

		if err := runner.Headers(ctx, logger.Named("headers"), in, out); err != nil {
			return fmt.Errorf("failed to print headers: %w", err)
		}
		return nil
	},
}
