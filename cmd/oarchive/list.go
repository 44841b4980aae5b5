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

var listCommand = &cli.Command{
	Name:  "list",
	Usage: "List the filenames of archive members",
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

		if err := runner.List(ctx, logger.Named("list"), in, out); err != nil {
			return fmt.Errorf("failed to list archive: %w", err)
		}
		return nil
	},
}
