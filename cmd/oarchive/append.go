package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/infracollect/oarchive/internal/runner"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var appendCommand = &cli.Command{
	Name:      "append",
	Usage:     "Concatenate archives into one",
	ArgsUsage: "[archives...]",
	Flags: []cli.Flag{
		outputFileFlag(),
		forceFlag(),
	},
	Action: func(ctx context.Context, command *cli.Command) (err error) {
		logger := getLogger(ctx)

		paths := command.Args().Slice()
		if len(paths) == 0 {
			return fmt.Errorf("no archives provided")
		}

		inputs := make([]io.Reader, 0, len(paths))
		for _, path := range paths {
			f, openErr := os.Open(path)
			if openErr != nil {
				return fmt.Errorf("failed to open archive: %w", openErr)
			}
			defer func() {
				err = errors.Join(err, f.Close())
			}()
			inputs = append(inputs, f)
		}

		out, err := openOutput(ctx, command.String("output-file"), command.Bool("force"))
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, out.Close())
		}()

		summary, err := runner.Append(ctx, logger.Named("append"), out, inputs...)
		if err != nil {
			return fmt.Errorf("failed to append archives: %w", err)
		}

		logger.Debug("append finished", zap.Int("members", summary.Members), zap.Int64("bytes", summary.ArchiveBytes))
		return nil
	},
}
