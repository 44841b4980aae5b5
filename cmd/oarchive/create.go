package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/infracollect/oarchive/internal/runner"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var createCommand = &cli.Command{
	Name:      "create",
	Usage:     "Create an archive from files",
	ArgsUsage: "[files...]",
	Flags: []cli.Flag{
		outputFileFlag(),
		forceFlag(),
	},
	Action: func(ctx context.Context, command *cli.Command) (err error) {
		logger := getLogger(ctx)
		paths := command.Args().Slice()

		out, err := openOutput(ctx, command.String("output-file"), command.Bool("force"))
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, out.Close())
		}()

		summary, err := runner.Create(ctx, logger.Named("create"), afero.NewOsFs(), out, paths)
		if err != nil {
			return fmt.Errorf("failed to create archive: %w", err)
		}

		logger.Debug("create finished", zap.Int("members", summary.Members), zap.Int64("bytes", summary.ArchiveBytes))
		return nil
	},
}
