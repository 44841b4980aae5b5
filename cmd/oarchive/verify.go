package main

import (
	"context"
	"errors"
	"os"

	"github.com/infracollect/oarchive/internal/runner"
	"github.com/urfave/cli/v3"
)

var verifyCommand = &cli.Command{
	Name:  "verify",
	Usage: "Check that an archive is well formed",
	Flags: []cli.Flag{
		inputFileFlag(),
		&cli.StringFlag{
			Name:  "format",
			Value: string(runner.ReportFormatText),
			Usage: "Report format (text, json, yaml)",
		},
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

		summary, err := runner.Verify(ctx, logger.Named("verify"), in)
		if err != nil {
			return err
		}

		return runner.WriteReport(os.Stdout, summary, runner.ReportFormat(command.String("format")), "  ")
	},
}
