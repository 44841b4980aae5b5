package main

import (
	"context"
	"errors"
	"fmt"

	v1 "github.com/infracollect/oarchive/apis/v1"
	"github.com/infracollect/oarchive/internal/engine/sinks"
	"github.com/infracollect/oarchive/internal/runner"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var extractCommand = &cli.Command{
	Name:      "extract",
	Usage:     "Extract archive members to a directory, stdout or S3",
	ArgsUsage: "[names...]",
	Flags:     extractFlags(),
	Action: func(ctx context.Context, command *cli.Command) (err error) {
		logger := getLogger(ctx)

		opts := extractOptions(command, getConfig(ctx))
		if opts.ToStdout && opts.Repack != nil {
			if err := checkBinaryStdout(ctx, command.Bool("force")); err != nil {
				return err
			}
		}

		in, err := openInput(command.String("input-file"))
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, in.Close())
		}()

		registry := runner.BuildRegistry(logger.Named("registry"))
		sink, err := runner.BuildSink(ctx, registry, opts)
		if err != nil {
			return fmt.Errorf("failed to build sink: %w", err)
		}

		logger.Debug("extracting", zap.String("sink", sink.Name()))

		summary, err := runner.Extract(ctx, logger.Named("extract"), in, sink, command.Args().Slice()...)
		if err != nil {
			return fmt.Errorf("failed to extract archive: %w", err)
		}

		logger.Debug("extract finished", zap.Int("members", summary.Members), zap.Int("anonymous", summary.Anonymous), zap.Int("skipped", summary.Skipped))
		return nil
	},
}

func extractFlags() []cli.Flag {
	return []cli.Flag{
		inputFileFlag(),
		&cli.StringFlag{
			Name:    "output-directory",
			Aliases: []string{"C"},
			Usage:   "Extract below this directory (default: the working directory)",
		},
		&cli.BoolFlag{
			Name:    "to-stdout",
			Aliases: []string{"O"},
			Usage:   "Write member payloads to stdout, one after another",
		},
		forceFlag(),
		&cli.StringFlag{
			Name:  "s3-bucket",
			Usage: "Upload members to this S3 bucket",
		},
		&cli.StringFlag{
			Name:  "s3-prefix",
			Usage: "Key prefix for uploaded members",
		},
		&cli.StringFlag{
			Name:  "s3-region",
			Usage: "AWS region of the bucket (default: from the AWS environment)",
		},
		&cli.StringFlag{
			Name:  "s3-endpoint",
			Usage: "Custom endpoint for S3-compatible services",
		},
		&cli.BoolFlag{
			Name:  "s3-path-style",
			Usage: "Use path-style addressing",
		},
		&cli.StringFlag{
			Name:  "repack",
			Usage: "Collect extracted members into a single archive of this format (oar, tar, zip)",
		},
		&cli.StringFlag{
			Name:  "repack-compression",
			Usage: "Compression for the repacked archive (none, gzip, zstd for tar; none, deflate for zip)",
		},
		&cli.StringFlag{
			Name:  "repack-name",
			Usage: "File name of the repacked archive",
		},
	}
}

// extractOptions starts from the config file and lets explicit flags replace
// the destination and repack settings.
func extractOptions(command *cli.Command, cfg v1.Config) runner.ExtractOptions {
	opts := runner.ExtractOptionsFromConfig(cfg)

	switch {
	case command.Bool("to-stdout"):
		opts.ToStdout = true
		opts.S3 = nil
	case command.IsSet("s3-bucket"):
		s3 := sinks.S3Config{}
		if opts.S3 != nil {
			s3 = *opts.S3
		}
		s3.Bucket = command.String("s3-bucket")
		opts.S3 = &s3
		opts.ToStdout = false
	case command.IsSet("output-directory"):
		opts.OutputDirectory = command.String("output-directory")
		opts.ToStdout = false
		opts.S3 = nil
	}

	if opts.S3 != nil {
		if command.IsSet("s3-prefix") {
			opts.S3.Prefix = command.String("s3-prefix")
		}
		if command.IsSet("s3-region") {
			opts.S3.Region = command.String("s3-region")
		}
		if command.IsSet("s3-endpoint") {
			opts.S3.Endpoint = command.String("s3-endpoint")
		}
		if command.IsSet("s3-path-style") {
			opts.S3.ForcePathStyle = command.Bool("s3-path-style")
		}
	}

	if command.IsSet("repack") {
		opts.Repack = &runner.RepackOptions{Format: command.String("repack")}
	}
	if opts.Repack != nil {
		if command.IsSet("repack-compression") {
			opts.Repack.Compression = command.String("repack-compression")
		}
		if command.IsSet("repack-name") {
			opts.Repack.Name = command.String("repack-name")
		}
	}

	return opts
}
