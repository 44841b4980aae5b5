package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/urfave/cli/v3"
)

var loggerDeferFunc func() error

func main() {
	app := &cli.Command{
		Name:  "oarchive",
		Usage: "Create, list and extract Omni Archive Format (.oar) archives",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug logging",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log Level (debug, info, warn, error, fatal)",
				Action: func(ctx context.Context, command *cli.Command, s string) error {
					_, err := zapcore.ParseLevel(s)
					if err != nil {
						return fmt.Errorf("invalid log level %s: %w", s, err)
					}
					return nil
				},
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Also write JSON logs to this file, rotated when it grows large",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Configuration file (.yaml, .yml, .json or .toml)",
				Sources: cli.EnvVars("OARCHIVE_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			createCommand,
			listCommand,
			extractCommand,
			headersCommand,
			verifyCommand,
			appendCommand,
			versionCommand,
		},
		Before: func(ctx context.Context, command *cli.Command) (context.Context, error) {
			cfg, err := loadConfig(command.String("config"))
			if err != nil {
				return nil, err
			}

			logOpts := resolveLogOptions(command, cfg)
			logger, _, closeLog, err := createLogger(logOpts)
			if err != nil {
				return nil, err
			}

			logger.Debug("logger created", zap.String("log_level", logOpts.level), zap.String("log_file", logOpts.filePath()))

			loggerDeferFunc = func() error {
				_ = logger.Sync()
				return closeLog()
			}

			ctx = withLogger(ctx, logger)
			ctx = withConfig(ctx, cfg)
			ctx = withInteractive(ctx, isInteractiveEnvironment())
			return ctx, nil
		},
		ExitErrHandler: func(ctx context.Context, command *cli.Command, err error) {
			if err == nil {
				return
			}

			if logger := tryLogger(ctx); logger != nil {
				logger.Fatal("failed to run application", zap.Error(err))
			} else {
				log.Fatal(fmt.Errorf("failed to run application: %w", err))
			}
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	defer func() {
		if loggerDeferFunc != nil {
			loggerDeferFunc()
		}
	}()

	app.Run(ctx, os.Args)
}
