package main

import (
	"context"
	"fmt"

	v1 "github.com/infracollect/oarchive/apis/v1"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	loggerCtxKey = struct{}{}
)

const defaultLogFileMaxSizeMB = 100

type logOptions struct {
	debug bool
	level string
	file  *v1.LogFileSpec
}

func (o logOptions) filePath() string {
	if o.file == nil {
		return ""
	}
	return o.file.Path
}

// resolveLogOptions merges the log section of the config file with the root
// flags. Flags win.
func resolveLogOptions(command *cli.Command, cfg v1.Config) logOptions {
	opts := logOptions{
		debug: command.Bool("debug"),
		level: command.String("log-level"),
	}

	if cfg.Log != nil {
		if cfg.Log.Level != "" && !command.IsSet("log-level") {
			opts.level = cfg.Log.Level
		}
		if cfg.Log.File != nil {
			file := *cfg.Log.File
			opts.file = &file
		}
	}

	if path := command.String("log-file"); path != "" {
		if opts.file == nil {
			opts.file = &v1.LogFileSpec{}
		}
		opts.file.Path = path
	}

	return opts
}

// createLogger builds the stderr logger and, when a log file is configured,
// tees every entry into a lumberjack-rotated JSON file. The returned func
// closes the log file.
func createLogger(opts logOptions) (logger *zap.Logger, level zap.AtomicLevel, closeFn func() error, err error) {
	closeFn = func() error { return nil }

	level, err = zap.ParseAtomicLevel(opts.level)
	if err != nil {
		return nil, zap.NewAtomicLevel(), closeFn, fmt.Errorf("invalid log level %s: %w", opts.level, err)
	}

	var loggerCfg zap.Config
	if opts.debug {
		loggerCfg = zap.NewDevelopmentConfig()
		loggerCfg.Level = level
	} else {
		loggerCfg = zap.NewProductionConfig()
		loggerCfg.DisableStacktrace = false
		loggerCfg.Level = level
	}

	logger, err = loggerCfg.Build()
	if err != nil {
		return nil, zap.NewAtomicLevel(), closeFn, fmt.Errorf("failed to build logger: %w", err)
	}

	if opts.file != nil && opts.file.Path != "" {
		rotator := newLogRotator(opts.file)
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotator),
			level,
		)
		logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
		closeFn = rotator.Close
	}

	logger = logger.Named("oarchive")

	return logger, level, closeFn, nil
}

func newLogRotator(spec *v1.LogFileSpec) *lumberjack.Logger {
	maxSize := spec.MaxSizeMB
	if maxSize == 0 {
		maxSize = defaultLogFileMaxSizeMB
	}
	return &lumberjack.Logger{
		Filename:   spec.Path,
		MaxSize:    maxSize,
		MaxBackups: spec.MaxBackups,
		MaxAge:     spec.MaxAgeDays,
		Compress:   spec.Compress,
	}
}

func withLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

func tryLogger(ctx context.Context) *zap.Logger {
	logger, ok := ctx.Value(loggerCtxKey).(*zap.Logger)
	if !ok {
		return nil
	}
	return logger
}

func getLogger(ctx context.Context) *zap.Logger {
	logger, ok := ctx.Value(loggerCtxKey).(*zap.Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}
