package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	v1 "github.com/infracollect/oarchive/apis/v1"
	"github.com/infracollect/oarchive/internal/runner"
)

type configCtxKeyType struct{}

var configCtxKey = configCtxKeyType{}

// loadConfig reads and validates the config file at path. An empty path
// yields the zero config.
func loadConfig(path string) (v1.Config, error) {
	if path == "" {
		return v1.Config{}, nil
	}

	format, err := runner.ConfigFormatFromPath(path)
	if err != nil {
		return v1.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return v1.Config{}, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg, err := runner.ParseConfig(data, format)
	if err != nil {
		return v1.Config{}, fmt.Errorf("config file '%s' is invalid: %w", path, formatValidationError(err))
	}

	return cfg, nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%d validation error(s):", len(validationErrs)))
		for _, fe := range validationErrs {
			sb.WriteString(fmt.Sprintf("\n  • %s: failed '%s' validation", fe.Namespace(), fe.Tag()))
			if fe.Param() != "" {
				sb.WriteString(fmt.Sprintf(" (param: %s)", fe.Param()))
			}
		}
		return errors.New(sb.String())
	}
	return err
}

func withConfig(ctx context.Context, cfg v1.Config) context.Context {
	return context.WithValue(ctx, configCtxKey, cfg)
}

func getConfig(ctx context.Context) v1.Config {
	cfg, _ := ctx.Value(configCtxKey).(v1.Config)
	return cfg
}
