package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/term"
)

type interactiveCtxKeyType struct{}

var interactiveCtxKey = interactiveCtxKeyType{}

var errTerminalOutput = errors.New("refusing to write archive data to a terminal (use --output-file or --force)")

// isInteractiveEnvironment reports whether stdout is a terminal that a human
// is looking at.
func isInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func withInteractive(ctx context.Context, interactive bool) context.Context {
	return context.WithValue(ctx, interactiveCtxKey, interactive)
}

func isInteractive(ctx context.Context) bool {
	interactive, ok := ctx.Value(interactiveCtxKey).(bool)
	if !ok {
		return false
	}
	return interactive
}

// checkBinaryStdout fails when binary output would land on an interactive
// terminal and force is not set.
func checkBinaryStdout(ctx context.Context, force bool) error {
	if isInteractive(ctx) && !force {
		return errTerminalOutput
	}
	return nil
}
