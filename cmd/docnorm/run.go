package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docnorm/internal/logx"
)

// errSilent marks failures already reported to the user (check mode diffs,
// per-file errors); main only sets the exit status.
var errSilent = errors.New("silent failure")

func silentf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errSilent}, args...)...)
}

func isSilent(err error) bool {
	return errors.Is(err, errSilent)
}

// cleanups run once after the command finished, in reverse order.
var cleanups []func(error)

func setupRun(cmd *cobra.Command, _ []string) error {
	useColor, err := colorEnabled(cmd, os.Stdout)
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	level, err := cmd.Root().PersistentFlags().GetString("log-level")
	if err != nil {
		return err
	}
	stderrColor, err := colorEnabled(cmd, os.Stderr)
	if err != nil {
		return err
	}
	logger, err := logx.New(logx.Options{Level: level, NoColor: !stderrColor})
	if err != nil {
		return err
	}
	cmd.SetContext(logx.WithContext(cmd.Context(), logger))

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopProfiling)

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanup)
	return nil
}

func finishRun(err error) {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i](err)
	}
	cleanups = nil
}

// colorEnabled resolves --color for output written to f.
func colorEnabled(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		return isTerminal(f) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}
