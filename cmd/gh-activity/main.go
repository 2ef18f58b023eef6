package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"emperror.dev/errors"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kehao95/gh-activity/internal/config"
	"github.com/kehao95/gh-activity/internal/format"
	"github.com/kehao95/gh-activity/internal/github"
)

var rootFlags struct {
	Debug      bool
	NoColor    bool
	Timestamps bool
	Timeout    time.Duration
}

type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit with code %d", e.code)
}

func (e exitError) ExitCode() int {
	return e.code
}

func runWithSignals(run func(context.Context) error) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
	}()

	select {
	case sig := <-sigCh:
		cancel()
		_ = <-errCh
		if sig == os.Interrupt {
			return exitError{code: 130}
		}
		return exitError{code: 143}
	case err := <-errCh:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}

var rootCmd = &cobra.Command{
	Use:   "gh-activity <username>",
	Short: "Fetch a GitHub user's recent public activity",
	Args:  cobra.ExactArgs(1),

	// Errors are printed from main so that usage only shows up for
	// argument mistakes, not for fetch failures.
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if rootFlags.Debug {
			logrus.SetLevel(logrus.DebugLevel)
			logrus.Debug("enabled debug logging")
		}
		if rootFlags.NoColor {
			color.NoColor = true
		}

		// Note: this only returns an error if config exists and it
		// can't be read/parsed. It doesn't return an error if no
		// config file exists.
		didLoadConfig, err := config.Load(nil)
		if err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}
		if didLoadConfig {
			logrus.Debug("loaded configuration")
		} else {
			logrus.Debug("no configuration found")
		}
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		// Past argument parsing; from here on a failure is a fetch
		// problem and usage output would just be noise.
		cmd.SilenceUsage = true

		username := args[0]
		return runWithSignals(func(ctx context.Context) error {
			return run(ctx, cmd, username)
		})
	},
}

func run(ctx context.Context, cmd *cobra.Command, username string) error {
	gh := config.Cfg.GitHub
	if cmd.Flags().Changed("timeout") {
		gh.Timeout = rootFlags.Timeout
	}

	client := github.NewClient(github.Config{
		BaseURL:   gh.BaseUrl,
		Timeout:   gh.Timeout,
		UserAgent: gh.UserAgent,
	})
	events, err := client.FetchEvents(ctx, username)
	if err != nil {
		return err
	}

	opts := format.Options{
		Timestamps: rootFlags.Timestamps || config.Cfg.Output.Timestamps,
	}
	for _, line := range format.Feed(events, username, opts) {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(
		&rootFlags.Debug, "debug", false,
		"enable verbose debug logging",
	)
	rootCmd.PersistentFlags().BoolVar(
		&rootFlags.NoColor, "no-color", false,
		"disable colored output",
	)
	rootCmd.Flags().BoolVar(
		&rootFlags.Timestamps, "timestamps", false,
		"append a relative timestamp to every activity line",
	)
	rootCmd.Flags().DurationVar(
		&rootFlags.Timeout, "timeout", 10*time.Second,
		"timeout for the API request",
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}

		// In debug mode, show more detailed information about the
		// error (including the stack trace).
		if rootFlags.Debug {
			stackTrace := fmt.Sprintf("%+v", err)
			_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n%s\n", err, indent(stackTrace, "\t"))
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

func indent(s string, prefix string) string {
	return prefix + strings.Replace(s, "\n", "\n"+prefix, -1)
}
