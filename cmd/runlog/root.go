// SPDX-License-Identifier: MPL-2.0

// Package main implements the runlog CLI: run a shell command while
// teeing its output into a timestamped log file, with pre- and
// post-run file checks.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"scriptkit/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// cfgFile allows specifying a custom config file
	cfgFile string
	// noColor disables styled terminal output
	noColor bool

	// appCfg is the loaded configuration, populated before any RunE handler.
	appCfg = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "runlog",
		Short: "Run commands and keep a log of what happened",
		Long: TitleStyle.Render("runlog") + SubtitleStyle.Render(" - run commands and keep a log of what happened") + `

runlog executes a shell command, mirrors its output to the console or
into a log file, and can verify input and output files around the run.

` + SubtitleStyle.Render("Examples:") + `
  runlog run -- make all                 Run and print to the console
  runlog run --log build.log -- make     Capture output into build.log
  runlog run --require in.csv -- ./job   Refuse to run without in.csv
  runlog config show                     Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/scriptkit/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in the config file if present.
func initRootConfig() {
	cfg, err := config.NewProvider().Load(context.Background(), config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+err.Error())
		return
	}
	appCfg = cfg
}
