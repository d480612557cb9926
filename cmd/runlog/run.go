// SPDX-License-Identifier: MPL-2.0

package main

import (
	"strings"

	"scriptkit/internal/config"
	"scriptkit/pkg/checks"
	"scriptkit/pkg/fspath"
	"scriptkit/pkg/shellrun"
	"scriptkit/pkg/termlog"

	"github.com/spf13/cobra"
)

const progName = "runlog"

var (
	logPath     string
	teePath     string
	appendLogs  bool
	runnerName  string
	shellPath   string
	workDir     string
	envPairs    []string
	stdinText   string
	requireList []string
	requireFrom string
	createsList []string
	force       bool

	runCmd = &cobra.Command{
		Use:   "run [flags] -- <command> [args...]",
		Short: "Run a command and log its output",
		Long: `Run a command through the configured runner.

Output goes to the console by default; with --log it is captured into
the log file together with runlog's own messages, and with --tee it is
written to a separate file while still showing on the console.

Input files named with --require (or listed in a --require-list file)
must exist before the command runs. Output files named with --creates
must not exist beforehand unless --force removes them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRun,
	}
)

func init() {
	runCmd.Flags().StringVar(&logPath, "log", "", "capture output into this log file")
	runCmd.Flags().StringVar(&teePath, "tee", "", "tee output into this file while printing to the console")
	runCmd.Flags().BoolVar(&appendLogs, "append", false, "append to an existing log file instead of refusing it")
	runCmd.Flags().StringVar(&runnerName, "runner", "", "execution backend: shell or virtual")
	runCmd.Flags().StringVar(&shellPath, "shell", "", "shell binary for the shell runner")
	runCmd.Flags().StringVarP(&workDir, "dir", "C", "", "working directory for the command")
	runCmd.Flags().StringArrayVarP(&envPairs, "env", "e", nil, "extra environment variable (KEY=VALUE, repeatable)")
	runCmd.Flags().StringVar(&stdinText, "stdin", "", "text fed to the command's standard input")
	runCmd.Flags().StringArrayVar(&requireList, "require", nil, "input file that must exist (repeatable)")
	runCmd.Flags().StringVar(&requireFrom, "require-list", "", "file listing required inputs, one per line")
	runCmd.Flags().StringArrayVar(&createsList, "creates", nil, "output file that must not exist yet (repeatable)")
	runCmd.Flags().BoolVar(&force, "force", false, "remove pre-existing --creates files instead of failing")
}

func runRun(cmd *cobra.Command, args []string) error {
	if runnerName != "" {
		if ok, errs := config.RunnerKind(runnerName).IsValid(); !ok {
			return errs[0]
		}
	}

	l := termlog.NewWithOptions(cmd.OutOrStdout(), termlog.Options{
		NoColor: noColor || appCfg.NoColor,
	})
	doOpts := checks.DoOptions{Prog: progName, Logger: l}

	if err := verifyInputs(doOpts); err != nil {
		return err
	}
	outputs, err := clearOutputs(l)
	if err != nil {
		return err
	}

	if logPath != "" {
		resolved := resolveLogPath(logPath, appCfg)
		if appendLogs || appCfg.AppendLogs {
			if err := l.OpenLogFile(resolved, true); err != nil {
				return err
			}
		} else if err := l.StartLogging(resolved, progName); err != nil {
			return err
		}
		defer l.CloseLogFile() //nolint:errcheck // best-effort close on the way out
	}

	opts := shellrun.CallOptions{
		Prog:   progName,
		Stdin:  stdinText,
		Dir:    workDir,
		Env:    parseEnvPairs(envPairs),
		Runner: buildRunner(appCfg),
	}
	if teePath != "" {
		abs, err := fspath.FilePath(teePath).Abs()
		if err != nil {
			return err
		}
		opts.SeparateLogFile = abs
	}

	command := strings.Join(args, " ")
	ok, code, err := shellrun.CallAndLog(cmd.Context(), l, command, opts)
	if err != nil {
		return err
	}
	if !ok {
		return &ExitError{Code: code}
	}

	// Declared outputs must actually exist once the command succeeded.
	if _, err := checks.FilesExist(outputs, checks.ActionFail, doOpts); err != nil {
		return err
	}
	return nil
}

// verifyInputs checks --require and --require-list files before the run.
func verifyInputs(doOpts checks.DoOptions) error {
	for _, name := range requireList {
		if _, err := checks.FileExists(fspath.FilePath(name), checks.ActionFail, doOpts); err != nil {
			return err
		}
	}
	if requireFrom != "" {
		if _, err := checks.FilesListedExist(fspath.FilePath(requireFrom), checks.ActionFail, doOpts); err != nil {
			return err
		}
	}
	return nil
}

// clearOutputs verifies --creates targets are absent (removing them under
// --force) and returns them as a PathList for the post-run existence check.
func clearOutputs(l *termlog.Logger) (checks.PathList, error) {
	outputs := checks.NewPathList(createsList...)
	for _, p := range outputs {
		_, err := checks.FileAbsent(p, checks.ActionFail, checks.AbsentOptions{
			Override:  force,
			ExtraText: "Use --force to replace it.",
			Prog:      progName,
			Logger:    l,
		})
		if err != nil {
			return nil, err
		}
	}
	return outputs, nil
}

// resolveLogPath places a relative log file under the configured log
// directory.
func resolveLogPath(path string, cfg *config.Config) string {
	fp := fspath.FilePath(path)
	if fp.IsAbs() || cfg.LogDir == "" {
		return path
	}
	return fp.PrependDir(fspath.FilePath(cfg.LogDir)).String()
}

// parseEnvPairs turns KEY=VALUE flags into the runner's env map. A pair
// without '=' becomes a variable with an empty value.
func parseEnvPairs(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	env := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, _ := strings.Cut(p, "=")
		env[k] = v
	}
	return env
}

// buildRunner picks the execution backend from flags, then config.
func buildRunner(cfg *config.Config) shellrun.Runner {
	kind := cfg.Runner
	if runnerName != "" {
		kind = config.RunnerKind(runnerName)
	}
	if kind == config.RunnerVirtual {
		return shellrun.NewInterpRunner()
	}
	r := shellrun.NewShellRunner()
	switch {
	case shellPath != "":
		r.Shell = shellPath
	case cfg.Shell != "":
		r.Shell = cfg.Shell
	}
	return r
}
