// SPDX-License-Identifier: MPL-2.0

package shellrun

import (
	"context"
	"fmt"
	"io"
	"os"

	"scriptkit/pkg/fspath"
	"scriptkit/pkg/termlog"
)

// CallOptions configures CallAndLog.
type CallOptions struct {
	// Prog names the calling script or step in the announcements.
	Prog string
	// Stdin is fed to the subprocess verbatim.
	Stdin string
	// Dir is the working directory for the subprocess.
	Dir string
	// Env holds extra environment variables for the subprocess.
	Env map[string]string
	// SeparateLogFile tees the subprocess output into its own file while
	// still showing it on the console.
	SeparateLogFile fspath.AbsPath
	// Runner overrides the default system-shell runner.
	Runner Runner
	// Console overrides the console writer (stdout by default).
	Console io.Writer
}

// CallAndLog runs a command line and reports on it the way script users
// expect: the command is announced in bold, the subprocess output (stderr
// merged in) goes to the logfile when logging is on, or to both console and
// a separate logfile when one is given, and the exit code is announced at
// the end, as a warning when nonzero.
//
// The bool result reports success; the int is the raw exit code.
func CallAndLog(ctx context.Context, l *termlog.Logger, command string, opts CallOptions) (bool, int, error) {
	runner := opts.Runner
	if runner == nil {
		runner = NewShellRunner()
	}
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	l.Bold(opts.Prog, command)

	out := console
	switch {
	case opts.SeparateLogFile != "":
		f, err := os.OpenFile(opts.SeparateLogFile.String(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return false, 1, fmt.Errorf("opening separate logfile: %w", err)
		}
		defer f.Close()
		l.LogOnly(opts.Prog, fmt.Sprintf("See log in %q", opts.SeparateLogFile))
		out = io.MultiWriter(console, f)
	case l.LoggingEnabled():
		// Captured output belongs to the main logfile, not the console.
		out = l.LogFileWriter()
	}

	res := runner.Run(ctx, Request{
		Script: command,
		Stdin:  opts.Stdin,
		Dir:    opts.Dir,
		Env:    opts.Env,
		Stdout: out,
	})

	if res.Err != nil {
		l.Err(opts.Prog, res.Err.Error())
		return false, res.ExitCode, res.Err
	}
	if res.ExitCode == 0 {
		l.Bold(opts.Prog, fmt.Sprintf("Finished with code %d", res.ExitCode))
	} else {
		l.Warn(opts.Prog, fmt.Sprintf("Finished with code %d", res.ExitCode))
	}
	return res.ExitCode == 0, res.ExitCode, nil
}
