// SPDX-License-Identifier: MPL-2.0

package shellrun

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrNoShell is the sentinel error wrapped by NoShellError.
var ErrNoShell = errors.New("no shell found")

type (
	// Request describes one command-line execution. Stderr is merged into
	// Stdout when Stderr is nil, which is what log capture wants.
	Request struct {
		// Script is the command line to execute.
		Script string
		// Stdin is fed to the process verbatim.
		Stdin string
		// Dir is the working directory (empty for the current one).
		Dir string
		// Env holds extra environment variables layered over the process env.
		Env map[string]string
		// Stdout receives the process output.
		Stdout io.Writer
		// Stderr receives the error stream; nil merges it into Stdout.
		Stderr io.Writer
	}

	// Result reports how an execution went. Err is set only for failures to
	// run at all; a nonzero exit code of a started process is not an Err.
	Result struct {
		ExitCode int
		Err      error
	}

	// Runner executes command lines.
	Runner interface {
		// Name identifies the runner in logs.
		Name() string
		// Available reports whether the runner can work on this host.
		Available() bool
		// Run executes the request synchronously.
		Run(ctx context.Context, req Request) *Result
	}

	// NoShellError is returned when no usable system shell can be located.
	// It wraps ErrNoShell for errors.Is() compatibility.
	NoShellError struct{}
)

// Error implements the error interface for NoShellError.
func (e *NoShellError) Error() string {
	return "no usable system shell found (tried $SHELL, bash, sh)"
}

// Unwrap returns ErrNoShell for errors.Is() compatibility.
func (e *NoShellError) Unwrap() error { return ErrNoShell }

// Ok reports whether the execution ran to completion with a zero exit code.
func (r *Result) Ok() bool { return r.Err == nil && r.ExitCode == 0 }

// envToSlice flattens an env map into KEY=VALUE form.
func envToSlice(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	return out
}
