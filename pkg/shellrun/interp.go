// SPDX-License-Identifier: MPL-2.0

package shellrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// InterpRunner executes command lines in the embedded mvdan/sh interpreter.
// It needs no shell binary on the host, at the price of POSIX-only syntax.
type InterpRunner struct{}

// NewInterpRunner creates an embedded-interpreter runner.
func NewInterpRunner() *InterpRunner {
	return &InterpRunner{}
}

// Name returns the runner name.
func (r *InterpRunner) Name() string {
	return "interp"
}

// Available reports whether this runner can work; the interpreter is built
// in, so it always can.
func (r *InterpRunner) Available() bool {
	return true
}

// Run parses and executes the command line with the embedded interpreter.
func (r *InterpRunner) Run(ctx context.Context, req Request) *Result {
	prog, err := syntax.NewParser().Parse(strings.NewReader(req.Script), "script")
	if err != nil {
		return &Result{ExitCode: 1, Err: fmt.Errorf("failed to parse script: %w", err)}
	}

	stdout := req.Stdout
	stderr := req.Stderr
	if stderr == nil {
		stderr = stdout
	}
	var stdin io.Reader
	if req.Stdin != "" {
		stdin = strings.NewReader(req.Stdin)
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(append(os.Environ(), envToSlice(req.Env)...)...)),
		interp.StdIO(stdin, stdout, stderr),
	}
	if req.Dir != "" {
		opts = append(opts, interp.Dir(req.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return &Result{ExitCode: 1, Err: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return &Result{ExitCode: int(exitStatus)}
		}
		return &Result{ExitCode: 1, Err: fmt.Errorf("script execution failed: %w", err)}
	}
	return &Result{}
}
