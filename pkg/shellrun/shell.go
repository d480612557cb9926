// SPDX-License-Identifier: MPL-2.0

package shellrun

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ShellRunner executes command lines through the system's default shell.
type ShellRunner struct {
	// Shell overrides the detected shell binary.
	Shell string
	// ShellArgs are the arguments passed to the shell before the script.
	ShellArgs []string
}

// NewShellRunner creates a runner using the detected system shell.
func NewShellRunner() *ShellRunner {
	return &ShellRunner{}
}

// Name returns the runner name.
func (r *ShellRunner) Name() string {
	return "shell"
}

// Available reports whether a usable shell exists on this host.
func (r *ShellRunner) Available() bool {
	_, err := r.getShell()
	return err == nil
}

// Run executes the command line with the system shell.
func (r *ShellRunner) Run(ctx context.Context, req Request) *Result {
	shell, err := r.getShell()
	if err != nil {
		return &Result{ExitCode: 1, Err: err}
	}

	args := append(r.getShellArgs(shell), req.Script)
	cmd := exec.CommandContext(ctx, shell, args...)

	if req.Dir != "" {
		cmd.Dir = req.Dir
	}
	cmd.Env = append(os.Environ(), envToSlice(req.Env)...)

	cmd.Stdout = req.Stdout
	cmd.Stderr = req.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = req.Stdout
	}
	if req.Stdin != "" {
		cmd.Stdin = strings.NewReader(req.Stdin)
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{ExitCode: exitErr.ExitCode()}
		}
		return &Result{ExitCode: 1, Err: fmt.Errorf("failed to execute command: %w", err)}
	}
	return &Result{}
}

// getShell determines which shell binary to use.
func (r *ShellRunner) getShell() (string, error) {
	if r.Shell != "" {
		return r.Shell, nil
	}

	switch runtime.GOOS {
	case "windows":
		if pwsh, err := exec.LookPath("pwsh"); err == nil {
			return pwsh, nil
		}
		if ps, err := exec.LookPath("powershell"); err == nil {
			return ps, nil
		}
		if cmd, err := exec.LookPath("cmd"); err == nil {
			return cmd, nil
		}
		return "", &NoShellError{}
	default:
		if shell := os.Getenv("SHELL"); shell != "" {
			return shell, nil
		}
		if bash, err := exec.LookPath("bash"); err == nil {
			return bash, nil
		}
		if sh, err := exec.LookPath("sh"); err == nil {
			return sh, nil
		}
		return "", &NoShellError{}
	}
}

// getShellArgs returns the arguments that make the shell take an inline script.
func (r *ShellRunner) getShellArgs(shell string) []string {
	if len(r.ShellArgs) > 0 {
		return r.ShellArgs
	}

	base := strings.TrimSuffix(filepath.Base(shell), ".exe")
	switch base {
	case "cmd":
		return []string{"/C"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		// Assume POSIX shell
		return []string{"-c"}
	}
}
