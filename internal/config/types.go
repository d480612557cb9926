// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// RunnerShell executes commands through the system shell.
	RunnerShell RunnerKind = "shell"
	// RunnerVirtual executes commands in the embedded mvdan/sh interpreter.
	RunnerVirtual RunnerKind = "virtual"
)

var (
	// ErrInvalidRunnerKind is returned when a RunnerKind value is not recognized.
	ErrInvalidRunnerKind = errors.New("invalid runner kind")
	// ErrInvalidLogDir is returned when a log directory value is whitespace-only.
	ErrInvalidLogDir = errors.New("invalid log directory")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// RunnerKind specifies how commands are executed.
	RunnerKind string

	// InvalidRunnerKindError is returned when a RunnerKind value is not recognized.
	// It wraps ErrInvalidRunnerKind for errors.Is() compatibility.
	InvalidRunnerKindError struct {
		Value RunnerKind
	}

	// InvalidLogDirError is returned when a log directory value is whitespace-only.
	// It wraps ErrInvalidLogDir for errors.Is() compatibility.
	InvalidLogDirError struct {
		Value string
	}

	// InvalidConfigError aggregates all validation failures of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		Errors []error
	}

	// Config is the root scriptkit configuration.
	Config struct {
		// Runner selects the execution backend for run commands.
		Runner RunnerKind `mapstructure:"runner" toml:"runner"`
		// Shell overrides the shell binary used by the shell runner.
		// Empty means autodetect ($SHELL, then bash, then sh).
		Shell string `mapstructure:"shell" toml:"shell"`
		// LogDir is where run logs are written. Empty means the
		// current working directory.
		LogDir string `mapstructure:"log_dir" toml:"log_dir"`
		// NoColor disables styled terminal output.
		NoColor bool `mapstructure:"no_color" toml:"no_color"`
		// AppendLogs appends to an existing log file instead of refusing it.
		AppendLogs bool `mapstructure:"append_logs" toml:"append_logs"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Runner: RunnerShell,
	}
}

// String returns the string representation of the RunnerKind.
func (k RunnerKind) String() string { return string(k) }

// IsValid returns whether the RunnerKind is one of the defined backends,
// and a list of validation errors if it is not.
func (k RunnerKind) IsValid() (bool, []error) {
	switch k {
	case RunnerShell, RunnerVirtual:
		return true, nil
	default:
		return false, []error{&InvalidRunnerKindError{Value: k}}
	}
}

// IsValid returns whether the Config is valid and a list of all
// validation errors found.
func (c *Config) IsValid() (bool, []error) {
	var errs []error

	if ok, kindErrs := c.Runner.IsValid(); !ok {
		errs = append(errs, kindErrs...)
	}
	if c.LogDir != "" && strings.TrimSpace(c.LogDir) == "" {
		errs = append(errs, &InvalidLogDirError{Value: c.LogDir})
	}

	return len(errs) == 0, errs
}

// Validate returns an InvalidConfigError when the Config is invalid.
func (c *Config) Validate() error {
	if ok, errs := c.IsValid(); !ok {
		return &InvalidConfigError{Errors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidRunnerKindError.
func (e *InvalidRunnerKindError) Error() string {
	return fmt.Sprintf("invalid runner kind %q (valid: shell, virtual)", e.Value)
}

// Unwrap returns ErrInvalidRunnerKind for errors.Is() compatibility.
func (e *InvalidRunnerKindError) Unwrap() error { return ErrInvalidRunnerKind }

// Error implements the error interface for InvalidLogDirError.
func (e *InvalidLogDirError) Error() string {
	return fmt.Sprintf("invalid log directory %q: must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidLogDir for errors.Is() compatibility.
func (e *InvalidLogDirError) Unwrap() error { return ErrInvalidLogDir }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig plus every aggregated validation error,
// so errors.Is() matches both the outer and the inner sentinels.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.Errors...)
}
