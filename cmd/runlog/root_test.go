// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"path/filepath"
	"testing"

	"scriptkit/internal/config"
	"scriptkit/pkg/shellrun"
)

func TestGetVersionString(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = oldVersion, oldCommit, oldDate
	})

	Version = "dev"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q", got)
	}

	Version, Commit, BuildDate = "1.2.3", "abc123", "2026-01-01"
	if got := getVersionString(); got != "1.2.3 (commit: abc123, built: 2026-01-01)" {
		t.Errorf("getVersionString() = %q", got)
	}
}

func TestExitError(t *testing.T) {
	inner := errors.New("command failed")

	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{"bare code", &ExitError{Code: 3}, "exit status 3"},
		{"wrapped error", &ExitError{Code: 1, Err: inner}, "command failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	if !errors.Is(&ExitError{Code: 1, Err: inner}, inner) {
		t.Error("ExitError should unwrap to its inner error")
	}
}

func TestParseEnvPairs(t *testing.T) {
	env := parseEnvPairs([]string{"A=1", "B=x=y", "FLAG"})

	if env["A"] != "1" {
		t.Errorf("A = %q, want 1", env["A"])
	}
	if env["B"] != "x=y" {
		t.Errorf("B = %q, want x=y", env["B"])
	}
	if v, ok := env["FLAG"]; !ok || v != "" {
		t.Errorf("FLAG = %q, %v; want empty, present", v, ok)
	}
	if parseEnvPairs(nil) != nil {
		t.Error("no pairs should produce a nil map")
	}
}

func TestResolveLogPath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		logDir string
		want   string
	}{
		{"relative with log dir", "run.log", "/var/log", filepath.Join("/var/log", "run.log")},
		{"relative without log dir", "run.log", "", "run.log"},
		{"absolute ignores log dir", "/tmp/run.log", "/var/log", "/tmp/run.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Runner: config.RunnerShell, LogDir: tt.logDir}
			if got := resolveLogPath(tt.path, cfg); got != tt.want {
				t.Errorf("resolveLogPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildRunner(t *testing.T) {
	t.Cleanup(func() { runnerName, shellPath = "", "" })

	runnerName, shellPath = "", ""
	cfg := &config.Config{Runner: config.RunnerVirtual}
	if _, ok := buildRunner(cfg).(*shellrun.InterpRunner); !ok {
		t.Error("config runner=virtual should pick the interp runner")
	}

	runnerName = "shell"
	r, ok := buildRunner(cfg).(*shellrun.ShellRunner)
	if !ok {
		t.Fatal("--runner shell should override the config")
	}
	if r.Shell != "" {
		t.Errorf("Shell = %q, want autodetect", r.Shell)
	}

	shellPath = "/bin/zsh"
	r, _ = buildRunner(cfg).(*shellrun.ShellRunner)
	if r.Shell != "/bin/zsh" {
		t.Errorf("Shell = %q, want /bin/zsh", r.Shell)
	}
}
