// SPDX-License-Identifier: MPL-2.0

package shellrun

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scriptkit/pkg/fspath"
	"scriptkit/pkg/termlog"
)

func TestCallAndLog_PlainConsole(t *testing.T) {
	t.Parallel()

	var msgs, console bytes.Buffer
	l := termlog.NewWithOptions(&msgs, termlog.Options{NoColor: true})

	ok, code, err := CallAndLog(context.Background(), l, "echo payload", CallOptions{
		Prog:    "step1",
		Runner:  NewInterpRunner(),
		Console: &console,
	})
	if err != nil || !ok || code != 0 {
		t.Fatalf("CallAndLog = (%v, %d, %v)", ok, code, err)
	}
	if !strings.Contains(console.String(), "payload") {
		t.Errorf("subprocess output missing from console: %q", console.String())
	}
	if !strings.Contains(msgs.String(), "[step1]: echo payload") {
		t.Errorf("command announcement missing: %q", msgs.String())
	}
	if !strings.Contains(msgs.String(), "Finished with code 0") {
		t.Errorf("finish announcement missing: %q", msgs.String())
	}
}

func TestCallAndLog_CapturesIntoLogFile(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "run.log")
	var msgs, console bytes.Buffer
	l := termlog.NewWithOptions(&msgs, termlog.Options{NoColor: true})
	if err := l.OpenLogFile(logPath, false); err != nil {
		t.Fatal(err)
	}

	ok, _, err := CallAndLog(context.Background(), l, "echo captured", CallOptions{
		Runner:  NewInterpRunner(),
		Console: &console,
	})
	if err != nil || !ok {
		t.Fatalf("CallAndLog failed: %v", err)
	}
	l.CloseLogFile()

	if strings.Contains(console.String(), "captured") {
		t.Errorf("captured output leaked to the console: %q", console.String())
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "captured") {
		t.Errorf("logfile missing subprocess output:\n%s", data)
	}
}

func TestCallAndLog_SeparateLogFileTees(t *testing.T) {
	t.Parallel()

	sep, err := fspath.NewAbs(filepath.Join(t.TempDir(), "sub.log"))
	if err != nil {
		t.Fatal(err)
	}
	var msgs, console bytes.Buffer
	l := termlog.NewWithOptions(&msgs, termlog.Options{NoColor: true})

	ok, _, err := CallAndLog(context.Background(), l, "echo teed", CallOptions{
		Runner:          NewInterpRunner(),
		Console:         &console,
		SeparateLogFile: sep,
	})
	if err != nil || !ok {
		t.Fatalf("CallAndLog failed: %v", err)
	}

	if !strings.Contains(console.String(), "teed") {
		t.Errorf("teed output missing from console: %q", console.String())
	}
	data, err := os.ReadFile(sep.String())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "teed") {
		t.Errorf("separate logfile missing output:\n%s", data)
	}
}

func TestCallAndLog_NonzeroExitWarns(t *testing.T) {
	t.Parallel()

	var msgs bytes.Buffer
	l := termlog.NewWithOptions(&msgs, termlog.Options{NoColor: true})

	ok, code, err := CallAndLog(context.Background(), l, "exit 2", CallOptions{
		Runner:  NewInterpRunner(),
		Console: &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("CallAndLog errored: %v", err)
	}
	if ok || code != 2 {
		t.Errorf("CallAndLog = (%v, %d), want (false, 2)", ok, code)
	}
	if !strings.Contains(msgs.String(), "Warning: Finished with code 2") {
		t.Errorf("nonzero exit not announced as warning: %q", msgs.String())
	}
}
