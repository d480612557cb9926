// SPDX-License-Identifier: MPL-2.0

// Package shellrun executes shell command lines for scripts, with their
// combined output optionally captured into a logfile.
//
// Two runners implement the same interface: ShellRunner hands the command
// line to the system shell, and InterpRunner runs it in the embedded
// mvdan.cc/sh interpreter, which works even on hosts without a usable shell.
// CallAndLog is the high-level entry point: it announces the command, routes
// the subprocess output according to the logging state, and reports the exit
// code the way interactive script users expect.
package shellrun
