// SPDX-License-Identifier: MPL-2.0

// Package termlog prints colored status messages for script users and
// mirrors everything into an optional logfile.
//
// The terminal side renders through lipgloss styles; the logfile side goes
// through a charmbracelet/log sink with timestamps, so a finished logfile
// reads as a plain chronological record of what the script printed and ran.
// Message shaping follows the "[prog]: Type: text" convention, where prog is
// the name of the calling script or step and Type is a severity word like
// "Error:" or "Warning:".
//
// A package-level default logger backs the top-level helpers (Err, Warn,
// Info, Caption, Die, ...) so short scripts can use the package without any
// setup.
package termlog
