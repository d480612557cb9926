// SPDX-License-Identifier: MPL-2.0

// Package checks validates script arguments: input files that must exist,
// output files that must not, and whole file lists read from disk.
//
// Every check takes an Action deciding what a failed precondition does:
// abort the script, print an error or warning and continue, return an error
// to the caller, or stay silent. That lets one helper serve both strict
// pipeline steps and best-effort cleanup code.
package checks
