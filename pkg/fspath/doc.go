// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed path values for script plumbing: FilePath for
// any path, AbsPath for paths guaranteed absolute, and TempFile for the
// lifecycle of disposable intermediate files.
//
// FilePath focuses on filename surgery, editing the stem and extension of
// the last path element (prefixes, suffixes, extra extensions), which is the
// bulk of what data-processing scripts do to derive output names from input
// names. AbsPath is the type checks and runners hand around once a path has
// been anchored to a directory.
package fspath
