// SPDX-License-Identifier: MPL-2.0

package fspath

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

var (
	// ErrTempPathTaken is the sentinel error wrapped by TempPathTakenError.
	ErrTempPathTaken = errors.New("tempfile path is taken")
	// ErrTempPathUnusable is the sentinel error wrapped by TempPathUnusableError.
	ErrTempPathUnusable = errors.New("tempfile path is unusable")
)

type (
	// TempFile names a disposable intermediate file, typically handed to an
	// external executable. The name is unique but recognizable (pid root,
	// optional time-based uniquifier) so a user can still tell which run
	// produced which leftover. The file is removed on Close unless preserved.
	TempFile struct {
		path      AbsPath
		preserved bool
	}

	// TempOptions configures GenerateFrom.
	TempOptions struct {
		// Ext replaces the extension of the derived name when non-empty.
		Ext string
		// Visible drops the leading-dot prefix from the derived name.
		Visible bool
		// Unique appends a time-based hex uniquifier to the name root.
		Unique bool
	}

	// TempPathTakenError is returned when the derived tempfile path already
	// exists on disk or is registered by another TempFile. It wraps
	// ErrTempPathTaken for errors.Is() compatibility.
	TempPathTakenError struct {
		Path AbsPath
	}

	// TempPathUnusableError is returned when the derived path cannot be
	// created, e.g. the host directory is missing or unwritable. It wraps
	// ErrTempPathUnusable for errors.Is() compatibility.
	TempPathUnusableError struct {
		Path AbsPath
		Err  error
	}
)

// nameRoot prefixes every generated name so leftovers can be matched to the
// run that produced them.
var nameRoot = fmt.Sprintf("tmp%d_", os.Getpid())

// registry tracks live tempfile paths so two TempFiles never share a name.
var registry = struct {
	sync.Mutex
	paths map[AbsPath]*TempFile
}{paths: make(map[AbsPath]*TempFile)}

// Error implements the error interface for TempPathTakenError.
func (e *TempPathTakenError) Error() string {
	return fmt.Sprintf("can't create tempfile: path %q is taken", e.Path)
}

// Unwrap returns ErrTempPathTaken for errors.Is() compatibility.
func (e *TempPathTakenError) Unwrap() error { return ErrTempPathTaken }

// Error implements the error interface for TempPathUnusableError.
func (e *TempPathUnusableError) Error() string {
	return fmt.Sprintf("can't create tempfile: path %q is not valid or the host directory is not writable: %v", e.Path, e.Err)
}

// Unwrap returns ErrTempPathUnusable for errors.Is() compatibility.
func (e *TempPathUnusableError) Unwrap() error { return ErrTempPathUnusable }

// GenerateFrom derives a tempfile name from an existing path by prefixing the
// filename with the tempfile name root (and a leading dot unless Visible).
// The derived path must not exist and must be creatable; the probe touch is
// removed immediately.
func GenerateFrom(path FilePath, opts TempOptions) (*TempFile, error) {
	prefix := ""
	if !opts.Visible {
		prefix = "."
	}
	prefix += nameRoot
	if opts.Unique {
		prefix += fmt.Sprintf("%x_", time.Now().UnixNano()&0xffffff)
	}
	derived := path.WithStemPrefix(prefix)
	if opts.Ext != "" {
		derived = derived.WithExt(opts.Ext)
	}
	abs, err := derived.Abs()
	if err != nil {
		return nil, err
	}
	return register(abs)
}

// Generate builds a tempfile with a fully synthetic unique name in the
// current directory, hidden by default.
func Generate(ext string) (*TempFile, error) {
	name := fmt.Sprintf("%x%s", time.Now().UnixNano(), normalizeExt(ext))
	return GenerateFrom(FilePath(name), TempOptions{})
}

// register claims the path: it must be free on disk and in the registry, and
// the probe touch must succeed.
func register(abs AbsPath) (*TempFile, error) {
	registry.Lock()
	defer registry.Unlock()

	if _, used := registry.paths[abs]; used || abs.Exists() {
		return nil, &TempPathTakenError{Path: abs}
	}
	if err := abs.Touch(); err != nil {
		return nil, &TempPathUnusableError{Path: abs, Err: err}
	}
	if err := abs.Remove(); err != nil {
		return nil, &TempPathUnusableError{Path: abs, Err: err}
	}

	tf := &TempFile{path: abs}
	registry.paths[abs] = tf
	return tf, nil
}

// Path returns the tempfile's absolute path.
func (t *TempFile) Path() AbsPath { return t.path }

// String returns the tempfile's path as a string.
func (t *TempFile) String() string { return string(t.path) }

// Preserve turns automatic removal off (or back on).
func (t *TempFile) Preserve(keep bool) { t.preserved = keep }

// Preserved reports whether the file survives Close and CleanupAll.
func (t *TempFile) Preserved() bool { return t.preserved }

// Close removes the file (when present and not preserved) and releases the
// name for reuse.
func (t *TempFile) Close() error {
	registry.Lock()
	defer registry.Unlock()

	if _, ok := registry.paths[t.path]; !ok {
		return nil
	}
	delete(registry.paths, t.path)
	if t.preserved || !t.path.Exists() {
		return nil
	}
	return t.path.Remove()
}

// CleanupAll force-removes every registered non-preserved tempfile. Meant for
// a process-exit hook.
func CleanupAll() {
	registry.Lock()
	defer registry.Unlock()

	for path, tf := range registry.paths {
		if !tf.preserved && path.Exists() {
			_ = os.Remove(string(path))
		}
		delete(registry.paths, path)
	}
}

// normalizeExt guarantees a leading dot; empty stays empty.
func normalizeExt(ext string) string {
	if ext == "" || ext[0] == '.' {
		return ext
	}
	return "." + ext
}
