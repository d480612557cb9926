// SPDX-License-Identifier: MPL-2.0

package checks

import (
	"errors"
	"fmt"

	"scriptkit/pkg/fspath"
	"scriptkit/pkg/termlog"
)

var (
	// ErrFileNotFound is the sentinel error wrapped by FileNotFoundError.
	ErrFileNotFound = errors.New("file not found")
	// ErrFileExists is the sentinel error wrapped by FileExistsError.
	ErrFileExists = errors.New("file already exists")
)

type (
	// FileNotFoundError is returned under ActionFail when a required file is
	// missing. It wraps ErrFileNotFound for errors.Is() compatibility.
	FileNotFoundError struct {
		Path fspath.FilePath
	}

	// FileExistsError is returned under ActionFail when a to-be-created file
	// already exists. It wraps ErrFileExists for errors.Is() compatibility.
	FileExistsError struct {
		Path fspath.FilePath
	}

	// AbsentOptions configures FileAbsent.
	AbsentOptions struct {
		// Override removes an existing file instead of failing.
		Override bool
		// SilentRemove suppresses the replacement warning under Override.
		SilentRemove bool
		// ExtraText is appended to the failure message for context.
		ExtraText string
		// Prog names the calling script or step in printed messages.
		Prog string
		// FailWith overrides the error ActionFail returns.
		FailWith error
		// Logger overrides the package-level default logger.
		Logger *termlog.Logger
	}
)

// Error implements the error interface for FileNotFoundError.
func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file %q is not found", e.Path)
}

// Unwrap returns ErrFileNotFound for errors.Is() compatibility.
func (e *FileNotFoundError) Unwrap() error { return ErrFileNotFound }

// Error implements the error interface for FileExistsError.
func (e *FileExistsError) Error() string {
	return fmt.Sprintf("file %q already exists", e.Path)
}

// Unwrap returns ErrFileExists for errors.Is() compatibility.
func (e *FileExistsError) Unwrap() error { return ErrFileExists }

// FileExists verifies the file exists and returns its absolute path. A
// missing file triggers the action; under ActionFail the error wraps
// ErrFileNotFound, under the printing actions the returned path is empty and
// the error nil.
func FileExists(path fspath.FilePath, action Action, opts DoOptions) (fspath.AbsPath, error) {
	abs, err := path.Abs()
	if err != nil {
		return "", err
	}
	if !abs.Exists() {
		if opts.FailWith == nil {
			opts.FailWith = &FileNotFoundError{Path: path}
		}
		if err := action.Do(fmt.Sprintf("File %q is not found", path), opts); err != nil {
			return "", err
		}
		return "", nil
	}
	return abs, nil
}

// FileAbsent verifies the file does not exist yet so it can be created, and
// returns its absolute path. With Override an existing file is removed (with
// a replacement warning unless silenced); otherwise an existing file
// triggers the action, wrapping ErrFileExists under ActionFail.
func FileAbsent(path fspath.FilePath, action Action, opts AbsentOptions) (fspath.AbsPath, error) {
	abs, err := path.Abs()
	if err != nil {
		return "", err
	}
	if !abs.Exists() {
		return abs, nil
	}

	if opts.Override {
		if err := abs.Remove(); err != nil {
			return "", err
		}
		if !opts.SilentRemove {
			l := opts.Logger
			if l == nil {
				l = termlog.Default()
			}
			l.Warn(opts.Prog, fmt.Sprintf("File %q will be replaced", path))
		}
		return abs, nil
	}

	failWith := opts.FailWith
	if failWith == nil {
		failWith = &FileExistsError{Path: path}
	}
	msg := fmt.Sprintf("File %q already exists.", path)
	if opts.ExtraText != "" {
		msg += " " + opts.ExtraText
	}
	doErr := action.Do(msg, DoOptions{Prog: opts.Prog, FailWith: failWith, Logger: opts.Logger})
	if doErr != nil {
		return "", doErr
	}
	return "", nil
}
