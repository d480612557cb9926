// SPDX-License-Identifier: MPL-2.0

package fspath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidExt is the sentinel error wrapped by InvalidExtError.
	ErrInvalidExt = errors.New("invalid extension")
	// ErrNotAbsolute is the sentinel error wrapped by NotAbsoluteError.
	ErrNotAbsolute = errors.New("path is not absolute")
)

type (
	// FilePath is a filesystem path value. It carries no validity guarantee;
	// it exists so filename-surgery helpers have a home and so signatures
	// distinguish paths from arbitrary strings.
	FilePath string

	// AbsPath is a path guaranteed to be absolute. Construct one with NewAbs
	// or FilePath.Abs; the guarantee is what the checks and runner layers
	// rely on when they touch the filesystem.
	AbsPath string

	// InvalidExtError is returned when an extension to append is empty or
	// reduces to a bare dot. It wraps ErrInvalidExt for errors.Is() compatibility.
	InvalidExtError struct {
		Ext string
	}

	// NotAbsoluteError is returned when an absolute path is required but the
	// value is relative. It wraps ErrNotAbsolute for errors.Is() compatibility.
	NotAbsoluteError struct {
		Path FilePath
	}
)

// Error implements the error interface for InvalidExtError.
func (e *InvalidExtError) Error() string {
	return fmt.Sprintf("invalid extension %q", e.Ext)
}

// Unwrap returns ErrInvalidExt for errors.Is() compatibility.
func (e *InvalidExtError) Unwrap() error { return ErrInvalidExt }

// Error implements the error interface for NotAbsoluteError.
func (e *NotAbsoluteError) Error() string {
	return fmt.Sprintf("can't build an absolute path value from relative path %q", e.Path)
}

// Unwrap returns ErrNotAbsolute for errors.Is() compatibility.
func (e *NotAbsoluteError) Unwrap() error { return ErrNotAbsolute }

// String returns the string representation of the FilePath.
func (p FilePath) String() string { return string(p) }

// IsAbs reports whether the path is absolute.
func (p FilePath) IsAbs() bool { return filepath.IsAbs(string(p)) }

// Name returns the last element of the path.
func (p FilePath) Name() string { return filepath.Base(string(p)) }

// Ext returns the extension of the last element, including the dot.
func (p FilePath) Ext() string { return filepath.Ext(string(p)) }

// Stem returns the last element with its extension removed.
func (p FilePath) Stem() string {
	name := p.Name()
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Dir returns the path with its last element removed.
func (p FilePath) Dir() FilePath { return FilePath(filepath.Dir(string(p))) }

// Join appends path elements to the path.
func (p FilePath) Join(elem ...string) FilePath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(p)
	parts = append(parts, elem...)
	return FilePath(filepath.Join(parts...))
}

// Abs anchors the path to the current working directory when it is relative.
func (p FilePath) Abs() (AbsPath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return AbsPath(abs), nil
}

// WithName replaces the last element of the path.
func (p FilePath) WithName(name string) FilePath {
	return p.Dir().Join(name)
}

// WithExt replaces the extension of the last element. A missing leading dot
// is supplied; an empty ext strips the extension.
func (p FilePath) WithExt(ext string) FilePath {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return p.WithName(p.Stem() + ext)
}

// AppendExt adds another extension after the existing one, so "a/b.fits"
// appended with "gz" becomes "a/b.fits.gz". The extension must not be empty
// or a bare dot.
func (p FilePath) AppendExt(ext string) (FilePath, error) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if len(ext) < 2 {
		return "", &InvalidExtError{Ext: ext}
	}
	return p.WithName(p.Name() + ext), nil
}

// WithStemPrefix prepends text to the filename.
func (p FilePath) WithStemPrefix(text string) FilePath {
	return p.WithName(text + p.Name())
}

// WithStemSuffix appends text to the filename stem, before the extension.
func (p FilePath) WithStemSuffix(text string) FilePath {
	return p.WithName(p.Stem() + text + p.Ext())
}

// WithDir keeps the filename and replaces everything before it.
func (p FilePath) WithDir(dir FilePath) FilePath {
	return dir.Join(p.Name())
}

// PrependDir prefixes the whole path (directories included) with a base
// directory.
func (p FilePath) PrependDir(base FilePath) FilePath {
	return base.Join(string(p))
}

// NewAbs builds an AbsPath from a string, rejecting relative input.
func NewAbs(s string) (AbsPath, error) {
	if !filepath.IsAbs(s) {
		return "", &NotAbsoluteError{Path: FilePath(s)}
	}
	return AbsPath(filepath.Clean(s)), nil
}

// String returns the string representation of the AbsPath.
func (p AbsPath) String() string { return string(p) }

// Path widens the AbsPath back to a FilePath for filename surgery.
func (p AbsPath) Path() FilePath { return FilePath(p) }

// Name returns the last element of the path.
func (p AbsPath) Name() string { return filepath.Base(string(p)) }

// Dir returns the path with its last element removed.
func (p AbsPath) Dir() AbsPath { return AbsPath(filepath.Dir(string(p))) }

// Exists reports whether something exists at the path.
func (p AbsPath) Exists() bool {
	_, err := os.Stat(string(p))
	return err == nil
}

// Touch creates the file at the path if missing, failing when the directory
// is absent or unwritable. An existing file is left as it is.
func (p AbsPath) Touch() error {
	f, err := os.OpenFile(string(p), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("touching %q: %w", string(p), err)
	}
	return f.Close()
}

// Remove deletes the file at the path.
func (p AbsPath) Remove() error {
	if err := os.Remove(string(p)); err != nil {
		return fmt.Errorf("removing %q: %w", string(p), err)
	}
	return nil
}
