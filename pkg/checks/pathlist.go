// SPDX-License-Identifier: MPL-2.0

package checks

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"scriptkit/pkg/fspath"
)

var (
	// ErrBadListEntry is the sentinel error wrapped by BadListEntryError.
	ErrBadListEntry = errors.New("bad file list entry")
	// ErrFilesMissing is the sentinel error wrapped by FilesMissingError.
	ErrFilesMissing = errors.New("listed files missing")
)

type (
	// PathList is an ordered collection of file paths, usually the inputs or
	// outputs of a script step.
	PathList []fspath.FilePath

	// BadListEntryError is returned when a file-list line cannot be parsed.
	// It wraps ErrBadListEntry for errors.Is() compatibility.
	BadListEntryError struct {
		File fspath.FilePath
		Line int
		Text string
	}

	// FilesMissingError is returned under ActionFail when one or more listed
	// files do not exist. It wraps ErrFilesMissing for errors.Is()
	// compatibility.
	FilesMissingError struct {
		Missing PathList
	}
)

// Error implements the error interface for BadListEntryError.
func (e *BadListEntryError) Error() string {
	return fmt.Sprintf("bad entry at %s:%d: %q", e.File, e.Line, e.Text)
}

// Unwrap returns ErrBadListEntry for errors.Is() compatibility.
func (e *BadListEntryError) Unwrap() error { return ErrBadListEntry }

// Error implements the error interface for FilesMissingError.
func (e *FilesMissingError) Error() string {
	return fmt.Sprintf("%d listed file(s) missing, first %q", len(e.Missing), e.Missing[0])
}

// Unwrap returns ErrFilesMissing for errors.Is() compatibility.
func (e *FilesMissingError) Unwrap() error { return ErrFilesMissing }

// NewPathList builds a PathList from plain strings.
func NewPathList(names ...string) PathList {
	pl := make(PathList, len(names))
	for i, n := range names {
		pl[i] = fspath.FilePath(n)
	}
	return pl
}

// Names returns the paths as plain strings.
func (pl PathList) Names() []string {
	out := make([]string, len(pl))
	for i, p := range pl {
		out[i] = p.String()
	}
	return out
}

// Append returns a new list with the given paths added at the end.
func (pl PathList) Append(paths ...fspath.FilePath) PathList {
	out := make(PathList, 0, len(pl)+len(paths))
	out = append(out, pl...)
	return append(out, paths...)
}

// Prepend returns a new list with the given paths added at the front.
func (pl PathList) Prepend(paths ...fspath.FilePath) PathList {
	out := make(PathList, 0, len(pl)+len(paths))
	out = append(out, paths...)
	return append(out, pl...)
}

// Concat returns a new list joining this list with another.
func (pl PathList) Concat(other PathList) PathList {
	return pl.Append(other...)
}

// Absolute resolves every relative entry against base and returns the
// result. Absolute entries are kept as they are. The base itself must be
// absolute; a relative base fails with fspath.ErrNotAbsolute.
func (pl PathList) Absolute(base fspath.FilePath) (PathList, error) {
	if _, err := fspath.NewAbs(base.String()); err != nil {
		return nil, err
	}
	out := make(PathList, len(pl))
	for i, p := range pl {
		if p.IsAbs() {
			out[i] = p
		} else {
			out[i] = base.Join(p.String())
		}
	}
	return out, nil
}

// String renders the list one path per line.
func (pl PathList) String() string {
	return strings.Join(pl.Names(), "\n")
}

// FilesExist verifies every path in the list exists. Each missing file is
// reported with its position in the list; under ActionFail the returned
// error wraps ErrFilesMissing and carries all missing paths.
func FilesExist(pl PathList, action Action, opts DoOptions) (bool, error) {
	var missing PathList
	total := len(pl)
	for i, p := range pl {
		abs, err := p.Abs()
		if err != nil {
			return false, err
		}
		if abs.Exists() {
			continue
		}
		missing = append(missing, p)
		if action != ActionFail {
			msg := fmt.Sprintf("File %q (%d of %d in total) is not found", p, i+1, total)
			if err := action.Do(msg, opts); err != nil {
				return false, err
			}
		}
	}
	if len(missing) == 0 {
		return true, nil
	}
	if action == ActionFail {
		failWith := opts.FailWith
		if failWith == nil {
			failWith = &FilesMissingError{Missing: missing}
		}
		return false, failWith
	}
	return false, nil
}

// ReadFileList parses a file containing one path per line. Everything after
// a '#' is a comment, blank lines are skipped, and an entry with embedded
// whitespace fails with a BadListEntryError.
func ReadFileList(path fspath.FilePath) (PathList, error) {
	f, err := os.Open(path.String())
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only handle

	var pl PathList
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.ContainsAny(line, " \t") {
			return nil, &BadListEntryError{File: path, Line: lineNo, Text: line}
		}
		pl = append(pl, fspath.FilePath(line))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return pl, nil
}

// FilesListedExist reads a file list and verifies every listed file exists.
// Relative entries are resolved against the directory of the list file
// itself, so a list travels with the tree it describes.
func FilesListedExist(listFile fspath.FilePath, action Action, opts DoOptions) (bool, error) {
	absList, err := listFile.Abs()
	if err != nil {
		return false, err
	}
	pl, err := ReadFileList(fspath.FilePath(absList.String()))
	if err != nil {
		return false, err
	}
	resolved, err := pl.Absolute(absList.Path().Dir())
	if err != nil {
		return false, err
	}
	return FilesExist(resolved, action, opts)
}
