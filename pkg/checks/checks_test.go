// SPDX-License-Identifier: MPL-2.0

package checks

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scriptkit/pkg/fspath"
	"scriptkit/pkg/termlog"
)

func quietLogger(buf *bytes.Buffer) *termlog.Logger {
	return termlog.NewWithOptions(buf, termlog.Options{NoColor: true})
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAction_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		action Action
		want   bool
	}{
		{ActionDie, true},
		{ActionError, true},
		{ActionWarn, true},
		{ActionFail, true},
		{ActionNothing, true},
		{Action("explode"), false},
		{Action(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			t.Parallel()

			ok, errs := tt.action.IsValid()
			if ok != tt.want {
				t.Errorf("IsValid() = %v, want %v", ok, tt.want)
			}
			if !tt.want {
				if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidAction) {
					t.Errorf("expected a single InvalidActionError, got %v", errs)
				}
			}
		})
	}
}

func TestAction_Do(t *testing.T) {
	t.Parallel()

	t.Run("nothing is silent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := ActionNothing.Do("boom", DoOptions{Logger: quietLogger(&buf)})
		if err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("warn prints and continues", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := ActionWarn.Do("boom", DoOptions{Prog: "step1", Logger: quietLogger(&buf)})
		if err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		if got := buf.String(); !strings.Contains(got, "[step1]: Warning: boom") {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("error prints and continues", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := ActionError.Do("boom", DoOptions{Logger: quietLogger(&buf)})
		if err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		if got := buf.String(); !strings.Contains(got, "Error: boom") {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("fail returns plain error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := ActionFail.Do("boom", DoOptions{Logger: quietLogger(&buf)})
		if err == nil || err.Error() != "boom" {
			t.Fatalf("Do() error = %v, want \"boom\"", err)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("fail returns FailWith when set", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("custom failure")
		err := ActionFail.Do("boom", DoOptions{FailWith: sentinel, Logger: quietLogger(&bytes.Buffer{})})
		if !errors.Is(err, sentinel) {
			t.Fatalf("Do() error = %v, want %v", err, sentinel)
		}
	})

	t.Run("unknown action fails", func(t *testing.T) {
		t.Parallel()

		err := Action("explode").Do("boom", DoOptions{Logger: quietLogger(&bytes.Buffer{})})
		if !errors.Is(err, ErrInvalidAction) {
			t.Fatalf("Do() error = %v, want ErrInvalidAction", err)
		}
	})
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	t.Run("existing file resolves to absolute path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		file := filepath.Join(dir, "in.txt")
		touch(t, file)

		abs, err := FileExists(fspath.FilePath(file), ActionFail, DoOptions{})
		if err != nil {
			t.Fatalf("FileExists() error = %v", err)
		}
		if abs.String() != file {
			t.Errorf("abs = %q, want %q", abs, file)
		}
	})

	t.Run("missing file fails with ErrFileNotFound", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "ghost.txt")
		_, err := FileExists(fspath.FilePath(missing), ActionFail, DoOptions{})
		if !errors.Is(err, ErrFileNotFound) {
			t.Fatalf("FileExists() error = %v, want ErrFileNotFound", err)
		}
		var nf *FileNotFoundError
		if !errors.As(err, &nf) || nf.Path.String() != missing {
			t.Errorf("error does not carry path: %v", err)
		}
	})

	t.Run("missing file warns and returns empty path", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		missing := filepath.Join(t.TempDir(), "ghost.txt")
		abs, err := FileExists(fspath.FilePath(missing), ActionWarn, DoOptions{Logger: quietLogger(&buf)})
		if err != nil {
			t.Fatalf("FileExists() error = %v", err)
		}
		if abs != "" {
			t.Errorf("abs = %q, want empty", abs)
		}
		if got := buf.String(); !strings.Contains(got, "is not found") {
			t.Errorf("unexpected output %q", got)
		}
	})
}

func TestFileAbsent(t *testing.T) {
	t.Parallel()

	t.Run("fresh path passes", func(t *testing.T) {
		t.Parallel()

		fresh := filepath.Join(t.TempDir(), "out.txt")
		abs, err := FileAbsent(fspath.FilePath(fresh), ActionFail, AbsentOptions{})
		if err != nil {
			t.Fatalf("FileAbsent() error = %v", err)
		}
		if abs.String() != fresh {
			t.Errorf("abs = %q, want %q", abs, fresh)
		}
	})

	t.Run("existing file fails with ErrFileExists", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "out.txt")
		touch(t, file)

		_, err := FileAbsent(fspath.FilePath(file), ActionFail, AbsentOptions{ExtraText: "use --force"})
		if !errors.Is(err, ErrFileExists) {
			t.Fatalf("FileAbsent() error = %v, want ErrFileExists", err)
		}
	})

	t.Run("override removes and warns", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		file := filepath.Join(t.TempDir(), "out.txt")
		touch(t, file)

		abs, err := FileAbsent(fspath.FilePath(file), ActionFail, AbsentOptions{
			Override: true,
			Logger:   quietLogger(&buf),
		})
		if err != nil {
			t.Fatalf("FileAbsent() error = %v", err)
		}
		if abs.Exists() {
			t.Error("file should have been removed")
		}
		if got := buf.String(); !strings.Contains(got, "will be replaced") {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("silent override skips the warning", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		file := filepath.Join(t.TempDir(), "out.txt")
		touch(t, file)

		_, err := FileAbsent(fspath.FilePath(file), ActionFail, AbsentOptions{
			Override:     true,
			SilentRemove: true,
			Logger:       quietLogger(&buf),
		})
		if err != nil {
			t.Fatalf("FileAbsent() error = %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})
}

func TestPathList_Editing(t *testing.T) {
	t.Parallel()

	orig := NewPathList("a.txt", "b.txt")

	appended := orig.Append("c.txt")
	prepended := orig.Prepend("z.txt")
	joined := orig.Concat(NewPathList("d.txt"))

	if got, want := strings.Join(appended.Names(), ","), "a.txt,b.txt,c.txt"; got != want {
		t.Errorf("Append = %q, want %q", got, want)
	}
	if got, want := strings.Join(prepended.Names(), ","), "z.txt,a.txt,b.txt"; got != want {
		t.Errorf("Prepend = %q, want %q", got, want)
	}
	if got, want := strings.Join(joined.Names(), ","), "a.txt,b.txt,d.txt"; got != want {
		t.Errorf("Concat = %q, want %q", got, want)
	}
	if got, want := strings.Join(orig.Names(), ","), "a.txt,b.txt"; got != want {
		t.Errorf("original mutated: %q, want %q", got, want)
	}
}

func TestPathList_Absolute(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative entries only", func(t *testing.T) {
		t.Parallel()

		pl := NewPathList("rel.txt", "/abs/keep.txt")
		out, err := pl.Absolute("/base")
		if err != nil {
			t.Fatalf("Absolute() error = %v", err)
		}
		want := []string{filepath.Join("/base", "rel.txt"), "/abs/keep.txt"}
		if got := out.Names(); got[0] != want[0] || got[1] != want[1] {
			t.Errorf("Absolute() = %v, want %v", got, want)
		}
	})

	t.Run("rejects relative base", func(t *testing.T) {
		t.Parallel()

		_, err := NewPathList("x").Absolute("relative/base")
		if !errors.Is(err, fspath.ErrNotAbsolute) {
			t.Fatalf("Absolute() error = %v, want ErrNotAbsolute", err)
		}
	})
}

func TestFilesExist(t *testing.T) {
	t.Parallel()

	t.Run("all present", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := filepath.Join(dir, "a.txt")
		b := filepath.Join(dir, "b.txt")
		touch(t, a)
		touch(t, b)

		ok, err := FilesExist(NewPathList(a, b), ActionFail, DoOptions{})
		if err != nil || !ok {
			t.Fatalf("FilesExist() = %v, %v; want true, nil", ok, err)
		}
	})

	t.Run("missing files reported with positions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		dir := t.TempDir()
		a := filepath.Join(dir, "a.txt")
		touch(t, a)
		ghost := filepath.Join(dir, "ghost.txt")

		ok, err := FilesExist(NewPathList(a, ghost, a), ActionWarn, DoOptions{Logger: quietLogger(&buf)})
		if err != nil {
			t.Fatalf("FilesExist() error = %v", err)
		}
		if ok {
			t.Error("FilesExist() = true, want false")
		}
		if got := buf.String(); !strings.Contains(got, "(2 of 3 in total) is not found") {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("fail collects all missing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		g1 := filepath.Join(dir, "g1.txt")
		g2 := filepath.Join(dir, "g2.txt")

		_, err := FilesExist(NewPathList(g1, g2), ActionFail, DoOptions{})
		if !errors.Is(err, ErrFilesMissing) {
			t.Fatalf("FilesExist() error = %v, want ErrFilesMissing", err)
		}
		var fm *FilesMissingError
		if !errors.As(err, &fm) || len(fm.Missing) != 2 {
			t.Errorf("error does not carry both missing paths: %v", err)
		}
	})
}

func TestReadFileList(t *testing.T) {
	t.Parallel()

	t.Run("comments and blanks skipped", func(t *testing.T) {
		t.Parallel()

		list := filepath.Join(t.TempDir(), "files.lst")
		content := "# inputs\na.txt\n\nsub/b.txt # trailing note\n/abs/c.txt\n"
		if err := os.WriteFile(list, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		pl, err := ReadFileList(fspath.FilePath(list))
		if err != nil {
			t.Fatalf("ReadFileList() error = %v", err)
		}
		want := []string{"a.txt", "sub/b.txt", "/abs/c.txt"}
		got := pl.Names()
		if len(got) != len(want) {
			t.Fatalf("ReadFileList() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("embedded space is a bad entry", func(t *testing.T) {
		t.Parallel()

		list := filepath.Join(t.TempDir(), "files.lst")
		if err := os.WriteFile(list, []byte("good.txt\nbad name.txt\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := ReadFileList(fspath.FilePath(list))
		if !errors.Is(err, ErrBadListEntry) {
			t.Fatalf("ReadFileList() error = %v, want ErrBadListEntry", err)
		}
		var bad *BadListEntryError
		if !errors.As(err, &bad) || bad.Line != 2 {
			t.Errorf("error does not carry line number: %v", err)
		}
	})
}

func TestFilesListedExist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.txt"))
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(sub, "b.txt"))

	list := filepath.Join(dir, "files.lst")
	if err := os.WriteFile(list, []byte("a.txt\nsub/b.txt\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ok, err := FilesListedExist(fspath.FilePath(list), ActionFail, DoOptions{})
	if err != nil {
		t.Fatalf("FilesListedExist() error = %v", err)
	}
	if !ok {
		t.Error("FilesListedExist() = false, want true")
	}

	// Entries resolve against the list file's directory, not the cwd.
	elsewhere := filepath.Join(t.TempDir(), "files.lst")
	if err := os.WriteFile(elsewhere, []byte("a.txt\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = FilesListedExist(fspath.FilePath(elsewhere), ActionFail, DoOptions{})
	if !errors.Is(err, ErrFilesMissing) {
		t.Fatalf("FilesListedExist() error = %v, want ErrFilesMissing", err)
	}
}
