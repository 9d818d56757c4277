// Package fs provides a file system based settings source.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/yacchi/kasane/source"
)

type tempFile interface {
	Write(p []byte) (n int, err error)
	Sync() error
	Close() error
	Name() string
}

var (
	userHomeDir  = os.UserHomeDir
	osReadFile   = os.ReadFile
	osStat       = os.Stat
	osChmod      = os.Chmod
	osRename     = os.Rename
	osRemove     = os.Remove
	evalSymlinks = filepath.EvalSymlinks

	createTemp = func(dir, pattern string) (tempFile, error) {
		return os.CreateTemp(dir, pattern)
	}
)

// tempPattern names the temporary file written next to the target on Save.
const tempPattern = ".kasane-*.tmp"

// Source loads and saves the raw content of a single file.
type Source struct {
	path string
}

// Ensure Source implements the source.Source interface.
var _ source.Source = (*Source)(nil)

// New creates a source that reads from and writes to the file at path.
// The path can be absolute or relative. Tilde (~) expansion is supported.
//
// Example:
//
//	src := fs.New("~/.config/app/settings.yml")
//	src := fs.New("settings.yml")
func New(path string) *Source {
	return &Source{path: path}
}

// Path returns the path as given to New.
func (s *Source) Path() string {
	return s.path
}

// Load implements the source.Source interface. It reads the whole file.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := expandTilde(s.path)
	if err != nil {
		return nil, err
	}

	data, err := osReadFile(path)
	if err != nil {
		return nil, oops.
			In("fs").
			With("path", s.path).
			Wrapf(err, "failed to read file %q", s.path)
	}
	return data, nil
}

// Save implements the source.Source interface.
//
// The current content is read from disk right before updateFunc is called.
// The file must already exist. Symlinks are resolved so the link itself is
// kept and its target is replaced. The new content is written to a temporary
// file in the same directory, synced and renamed over the target, carrying
// over the target's permission bits.
func (s *Source) Save(ctx context.Context, updateFunc source.UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := expandTilde(s.path)
	if err != nil {
		return err
	}

	errb := oops.In("fs").With("path", s.path)

	target, err := evalSymlinks(path)
	if err != nil {
		return errb.Wrapf(err, "failed to resolve file %q", s.path)
	}

	info, err := osStat(target)
	if err != nil {
		return errb.Wrapf(err, "failed to stat file %q", s.path)
	}

	current, err := osReadFile(target)
	if err != nil {
		return errb.Wrapf(err, "failed to read file %q", s.path)
	}

	newData, err := updateFunc(current)
	if err != nil {
		return err
	}

	dir := filepath.Dir(target)
	tmpFile, err := createTemp(dir, tempPattern)
	if err != nil {
		return errb.Wrapf(err, "failed to create temporary file")
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			osRemove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(newData); err != nil {
		tmpFile.Close()
		return errb.Wrapf(err, "failed to write to temporary file")
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return errb.Wrapf(err, "failed to sync temporary file")
	}

	if err := tmpFile.Close(); err != nil {
		return errb.Wrapf(err, "failed to close temporary file")
	}

	if err := osChmod(tmpPath, info.Mode().Perm()); err != nil {
		return errb.Wrapf(err, "failed to set file permissions")
	}

	if err := osRename(tmpPath, target); err != nil {
		return errb.Wrapf(err, "failed to rename temporary file to %q", target)
	}

	success = true
	return nil
}

// expandTilde expands tilde (~) in the path.
// Handles both "~" (home directory) and "~/path" (path under home).
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := userHomeDir()
	if err != nil {
		return "", oops.
			In("fs").
			With("path", path).
			Wrapf(err, "failed to expand home directory")
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// "~something" is not a home expansion.
	return path, nil
}
