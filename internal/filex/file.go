// Package filex holds small filesystem helpers used by the flat-file store.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// tempDir is a seam for tests.
var tempDir = os.TempDir

// IsDirWritable reports whether a file can be created inside dir.
func IsDirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// ResolveWritablePath returns name relative to the working directory when
// that directory is writable, otherwise the same name inside the OS temp
// directory. Absolute names are returned unchanged.
func ResolveWritablePath(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, filepath.Dir(name))
	if IsDirWritable(dir) {
		return filepath.Join(cwd, name), nil
	}

	return filepath.Join(tempDir(), filepath.Base(name)), nil
}

// WriteFileAtomic writes data to a temp file next to path and renames it over
// path, so readers see either the old or the new content.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmp, perm); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
