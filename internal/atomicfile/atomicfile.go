// Package atomicfile replaces files so that readers see either the old
// content or the new content, never a torn write.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFunc writes data to path. WriteFile is the default; tests substitute
// failing writers.
type WriteFunc func(path string, data []byte, perm os.FileMode) error

// WriteFile writes data to path through a temp file in the same directory
// and renames it into place.
//
// If perm is 0 the existing file's mode is preserved, falling back to 0644.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = existingMode(path)
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Renaming over an existing file fails on Windows.
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}

	committed = true
	return nil
}

func existingMode(path string) os.FileMode {
	if st, err := os.Stat(path); err == nil {
		return st.Mode().Perm()
	}
	return 0o644
}

// BackupSuffix is appended to a file's name to form its backup path.
const BackupSuffix = ".bak"

// Guard holds a backup of a file for the duration of one write. Exactly one
// of Commit or Restore ends it.
type Guard struct {
	path        string
	backup      string
	perm        os.FileMode
	hadOriginal bool
	keepBackup  bool
	done        bool
}

// Begin snapshots path into its backup file. A missing path is not an error;
// restoring then removes whatever was written.
func Begin(path string, keepBackup bool) (*Guard, error) {
	g := &Guard{
		path:       path,
		backup:     path + BackupSuffix,
		perm:       existingMode(path),
		keepBackup: keepBackup,
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := WriteFile(g.backup, data, g.perm); err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		g.hadOriginal = true
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read original: %w", err)
	}
	return g, nil
}

// BackupPath returns the path of the backup file.
func (g *Guard) BackupPath() string { return g.backup }

// Commit ends the guard after a successful write, dropping the backup unless
// it is kept.
func (g *Guard) Commit() error {
	if g.done {
		return nil
	}
	g.done = true
	if !g.hadOriginal || g.keepBackup {
		return nil
	}
	if err := os.Remove(g.backup); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove backup: %w", err)
	}
	return nil
}

// Restore puts the original content back after a failed write.
func (g *Guard) Restore() error {
	if g.done {
		return nil
	}
	g.done = true
	if !g.hadOriginal {
		if err := os.Remove(g.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove partial file: %w", err)
		}
		return nil
	}
	if err := os.Rename(g.backup, g.path); err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}
	return nil
}

// Options configures Replace.
type Options struct {
	// KeepBackup leaves the previous version next to the file.
	KeepBackup bool
	// Write performs the actual write; nil means WriteFile.
	Write WriteFunc
}

// Replace writes data to path under a Guard: backup, write, then commit, or
// restore the original if the write fails.
func Replace(path string, data []byte, opts Options) error {
	write := opts.Write
	if write == nil {
		write = WriteFile
	}

	g, err := Begin(path, opts.KeepBackup)
	if err != nil {
		return err
	}

	if err := write(path, data, g.perm); err != nil {
		if rerr := g.Restore(); rerr != nil {
			return fmt.Errorf("%w (restore failed: %v)", err, rerr)
		}
		return err
	}
	return g.Commit()
}
