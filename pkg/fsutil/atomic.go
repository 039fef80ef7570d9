// Package fsutil provides safe file writes on an afero filesystem: atomic
// replacement through a temp file and rename, and sidecar backups.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultFileMode is the default permission mode for newly created files.
const DefaultFileMode os.FileMode = 0o644

// ErrIsDirectory indicates the path is a directory, not a file.
var ErrIsDirectory = errors.New("path is a directory")

// WriteAtomic writes content to path through a temp file in the same
// directory and a rename, so readers never observe a partial file. If mode
// is 0, DefaultFileMode is used. On error the target is left untouched.
func WriteAtomic(ctx context.Context, fs afero.Fs, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	if isDir, err := afero.IsDir(fs, path); err == nil && isDir {
		return fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	tmp, err := afero.TempFile(fs, filepath.Dir(path), filepath.Base(path)+".tmp.")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = fs.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := fs.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}
