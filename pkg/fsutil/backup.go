package fsutil

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// BackupSuffix is appended to a path to name its sidecar backup.
const BackupSuffix = ".bak"

// BackupPath returns the sidecar backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup copies path to its sidecar backup, keeping the file mode.
// It returns true if a backup was written. A missing original is not an
// error, and an existing backup is never overwritten so repeated runs keep
// the oldest content.
func CreateBackup(ctx context.Context, fs afero.Fs, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	backupPath := BackupPath(path)
	exists, err := afero.Exists(fs, backupPath)
	if err != nil {
		return false, fmt.Errorf("stat backup path: %w", err)
	}
	if exists {
		return false, nil
	}

	stat, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat original for backup: %w", err)
	}

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, fs, backupPath, content, stat.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}

	return true, nil
}

// RestoreBackup writes the sidecar backup of path back over path and
// removes the backup. It returns false if there was no backup.
func RestoreBackup(ctx context.Context, fs afero.Fs, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("restore backup: %w", err)
	}

	backupPath := BackupPath(path)

	stat, err := fs.Stat(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat backup: %w", err)
	}

	content, err := afero.ReadFile(fs, backupPath)
	if err != nil {
		return false, fmt.Errorf("read backup: %w", err)
	}

	if err := WriteAtomic(ctx, fs, path, content, stat.Mode().Perm()); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}

	if err := fs.Remove(backupPath); err != nil {
		return true, fmt.Errorf("remove backup: %w", err)
	}

	return true, nil
}
