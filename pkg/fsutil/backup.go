package fsutil

import (
	"context"
	"fmt"
	"os"
)

// DefaultBackupSuffix is appended to the original path to name its backup.
const DefaultBackupSuffix = ".linewidth.bak"

// BackupConfig controls sidecar backups written before a file is rewritten.
type BackupConfig struct {
	Enabled bool

	// Suffix overrides DefaultBackupSuffix.
	Suffix string
}

// PathFor returns the backup path for path.
func (c BackupConfig) PathFor(path string) string {
	if c.Suffix == "" {
		return path + DefaultBackupSuffix
	}
	return path + c.Suffix
}

// CreateBackup copies path to its sidecar. An existing backup is never
// overwritten, so repeated runs keep the oldest content. It returns true
// when a backup was written.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	backupPath := cfg.PathFor(path)
	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup: %w", err)
	}

	content, snap, err := ReadFile(ctx, path)
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, snap.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup writes the sidecar back over path and removes it. It returns
// false when there is no backup.
func RestoreBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	backupPath := cfg.PathFor(path)

	content, snap, err := ReadFile(ctx, backupPath)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("read backup: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, snap.Mode); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	if err := os.Remove(backupPath); err != nil {
		return true, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}
