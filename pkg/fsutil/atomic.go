package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for files created without a mode.
const DefaultFileMode os.FileMode = 0o644

// BackupSuffix is appended to a file path to form its sidecar backup.
const BackupSuffix = ".depexport.bak"

// WriteAtomic writes content to path through a temp file in the same
// directory followed by a rename. On error the temp file is removed and
// path is left untouched. A zero mode means DefaultFileMode.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
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
	if err := os.Chmod(tmpPath, mode.Perm()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// WriteOptions controls WritePatched.
type WriteOptions struct {
	// Backup writes the snapshot content to a sidecar backup first.
	// An existing backup is never overwritten.
	Backup bool
}

// WriteResult describes what WritePatched did.
type WriteResult struct {
	Written    bool
	BackupPath string
}

// WritePatched replaces the snapshotted file with content. Nothing is
// written when content equals the snapshot. The write is refused with
// ErrConcurrentModification if the file changed since it was read.
func WritePatched(ctx context.Context, snap *Snapshot, content []byte, opts WriteOptions) (WriteResult, error) {
	var result WriteResult

	if bytes.Equal(snap.Content, content) {
		return result, nil
	}

	changed, err := snap.Changed()
	if err != nil {
		return result, err
	}
	if changed {
		return result, fmt.Errorf("%w: %s", ErrConcurrentModification, snap.Path)
	}

	if opts.Backup {
		backupPath := snap.Path + BackupSuffix
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			if err := WriteAtomic(ctx, backupPath, snap.Content, snap.Mode); err != nil {
				return result, fmt.Errorf("write backup: %w", err)
			}
			result.BackupPath = backupPath
		} else if err != nil {
			return result, fmt.Errorf("stat backup: %w", err)
		}
	}

	if err := WriteAtomic(ctx, snap.Path, content, snap.Mode); err != nil {
		return result, err
	}

	result.Written = true
	return result, nil
}
