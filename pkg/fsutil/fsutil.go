// Package fsutil provides the file safety primitives depexport uses when
// writing patched entry files: snapshots, modification checks, sidecar
// backups, and atomic writes.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	ErrNotFound               = errors.New("file not found")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrIsDirectory            = errors.New("path is a directory")
	ErrConcurrentModification = errors.New("file changed since it was read")
)

// Snapshot captures the state of a file when it was read.
// Patches are computed against Content; Changed tells whether the file on
// disk still matches before the patched text is written back.
type Snapshot struct {
	Path    string
	Content []byte
	Mode    os.FileMode
	ModTime time.Time
	Hash    [32]byte
}

// ReadSnapshot reads path and records its metadata.
func ReadSnapshot(ctx context.Context, path string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(path, err)
	}

	return &Snapshot{
		Path:    path,
		Content: content,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// Changed reports whether the file differs from the snapshot. A missing
// file counts as changed. Size and mod time are compared first; the content
// hash decides when they match.
func (s *Snapshot) Changed() (bool, error) {
	stat, err := os.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", s.Path, err)
	}

	if !stat.ModTime().Equal(s.ModTime) || stat.Size() != int64(len(s.Content)) {
		return true, nil
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return sha256.Sum256(content) != s.Hash, nil
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
