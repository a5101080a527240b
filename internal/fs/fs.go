// Package fs defines the filesystem abstraction used by tempsweep.
// It provides the FS interface and the FileInfo type shared across the system.
package fs

import (
	"os"
	"time"
)

type FileInfo struct {
	Path  string
	Size  int64
	MTime time.Time
	ATime time.Time
	IsDir bool
}

// FS is the subset of filesystem operations the sweep needs.
// Stat does not follow symlinks.
type FS interface {
	Stat(path string) (FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
	Remove(path string) error
}
