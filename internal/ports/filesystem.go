package ports

import "time"

// FileSystem defines the filesystem operations the rename engine needs.
// Move failures must propagate; the timestamp setters may fail freely and
// callers are expected to swallow those errors.
type FileSystem interface {
	// Move relocates a file. The target must not be silently overwritten.
	Move(src, dst string) error

	// Exists reports whether a path is present.
	Exists(path string) bool

	// Timestamp operations
	SetCreationTime(path string, t time.Time) error
	SetLastWriteTime(path string, t time.Time) error
	GetCreationTime(path string) (time.Time, error)

	// ListFiles returns the names of regular files directly inside dir.
	ListFiles(dir string) ([]string, error)
}
