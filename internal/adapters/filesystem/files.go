package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// Files implements ports.FileSystem on the local disk.
type Files struct{}

// NewFiles creates a new Files adapter
func NewFiles() *Files {
	return &Files{}
}

// Move renames src to dst. When the paths live on different devices the
// rename fails with EXDEV and the file is copied over instead.
func (f *Files) Move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	return copyAcrossDevices(src, dst)
}

// copyAcrossDevices copies src into a uniquely named temporary file next
// to dst, renames it into place and removes the source. A partial copy
// never appears under the final name.
func copyAcrossDevices(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".tmp-" + uuid.New().String()
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	// Carry the write time over; the caller restores metadata dates
	// afterwards when it has them.
	os.Chtimes(tmp, info.ModTime(), info.ModTime())

	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Remove(src)
}

// Exists reports whether path exists
func (f *Files) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// SetCreationTime reports the birth time as unwritable. Unix filesystems
// keep no settable creation stamp; callers treat the error as advisory.
func (f *Files) SetCreationTime(path string, t time.Time) error {
	return fmt.Errorf("creation time of %s: %w", path, errors.ErrUnsupported)
}

// SetLastWriteTime sets the modification time of path
func (f *Files) SetLastWriteTime(path string, t time.Time) error {
	return os.Chtimes(path, t, t)
}

// GetCreationTime returns the closest available stand-in for the file's
// creation time. os.Stat exposes no birth time, so the modification time
// is used.
func (f *Files) GetCreationTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// ListFiles returns the names of regular files directly inside dir
func (f *Files) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
