package viewer

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener implements ports.Viewer
type Opener struct{}

// NewOpener creates a new viewer opener
func NewOpener() *Opener {
	return &Opener{}
}

// OpenFile hands a file to the system's default viewer
func (o *Opener) OpenFile(path string) error {
	name, args, err := openCommand(runtime.GOOS, path)
	if err != nil {
		return err
	}

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	// Some openers block until the viewer exits; reap in the background so
	// the caller never waits on it.
	go cmd.Wait()

	return nil
}

// openCommand returns the platform command that opens a file with its
// default application
func openCommand(goos, path string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{path}, nil
	case "linux":
		return "xdg-open", []string{path}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", path}, nil
	default:
		return "", nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
