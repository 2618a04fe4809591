package exiftool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"shoebox/internal/domain"
)

const binaryName = "exiftool"

// Reader implements ports.MetadataReader by shelling out to the exiftool
// binary, one process per file. exiftool reads every format the library
// cares about and already renders human-readable values, so its output is
// taken as the description of each tag.
type Reader struct {
	binary string
}

// Available reports whether the exiftool binary is on the PATH.
func Available() bool {
	_, err := exec.LookPath(binaryName)
	return err == nil
}

// NewReader locates the exiftool binary
func NewReader() (*Reader, error) {
	binary, err := exec.LookPath(binaryName)
	if err != nil {
		return nil, fmt.Errorf("exiftool not found: %w", err)
	}
	return &Reader{binary: binary}, nil
}

// ReadMetadata runs exiftool on one file and buckets the flat tag list it
// prints into named metadata sections.
func (r *Reader) ReadMetadata(ctx context.Context, path string) ([]domain.MetadataSection, error) {
	cmd := exec.CommandContext(ctx, r.binary, "-G1", "-j", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("exiftool failed on %s: %w", path, err)
		}
		return nil, fmt.Errorf("exiftool failed on %s: %s: %w", path, msg, err)
	}

	var objects []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &objects); err != nil {
		return nil, fmt.Errorf("failed to decode exiftool output for %s: %w", path, err)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("exiftool produced no output for %s", path)
	}

	tags := objects[0]
	if msg, ok := tags["ExifTool:Error"].(string); ok {
		return nil, fmt.Errorf("exiftool cannot read %s: %s", path, msg)
	}

	return bucketSections(tags), nil
}

// Close is a no-op; every read spawns its own process.
func (r *Reader) Close() error {
	return nil
}
