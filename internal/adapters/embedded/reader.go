package embedded

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shoebox/internal/domain"
)

// Reader implements ports.MetadataReader with pure-Go parsers, covering the
// common formats when the exiftool binary is not installed: EXIF for JPEG
// and TIFF, the movie header for QuickTime containers and the HEIC date
// tags. Files it cannot parse yield no sections rather than an error, the
// same as a camera file that simply carries no metadata.
type Reader struct{}

// NewReader creates a new embedded Reader
func NewReader() *Reader {
	return &Reader{}
}

// ReadMetadata parses one file based on its extension.
func (r *Reader) ReadMetadata(ctx context.Context, path string) ([]domain.MetadataSection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".tif", ".tiff":
		return exifSections(f), nil
	case ".mp4", ".mov", ".m4v", ".3gp":
		return movieSections(f), nil
	case ".heic", ".heif", ".hif":
		return heicSections(f), nil
	default:
		return nil, nil
	}
}

// Close is a no-op
func (r *Reader) Close() error {
	return nil
}
