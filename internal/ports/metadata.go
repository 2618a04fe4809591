package ports

import (
	"context"

	"shoebox/internal/domain"
)

// MetadataReader defines the interface for extracting embedded metadata
// from a media file. A failed read means "no metadata for this file" to the
// indexer, never a fatal condition.
type MetadataReader interface {
	ReadMetadata(ctx context.Context, path string) ([]domain.MetadataSection, error)

	// Close releases any resources held by the reader (spawned processes,
	// open handles). Safe to call more than once.
	Close() error
}
