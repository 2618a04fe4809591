package ports

import (
	"time"

	"shoebox/internal/domain"
)

// MetadataCache defines the interface for persisting derivations between
// runs, keyed by (path, size, mtime) so any file change invalidates the
// entry.
type MetadataCache interface {
	// Lookup returns the cached derivation, or nil on a miss.
	Lookup(path string, size int64, modTime time.Time) (*domain.Derivation, error)

	// Store saves a derivation for the given file signature.
	Store(path string, size int64, modTime time.Time, d domain.Derivation) error

	// Prune deletes entries cached before the cutoff, returning how many
	// rows were removed.
	Prune(olderThan time.Time) (int64, error)

	// Clear drops every cached entry.
	Clear() error

	Close() error
}
