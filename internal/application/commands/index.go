package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"shoebox/internal/application"
	"shoebox/internal/domain"
	"shoebox/internal/ports"
)

// IndexResult contains the photos derived for one folder
type IndexResult struct {
	Photos     []domain.Photo
	FromCache  int      // derivations served from the metadata cache
	Unreadable int      // files whose metadata could not be read at all
	Errors     []string // per-file derivation failures, unordered
}

// IndexFolderCommand lists the media files of a folder and derives a label
// and dates for each, fanning the per-file work out through the gate.
type IndexFolderCommand struct {
	library ports.Library
	reader  ports.MetadataReader
	cache   ports.MetadataCache // may be nil
	gate    *application.Gate
	Dir     string

	// OnProgress, when set, is called after each file completes.
	OnProgress func(done, total int)
}

// NewIndexFolderCommand creates a new IndexFolderCommand
func NewIndexFolderCommand(library ports.Library, reader ports.MetadataReader, cache ports.MetadataCache, gate *application.Gate, dir string) *IndexFolderCommand {
	return &IndexFolderCommand{
		library: library,
		reader:  reader,
		cache:   cache,
		gate:    gate,
		Dir:     dir,
	}
}

// Validate checks if the index operation is valid
func (c *IndexFolderCommand) Validate() error {
	return application.ValidateRequired("dir", c.Dir)
}

// Execute runs the indexing
func (c *IndexFolderCommand) Execute(ctx context.Context) (*IndexResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	entries, err := c.library.ListMediaFiles(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list media files: %w", err)
	}

	result := &IndexResult{Photos: make([]domain.Photo, 0, len(entries))}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		done int
	)
	for _, entry := range entries {
		if err := c.gate.Acquire(ctx); err != nil {
			wg.Wait()
			return result, err
		}
		wg.Add(1)
		go func(entry domain.FileEntry) {
			defer wg.Done()
			defer c.gate.Release()

			indexed := c.indexOne(ctx, entry)

			mu.Lock()
			defer mu.Unlock()
			result.Photos = append(result.Photos, indexed.photo)
			if indexed.fromCache {
				result.FromCache++
			}
			if indexed.unreadable {
				result.Unreadable++
			}
			if indexed.err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", entry.Path, indexed.err))
			}
			done++
			if c.OnProgress != nil {
				c.OnProgress(done, len(entries))
			}
		}(entry)
	}
	wg.Wait()

	domain.SortPhotosByPath(result.Photos)
	return result, nil
}

type indexedFile struct {
	photo      domain.Photo
	fromCache  bool
	unreadable bool
	err        error
}

// indexOne derives one file, checking the cache first. A failed metadata
// read yields an unlabeled, undated photo; an ambiguous section layout is
// a per-file error.
func (c *IndexFolderCommand) indexOne(ctx context.Context, entry domain.FileEntry) indexedFile {
	photo := domain.Photo{Path: entry.Path}
	full := filepath.Join(c.Dir, entry.Path)

	if c.cache != nil {
		d, err := c.cache.Lookup(full, entry.Size, entry.ModTime)
		if err != nil {
			slog.Debug("cache lookup failed", slog.String("path", full), slog.Any("error", err))
		} else if d != nil {
			photo.ApplyDerivation(*d)
			return indexedFile{photo: photo, fromCache: true}
		}
	}

	sections, err := c.reader.ReadMetadata(ctx, full)
	if err != nil {
		slog.Debug("metadata unreadable", slog.String("path", full), slog.Any("error", err))
		return indexedFile{photo: photo, unreadable: true}
	}

	d, err := domain.Derive(sections)
	if err != nil {
		return indexedFile{photo: photo, err: err}
	}
	photo.ApplyDerivation(d)

	if c.cache != nil {
		if err := c.cache.Store(full, entry.Size, entry.ModTime, d); err != nil {
			slog.Debug("cache store failed", slog.String("path", full), slog.Any("error", err))
		}
	}
	return indexedFile{photo: photo}
}
