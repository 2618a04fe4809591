package commands

import (
	"context"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"shoebox/internal/application"
	"shoebox/internal/domain"
	"shoebox/internal/ports"
)

// RenameFolderCommand renames every labeled photo in a folder to its
// metadata-derived name, ordered chronologically. Unlabeled photos are
// filtered out before dispatch; one item's failure never aborts the rest.
type RenameFolderCommand struct {
	fs       ports.FileSystem
	gate     *application.Gate
	BasePath string
	Photos   []domain.Photo
	Options  RenameOptions
}

// NewRenameFolderCommand creates a new RenameFolderCommand
func NewRenameFolderCommand(fs ports.FileSystem, gate *application.Gate, basePath string, photos []domain.Photo, opts RenameOptions) *RenameFolderCommand {
	return &RenameFolderCommand{
		fs:       fs,
		gate:     gate,
		BasePath: basePath,
		Photos:   photos,
		Options:  opts,
	}
}

// Validate checks if the batch is runnable
func (c *RenameFolderCommand) Validate() error {
	return application.ValidateRequired("basePath", c.BasePath)
}

// Execute runs the batch. The returned result always reflects every item
// that completed; only cancellation or invalid input fail the call itself.
func (c *RenameFolderCommand) Execute(ctx context.Context) (*domain.RenamingResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	labeled := make([]domain.Photo, 0, len(c.Photos))
	for _, p := range c.Photos {
		if p.HasLabel() {
			labeled = append(labeled, p)
		}
	}
	c.sortChronologically(labeled)

	result := &domain.RenamingResult{TotalFiles: len(labeled)}
	claims := application.NewClaimSet()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for i := range labeled {
		if err := c.gate.Acquire(ctx); err != nil {
			wg.Wait()
			return result, err
		}
		wg.Add(1)
		// Ordinals come from the date-sorted position, fixed before
		// dispatch; completion order must not influence them.
		go func(ordinal int, photo domain.Photo) {
			defer wg.Done()
			defer c.gate.Release()

			renamed, _, err := renamePhoto(c.fs, claims, c.BasePath, photo, ordinal, len(labeled), c.Options)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.Errors = append(result.Errors, err.Error())
			case renamed:
				result.FilesRenamed++
			}
		}(i+1, labeled[i])
	}
	wg.Wait()

	return result, nil
}

// Plan computes the renames Execute would attempt without moving anything.
// Entries come back in chronological order; duplicate labels within the
// batch get their index bumped exactly as the real run would, but targets
// already taken on disk by unrelated files are not probed.
func (c *RenameFolderCommand) Plan() ([]RenamePhotoResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	labeled := make([]domain.Photo, 0, len(c.Photos))
	for _, p := range c.Photos {
		if p.HasLabel() {
			labeled = append(labeled, p)
		}
	}
	c.sortChronologically(labeled)

	plan := make([]RenamePhotoResult, 0, len(labeled))
	taken := make(map[string]bool, len(labeled))
	for i, photo := range labeled {
		current := filepath.Join(c.BasePath, photo.Path)
		nameOpts := domain.NameOptions{
			Ordinal:       i + 1,
			Total:         len(labeled),
			AddSortPrefix: c.Options.AddSortPrefix,
			Extension:     filepath.Ext(photo.Path),
			MaxLength:     c.Options.MaxNameLength,
		}
		for n := 0; ; n++ {
			nameOpts.DuplicateIndex = n
			target, err := domain.CandidatePath(c.BasePath, photo.Label, nameOpts)
			if err != nil {
				return nil, err
			}
			if taken[target] {
				continue
			}
			taken[target] = true
			plan = append(plan, RenamePhotoResult{
				OldPath: current,
				NewPath: target,
				Renamed: target != current,
			})
			break
		}
	}
	return plan, nil
}

// sortChronologically orders photos by taken date ascending, falling back
// to the file's creation time, keeping the original order on ties.
func (c *RenameFolderCommand) sortChronologically(photos []domain.Photo) {
	keys := make(map[string]time.Time, len(photos))
	for _, p := range photos {
		keys[p.Path] = c.sortTime(p)
	}
	slices.SortStableFunc(photos, func(a, b domain.Photo) int {
		return keys[a.Path].Compare(keys[b.Path])
	})
}

func (c *RenameFolderCommand) sortTime(p domain.Photo) time.Time {
	if p.TakenAt != nil {
		return *p.TakenAt
	}
	if t, err := c.fs.GetCreationTime(filepath.Join(c.BasePath, p.Path)); err == nil {
		return t
	}
	return time.Time{}
}
