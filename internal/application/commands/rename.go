package commands

import (
	"context"
	"log/slog"
	"path/filepath"

	"shoebox/internal/application"
	"shoebox/internal/domain"
	"shoebox/internal/ports"
)

// RenameOptions carries the knobs shared by single and batch renames.
type RenameOptions struct {
	AddSortPrefix bool
	MaxNameLength int // 0 means domain.DefaultMaxFileNameLength
}

// RenamePhotoResult contains the result of renaming one photo
type RenamePhotoResult struct {
	OldPath string
	NewPath string
	Renamed bool // false when the name was already correct
}

// RenamePhotoCommand renames a single labeled photo to its derived name
type RenamePhotoCommand struct {
	fs       ports.FileSystem
	BasePath string
	Photo    domain.Photo
	Ordinal  int // 1-based position used for the sort prefix
	Total    int
	Options  RenameOptions
}

// NewRenamePhotoCommand creates a new RenamePhotoCommand
func NewRenamePhotoCommand(fs ports.FileSystem, basePath string, photo domain.Photo, ordinal, total int, opts RenameOptions) *RenamePhotoCommand {
	return &RenamePhotoCommand{
		fs:       fs,
		BasePath: basePath,
		Photo:    photo,
		Ordinal:  ordinal,
		Total:    total,
		Options:  opts,
	}
}

// Validate checks if the rename operation is valid
func (c *RenamePhotoCommand) Validate() error {
	if err := application.ValidateRequired("basePath", c.BasePath); err != nil {
		return err
	}
	if err := application.ValidateRequired("path", c.Photo.Path); err != nil {
		return err
	}
	if err := application.ValidatePositive("ordinal", c.Ordinal); err != nil {
		return err
	}
	if err := application.ValidatePositive("total", c.Total); err != nil {
		return err
	}
	return nil
}

// Execute runs the rename command
func (c *RenamePhotoCommand) Execute(ctx context.Context) (*RenamePhotoResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	renamed, newPath, err := renamePhoto(c.fs, application.NewClaimSet(), c.BasePath, c.Photo, c.Ordinal, c.Total, c.Options)
	if err != nil {
		return nil, err
	}
	return &RenamePhotoResult{
		OldPath: filepath.Join(c.BasePath, c.Photo.Path),
		NewPath: newPath,
		Renamed: renamed,
	}, nil
}

// renamePhoto synthesizes the candidate name for a photo, probes for a free
// target, moves the file and restores its timestamps. The claim set
// serializes target selection against concurrent items so two photos with
// identical labels can never take the same path. Returns whether a move
// actually happened and the final path.
func renamePhoto(fs ports.FileSystem, claims *application.ClaimSet, basePath string, photo domain.Photo, ordinal, total int, opts RenameOptions) (bool, string, error) {
	if !photo.HasLabel() {
		return false, "", application.ErrLabelMissing
	}

	current := filepath.Join(basePath, photo.Path)
	nameOpts := domain.NameOptions{
		Ordinal:       ordinal,
		Total:         total,
		AddSortPrefix: opts.AddSortPrefix,
		Extension:     filepath.Ext(photo.Path),
		MaxLength:     opts.MaxNameLength,
	}

	for n := 0; ; n++ {
		nameOpts.DuplicateIndex = n
		target, err := domain.CandidatePath(basePath, photo.Label, nameOpts)
		if err != nil {
			return false, "", err
		}
		if n == 0 && target == current {
			// Already correctly named; the timestamps are still re-applied.
			restoreTimestamps(fs, current, photo)
			return false, current, nil
		}
		if !claims.Claim(target) {
			continue
		}
		if fs.Exists(target) {
			// Taken on disk; the claim is kept so siblings skip the probe.
			continue
		}
		if err := fs.Move(current, target); err != nil {
			claims.Release(target)
			return false, "", &application.MoveError{Source: current, Target: target, Err: err}
		}
		restoreTimestamps(fs, target, photo)
		return true, target, nil
	}
}

// restoreTimestamps re-applies the derived dates to the file: the taken
// date as creation time, the modified date (or taken date) as last-write
// time. Failures never fail the rename.
func restoreTimestamps(fs ports.FileSystem, path string, photo domain.Photo) {
	if photo.TakenAt != nil {
		if err := fs.SetCreationTime(path, *photo.TakenAt); err != nil {
			slog.Debug("creation time not restored", slog.String("path", path), slog.Any("error", err))
		}
	}
	writeTime := photo.ModifiedAt
	if writeTime == nil {
		writeTime = photo.TakenAt
	}
	if writeTime != nil {
		if err := fs.SetLastWriteTime(path, *writeTime); err != nil {
			slog.Debug("write time not restored", slog.String("path", path), slog.Any("error", err))
		}
	}
}
