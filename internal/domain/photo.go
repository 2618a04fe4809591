package domain

import (
	"slices"
	"strings"
	"time"
)

// Photo identifies one media file and the metadata derived for it.
// Label and dates are written once during indexing; the rename engine
// mutates the filesystem, never the Photo.
type Photo struct {
	Path       string // relative to the scanned folder, e.g. "IMG_0042.jpg"
	Label      string // derived from embedded metadata; empty when none found
	TakenAt    *time.Time
	ModifiedAt *time.Time
}

// HasLabel reports whether the photo carries a usable (non-blank) label.
func (p Photo) HasLabel() bool {
	return strings.TrimSpace(p.Label) != ""
}

// ApplyDerivation copies a derivation onto the photo.
func (p *Photo) ApplyDerivation(d Derivation) {
	p.Label = d.Label
	p.TakenAt = d.TakenAt
	p.ModifiedAt = d.ModifiedAt
}

// FileEntry describes one media file found by a directory scan.
type FileEntry struct {
	Path    string // file name relative to the scanned folder
	Size    int64
	ModTime time.Time
}

// Derivation is the outcome of deriving a label and dates from one file's
// metadata sections. It is also the value cached per file.
type Derivation struct {
	Label      string
	TakenAt    *time.Time
	ModifiedAt *time.Time
}

// RenamingResult summarizes a rename batch.
type RenamingResult struct {
	TotalFiles   int      // photos entering the batch, i.e. with a non-blank label
	FilesRenamed int      // files actually moved; no-op renames excluded
	Errors       []string // one message per failed item, unordered
}

// SortPhotosByPath sorts photos by path in ascending order
func SortPhotosByPath(photos []Photo) {
	slices.SortFunc(photos, func(a, b Photo) int {
		return strings.Compare(a.Path, b.Path)
	})
}
