package ports

import "shoebox/internal/domain"

// Library defines the interface for walking the media directory tree.
type Library interface {
	// ListMediaFiles returns the media files directly inside dir, filtered
	// to the configured extension allowlist, sorted by name.
	ListMediaFiles(dir string) ([]domain.FileEntry, error)

	// Subfolders returns the names of directories directly inside dir.
	Subfolders(dir string) ([]string, error)

	// Tree operations
	BuildTree(root string, maxDepth int) (*domain.FolderNode, error)
	LoadChildren(node *domain.FolderNode) error
}
