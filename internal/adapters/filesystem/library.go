package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shoebox/internal/domain"
)

// Library implements ports.Library: it walks a photo directory tree,
// filtering files to the configured extension allowlist.
type Library struct {
	extensions domain.ExtensionSet
}

// NewLibrary creates a new Library adapter
func NewLibrary(extensions domain.ExtensionSet) *Library {
	return &Library{extensions: extensions}
}

// ListMediaFiles returns the media files directly inside dir, sorted by
// name. Hidden files and unknown extensions are skipped.
func (l *Library) ListMediaFiles(dir string) ([]domain.FileEntry, error) {
	entries, err := os.ReadDir(ExpandHome(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	var files []domain.FileEntry
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !l.extensions.Contains(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, domain.FileEntry{
			Path:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// Subfolders returns the names of directories directly inside dir,
// skipping hidden ones.
func (l *Library) Subfolders(dir string) ([]string, error) {
	entries, err := os.ReadDir(ExpandHome(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}

// BuildTree builds the folder tree under root, descending maxDepth levels
// below it. The root node comes back expanded.
func (l *Library) BuildTree(root string, maxDepth int) (*domain.FolderNode, error) {
	root = ExpandHome(root)
	node := &domain.FolderNode{
		Name:       filepath.Base(root),
		Path:       root,
		IsExpanded: true,
	}
	if err := l.fill(node, maxDepth); err != nil {
		return nil, err
	}
	return node, nil
}

func (l *Library) fill(node *domain.FolderNode, depth int) error {
	files, err := l.ListMediaFiles(node.Path)
	if err != nil {
		return err
	}
	node.MediaCount = len(files)

	if depth <= 0 {
		return nil
	}

	subs, err := l.Subfolders(node.Path)
	if err != nil {
		return err
	}
	for _, name := range subs {
		child := &domain.FolderNode{
			Name:   name,
			Path:   filepath.Join(node.Path, name),
			Parent: node,
		}
		if err := l.fill(child, depth-1); err != nil {
			return err
		}
		node.Children = append(node.Children, child)
	}
	domain.SortFolders(node.Children)

	return nil
}

// LoadChildren loads the direct subfolders of a node on demand
func (l *Library) LoadChildren(node *domain.FolderNode) error {
	if len(node.Children) > 0 {
		return nil // Already loaded
	}

	subs, err := l.Subfolders(node.Path)
	if err != nil {
		return err
	}

	for _, name := range subs {
		child := &domain.FolderNode{
			Name:   name,
			Path:   filepath.Join(node.Path, name),
			Parent: node,
		}
		files, err := l.ListMediaFiles(child.Path)
		if err == nil {
			child.MediaCount = len(files)
		}
		node.Children = append(node.Children, child)
	}
	domain.SortFolders(node.Children)

	return nil
}
