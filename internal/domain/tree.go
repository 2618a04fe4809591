package domain

import (
	"slices"
	"strings"
)

// FolderNode represents a directory in the library tree for navigation
type FolderNode struct {
	Name       string // e.g., "2019 Winter"
	Path       string // full path to the directory
	MediaCount int    // media files directly inside, not recursive
	Children   []*FolderNode
	IsExpanded bool
	Parent     *FolderNode
}

// Flatten returns all visible nodes in the tree (for list rendering)
func (n *FolderNode) Flatten() []*FolderNode {
	var result []*FolderNode
	n.flattenRecursive(&result)
	return result
}

func (n *FolderNode) flattenRecursive(result *[]*FolderNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Depth returns the depth of this node in the tree
func (n *FolderNode) Depth() int {
	depth := 0
	current := n.Parent
	for current != nil {
		depth++
		current = current.Parent
	}
	return depth
}

// Toggle expands or collapses the node
func (n *FolderNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded
func (n *FolderNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed
func (n *FolderNode) Collapse() {
	n.IsExpanded = false
}

// SortFolders sorts sibling folders by name in ascending order
func SortFolders(folders []*FolderNode) {
	slices.SortFunc(folders, func(a, b *FolderNode) int {
		return strings.Compare(a.Name, b.Name)
	})
}
