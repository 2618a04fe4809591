package domain

import (
	"path/filepath"
	"strings"
)

// ExtensionSet is a case-insensitive set of media file extensions.
type ExtensionSet map[string]struct{}

// NewExtensionSet normalizes extensions to lowercase with a leading dot.
func NewExtensionSet(extensions []string) ExtensionSet {
	set := make(ExtensionSet, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// Contains reports whether the path's extension is in the set.
func (s ExtensionSet) Contains(path string) bool {
	_, ok := s[strings.ToLower(filepath.Ext(path))]
	return ok
}
