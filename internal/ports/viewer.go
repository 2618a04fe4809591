package ports

// Viewer defines the interface for opening media files in an external viewer
type Viewer interface {
	// OpenFile opens the specified file in the system's default viewer
	OpenFile(path string) error
}
