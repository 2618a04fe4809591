package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"shoebox/internal/adapters/embedded"
	"shoebox/internal/adapters/exiftool"
	"shoebox/internal/adapters/filesystem"
	"shoebox/internal/adapters/sqlite"
	"shoebox/internal/adapters/tui"
	"shoebox/internal/adapters/viewer"
	"shoebox/internal/config"
	"shoebox/internal/ports"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	config.SetupLogger(cfg)

	rootPath := "."
	if len(os.Args) > 1 {
		rootPath = os.Args[1]
	}
	rootPath = filesystem.ExpandHome(rootPath)

	reader, err := newReader()
	if err != nil {
		return err
	}
	defer reader.Close()

	cachePath := cfg.CachePath
	if cachePath == "" {
		cachePath = sqlite.DefaultPath()
	}
	cache, err := sqlite.NewCache(cachePath)
	if err != nil {
		return err
	}
	defer cache.Close()

	library := filesystem.NewLibrary(cfg.ExtensionSet())
	files := filesystem.NewFiles()

	app := tui.NewApp(library, reader, cache, files, viewer.NewOpener(), rootPath, cfg)

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// newReader prefers the exiftool binary and falls back to the built-in
// parsers when it is not installed.
func newReader() (ports.MetadataReader, error) {
	if exiftool.Available() {
		return exiftool.NewReader()
	}
	return embedded.NewReader(), nil
}
