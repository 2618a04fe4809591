package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"shoebox/internal/adapters/embedded"
	"shoebox/internal/adapters/exiftool"
	"shoebox/internal/adapters/filesystem"
	"shoebox/internal/adapters/sqlite"
	"shoebox/internal/application"
	"shoebox/internal/application/commands"
	"shoebox/internal/config"
	"shoebox/internal/ports"
)

var (
	cfg     *config.Config
	library ports.Library
	reader  ports.MetadataReader
	cache   ports.MetadataCache
	files   ports.FileSystem
)

var rootCmd = &cobra.Command{
	Use:   "shoebox-cli",
	Short: "Rename photos and videos after their embedded descriptions",
	Long: `shoebox-cli reads the metadata embedded in photos and videos, derives
a descriptive label for each file and renames the files accordingly,
optionally with a chronological number prefix.

Labels come from XMP, Exif and QuickTime metadata. Derivations are
cached, so rescanning unchanged files is instant.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		config.SetupLogger(cfg)

		library = filesystem.NewLibrary(cfg.ExtensionSet())
		files = filesystem.NewFiles()

		if reader, err = newReader(); err != nil {
			return err
		}
		if cache, err = openCache(); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if reader != nil {
			reader.Close()
		}
		if cache != nil {
			cache.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newReader prefers the exiftool binary and falls back to the built-in
// parsers when it is not installed.
func newReader() (ports.MetadataReader, error) {
	if exiftool.Available() {
		return exiftool.NewReader()
	}
	return embedded.NewReader(), nil
}

func openCache() (ports.MetadataCache, error) {
	path := cfg.CachePath
	if path == "" {
		path = sqlite.DefaultPath()
	}
	return sqlite.NewCache(path)
}

// indexFolder scans one folder, drawing a progress bar on stderr while the
// metadata reads run.
func indexFolder(ctx context.Context, dir string) (*commands.IndexResult, error) {
	indexCmd := commands.NewIndexFolderCommand(library, reader, cache, application.NewGate(cfg.Concurrency), dir)

	var bar *progressbar.ProgressBar
	indexCmd.OnProgress = func(done, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total), "reading metadata")
		}
		bar.Add(1)
	}

	result, err := indexCmd.Execute(ctx)
	if bar != nil {
		if err != nil {
			bar.Exit()
		} else {
			bar.Finish()
		}
	}
	return result, err
}
