package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"shoebox/internal/adapters/filesystem"
	"shoebox/internal/application"
	"shoebox/internal/application/commands"
)

var (
	renamePrefix bool
	renameDryRun bool
)

var renameCmd = &cobra.Command{
	Use:   "rename <dir>",
	Short: "Rename labeled media files to their derived names",
	Long: `Rename every media file in a folder that carries a label in its
metadata. Files without a label keep their names. With --prefix the
names get a chronological ordinal ("1. Oldest label.jpg") so the
files sort by taken date.

Examples:
  shoebox-cli rename ~/Pictures/Holidays
  shoebox-cli rename --prefix ~/Pictures/Holidays
  shoebox-cli rename --dry-run ~/Pictures/Holidays`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := filesystem.ExpandHome(args[0])

		indexed, err := indexFolder(cmd.Context(), dir)
		if err != nil {
			return err
		}

		opts := commands.RenameOptions{
			AddSortPrefix: renamePrefix,
			MaxNameLength: cfg.MaxFileNameLength,
		}
		batch := commands.NewRenameFolderCommand(files, application.NewGate(cfg.Concurrency), dir, indexed.Photos, opts)

		if renameDryRun {
			plan, err := batch.Plan()
			if err != nil {
				return err
			}
			if len(plan) == 0 {
				fmt.Println("Nothing to rename: no labeled files")
				return nil
			}
			for _, e := range plan {
				if e.Renamed {
					fmt.Printf("%s -> %s\n", filepath.Base(e.OldPath), filepath.Base(e.NewPath))
				} else {
					fmt.Printf("%s (unchanged)\n", filepath.Base(e.OldPath))
				}
			}
			return nil
		}

		result, err := batch.Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Renamed %d of %d labeled files\n", result.FilesRenamed, result.TotalFiles)
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "error: %s\n", e)
		}
		if len(result.Errors) > 0 {
			return fmt.Errorf("%d files failed", len(result.Errors))
		}
		return nil
	},
}

func init() {
	renameCmd.Flags().BoolVarP(&renamePrefix, "prefix", "p", false, "prefix names with a chronological ordinal")
	renameCmd.Flags().BoolVar(&renameDryRun, "dry-run", false, "show what would be renamed without changing anything")
	rootCmd.AddCommand(renameCmd)
}
