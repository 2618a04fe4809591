package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"shoebox/internal/adapters/filesystem"
	"shoebox/internal/domain"
)

var labelCmd = &cobra.Command{
	Use:   "label <file>",
	Short: "Show the metadata sections and derived label of one file",
	Long: `Dump the metadata sections extracted from a single file and the label
and dates derived from them. Useful to see why a file gets (or does
not get) a particular name.

Example:
  shoebox-cli label ~/Pictures/IMG_0042.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filesystem.ExpandHome(args[0])

		sections, err := reader.ReadMetadata(cmd.Context(), path)
		if err != nil {
			return err
		}

		for _, s := range sections {
			fmt.Printf("[%s]\n", s.Name)
			for _, name := range sortedKeys(s.Tags) {
				v := s.Tags[name]
				if v.Description != "" {
					fmt.Printf("  %-32s %s\n", name, v.Description)
				} else {
					fmt.Printf("  %-32s %v\n", name, v.Raw)
				}
			}
			for _, name := range sortedKeys(s.Props) {
				fmt.Printf("  %-32s %s\n", name, s.Props[name])
			}
			fmt.Println()
		}

		derived, err := domain.Derive(sections)
		if err != nil {
			return err
		}

		if derived.Label == "" {
			fmt.Println("No label could be derived")
		} else {
			fmt.Printf("Label:      %s\n", derived.Label)
		}
		if derived.TakenAt != nil {
			fmt.Printf("Taken:      %s\n", derived.TakenAt.Format("2006-01-02 15:04:05"))
		}
		if derived.ModifiedAt != nil {
			fmt.Printf("Modified:   %s\n", derived.ModifiedAt.Format("2006-01-02 15:04:05"))
		}
		if derived.Label != "" {
			name, err := domain.BuildFileName(derived.Label, domain.NameOptions{
				Extension: filepath.Ext(path),
				MaxLength: cfg.MaxFileNameLength,
			})
			if err != nil {
				return err
			}
			if name != filepath.Base(path) {
				fmt.Printf("Renames to: %s\n", name)
			}
		}
		return nil
	},
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	rootCmd.AddCommand(labelCmd)
}
