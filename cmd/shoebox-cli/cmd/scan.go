package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shoebox/internal/adapters/filesystem"
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Scan a folder and show the derived labels",
	Long: `Read the metadata of every media file in a folder and print the label
and taken date derived for each file.

Example:
  shoebox-cli scan "~/Pictures/2020-06 Holidays"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := filesystem.ExpandHome(args[0])

		result, err := indexFolder(cmd.Context(), dir)
		if err != nil {
			return err
		}

		labeled := 0
		for _, p := range result.Photos {
			if p.HasLabel() {
				labeled++
			}
		}
		summary := fmt.Sprintf("%d files, %d labeled", len(result.Photos), labeled)
		if result.FromCache > 0 {
			summary += fmt.Sprintf(", %d cached", result.FromCache)
		}
		if result.Unreadable > 0 {
			summary += fmt.Sprintf(", %d unreadable", result.Unreadable)
		}
		fmt.Println(summary)

		if len(result.Photos) > 0 {
			fmt.Println()
			fmt.Printf("%-36s  %-44s  %s\n", "FILE", "LABEL", "TAKEN")
			for _, p := range result.Photos {
				label := firstLine(p.Label)
				if label == "" {
					label = "-"
				}
				taken := "-"
				if p.TakenAt != nil {
					taken = p.TakenAt.Format("2006-01-02")
				}
				fmt.Printf("%-36s  %-44s  %s\n", p.Path, label, taken)
			}
		}

		if len(result.Errors) > 0 {
			fmt.Println()
			for _, e := range result.Errors {
				fmt.Printf("error: %s\n", e)
			}
		}
		return nil
	},
}

// firstLine keeps multi-line labels from breaking the table layout.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
