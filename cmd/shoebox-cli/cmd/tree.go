package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shoebox/internal/adapters/filesystem"
	"shoebox/internal/domain"
)

var treeDepth int

var treeCmd = &cobra.Command{
	Use:   "tree [dir]",
	Short: "Display the folder tree with media counts",
	Long: `Display the folder structure under a directory. Folders that contain
media files show their count in parentheses.

Example:
  shoebox-cli tree ~/Pictures`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		dir = filesystem.ExpandHome(dir)

		root, err := library.BuildTree(dir, treeDepth)
		if err != nil {
			return err
		}
		printTree(root, 0)
		return nil
	},
}

func printTree(node *domain.FolderNode, depth int) {
	indent := strings.Repeat("  ", depth)
	if node.MediaCount > 0 {
		fmt.Printf("%s%s (%d)\n", indent, node.Name, node.MediaCount)
	} else {
		fmt.Printf("%s%s\n", indent, node.Name)
	}
	for _, child := range node.Children {
		printTree(child, depth+1)
	}
}

func init() {
	treeCmd.Flags().IntVarP(&treeDepth, "depth", "d", 3, "how many levels to descend")
	rootCmd.AddCommand(treeCmd)
}
