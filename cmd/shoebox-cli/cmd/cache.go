package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the metadata cache",
}

var pruneOlderThan time.Duration

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove cache entries older than a cutoff",
	Long: `Remove derivations that were cached before the cutoff. Entries for
files that no longer change are rebuilt on the next scan.

Example:
  shoebox-cli cache prune --older-than 720h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := cache.Prune(time.Now().Add(-pruneOlderThan))
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d entries\n", removed)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cache entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cache.Clear(); err != nil {
			return err
		}
		fmt.Println("Cache cleared")
		return nil
	},
}

func init() {
	cachePruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 90*24*time.Hour, "age beyond which entries are removed")
	cacheCmd.AddCommand(cachePruneCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
