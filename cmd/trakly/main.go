// Command trakly runs advisory duplicate detection for tracker issues.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trakly",
	Short: "Advisory duplicate detection for tracker issues",
	Long: `trakly checks candidate issues against a project's live issues and
reports near-duplicates before they are filed.

The verdict is advisory: trakly never blocks creation and never mutates the
tracker. It reports similar issues, a deduplication hash for exact-match
indexing, and a likely-duplicate flag. Enforcement is the caller's call.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML file with engine configuration overrides")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
