package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/krishnaVerma87/new-trakly/internal/corpus/sqlite"
	"github.com/krishnaVerma87/new-trakly/internal/types"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Seed a corpus database from a JSON issue file",
	Long: `Import issues from a JSON array into a SQLite corpus database.

Missing ids, keys, statuses and timestamps are filled in on insert, and
each issue's deduplication hash is computed and stored for exact-match
lookups.

Example:
  trakly import issues.json --db .trakly/issues.db`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dbPath, _ := cmd.Flags().GetString("db")
		if dbPath == "" {
			fmt.Fprintln(os.Stderr, "Error: --db is required")
			os.Exit(1)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		var issues []types.IssueDocument
		if err := json.Unmarshal(data, &issues); err != nil {
			fmt.Fprintf(os.Stderr, "Error: parsing %s: %v\n", args[0], err)
			os.Exit(1)
		}

		store, err := sqlite.Open(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		ctx := context.Background()
		for i := range issues {
			if err := store.AddIssue(ctx, &issues[i]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: issue %d: %v\n", i+1, err)
				os.Exit(1)
			}
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Imported %d issue(s) into %s\n", green("✓"), len(issues), dbPath)
	},
}

func init() {
	importCmd.Flags().String("db", "", "SQLite corpus database to write (required)")
	rootCmd.AddCommand(importCmd)
}
