package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/krishnaVerma87/new-trakly/internal/dedup"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a candidate issue for duplicates",
	Long: `Check a candidate issue against a project's live issues.

Prints the similar issues found, the suggested deduplication hash and a
likely-duplicate verdict. The check is read-only.

Examples:
  # Check against a tracker database
  trakly check --db .trakly/issues.db --project payments \
      --title "Login page crashes on Safari"

  # Check against a JSON corpus file, full JSON output
  trakly check --corpus issues.json --project payments \
      --title "Login crashes in Safari" --description "crash on safari 17" --json

  # Force the token-overlap fallback strategy
  trakly check --corpus issues.json --project payments \
      --title "Login crashes in Safari" --no-vectorizer`,
	Run: func(cmd *cobra.Command, args []string) {
		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			fmt.Fprintln(os.Stderr, "Error: --title is required")
			os.Exit(1)
		}
		project, _ := cmd.Flags().GetString("project")
		description, _ := cmd.Flags().GetString("description")
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := engineConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		provider, cleanup, err := newProvider(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()

		checker, err := dedup.NewChecker(provider, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		result, err := checker.CheckDuplicates(context.Background(), project, title, description)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if asJSON {
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(out))
			return
		}
		printResult(result)
	},
}

func init() {
	checkCmd.Flags().String("project", "", "Project to search within")
	checkCmd.Flags().String("title", "", "Title of the candidate issue (required)")
	checkCmd.Flags().String("description", "", "Description of the candidate issue")
	checkCmd.Flags().String("db", "", "SQLite tracker database to use as corpus")
	checkCmd.Flags().String("corpus", "", "JSON file with the issue corpus")
	checkCmd.Flags().Bool("json", false, "Print the full result as JSON")
	checkCmd.Flags().Bool("no-vectorizer", false, "Force the token-overlap fallback strategy")
	rootCmd.AddCommand(checkCmd)
}

// printResult renders the human-readable verdict.
func printResult(result *dedup.DuplicateCheckResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	switch {
	case result.IsLikelyDuplicate:
		fmt.Printf("%s Likely duplicate\n", red("✗"))
	case len(result.SimilarIssues) > 0:
		fmt.Printf("%s Similar issues found, below the high-confidence cutoff\n", yellow("!"))
	default:
		fmt.Printf("%s No similar issues\n", green("✓"))
	}
	for _, c := range result.SimilarIssues {
		fmt.Printf("  %3d%%  %-12s  %s\n", c.Score, c.Issue.Key, c.Issue.Title)
	}
	fmt.Printf("Deduplication hash: %s\n", result.SuggestedDeduplicationHash)
}
