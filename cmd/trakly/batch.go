package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/krishnaVerma87/new-trakly/internal/dedup"
)

// batchCandidate is one entry of the batch input file.
type batchCandidate struct {
	Project     string `yaml:"project"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Check many candidate issues in one run",
	Long: `Check every candidate in a YAML file against the corpus.

Checks run in parallel up to --concurrency. Each check builds its own
scoring model, so no state is shared between them and the input order of
the report is preserved.

The input file is a YAML list:

  - project: payments
    title: Login page crashes on Safari
    description: Safari 17 crash
  - project: payments
    title: Checkout button unresponsive

Examples:
  trakly batch candidates.yaml --db .trakly/issues.db
  trakly batch candidates.yaml --corpus issues.json --concurrency 8`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		var candidates []batchCandidate
		if err := yaml.Unmarshal(data, &candidates); err != nil {
			fmt.Fprintf(os.Stderr, "Error: parsing %s: %v\n", args[0], err)
			os.Exit(1)
		}
		for i, cand := range candidates {
			if cand.Title == "" {
				fmt.Fprintf(os.Stderr, "Error: candidate %d has no title\n", i+1)
				os.Exit(1)
			}
		}

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

		concurrency, _ := cmd.Flags().GetInt("concurrency")
		if concurrency < 1 {
			concurrency = 1
		}

		results := make([]*dedup.DuplicateCheckResult, len(candidates))
		g, ctx := errgroup.WithContext(context.Background())
		g.SetLimit(concurrency)
		for i, cand := range candidates {
			g.Go(func() error {
				result, err := checker.CheckDuplicates(ctx, cand.Project, cand.Title, cand.Description)
				if err != nil {
					return fmt.Errorf("candidate %d (%q): %w", i+1, cand.Title, err)
				}
				results[i] = result
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		likely := 0
		for i, result := range results {
			marker := green("✓")
			if result.IsLikelyDuplicate {
				marker = red("✗")
				likely++
			}
			fmt.Printf("%s %-40q  %d similar\n", marker, candidates[i].Title, len(result.SimilarIssues))
			for _, c := range result.SimilarIssues {
				fmt.Printf("    %3d%%  %-12s  %s\n", c.Score, c.Issue.Key, c.Issue.Title)
			}
		}
		fmt.Printf("\n%d candidate(s), %d likely duplicate(s)\n", len(candidates), likely)
	},
}

func init() {
	batchCmd.Flags().String("db", "", "SQLite tracker database to use as corpus")
	batchCmd.Flags().String("corpus", "", "JSON file with the issue corpus")
	batchCmd.Flags().Int("concurrency", 4, "Maximum checks in flight")
	batchCmd.Flags().Bool("no-vectorizer", false, "Force the token-overlap fallback strategy")
	rootCmd.AddCommand(batchCmd)
}
