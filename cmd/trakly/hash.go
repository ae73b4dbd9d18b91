package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/krishnaVerma87/new-trakly/internal/dedup"
)

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Print the deduplication hash for a candidate issue",
	Long: `Print the deduplication hash for a (title, description) pair.

The hash is the SHA-256 digest of the normalized text, so differences in
case, punctuation and whitespace do not change it:

  trakly hash --title "Login fails" --description "Crash"
  trakly hash --title " LOGIN   Fails " --description "  crash "

both print the same 64-character digest.`,
	Run: func(cmd *cobra.Command, args []string) {
		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			fmt.Fprintln(os.Stderr, "Error: --title is required")
			os.Exit(1)
		}
		description, _ := cmd.Flags().GetString("description")
		fmt.Println(dedup.GenerateHash(title, description))
	},
}

func init() {
	hashCmd.Flags().String("title", "", "Title of the candidate issue (required)")
	hashCmd.Flags().String("description", "", "Description of the candidate issue")
	rootCmd.AddCommand(hashCmd)
}
