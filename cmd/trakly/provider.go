package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/krishnaVerma87/new-trakly/internal/corpus"
	"github.com/krishnaVerma87/new-trakly/internal/corpus/sqlite"
	"github.com/krishnaVerma87/new-trakly/internal/types"
)

// newProvider builds the corpus provider from --db or --corpus. Exactly one
// must be given. The returned cleanup closes any opened database.
func newProvider(cmd *cobra.Command) (corpus.Provider, func(), error) {
	dbPath, _ := cmd.Flags().GetString("db")
	corpusPath, _ := cmd.Flags().GetString("corpus")

	switch {
	case dbPath != "" && corpusPath != "":
		return nil, nil, fmt.Errorf("--db and --corpus are mutually exclusive")
	case dbPath != "":
		store, err := sqlite.Open(dbPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case corpusPath != "":
		issues, err := loadCorpusFile(corpusPath)
		if err != nil {
			return nil, nil, err
		}
		return corpus.NewStaticProvider(issues), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("either --db or --corpus is required")
	}
}

// loadCorpusFile reads a JSON array of issues. Missing ids get fresh UUIDs
// and missing status/type get defaults, so hand-written corpus files behave
// like database-backed ones.
func loadCorpusFile(path string) ([]types.IssueDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}
	var issues []types.IssueDocument
	if err := json.Unmarshal(data, &issues); err != nil {
		return nil, fmt.Errorf("parsing corpus file %s: %w", path, err)
	}
	for i := range issues {
		if issues[i].ID == "" {
			issues[i].ID = uuid.NewString()
		}
		if issues[i].Status == "" {
			issues[i].Status = types.StatusNew
		}
		if issues[i].IssueType == "" {
			issues[i].IssueType = types.TypeTask
		}
		if err := issues[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid issue at index %d: %w", i, err)
		}
	}
	return issues, nil
}
