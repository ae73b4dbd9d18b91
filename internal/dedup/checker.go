package dedup

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/krishnaVerma87/new-trakly/internal/corpus"
)

// DuplicateCheckResult is the advisory verdict returned to the caller. The
// engine never blocks anything itself; whether to warn the user or refuse
// creation is entirely the issue-creation workflow's decision.
type DuplicateCheckResult struct {
	// SimilarIssues is ordered by similarity score descending, at most
	// Config.Limit entries. Never nil.
	SimilarIssues []SimilarityCandidate `json:"similar_issues"`

	// SuggestedDeduplicationHash is the exact-duplicate fingerprint for the
	// candidate text, for the caller's hash index. Computed fresh on every
	// check and never persisted here.
	SuggestedDeduplicationHash string `json:"suggested_deduplication_hash"`

	// IsLikelyDuplicate is true iff any retained candidate reached the
	// high-confidence score (default 70).
	IsLikelyDuplicate bool `json:"is_likely_duplicate"`
}

// Checker runs the full duplicate check: fingerprint hash, corpus fetch,
// similarity scoring, ranking and classification. A Checker is read-only
// and keeps no state between calls; two checks may run fully in parallel.
type Checker struct {
	provider corpus.Provider
	strategy Strategy
	cfg      Config
}

// NewChecker creates a duplicate checker backed by provider. The scoring
// strategy is selected once from cfg via SelectStrategy.
func NewChecker(provider corpus.Provider, cfg Config) (*Checker, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Checker{
		provider: provider,
		strategy: SelectStrategy(cfg),
		cfg:      cfg,
	}, nil
}

// Strategy exposes the selected scoring strategy, mainly for logging.
func (c *Checker) Strategy() Strategy {
	return c.strategy
}

// CheckDuplicates checks a candidate issue (title, optional description)
// against the live issues of projectID.
//
// The deduplication hash is always computed, and the similarity search
// always runs regardless of any exact hash match the caller may find in
// its own index; the two checks are independent by design. Corpus fetch
// failures propagate wrapped; an empty corpus is a valid no-match result.
func (c *Checker) CheckDuplicates(ctx context.Context, projectID, title, description string) (*DuplicateCheckResult, error) {
	result := &DuplicateCheckResult{
		SimilarIssues:              []SimilarityCandidate{},
		SuggestedDeduplicationHash: GenerateHash(title, description),
	}

	if c.cfg.MinTitleRunes > 0 {
		if n := utf8.RuneCountInString(strings.TrimSpace(title)); n < c.cfg.MinTitleRunes {
			log.Printf("[DEDUP] skipping similarity search for short title (len=%d, min=%d)",
				n, c.cfg.MinTitleRunes)
			return result, nil
		}
	}

	issues, err := c.provider.LiveIssues(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetching live issues for project %q: %w", projectID, err)
	}
	if len(issues) == 0 {
		return result, nil
	}

	candidateText := title + " " + description
	scores := c.strategy.Score(issues, candidateText)

	result.SimilarIssues = Rank(scores, issues, c.strategy.Threshold(), c.cfg.Limit)
	result.IsLikelyDuplicate = LikelyDuplicate(result.SimilarIssues, c.cfg.LikelyDuplicateScore)

	if result.IsLikelyDuplicate {
		log.Printf("[DEDUP] likely duplicate in project %q: %d candidate(s) at or above %d%% (%s)",
			projectID, len(result.SimilarIssues), c.cfg.LikelyDuplicateScore, c.strategy.Name())
	}
	return result, nil
}
