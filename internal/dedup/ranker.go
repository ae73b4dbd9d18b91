package dedup

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/krishnaVerma87/new-trakly/internal/types"
)

// SimilarityCandidate pairs a corpus issue with its integer similarity
// percentage (0-100).
type SimilarityCandidate struct {
	Issue types.IssueDocument
	Score int
}

// MarshalJSON flattens the candidate into the advisory wire shape consumed
// by the issue-creation workflow. The description is deliberately omitted;
// callers that need it already hold the issue.
func (c SimilarityCandidate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID              string          `json:"id"`
		Key             string          `json:"key"`
		Title           string          `json:"title"`
		Status          types.Status    `json:"status"`
		IssueType       types.IssueType `json:"issue_type"`
		SimilarityScore int             `json:"similarity_score"`
		CreatedAt       string          `json:"created_at"`
	}{
		ID:              c.Issue.ID,
		Key:             c.Issue.Key,
		Title:           c.Issue.Title,
		Status:          c.Issue.Status,
		IssueType:       c.Issue.IssueType,
		SimilarityScore: c.Score,
		CreatedAt:       c.Issue.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// scoreSlack absorbs float drift at percentage boundaries: an exact match
// whose cosine computes to 0.999999999999 must still convert to 100, and
// a raw 0.7 (stored as 0.69999999999...) must reach the 70 cutoff.
const scoreSlack = 1e-6

// Rank turns raw strategy output into the final candidate list:
//
//  1. Drop entries below threshold (compared on the raw score).
//  2. Sort descending by raw score; the sort is stable, so ties keep the
//     corpus input order.
//  3. Truncate to limit.
//  4. Convert each raw score to an integer percentage by truncation
//     (floor), not rounding. 0.699 is 69, below the high-confidence line.
func Rank(scores []IndexScore, corpus []types.IssueDocument, threshold float64, limit int) []SimilarityCandidate {
	kept := make([]IndexScore, 0, len(scores))
	for _, sc := range scores {
		if sc.Index < 0 || sc.Index >= len(corpus) {
			continue
		}
		if sc.Score < threshold {
			continue
		}
		kept = append(kept, sc)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}

	out := make([]SimilarityCandidate, len(kept))
	for i, sc := range kept {
		out[i] = SimilarityCandidate{
			Issue: corpus[sc.Index],
			Score: toPercent(sc.Score),
		}
	}
	return out
}

// toPercent truncates a raw score in [0, 1] to an integer percentage.
func toPercent(score float64) int {
	pct := int(score*100 + scoreSlack)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// LikelyDuplicate classifies a ranked candidate list: true iff any retained
// candidate scored at or above minScore. Independent of the inclusion
// threshold applied in Rank.
func LikelyDuplicate(candidates []SimilarityCandidate, minScore int) bool {
	for _, c := range candidates {
		if c.Score >= minScore {
			return true
		}
	}
	return false
}
