package dedup

import (
	"github.com/krishnaVerma87/new-trakly/internal/types"
)

// TokenOverlapStrategy is the fallback scorer used when no vectorization
// capability is available: Jaccard similarity over case-folded, stopword
// filtered word sets. Coarser than the vector-space path, which is why its
// default inclusion threshold is lower.
type TokenOverlapStrategy struct {
	threshold float64
	stopwords map[string]struct{}
}

// Compile-time check that TokenOverlapStrategy implements Strategy
var _ Strategy = (*TokenOverlapStrategy)(nil)

// NewTokenOverlapStrategy creates a token-overlap scorer from cfg.
func NewTokenOverlapStrategy(cfg Config) *TokenOverlapStrategy {
	return &TokenOverlapStrategy{
		threshold: cfg.FallbackThreshold,
		stopwords: cfg.stopwordSet(),
	}
}

// Name identifies the strategy in logs
func (s *TokenOverlapStrategy) Name() string { return "token-overlap" }

// Threshold returns the fallback inclusion threshold
func (s *TokenOverlapStrategy) Threshold() float64 { return s.threshold }

// Score computes Jaccard similarity between the candidate's token set and
// every corpus document's token set. A set that is empty after stopword
// removal scores 0 against everything: no match, not an error.
func (s *TokenOverlapStrategy) Score(corpus []types.IssueDocument, candidateText string) []IndexScore {
	if len(corpus) == 0 {
		return nil
	}
	candSet := tokenSet(candidateText, s.stopwords)
	scores := make([]IndexScore, len(corpus))
	for i := range corpus {
		scores[i] = IndexScore{
			Index: i,
			Score: jaccard(candSet, tokenSet(corpus[i].Text(), s.stopwords)),
		}
	}
	return scores
}

// jaccard is |intersection| / |union| over two token sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for t := range a {
		if _, ok := b[t]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
