package dedup

import (
	"github.com/krishnaVerma87/new-trakly/internal/types"
)

// IndexScore pairs a corpus index with a raw similarity score in [0, 1].
type IndexScore struct {
	Index int
	Score float64
}

// Strategy scores a candidate text against every document in a corpus.
//
// Implementations must be pure: any model built for one Score call is
// discarded before the call returns, so concurrent checks for different
// projects never share vocabulary. Raw scores are filtered and ranked by
// Rank; strategies themselves apply no threshold.
type Strategy interface {
	// Score returns raw similarity scores, one entry per corpus document,
	// in corpus order. An empty corpus or a degenerate vocabulary yields an
	// empty slice, never an error.
	Score(corpus []types.IssueDocument, candidateText string) []IndexScore

	// Threshold is the strategy's default inclusion threshold, applied by
	// the ranking step.
	Threshold() float64

	// Name identifies the strategy in logs.
	Name() string
}

// SelectStrategy picks the scoring strategy for cfg: the vector-space
// scorer when vectorization is available, the token-overlap fallback
// otherwise. Callers hold only the Strategy interface and must never branch
// on the concrete type; everything strategy-specific (including the
// inclusion threshold) is reachable through the interface.
func SelectStrategy(cfg Config) Strategy {
	if cfg.DisableVectorizer {
		return NewTokenOverlapStrategy(cfg)
	}
	return NewVectorSpaceStrategy(cfg)
}
