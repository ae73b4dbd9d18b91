package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishnaVerma87/new-trakly/internal/types"
)

func TestTokenOverlapEmptyCorpus(t *testing.T) {
	s := NewTokenOverlapStrategy(DefaultConfig())
	assert.Empty(t, s.Score(nil, "anything"))
}

func TestTokenOverlapIdenticalText(t *testing.T) {
	s := NewTokenOverlapStrategy(DefaultConfig())
	corpus := []types.IssueDocument{
		testIssue("1", "Database connection timeout", "pool exhausted"),
	}

	scores := s.Score(corpus, corpus[0].Text())
	require.Len(t, scores, 1)
	assert.InDelta(t, 1.0, scores[0].Score, 1e-9)
}

func TestTokenOverlapJaccard(t *testing.T) {
	s := NewTokenOverlapStrategy(DefaultConfig())
	// candidate tokens: {payment, gateway, timeout, error}
	// corpus tokens:    {timeout, error, uploading, attachments}
	// intersection 2, union 6
	corpus := []types.IssueDocument{
		testIssue("1", "Timeout error uploading attachments", ""),
	}

	scores := s.Score(corpus, "payment gateway timeout error")
	require.Len(t, scores, 1)
	assert.InDelta(t, 2.0/6.0, scores[0].Score, 1e-9)
}

func TestTokenOverlapEmptySets(t *testing.T) {
	s := NewTokenOverlapStrategy(DefaultConfig())
	corpus := []types.IssueDocument{
		testIssue("1", "the of and", ""), // all stopwords
		testIssue("2", "Database connection timeout", ""),
	}

	// Stopword-only candidate: similarity 0 everywhere, no error.
	scores := s.Score(corpus, "is was were")
	require.Len(t, scores, 2)
	assert.Zero(t, scores[0].Score)
	assert.Zero(t, scores[1].Score)

	// Stopword-only corpus entry scores 0 against a real candidate.
	scores = s.Score(corpus, "database timeout")
	require.Len(t, scores, 2)
	assert.Zero(t, scores[0].Score)
	assert.Positive(t, scores[1].Score)
}

func TestTokenOverlapCaseFolding(t *testing.T) {
	s := NewTokenOverlapStrategy(DefaultConfig())
	corpus := []types.IssueDocument{
		testIssue("1", "DATABASE CONNECTION TIMEOUT", ""),
	}

	scores := s.Score(corpus, "database connection timeout")
	require.Len(t, scores, 1)
	assert.InDelta(t, 1.0, scores[0].Score, 1e-9)
}

func TestTokenOverlapThreshold(t *testing.T) {
	cfg := DefaultConfig()
	s := NewTokenOverlapStrategy(cfg)
	assert.Equal(t, cfg.FallbackThreshold, s.Threshold())
	assert.Equal(t, "token-overlap", s.Name())
}
