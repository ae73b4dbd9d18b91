package dedup

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishnaVerma87/new-trakly/internal/types"
)

func rankCorpus(n int) []types.IssueDocument {
	corpus := make([]types.IssueDocument, n)
	for i := range corpus {
		corpus[i] = testIssue(string(rune('a'+i)), "Issue title", "")
	}
	return corpus
}

func TestRankFiltersBelowThreshold(t *testing.T) {
	corpus := rankCorpus(3)
	scores := []IndexScore{
		{Index: 0, Score: 0.50},
		{Index: 1, Score: 0.29},
		{Index: 2, Score: 0.30},
	}

	got := Rank(scores, corpus, 0.30, 5)
	require.Len(t, got, 2)
	assert.Equal(t, corpus[0].ID, got[0].Issue.ID)
	assert.Equal(t, corpus[2].ID, got[1].Issue.ID)
}

func TestRankSortsDescending(t *testing.T) {
	corpus := rankCorpus(4)
	scores := []IndexScore{
		{Index: 0, Score: 0.40},
		{Index: 1, Score: 0.90},
		{Index: 2, Score: 0.60},
		{Index: 3, Score: 0.75},
	}

	got := Rank(scores, corpus, 0.30, 5)
	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score, "scores must be non-increasing")
	}
	assert.Equal(t, corpus[1].ID, got[0].Issue.ID)
}

func TestRankStableOnTies(t *testing.T) {
	corpus := rankCorpus(3)
	scores := []IndexScore{
		{Index: 0, Score: 0.55},
		{Index: 1, Score: 0.55},
		{Index: 2, Score: 0.55},
	}

	got := Rank(scores, corpus, 0.30, 5)
	require.Len(t, got, 3)
	// Equal scores keep corpus input order.
	assert.Equal(t, corpus[0].ID, got[0].Issue.ID)
	assert.Equal(t, corpus[1].ID, got[1].Issue.ID)
	assert.Equal(t, corpus[2].ID, got[2].Issue.ID)
}

func TestRankTruncatesToLimit(t *testing.T) {
	corpus := rankCorpus(10)
	scores := make([]IndexScore, 10)
	for i := range scores {
		scores[i] = IndexScore{Index: i, Score: 0.90}
	}

	got := Rank(scores, corpus, 0.30, 5)
	assert.Len(t, got, 5)
}

func TestRankPercentageTruncation(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		expected int
	}{
		{"floor not round", 0.699, 69},
		{"boundary", 0.70, 70},
		{"exact match", 1.0, 100},
		{"just below boundary", 0.6949, 69},
		{"zero threshold passthrough", 0.001, 0},
	}

	corpus := rankCorpus(1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank([]IndexScore{{Index: 0, Score: tt.raw}}, corpus, 0, 5)
			require.Len(t, got, 1)
			assert.Equal(t, tt.expected, got[0].Score)
		})
	}
}

func TestRankIgnoresOutOfRangeIndices(t *testing.T) {
	corpus := rankCorpus(1)
	scores := []IndexScore{
		{Index: -1, Score: 0.9},
		{Index: 0, Score: 0.9},
		{Index: 5, Score: 0.9},
	}

	got := Rank(scores, corpus, 0.30, 5)
	assert.Len(t, got, 1)
}

func TestLikelyDuplicate(t *testing.T) {
	cands := []SimilarityCandidate{
		{Issue: testIssue("1", "t", ""), Score: 69},
		{Issue: testIssue("2", "t", ""), Score: 42},
	}
	assert.False(t, LikelyDuplicate(cands, 70))

	cands[0].Score = 70
	assert.True(t, LikelyDuplicate(cands, 70))

	assert.False(t, LikelyDuplicate(nil, 70))
}

func TestSimilarityCandidateJSONShape(t *testing.T) {
	cand := SimilarityCandidate{
		Issue: testIssue("42", "Login page crashes on Safari", "Safari 17 crash"),
		Score: 83,
	}

	data, err := json.Marshal(cand)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	assert.Equal(t, "42", m["id"])
	assert.Equal(t, "TST-42", m["key"])
	assert.Equal(t, "Login page crashes on Safari", m["title"])
	assert.Equal(t, "new", m["status"])
	assert.Equal(t, "bug", m["issue_type"])
	assert.Equal(t, float64(83), m["similarity_score"])
	assert.Equal(t, "2026-01-01T00:00:00Z", m["created_at"])

	// The wire shape omits the description.
	_, hasDescription := m["description"]
	assert.False(t, hasDescription)
}
