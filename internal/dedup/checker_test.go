package dedup

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishnaVerma87/new-trakly/internal/corpus"
	"github.com/krishnaVerma87/new-trakly/internal/types"
)

// failingProvider always errors, standing in for a backend outage.
type failingProvider struct {
	err error
}

func (p *failingProvider) LiveIssues(ctx context.Context, projectID string) ([]types.IssueDocument, error) {
	return nil, p.err
}

func newTestChecker(t *testing.T, issues []types.IssueDocument, cfg Config) *Checker {
	t.Helper()
	checker, err := NewChecker(corpus.NewStaticProvider(issues), cfg)
	require.NoError(t, err)
	return checker
}

func TestNewCheckerValidation(t *testing.T) {
	_, err := NewChecker(nil, DefaultConfig())
	assert.ErrorContains(t, err, "provider cannot be nil")

	cfg := DefaultConfig()
	cfg.Limit = 0
	_, err = NewChecker(corpus.NewStaticProvider(nil), cfg)
	assert.ErrorContains(t, err, "invalid config")
}

func TestCheckDuplicatesEmptyCorpus(t *testing.T) {
	checker := newTestChecker(t, nil, DefaultConfig())

	result, err := checker.CheckDuplicates(context.Background(), "proj", "Login broken", "cannot sign in")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotNil(t, result.SimilarIssues)
	assert.Empty(t, result.SimilarIssues)
	assert.False(t, result.IsLikelyDuplicate)
	assert.Len(t, result.SuggestedDeduplicationHash, 64)
}

func TestCheckDuplicatesProviderError(t *testing.T) {
	boom := errors.New("connection refused")
	checker, err := NewChecker(&failingProvider{err: boom}, DefaultConfig())
	require.NoError(t, err)

	result, err := checker.CheckDuplicates(context.Background(), "proj", "Login broken", "")
	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `fetching live issues for project "proj"`)
}

func TestCheckDuplicatesExactMatch(t *testing.T) {
	issue := testIssue("1", "Database connection timeout", "pool exhausted under load")
	checker := newTestChecker(t, []types.IssueDocument{issue}, DefaultConfig())

	result, err := checker.CheckDuplicates(context.Background(), "test", issue.Title, issue.Description)
	require.NoError(t, err)
	require.Len(t, result.SimilarIssues, 1)
	assert.Equal(t, 100, result.SimilarIssues[0].Score)
	assert.Equal(t, issue.ID, result.SimilarIssues[0].Issue.ID)
	assert.True(t, result.IsLikelyDuplicate)
	assert.Equal(t, GenerateHash(issue.Title, issue.Description), result.SuggestedDeduplicationHash)
}

func TestCheckDuplicatesLimitEnforced(t *testing.T) {
	issues := make([]types.IssueDocument, 10)
	for i := range issues {
		issues[i] = testIssue(fmt.Sprintf("%d", i),
			"Database connection timeout under load",
			fmt.Sprintf("variant %d of the same pool exhaustion", i))
	}
	checker := newTestChecker(t, issues, DefaultConfig())

	result, err := checker.CheckDuplicates(context.Background(), "test",
		"Database connection timeout under load", "pool exhaustion")
	require.NoError(t, err)
	assert.Len(t, result.SimilarIssues, 5)
}

func TestCheckDuplicatesMonotonicRanking(t *testing.T) {
	issues := []types.IssueDocument{
		testIssue("1", "Login page crashes on Safari", "Safari 17 crash"),
		testIssue("2", "Login fails with SSO", "redirect loop after login"),
		testIssue("3", "Checkout button unresponsive", "nothing happens on click"),
		testIssue("4", "Safari login crash on page load", "crash loading login"),
	}
	checker := newTestChecker(t, issues, DefaultConfig())

	result, err := checker.CheckDuplicates(context.Background(), "test",
		"Login crashes in Safari", "crash on safari 17")
	require.NoError(t, err)
	require.NotEmpty(t, result.SimilarIssues)
	for i := 1; i < len(result.SimilarIssues); i++ {
		assert.GreaterOrEqual(t,
			result.SimilarIssues[i-1].Score, result.SimilarIssues[i].Score)
	}
}

func TestCheckDuplicatesFallbackDegradation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DisableVectorizer = true

	issues := []types.IssueDocument{
		// Shares {timeout, error} with the candidate: Jaccard 2/6 = 33%.
		testIssue("1", "Timeout error uploading attachments", ""),
		testIssue("2", "Dark mode toggle missing", ""),
	}
	checker := newTestChecker(t, issues, cfg)
	assert.Equal(t, "token-overlap", checker.Strategy().Name())

	result, err := checker.CheckDuplicates(context.Background(), "test",
		"payment gateway timeout error", "")
	require.NoError(t, err)
	require.Len(t, result.SimilarIssues, 1)
	assert.Equal(t, "1", result.SimilarIssues[0].Issue.ID)
	assert.Equal(t, 33, result.SimilarIssues[0].Score)
	assert.False(t, result.IsLikelyDuplicate)
}

func TestCheckDuplicatesEndToEnd(t *testing.T) {
	issues := []types.IssueDocument{
		testIssue("1", "Login page crashes on Safari", "Safari 17 crash"),
	}
	checker := newTestChecker(t, issues, DefaultConfig())

	result, err := checker.CheckDuplicates(context.Background(), "test",
		"Login crashes in Safari", "crash on safari 17")
	require.NoError(t, err)
	require.Len(t, result.SimilarIssues, 1)
	assert.GreaterOrEqual(t, result.SimilarIssues[0].Score, 70)
	assert.True(t, result.IsLikelyDuplicate)
}

func TestCheckDuplicatesShortTitleSkip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinTitleRunes = 10

	issues := []types.IssueDocument{
		testIssue("1", "Fix", "short title everywhere"),
	}
	checker := newTestChecker(t, issues, cfg)

	result, err := checker.CheckDuplicates(context.Background(), "test", "Fix", "")
	require.NoError(t, err)
	assert.Empty(t, result.SimilarIssues)
	assert.False(t, result.IsLikelyDuplicate)
	// The fingerprint hash is still produced for the caller's index.
	assert.Len(t, result.SuggestedDeduplicationHash, 64)
}

func TestCheckDuplicatesHashIndependentOfSearch(t *testing.T) {
	issues := []types.IssueDocument{
		testIssue("1", "Login page crashes on Safari", "Safari 17 crash"),
	}
	checker := newTestChecker(t, issues, DefaultConfig())

	// Identical text up to punctuation and case: same hash, and the
	// similarity search still runs rather than short-circuiting.
	result, err := checker.CheckDuplicates(context.Background(), "test",
		"LOGIN page crashes, on Safari!", "Safari 17 crash")
	require.NoError(t, err)
	assert.Equal(t,
		GenerateHash("Login page crashes on Safari", "Safari 17 crash"),
		result.SuggestedDeduplicationHash)
	assert.NotEmpty(t, result.SimilarIssues)
}
