// Package corpus defines the live-issue corpus contract consumed by the
// duplicate detection engine, plus an in-memory provider for tests and
// file-backed corpora.
package corpus

import (
	"context"

	"github.com/krishnaVerma87/new-trakly/internal/types"
)

// Provider supplies the live issues for one project: issues that are not in
// a terminal status and not already flagged as duplicates. That filtering
// is the provider's contract; the engine never re-checks it.
//
// The returned order must be deterministic, since it decides tie-breaks in
// ranked results. Provider failures propagate to the caller unmodified;
// the engine never swallows them.
type Provider interface {
	LiveIssues(ctx context.Context, projectID string) ([]types.IssueDocument, error)
}
