package corpus

import (
	"context"

	"github.com/krishnaVerma87/new-trakly/internal/types"
)

// StaticProvider serves a fixed, in-memory issue set. Used by tests and by
// the CLI when the corpus comes from a file instead of a database.
type StaticProvider struct {
	issues []types.IssueDocument
}

// Compile-time check that StaticProvider implements Provider
var _ Provider = (*StaticProvider)(nil)

// NewStaticProvider creates a provider over issues. The slice is kept as
// given; callers must not mutate it afterwards.
func NewStaticProvider(issues []types.IssueDocument) *StaticProvider {
	return &StaticProvider{issues: issues}
}

// LiveIssues returns the live issues for projectID in input order. Issues
// without a project are treated as belonging to every project, which keeps
// file-based corpora that omit project ids usable.
func (p *StaticProvider) LiveIssues(ctx context.Context, projectID string) ([]types.IssueDocument, error) {
	out := make([]types.IssueDocument, 0, len(p.issues))
	for _, issue := range p.issues {
		if issue.ProjectID != "" && projectID != "" && issue.ProjectID != projectID {
			continue
		}
		if !issue.Live() {
			continue
		}
		out = append(out, issue)
	}
	return out, nil
}
