package types

import (
	"fmt"
	"time"
)

// IssueDocument is a read-only projection of a tracker issue, supplied by a
// corpus provider for duplicate detection. It is immutable for the duration
// of one check.
type IssueDocument struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	ProjectID   string    `json:"project_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	IssueType   IssueType `json:"issue_type"`
	IsDuplicate bool      `json:"is_duplicate,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks if the issue document has valid field values
func (d *IssueDocument) Validate() error {
	if len(d.Title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(d.Title) > 500 {
		return fmt.Errorf("title must be 500 characters or less (got %d)", len(d.Title))
	}
	if !d.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", d.Status)
	}
	if !d.IssueType.IsValid() {
		return fmt.Errorf("invalid issue type: %s", d.IssueType)
	}
	return nil
}

// Text returns the searchable text of the issue: title plus description.
// Both similarity strategies score over this exact concatenation.
func (d *IssueDocument) Text() string {
	if d.Description == "" {
		return d.Title
	}
	return d.Title + " " + d.Description
}

// Live reports whether the issue belongs in a duplicate-detection corpus:
// not in a terminal status and not already flagged as a duplicate.
func (d *IssueDocument) Live() bool {
	return !d.Status.IsTerminal() && !d.IsDuplicate
}

// Status represents the workflow state of an issue
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
	StatusClosed     Status = "closed"
	StatusWontFix    Status = "wont_fix"
)

// IsValid checks if the status value is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusReview, StatusDone, StatusClosed, StatusWontFix:
		return true
	}
	return false
}

// IsTerminal reports whether the status is closed-like. Terminal issues are
// excluded from duplicate-detection corpora.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDone, StatusClosed, StatusWontFix:
		return true
	}
	return false
}

// IssueType categorizes the kind of work
type IssueType string

const (
	TypeBug         IssueType = "bug"
	TypeTask        IssueType = "task"
	TypeSubTask     IssueType = "sub_task"
	TypeStory       IssueType = "story"
	TypeImprovement IssueType = "improvement"
)

// IsValid checks if the issue type value is valid
func (t IssueType) IsValid() bool {
	switch t {
	case TypeBug, TypeTask, TypeSubTask, TypeStory, TypeImprovement:
		return true
	}
	return false
}
