// Package sqlite provides a SQLite-backed corpus provider: the read side of
// a tracker database, plus the seeding operations needed to build one.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/krishnaVerma87/new-trakly/internal/corpus"
	"github.com/krishnaVerma87/new-trakly/internal/dedup"
	"github.com/krishnaVerma87/new-trakly/internal/types"
)

// Store reads and seeds issue corpora in a SQLite database.
type Store struct {
	db *sql.DB
}

// Compile-time check that Store implements corpus.Provider
var _ corpus.Provider = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS issues (
	id                  TEXT PRIMARY KEY,
	issue_key           TEXT NOT NULL,
	project_id          TEXT NOT NULL,
	title               TEXT NOT NULL,
	description         TEXT,
	status              TEXT NOT NULL,
	issue_type          TEXT NOT NULL,
	is_duplicate        INTEGER NOT NULL DEFAULT 0,
	deduplication_hash  TEXT NOT NULL,
	created_at          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_issues_project ON issues(project_id);
CREATE INDEX IF NOT EXISTS idx_issues_status ON issues(status);
CREATE INDEX IF NOT EXISTS idx_issues_dedup_hash ON issues(project_id, deduplication_hash);
`

// Open opens (creating if needed) the corpus database at path. The special
// path ":memory:" creates an in-memory database, useful for tests.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		dsn = "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// terminalStatuses mirrors types.Status.IsTerminal for use in SQL.
func terminalStatuses() string {
	terminal := []types.Status{types.StatusDone, types.StatusClosed, types.StatusWontFix}
	quoted := make([]string, len(terminal))
	for i, st := range terminal {
		quoted[i] = "'" + string(st) + "'"
	}
	return strings.Join(quoted, ", ")
}

// LiveIssues returns the duplicate-detection corpus for projectID: all
// issues not in a terminal status and not flagged as duplicates, ordered by
// creation time then id so ranking tie-breaks are deterministic.
func (s *Store) LiveIssues(ctx context.Context, projectID string) ([]types.IssueDocument, error) {
	query := fmt.Sprintf(`
		SELECT id, issue_key, project_id, title, COALESCE(description, ''),
		       status, issue_type, is_duplicate, created_at
		FROM issues
		WHERE project_id = ? AND is_duplicate = 0 AND status NOT IN (%s)
		ORDER BY created_at, id`, terminalStatuses())

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query live issues: %w", err)
	}
	defer rows.Close()

	var issues []types.IssueDocument
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate live issues: %w", err)
	}
	return issues, nil
}

// AddIssue inserts an issue into the corpus database. A missing ID gets a
// fresh UUID, a missing key gets a per-project sequence key, a missing
// status defaults to new and a zero created_at defaults to the current
// time. The deduplication hash is computed from the stored title and
// description, the same way the engine computes it at check time.
func (s *Store) AddIssue(ctx context.Context, issue *types.IssueDocument) error {
	if issue == nil {
		return fmt.Errorf("issue cannot be nil")
	}
	if issue.ProjectID == "" {
		return fmt.Errorf("project_id is required")
	}
	if issue.Status == "" {
		issue.Status = types.StatusNew
	}
	if issue.IssueType == "" {
		issue.IssueType = types.TypeTask
	}
	if err := issue.Validate(); err != nil {
		return fmt.Errorf("invalid issue: %w", err)
	}
	if issue.ID == "" {
		issue.ID = uuid.NewString()
	}
	if issue.CreatedAt.IsZero() {
		issue.CreatedAt = time.Now().UTC()
	}
	if issue.Key == "" {
		key, err := s.nextKey(ctx, issue.ProjectID)
		if err != nil {
			return err
		}
		issue.Key = key
	}

	hash := dedup.GenerateHash(issue.Title, issue.Description)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO issues (id, issue_key, project_id, title, description,
		                    status, issue_type, is_duplicate, deduplication_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		issue.ID, issue.Key, issue.ProjectID, issue.Title, issue.Description,
		string(issue.Status), string(issue.IssueType), boolToInt(issue.IsDuplicate),
		hash, issue.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert issue: %w", err)
	}
	return nil
}

// FindByHash looks up an issue by its exact deduplication hash within a
// project. Returns (nil, nil) when no issue matches: the caller treats
// that as "no exact duplicate", not an error.
func (s *Store) FindByHash(ctx context.Context, projectID, hash string) (*types.IssueDocument, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, issue_key, project_id, title, COALESCE(description, ''),
		       status, issue_type, is_duplicate, created_at
		FROM issues
		WHERE project_id = ? AND deduplication_hash = ?
		ORDER BY created_at, id
		LIMIT 1`, projectID, hash)

	issue, err := scanIssue(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// CountIssues returns the number of issues stored for projectID.
func (s *Store) CountIssues(ctx context.Context, projectID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM issues WHERE project_id = ?`, projectID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count issues: %w", err)
	}
	return n, nil
}

// nextKey assigns the next sequential issue key for a project, e.g. the
// third issue of project "payments" becomes PAYM-3.
func (s *Store) nextKey(ctx context.Context, projectID string) (string, error) {
	n, err := s.CountIssues(ctx, projectID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d", keyPrefix(projectID), n+1), nil
}

// keyPrefix derives an uppercase prefix from the first four alphanumeric
// characters of the project id, falling back to "ISS".
func keyPrefix(projectID string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(projectID) {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() >= 4 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "ISS"
	}
	return b.String()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanIssue(row scanner) (types.IssueDocument, error) {
	var issue types.IssueDocument
	var status, issueType, createdAt string
	var isDuplicate int

	err := row.Scan(&issue.ID, &issue.Key, &issue.ProjectID, &issue.Title,
		&issue.Description, &status, &issueType, &isDuplicate, &createdAt)
	if err == sql.ErrNoRows {
		return issue, err
	}
	if err != nil {
		return issue, fmt.Errorf("failed to scan issue: %w", err)
	}

	issue.Status = types.Status(status)
	issue.IssueType = types.IssueType(issueType)
	issue.IsDuplicate = isDuplicate != 0
	issue.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return issue, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
	}
	return issue, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
