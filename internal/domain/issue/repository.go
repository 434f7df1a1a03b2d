package issue

import (
	"context"
	"time"

	vo "orbit/internal/domain/issue/valueobjects"
)

type IssueRepository interface {
	Save(ctx context.Context, i *Issue) error
	Update(ctx context.Context, i *Issue) error
	// UpdateStatus writes the status change with a compare-and-swap on the
	// previous status. It returns ErrStaleStatus (wrapped by the caller into
	// a conflict error) when the row no longer holds fromStatus.
	UpdateStatus(ctx context.Context, issueID uint, fromStatus, toStatus vo.IssueStatus, updatedAt time.Time, resolvedAt *time.Time) error
	GetByID(ctx context.Context, issueID uint) (*Issue, error)
	List(ctx context.Context, filter IssueFilter) ([]*Issue, int64, error)
}

type IssueFilter struct {
	Status     *vo.IssueStatus
	Type       *vo.IssueType
	Priority   *vo.Priority
	CreatorID  *uint
	AssigneeID *uint
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

type WorkflowStepRepository interface {
	Save(ctx context.Context, s *WorkflowStep) error
	Update(ctx context.Context, s *WorkflowStep) error
	GetByID(ctx context.Context, stepID uint) (*WorkflowStep, error)
	ListByIssue(ctx context.Context, issueID uint) ([]*WorkflowStep, error)
	// FindPendingByIssue returns the pending step for an issue, or nil when
	// none exists. In normal operation at most one step is pending per issue.
	FindPendingByIssue(ctx context.Context, issueID uint) (*WorkflowStep, error)
}

type CommentRepository interface {
	Save(ctx context.Context, c *Comment) error
	ListByIssue(ctx context.Context, issueID uint, page, pageSize int) ([]*Comment, int64, error)
}
