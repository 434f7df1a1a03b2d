package usecases

import (
	"context"
	"time"

	"orbit/internal/domain/issue"
	vo "orbit/internal/domain/issue/valueobjects"
	"orbit/internal/domain/user"
	"orbit/internal/shared/authorization"
	"orbit/internal/shared/logger"
)

type mockIssueRepository struct {
	SaveFunc         func(ctx context.Context, i *issue.Issue) error
	UpdateFunc       func(ctx context.Context, i *issue.Issue) error
	UpdateStatusFunc func(ctx context.Context, issueID uint, fromStatus, toStatus vo.IssueStatus, updatedAt time.Time, resolvedAt *time.Time) error
	GetByIDFunc      func(ctx context.Context, issueID uint) (*issue.Issue, error)
	ListFunc         func(ctx context.Context, filter issue.IssueFilter) ([]*issue.Issue, int64, error)
}

func (m *mockIssueRepository) Save(ctx context.Context, i *issue.Issue) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, i)
	}
	return nil
}

func (m *mockIssueRepository) Update(ctx context.Context, i *issue.Issue) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, i)
	}
	return nil
}

func (m *mockIssueRepository) UpdateStatus(ctx context.Context, issueID uint, fromStatus, toStatus vo.IssueStatus, updatedAt time.Time, resolvedAt *time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, issueID, fromStatus, toStatus, updatedAt, resolvedAt)
	}
	return nil
}

func (m *mockIssueRepository) GetByID(ctx context.Context, issueID uint) (*issue.Issue, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, issueID)
	}
	return nil, issue.ErrIssueNotFound
}

func (m *mockIssueRepository) List(ctx context.Context, filter issue.IssueFilter) ([]*issue.Issue, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockStepRepository struct {
	SaveFunc               func(ctx context.Context, s *issue.WorkflowStep) error
	UpdateFunc             func(ctx context.Context, s *issue.WorkflowStep) error
	GetByIDFunc            func(ctx context.Context, stepID uint) (*issue.WorkflowStep, error)
	ListByIssueFunc        func(ctx context.Context, issueID uint) ([]*issue.WorkflowStep, error)
	FindPendingByIssueFunc func(ctx context.Context, issueID uint) (*issue.WorkflowStep, error)
}

func (m *mockStepRepository) Save(ctx context.Context, s *issue.WorkflowStep) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, s)
	}
	return s.SetID(1)
}

func (m *mockStepRepository) Update(ctx context.Context, s *issue.WorkflowStep) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	return nil
}

func (m *mockStepRepository) GetByID(ctx context.Context, stepID uint) (*issue.WorkflowStep, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, stepID)
	}
	return nil, issue.ErrStepNotFound
}

func (m *mockStepRepository) ListByIssue(ctx context.Context, issueID uint) ([]*issue.WorkflowStep, error) {
	if m.ListByIssueFunc != nil {
		return m.ListByIssueFunc(ctx, issueID)
	}
	return nil, nil
}

func (m *mockStepRepository) FindPendingByIssue(ctx context.Context, issueID uint) (*issue.WorkflowStep, error) {
	if m.FindPendingByIssueFunc != nil {
		return m.FindPendingByIssueFunc(ctx, issueID)
	}
	return nil, nil
}

type mockCommentRepository struct {
	SaveFunc        func(ctx context.Context, c *issue.Comment) error
	ListByIssueFunc func(ctx context.Context, issueID uint, page, pageSize int) ([]*issue.Comment, int64, error)
}

func (m *mockCommentRepository) Save(ctx context.Context, c *issue.Comment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

func (m *mockCommentRepository) ListByIssue(ctx context.Context, issueID uint, page, pageSize int) ([]*issue.Comment, int64, error) {
	if m.ListByIssueFunc != nil {
		return m.ListByIssueFunc(ctx, issueID, page, pageSize)
	}
	return nil, 0, nil
}

type mockUserRepository struct {
	SaveFunc             func(ctx context.Context, u *user.User) error
	GetByIDFunc          func(ctx context.Context, id uint) (*user.User, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*user.User, error)
	FindActiveByRoleFunc func(ctx context.Context, role authorization.UserRole) (*user.User, error)
	ExistsFunc           func(ctx context.Context, id uint) (bool, error)
}

func (m *mockUserRepository) Save(ctx context.Context, u *user.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) FindActiveByRole(ctx context.Context, role authorization.UserRole) (*user.User, error) {
	if m.FindActiveByRoleFunc != nil {
		return m.FindActiveByRoleFunc(ctx, role)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return true, nil
}

type approvalRequiredCall struct {
	ApproverID uint
	IssueID    uint
	StepType   vo.WorkflowStepType
}

type statusChangedCall struct {
	UserID uint
	From   string
	To     string
}

type mockDispatcher struct {
	ApprovalRequired []approvalRequiredCall
	StatusChanged    []statusChangedCall
}

func (m *mockDispatcher) NotifyApprovalRequired(ctx context.Context, approverID uint, iss *issue.Issue, step *issue.WorkflowStep) {
	m.ApprovalRequired = append(m.ApprovalRequired, approvalRequiredCall{
		ApproverID: approverID,
		IssueID:    iss.ID(),
		StepType:   step.StepType(),
	})
}

func (m *mockDispatcher) NotifyStatusChanged(ctx context.Context, userID uint, iss *issue.Issue, from, to string) {
	m.StatusChanged = append(m.StatusChanged, statusChangedCall{UserID: userID, From: from, To: to})
}

type commentCall struct {
	IssueID  uint
	AuthorID uint
	Content  string
}

type mockCommentCreator struct {
	AddCommentFunc func(ctx context.Context, issueID, authorID uint, content string) error
	Calls          []commentCall
}

func (m *mockCommentCreator) AddComment(ctx context.Context, issueID, authorID uint, content string) error {
	m.Calls = append(m.Calls, commentCall{IssueID: issueID, AuthorID: authorID, Content: content})
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, issueID, authorID, content)
	}
	return nil
}

type mockTxManager struct {
	RunInTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockLogger struct {
	WarnwCalls []string
}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) Fatal(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	m.WarnwCalls = append(m.WarnwCalls, msg)
}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

func testIssue(id uint, status vo.IssueStatus) *issue.Issue {
	iss, err := issue.ReconstructIssue(
		id,
		"Checkout button unresponsive",
		"Clicking checkout does nothing on Safari",
		vo.TypeBug,
		vo.PriorityHigh,
		status,
		2,
		nil,
		nil,
		nil,
		1,
		time.Now().Add(-2*time.Hour),
		time.Now().Add(-1*time.Hour),
		nil,
	)
	if err != nil {
		panic(err)
	}
	return iss
}

func testStep(id, issueID uint, stepType vo.WorkflowStepType, approverID *uint) *issue.WorkflowStep {
	step, err := issue.ReconstructWorkflowStep(
		id,
		issueID,
		stepType,
		vo.StepStatusPending,
		approverID,
		"",
		time.Now().Add(-30*time.Minute),
		nil,
	)
	if err != nil {
		panic(err)
	}
	return step
}

func uintPtr(v uint) *uint {
	return &v
}
