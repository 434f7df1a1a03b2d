package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbit/internal/domain/issue"
	vo "orbit/internal/domain/issue/valueobjects"
	"orbit/internal/shared/authorization"
)

func TestApproveStepUseCase_Execute_AdvancesIssue(t *testing.T) {
	tests := []struct {
		name        string
		stepType    vo.WorkflowStepType
		issueStatus vo.IssueStatus
		wantStatus  vo.IssueStatus
	}{
		{
			name:        "dev review approval moves issue to qa review",
			stepType:    vo.StepTypeDevReview,
			issueStatus: vo.StatusInProgress,
			wantStatus:  vo.StatusQAReview,
		},
		{
			name:        "qa review approval moves issue to pm review",
			stepType:    vo.StepTypeQAReview,
			issueStatus: vo.StatusQAReview,
			wantStatus:  vo.StatusPMReview,
		},
		{
			name:        "pm review approval resolves issue",
			stepType:    vo.StepTypePMReview,
			issueStatus: vo.StatusPMReview,
			wantStatus:  vo.StatusResolved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iss := testIssue(1, tt.issueStatus)
			step := testStep(10, 1, tt.stepType, uintPtr(9))

			var casFrom, casTo vo.IssueStatus
			var casResolvedAt *time.Time
			issueRepo := &mockIssueRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
					return iss, nil
				},
				UpdateStatusFunc: func(ctx context.Context, issueID uint, from, to vo.IssueStatus, updatedAt time.Time, resolvedAt *time.Time) error {
					casFrom, casTo, casResolvedAt = from, to, resolvedAt
					return nil
				},
			}
			stepUpdated := false
			stepRepo := &mockStepRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*issue.WorkflowStep, error) {
					return step, nil
				},
				UpdateFunc: func(ctx context.Context, s *issue.WorkflowStep) error {
					stepUpdated = true
					return nil
				},
			}

			uc := NewApproveStepUseCase(issueRepo, stepRepo, nil, &mockTxManager{}, &mockLogger{})

			result, err := uc.Execute(context.Background(), ApproveStepCommand{
				StepID:       10,
				ApproverID:   9,
				ApproverRole: tt.stepType.RequiredRole(),
				Comments:     "looks good",
			})

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, stepUpdated)
			assert.Equal(t, tt.issueStatus, casFrom)
			assert.Equal(t, tt.wantStatus, casTo)
			assert.Equal(t, vo.StepStatusApproved.String(), result.Step.Status)
			assert.Equal(t, "looks good", result.Step.Comments)
			require.NotNil(t, result.Step.CompletedAt)
			assert.Equal(t, tt.wantStatus.String(), result.Issue.Status)

			if tt.wantStatus.IsResolved() {
				assert.NotNil(t, casResolvedAt, "resolving must stamp resolved_at")
				assert.NotNil(t, result.Issue.ResolvedAt)
			} else {
				assert.Nil(t, casResolvedAt)
			}
		})
	}
}

func TestRejectStepUseCase_Execute_RevertsIssue(t *testing.T) {
	tests := []struct {
		name        string
		stepType    vo.WorkflowStepType
		issueStatus vo.IssueStatus
		wantStatus  vo.IssueStatus
	}{
		{
			name:        "dev review rejection keeps issue in progress",
			stepType:    vo.StepTypeDevReview,
			issueStatus: vo.StatusInProgress,
			wantStatus:  vo.StatusInProgress,
		},
		{
			name:        "qa review rejection sends issue back to dev review",
			stepType:    vo.StepTypeQAReview,
			issueStatus: vo.StatusQAReview,
			wantStatus:  vo.StatusDevReview,
		},
		{
			name:        "pm review rejection sends issue back to qa review",
			stepType:    vo.StepTypePMReview,
			issueStatus: vo.StatusPMReview,
			wantStatus:  vo.StatusQAReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iss := testIssue(1, tt.issueStatus)
			step := testStep(10, 1, tt.stepType, uintPtr(9))

			var casTo vo.IssueStatus
			issueRepo := &mockIssueRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
					return iss, nil
				},
				UpdateStatusFunc: func(ctx context.Context, issueID uint, from, to vo.IssueStatus, updatedAt time.Time, resolvedAt *time.Time) error {
					casTo = to
					return nil
				},
			}
			stepRepo := &mockStepRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*issue.WorkflowStep, error) {
					return step, nil
				},
			}

			uc := NewRejectStepUseCase(issueRepo, stepRepo, nil, &mockTxManager{}, &mockLogger{})

			result, err := uc.Execute(context.Background(), RejectStepCommand{
				StepID:       10,
				ApproverID:   9,
				ApproverRole: tt.stepType.RequiredRole(),
				Comments:     "needs more work on the error paths",
			})

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.wantStatus, casTo)
			assert.Equal(t, vo.StepStatusRejected.String(), result.Step.Status)
			assert.Equal(t, tt.wantStatus.String(), result.Issue.Status)
		})
	}
}

func TestRejectStepUseCase_Execute_RequiresComment(t *testing.T) {
	tests := []struct {
		name     string
		comments string
	}{
		{name: "empty", comments: ""},
		{name: "too short", comments: "bad"},
		{name: "whitespace only", comments: "        "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stepRepo := &mockStepRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*issue.WorkflowStep, error) {
					t.Fatal("step must not be loaded when the comment is invalid")
					return nil, nil
				},
			}

			uc := NewRejectStepUseCase(&mockIssueRepository{}, stepRepo, nil, &mockTxManager{}, &mockLogger{})

			result, err := uc.Execute(context.Background(), RejectStepCommand{
				StepID:       10,
				ApproverID:   9,
				ApproverRole: authorization.RoleDeveloper,
				Comments:     tt.comments,
			})

			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), "rejection comments are required")
		})
	}
}

func TestResolveStep_ApproverChecks(t *testing.T) {
	tests := []struct {
		name          string
		approverID    *uint
		resolverID    uint
		resolverRole  authorization.UserRole
		expectedError string
	}{
		{
			name:          "designated approver mismatch",
			approverID:    uintPtr(9),
			resolverID:    4,
			resolverRole:  authorization.RoleDeveloper,
			expectedError: "designated approver",
		},
		{
			name:          "unassigned step requires the role",
			approverID:    nil,
			resolverID:    4,
			resolverRole:  authorization.RoleQA,
			expectedError: "requires the developer role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := testStep(10, 1, vo.StepTypeDevReview, tt.approverID)
			stepRepo := &mockStepRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*issue.WorkflowStep, error) {
					return step, nil
				},
			}

			uc := NewApproveStepUseCase(&mockIssueRepository{}, stepRepo, nil, &mockTxManager{}, &mockLogger{})

			result, err := uc.Execute(context.Background(), ApproveStepCommand{
				StepID:       10,
				ApproverID:   tt.resolverID,
				ApproverRole: tt.resolverRole,
			})

			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), tt.expectedError)
			assert.True(t, step.Status().IsPending(), "step must stay pending")
		})
	}
}

func TestResolveStep_AdminOverride(t *testing.T) {
	iss := testIssue(1, vo.StatusInProgress)
	step := testStep(10, 1, vo.StepTypeDevReview, uintPtr(9))

	issueRepo := &mockIssueRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
			return iss, nil
		},
	}
	stepRepo := &mockStepRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.WorkflowStep, error) {
			return step, nil
		},
	}

	uc := NewApproveStepUseCase(issueRepo, stepRepo, nil, &mockTxManager{}, &mockLogger{})

	// Admin resolves a step designated to user 9.
	result, err := uc.Execute(context.Background(), ApproveStepCommand{
		StepID:       10,
		ApproverID:   2,
		ApproverRole: authorization.RoleAdmin,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, vo.StepStatusApproved.String(), result.Step.Status)
	require.NotNil(t, result.Step.ApproverID)
	assert.Equal(t, uint(2), *result.Step.ApproverID)
}

func TestResolveStep_AlreadyResolvedConflict(t *testing.T) {
	completed := time.Now().Add(-10 * time.Minute)
	step, err := issue.ReconstructWorkflowStep(
		10, 1, vo.StepTypeDevReview, vo.StepStatusApproved,
		uintPtr(9), "shipped", time.Now().Add(-time.Hour), &completed,
	)
	require.NoError(t, err)

	stepRepo := &mockStepRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.WorkflowStep, error) {
			return step, nil
		},
	}

	uc := NewRejectStepUseCase(&mockIssueRepository{}, stepRepo, nil, &mockTxManager{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), RejectStepCommand{
		StepID:       10,
		ApproverID:   9,
		ApproverRole: authorization.RoleDeveloper,
		Comments:     "changed my mind about this",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "already approved")
}

func TestResolveStep_StepNotFound(t *testing.T) {
	uc := NewApproveStepUseCase(&mockIssueRepository{}, &mockStepRepository{}, nil, &mockTxManager{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), ApproveStepCommand{
		StepID:       99,
		ApproverID:   9,
		ApproverRole: authorization.RoleDeveloper,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "not found")
}

func TestResolveStep_TransactionFailureRollsUp(t *testing.T) {
	iss := testIssue(1, vo.StatusInProgress)
	step := testStep(10, 1, vo.StepTypeDevReview, uintPtr(9))

	issueRepo := &mockIssueRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
			return iss, nil
		},
		UpdateStatusFunc: func(ctx context.Context, issueID uint, from, to vo.IssueStatus, updatedAt time.Time, resolvedAt *time.Time) error {
			return issue.ErrStaleStatus
		},
	}
	stepRepo := &mockStepRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.WorkflowStep, error) {
			return step, nil
		},
	}

	uc := NewApproveStepUseCase(issueRepo, stepRepo, nil, &mockTxManager{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), ApproveStepCommand{
		StepID:       10,
		ApproverID:   9,
		ApproverRole: authorization.RoleDeveloper,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "concurrently")
}

func TestResolveStep_StepUpdateFailure(t *testing.T) {
	iss := testIssue(1, vo.StatusInProgress)
	step := testStep(10, 1, vo.StepTypeDevReview, uintPtr(9))

	statusWritten := false
	issueRepo := &mockIssueRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
			return iss, nil
		},
		UpdateStatusFunc: func(ctx context.Context, issueID uint, from, to vo.IssueStatus, updatedAt time.Time, resolvedAt *time.Time) error {
			statusWritten = true
			return nil
		},
	}
	stepRepo := &mockStepRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.WorkflowStep, error) {
			return step, nil
		},
		UpdateFunc: func(ctx context.Context, s *issue.WorkflowStep) error {
			return errors.New("write failed")
		},
	}

	uc := NewApproveStepUseCase(issueRepo, stepRepo, nil, &mockTxManager{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), ApproveStepCommand{
		StepID:       10,
		ApproverID:   9,
		ApproverRole: authorization.RoleDeveloper,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.False(t, statusWritten, "issue status must not change when the step write fails")
}
