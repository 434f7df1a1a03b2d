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
	"orbit/internal/domain/user"
	"orbit/internal/shared/authorization"
)

func TestRequestTransitionUseCase_Execute_DirectTransitions(t *testing.T) {
	tests := []struct {
		name string
		from vo.IssueStatus
		to   vo.IssueStatus
	}{
		{
			name: "start work",
			from: vo.StatusNew,
			to:   vo.StatusInProgress,
		},
		{
			name: "send back from dev review",
			from: vo.StatusDevReview,
			to:   vo.StatusInProgress,
		},
		{
			name: "reject from qa review",
			from: vo.StatusQAReview,
			to:   vo.StatusRejected,
		},
		{
			name: "reopen resolved issue",
			from: vo.StatusResolved,
			to:   vo.StatusNew,
		},
		{
			name: "reopen rejected issue",
			from: vo.StatusRejected,
			to:   vo.StatusNew,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iss := testIssue(1, tt.from)
			var casFrom, casTo vo.IssueStatus

			issueRepo := &mockIssueRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
					return iss, nil
				},
				UpdateStatusFunc: func(ctx context.Context, issueID uint, from, to vo.IssueStatus, updatedAt time.Time, resolvedAt *time.Time) error {
					casFrom, casTo = from, to
					return nil
				},
			}

			uc := NewRequestTransitionUseCase(issueRepo, &mockStepRepository{}, &mockUserRepository{}, nil, nil, &mockLogger{})

			result, err := uc.Execute(context.Background(), RequestTransitionCommand{
				IssueID:     1,
				ToStatus:    tt.to.String(),
				RequestedBy: 5,
			})

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, TransitionOutcomeApplied, result.Outcome)
			assert.Equal(t, tt.from.String(), result.FromStatus)
			assert.Equal(t, tt.to.String(), result.ToStatus)
			assert.Nil(t, result.Step)
			assert.Equal(t, tt.to.String(), result.Issue.Status)
			assert.Equal(t, tt.from, casFrom)
			assert.Equal(t, tt.to, casTo)
		})
	}
}

func TestRequestTransitionUseCase_Execute_GatedTransitionCreatesStep(t *testing.T) {
	tests := []struct {
		name         string
		from         vo.IssueStatus
		to           vo.IssueStatus
		stepType     vo.WorkflowStepType
		approverRole authorization.UserRole
	}{
		{
			name:         "submit for dev review",
			from:         vo.StatusInProgress,
			to:           vo.StatusDevReview,
			stepType:     vo.StepTypeDevReview,
			approverRole: authorization.RoleDeveloper,
		},
		{
			name:         "advance to pm review",
			from:         vo.StatusQAReview,
			to:           vo.StatusPMReview,
			stepType:     vo.StepTypeQAReview,
			approverRole: authorization.RoleQA,
		},
		{
			name:         "resolve from pm review",
			from:         vo.StatusPMReview,
			to:           vo.StatusResolved,
			stepType:     vo.StepTypePMReview,
			approverRole: authorization.RoleProductManager,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iss := testIssue(1, tt.from)
			approver, err := user.ReconstructUser(
				9, "Reviewer", "reviewer@orbit.local", "hash",
				tt.approverRole, user.StatusActive, time.Now(), time.Now(),
			)
			require.NoError(t, err)

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
			var savedStep *issue.WorkflowStep
			stepRepo := &mockStepRepository{
				SaveFunc: func(ctx context.Context, s *issue.WorkflowStep) error {
					savedStep = s
					return s.SetID(42)
				},
			}
			var lookedUpRole authorization.UserRole
			userRepo := &mockUserRepository{
				FindActiveByRoleFunc: func(ctx context.Context, role authorization.UserRole) (*user.User, error) {
					lookedUpRole = role
					return approver, nil
				},
			}
			dispatcher := &mockDispatcher{}

			uc := NewRequestTransitionUseCase(issueRepo, stepRepo, userRepo, nil, dispatcher, &mockLogger{})

			result, err := uc.Execute(context.Background(), RequestTransitionCommand{
				IssueID:     1,
				ToStatus:    tt.to.String(),
				RequestedBy: 5,
			})

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, TransitionOutcomePendingApproval, result.Outcome)
			assert.False(t, statusWritten, "gated transition must not change status")
			assert.Equal(t, tt.from.String(), result.Issue.Status)
			assert.Equal(t, tt.approverRole, lookedUpRole)

			require.NotNil(t, savedStep)
			assert.Equal(t, tt.stepType, savedStep.StepType())
			assert.True(t, savedStep.Status().IsPending())
			require.NotNil(t, savedStep.ApproverID())
			assert.Equal(t, uint(9), *savedStep.ApproverID())

			require.NotNil(t, result.Step)
			assert.Equal(t, uint(42), result.Step.ID)

			require.Len(t, dispatcher.ApprovalRequired, 1)
			assert.Equal(t, uint(9), dispatcher.ApprovalRequired[0].ApproverID)
			assert.Equal(t, tt.stepType, dispatcher.ApprovalRequired[0].StepType)
		})
	}
}

func TestRequestTransitionUseCase_Execute_GatedWithoutApprover(t *testing.T) {
	iss := testIssue(1, vo.StatusInProgress)
	issueRepo := &mockIssueRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
			return iss, nil
		},
	}
	var savedStep *issue.WorkflowStep
	stepRepo := &mockStepRepository{
		SaveFunc: func(ctx context.Context, s *issue.WorkflowStep) error {
			savedStep = s
			return s.SetID(7)
		},
	}
	dispatcher := &mockDispatcher{}

	uc := NewRequestTransitionUseCase(issueRepo, stepRepo, &mockUserRepository{}, nil, dispatcher, &mockLogger{})

	result, err := uc.Execute(context.Background(), RequestTransitionCommand{
		IssueID:     1,
		ToStatus:    vo.StatusDevReview.String(),
		RequestedBy: 5,
	})

	require.NoError(t, err)
	assert.Equal(t, TransitionOutcomePendingApproval, result.Outcome)
	require.NotNil(t, savedStep)
	assert.Nil(t, savedStep.ApproverID())
	assert.Empty(t, dispatcher.ApprovalRequired, "no approver means no notification")
}

func TestRequestTransitionUseCase_Execute_ExplicitApproverSkipsLookup(t *testing.T) {
	iss := testIssue(1, vo.StatusInProgress)
	issueRepo := &mockIssueRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
			return iss, nil
		},
	}
	var savedStep *issue.WorkflowStep
	stepRepo := &mockStepRepository{
		SaveFunc: func(ctx context.Context, s *issue.WorkflowStep) error {
			savedStep = s
			return s.SetID(7)
		},
	}
	userRepo := &mockUserRepository{
		FindActiveByRoleFunc: func(ctx context.Context, role authorization.UserRole) (*user.User, error) {
			t.Fatal("approver lookup should not run when an approver is given")
			return nil, nil
		},
	}

	uc := NewRequestTransitionUseCase(issueRepo, stepRepo, userRepo, nil, &mockDispatcher{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), RequestTransitionCommand{
		IssueID:     1,
		ToStatus:    vo.StatusDevReview.String(),
		RequestedBy: 5,
		ApproverID:  uintPtr(33),
	})

	require.NoError(t, err)
	require.NotNil(t, savedStep)
	require.NotNil(t, savedStep.ApproverID())
	assert.Equal(t, uint(33), *savedStep.ApproverID())
}

func TestRequestTransitionUseCase_Execute_PendingStepConflict(t *testing.T) {
	iss := testIssue(1, vo.StatusInProgress)
	pending := testStep(3, 1, vo.StepTypeDevReview, uintPtr(9))

	issueRepo := &mockIssueRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
			return iss, nil
		},
	}
	stepRepo := &mockStepRepository{
		FindPendingByIssueFunc: func(ctx context.Context, issueID uint) (*issue.WorkflowStep, error) {
			return pending, nil
		},
		SaveFunc: func(ctx context.Context, s *issue.WorkflowStep) error {
			t.Fatal("no step may be created while one is pending")
			return nil
		},
	}

	uc := NewRequestTransitionUseCase(issueRepo, stepRepo, &mockUserRepository{}, nil, nil, &mockLogger{})

	result, err := uc.Execute(context.Background(), RequestTransitionCommand{
		IssueID:     1,
		ToStatus:    vo.StatusDevReview.String(),
		RequestedBy: 5,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "pending")
}

func TestRequestTransitionUseCase_Execute_PendingStepBlocksDirectTransition(t *testing.T) {
	iss := testIssue(1, vo.StatusInProgress)
	pending := testStep(3, 1, vo.StepTypeDevReview, uintPtr(9))

	issueRepo := &mockIssueRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
			return iss, nil
		},
		UpdateStatusFunc: func(ctx context.Context, issueID uint, fromStatus, toStatus vo.IssueStatus, updatedAt time.Time, resolvedAt *time.Time) error {
			t.Fatal("no status may change while a step is pending")
			return nil
		},
	}
	stepRepo := &mockStepRepository{
		FindPendingByIssueFunc: func(ctx context.Context, issueID uint) (*issue.WorkflowStep, error) {
			return pending, nil
		},
	}

	uc := NewRequestTransitionUseCase(issueRepo, stepRepo, &mockUserRepository{}, nil, nil, &mockLogger{})

	result, err := uc.Execute(context.Background(), RequestTransitionCommand{
		IssueID:     1,
		ToStatus:    vo.StatusNew.String(),
		RequestedBy: 5,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "pending")
	assert.Equal(t, vo.StatusInProgress, iss.Status())
}

func TestRequestTransitionUseCase_Execute_InvalidTransition(t *testing.T) {
	tests := []struct {
		name string
		from vo.IssueStatus
		to   vo.IssueStatus
	}{
		{
			name: "new straight to resolved",
			from: vo.StatusNew,
			to:   vo.StatusResolved,
		},
		{
			name: "in_progress skipping dev review",
			from: vo.StatusInProgress,
			to:   vo.StatusQAReview,
		},
		{
			name: "new to rejected",
			from: vo.StatusNew,
			to:   vo.StatusRejected,
		},
		{
			name: "resolved to in_progress",
			from: vo.StatusResolved,
			to:   vo.StatusInProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iss := testIssue(1, tt.from)
			issueRepo := &mockIssueRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
					return iss, nil
				},
			}

			uc := NewRequestTransitionUseCase(issueRepo, &mockStepRepository{}, &mockUserRepository{}, nil, nil, &mockLogger{})

			result, err := uc.Execute(context.Background(), RequestTransitionCommand{
				IssueID:     1,
				ToStatus:    tt.to.String(),
				RequestedBy: 5,
			})

			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), "cannot transition")
			assert.Equal(t, tt.from, iss.Status(), "issue status must be untouched")
		})
	}
}

func TestRequestTransitionUseCase_Execute_StaleStatusConflict(t *testing.T) {
	iss := testIssue(1, vo.StatusNew)
	issueRepo := &mockIssueRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
			return iss, nil
		},
		UpdateStatusFunc: func(ctx context.Context, issueID uint, from, to vo.IssueStatus, updatedAt time.Time, resolvedAt *time.Time) error {
			return issue.ErrStaleStatus
		},
	}

	uc := NewRequestTransitionUseCase(issueRepo, &mockStepRepository{}, &mockUserRepository{}, nil, nil, &mockLogger{})

	result, err := uc.Execute(context.Background(), RequestTransitionCommand{
		IssueID:     1,
		ToStatus:    vo.StatusInProgress.String(),
		RequestedBy: 5,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "concurrently")
}

func TestRequestTransitionUseCase_Execute_IssueNotFound(t *testing.T) {
	issueRepo := &mockIssueRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
			return nil, issue.ErrIssueNotFound
		},
	}

	uc := NewRequestTransitionUseCase(issueRepo, &mockStepRepository{}, &mockUserRepository{}, nil, nil, &mockLogger{})

	result, err := uc.Execute(context.Background(), RequestTransitionCommand{
		IssueID:     99,
		ToStatus:    vo.StatusInProgress.String(),
		RequestedBy: 5,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "not found")
}

func TestRequestTransitionUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name          string
		command       RequestTransitionCommand
		expectedError string
	}{
		{
			name: "missing issue ID",
			command: RequestTransitionCommand{
				ToStatus:    "in_progress",
				RequestedBy: 5,
			},
			expectedError: "issue ID is required",
		},
		{
			name: "missing target status",
			command: RequestTransitionCommand{
				IssueID:     1,
				RequestedBy: 5,
			},
			expectedError: "target status is required",
		},
		{
			name: "missing requesting user",
			command: RequestTransitionCommand{
				IssueID:  1,
				ToStatus: "in_progress",
			},
			expectedError: "requesting user ID is required",
		},
		{
			name: "unknown status",
			command: RequestTransitionCommand{
				IssueID:     1,
				ToStatus:    "done",
				RequestedBy: 5,
			},
			expectedError: "invalid issue status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewRequestTransitionUseCase(&mockIssueRepository{}, &mockStepRepository{}, &mockUserRepository{}, nil, nil, &mockLogger{})

			result, err := uc.Execute(context.Background(), tt.command)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestRequestTransitionUseCase_Execute_CommentForwarded(t *testing.T) {
	iss := testIssue(1, vo.StatusNew)
	issueRepo := &mockIssueRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
			return iss, nil
		},
	}
	comments := &mockCommentCreator{}

	uc := NewRequestTransitionUseCase(issueRepo, &mockStepRepository{}, &mockUserRepository{}, comments, nil, &mockLogger{})

	_, err := uc.Execute(context.Background(), RequestTransitionCommand{
		IssueID:     1,
		ToStatus:    vo.StatusInProgress.String(),
		RequestedBy: 5,
		Comment:     "picking this up",
	})

	require.NoError(t, err)
	require.Len(t, comments.Calls, 1)
	assert.Equal(t, uint(1), comments.Calls[0].IssueID)
	assert.Equal(t, uint(5), comments.Calls[0].AuthorID)
	assert.Equal(t, "picking this up", comments.Calls[0].Content)
}

func TestRequestTransitionUseCase_Execute_CommentFailureDoesNotFailTransition(t *testing.T) {
	iss := testIssue(1, vo.StatusNew)
	issueRepo := &mockIssueRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
			return iss, nil
		},
	}
	comments := &mockCommentCreator{
		AddCommentFunc: func(ctx context.Context, issueID, authorID uint, content string) error {
			return errors.New("comment store down")
		},
	}
	log := &mockLogger{}

	uc := NewRequestTransitionUseCase(issueRepo, &mockStepRepository{}, &mockUserRepository{}, comments, nil, log)

	result, err := uc.Execute(context.Background(), RequestTransitionCommand{
		IssueID:     1,
		ToStatus:    vo.StatusInProgress.String(),
		RequestedBy: 5,
		Comment:     "picking this up",
	})

	require.NoError(t, err)
	assert.Equal(t, TransitionOutcomeApplied, result.Outcome)
	assert.NotEmpty(t, log.WarnwCalls)
}

func TestRequestTransitionUseCase_Execute_NotifiesAssigneeAndCreator(t *testing.T) {
	iss := testIssue(1, vo.StatusNew)
	require.NoError(t, iss.AssignTo(7))

	issueRepo := &mockIssueRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
			return iss, nil
		},
	}
	dispatcher := &mockDispatcher{}

	uc := NewRequestTransitionUseCase(issueRepo, &mockStepRepository{}, &mockUserRepository{}, nil, dispatcher, &mockLogger{})

	_, err := uc.Execute(context.Background(), RequestTransitionCommand{
		IssueID:     1,
		ToStatus:    vo.StatusInProgress.String(),
		RequestedBy: 7,
	})

	require.NoError(t, err)
	require.Len(t, dispatcher.StatusChanged, 2)
	assert.Equal(t, uint(7), dispatcher.StatusChanged[0].UserID)
	assert.Equal(t, uint(2), dispatcher.StatusChanged[1].UserID)
	assert.Equal(t, "new", dispatcher.StatusChanged[0].From)
	assert.Equal(t, "in_progress", dispatcher.StatusChanged[0].To)
}
