package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbit/internal/domain/issue"
	vo "orbit/internal/domain/issue/valueobjects"
	"orbit/internal/domain/user"
	"orbit/internal/shared/authorization"
)

func TestCreateStepUseCase_Execute_PicksApproverByRole(t *testing.T) {
	iss := testIssue(1, vo.StatusQAReview)
	qa, err := user.ReconstructUser(
		12, "QA Lead", "qa@orbit.local", "hash",
		authorization.RoleQA, user.StatusActive, time.Now(), time.Now(),
	)
	require.NoError(t, err)

	issueRepo := &mockIssueRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
			return iss, nil
		},
	}
	stepRepo := &mockStepRepository{
		SaveFunc: func(ctx context.Context, s *issue.WorkflowStep) error {
			return s.SetID(21)
		},
	}
	userRepo := &mockUserRepository{
		FindActiveByRoleFunc: func(ctx context.Context, role authorization.UserRole) (*user.User, error) {
			require.Equal(t, authorization.RoleQA, role)
			return qa, nil
		},
	}
	dispatcher := &mockDispatcher{}

	uc := NewCreateStepUseCase(issueRepo, stepRepo, userRepo, dispatcher, &mockLogger{})

	result, err := uc.Execute(context.Background(), CreateStepCommand{
		IssueID:  1,
		StepType: "qa_review",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(21), result.ID)
	assert.Equal(t, "qa_review", result.StepType)
	assert.Equal(t, vo.StepStatusPending.String(), result.Status)
	require.NotNil(t, result.ApproverID)
	assert.Equal(t, uint(12), *result.ApproverID)

	require.Len(t, dispatcher.ApprovalRequired, 1)
	assert.Equal(t, uint(12), dispatcher.ApprovalRequired[0].ApproverID)
}

func TestCreateStepUseCase_Execute_NoRoleHolder(t *testing.T) {
	iss := testIssue(1, vo.StatusInProgress)
	issueRepo := &mockIssueRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
			return iss, nil
		},
	}
	dispatcher := &mockDispatcher{}

	uc := NewCreateStepUseCase(issueRepo, &mockStepRepository{}, &mockUserRepository{}, dispatcher, &mockLogger{})

	result, err := uc.Execute(context.Background(), CreateStepCommand{
		IssueID:  1,
		StepType: "dev_review",
	})

	require.NoError(t, err)
	assert.Nil(t, result.ApproverID)
	assert.Empty(t, dispatcher.ApprovalRequired)
}

func TestCreateStepUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name          string
		command       CreateStepCommand
		expectedError string
	}{
		{
			name:          "missing issue ID",
			command:       CreateStepCommand{StepType: "dev_review"},
			expectedError: "issue ID is required",
		},
		{
			name:          "invalid step type",
			command:       CreateStepCommand{IssueID: 1, StepType: "design_review"},
			expectedError: "invalid workflow step type",
		},
		{
			name:          "issue not found",
			command:       CreateStepCommand{IssueID: 99, StepType: "dev_review"},
			expectedError: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCreateStepUseCase(&mockIssueRepository{}, &mockStepRepository{}, &mockUserRepository{}, nil, &mockLogger{})

			result, err := uc.Execute(context.Background(), tt.command)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}
