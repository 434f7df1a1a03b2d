package usecases

import (
	"context"
	"errors"

	"orbit/internal/domain/issue"
	vo "orbit/internal/domain/issue/valueobjects"
	"orbit/internal/domain/user"
	apperrors "orbit/internal/shared/errors"
	"orbit/internal/shared/logger"
)

// stepManager creates workflow steps and picks approvers for them. It is
// shared by the transition engine and the standalone step creation usecase.
type stepManager struct {
	stepRepo issue.WorkflowStepRepository
	userRepo user.UserRepository
	notifier NotificationDispatcher
	logger   logger.Interface
}

func newStepManager(stepRepo issue.WorkflowStepRepository, userRepo user.UserRepository, notifier NotificationDispatcher, log logger.Interface) *stepManager {
	return &stepManager{
		stepRepo: stepRepo,
		userRepo: userRepo,
		notifier: notifier,
		logger:   log,
	}
}

// findApprover picks one active user holding the role a step type requires.
// The repository returns the active user with the lowest ID so the pick is
// deterministic. Returns nil when nobody holds the role.
func (m *stepManager) findApprover(ctx context.Context, stepType vo.WorkflowStepType) (*uint, error) {
	u, err := m.userRepo.FindActiveByRole(ctx, stepType.RequiredRole())
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewInternalError("failed to look up approver")
	}
	if u == nil {
		return nil, nil
	}
	id := u.ID()
	return &id, nil
}

// createStep persists a pending step for the issue. When approverID is nil
// an approver is resolved from the step type's required role; the step is
// still created when nobody holds the role, it just has no assigned approver
// and no notification goes out.
func (m *stepManager) createStep(ctx context.Context, iss *issue.Issue, stepType vo.WorkflowStepType, approverID *uint) (*issue.WorkflowStep, error) {
	if approverID == nil {
		picked, err := m.findApprover(ctx, stepType)
		if err != nil {
			return nil, err
		}
		approverID = picked
	}

	step, err := issue.NewWorkflowStep(iss.ID(), stepType, approverID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := m.stepRepo.Save(ctx, step); err != nil {
		m.logger.Errorw("failed to save workflow step", "issue_id", iss.ID(), "step_type", stepType.String(), "error", err)
		return nil, apperrors.NewInternalError("failed to create workflow step")
	}

	m.logger.Infow("workflow step created", "issue_id", iss.ID(), "step_id", step.ID(), "step_type", stepType.String())

	if approverID != nil && m.notifier != nil {
		m.notifier.NotifyApprovalRequired(ctx, *approverID, iss, step)
	}

	return step, nil
}
