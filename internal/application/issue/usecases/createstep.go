package usecases

import (
	"context"
	"errors"

	"orbit/internal/application/issue/dto"
	"orbit/internal/domain/issue"
	vo "orbit/internal/domain/issue/valueobjects"
	"orbit/internal/domain/user"
	apperrors "orbit/internal/shared/errors"
	"orbit/internal/shared/logger"
)

type CreateStepCommand struct {
	IssueID  uint
	StepType string
	// ApproverID is optional; when nil an active user holding the step
	// type's required role is picked.
	ApproverID *uint
}

// CreateStepUseCase creates a pending workflow step directly, outside the
// transition engine. Admin tooling uses this to re-open an approval after a
// manual intervention.
type CreateStepUseCase struct {
	issueRepo issue.IssueRepository
	steps     *stepManager
	logger    logger.Interface
}

func NewCreateStepUseCase(
	issueRepo issue.IssueRepository,
	stepRepo issue.WorkflowStepRepository,
	userRepo user.UserRepository,
	notifier NotificationDispatcher,
	log logger.Interface,
) *CreateStepUseCase {
	return &CreateStepUseCase{
		issueRepo: issueRepo,
		steps:     newStepManager(stepRepo, userRepo, notifier, log),
		logger:    log,
	}
}

func (uc *CreateStepUseCase) Execute(ctx context.Context, cmd CreateStepCommand) (*dto.WorkflowStepDTO, error) {
	if cmd.IssueID == 0 {
		return nil, apperrors.NewValidationError("issue ID is required")
	}

	stepType, err := vo.NewWorkflowStepType(cmd.StepType)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	iss, err := uc.issueRepo.GetByID(ctx, cmd.IssueID)
	if err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		uc.logger.Errorw("failed to load issue", "issue_id", cmd.IssueID, "error", err)
		return nil, apperrors.NewInternalError("failed to load issue")
	}

	step, err := uc.steps.createStep(ctx, iss, stepType, cmd.ApproverID)
	if err != nil {
		return nil, err
	}

	return dto.StepToDTO(step), nil
}
