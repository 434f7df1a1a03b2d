package usecases

import (
	"context"
	"errors"

	"orbit/internal/application/issue/dto"
	"orbit/internal/domain/issue"
	apperrors "orbit/internal/shared/errors"
	"orbit/internal/shared/logger"
)

type ListStepsUseCase struct {
	issueRepo issue.IssueRepository
	stepRepo  issue.WorkflowStepRepository
	logger    logger.Interface
}

func NewListStepsUseCase(issueRepo issue.IssueRepository, stepRepo issue.WorkflowStepRepository, log logger.Interface) *ListStepsUseCase {
	return &ListStepsUseCase{
		issueRepo: issueRepo,
		stepRepo:  stepRepo,
		logger:    log,
	}
}

// Execute returns the issue's workflow steps in creation order, the full
// approval history.
func (uc *ListStepsUseCase) Execute(ctx context.Context, issueID uint) ([]*dto.WorkflowStepDTO, error) {
	if issueID == 0 {
		return nil, apperrors.NewValidationError("issue ID is required")
	}

	if _, err := uc.issueRepo.GetByID(ctx, issueID); err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		uc.logger.Errorw("failed to load issue", "issue_id", issueID, "error", err)
		return nil, apperrors.NewInternalError("failed to load issue")
	}

	steps, err := uc.stepRepo.ListByIssue(ctx, issueID)
	if err != nil {
		uc.logger.Errorw("failed to list workflow steps", "issue_id", issueID, "error", err)
		return nil, apperrors.NewInternalError("failed to list workflow steps")
	}

	return dto.StepsToDTO(steps), nil
}
