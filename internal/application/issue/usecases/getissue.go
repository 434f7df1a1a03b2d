package usecases

import (
	"context"
	"errors"

	"orbit/internal/application/issue/dto"
	"orbit/internal/domain/issue"
	apperrors "orbit/internal/shared/errors"
	"orbit/internal/shared/logger"
)

type GetIssueResult struct {
	Issue *dto.IssueDTO          `json:"issue"`
	Steps []*dto.WorkflowStepDTO `json:"steps"`
}

type GetIssueUseCase struct {
	issueRepo issue.IssueRepository
	stepRepo  issue.WorkflowStepRepository
	logger    logger.Interface
}

func NewGetIssueUseCase(issueRepo issue.IssueRepository, stepRepo issue.WorkflowStepRepository, log logger.Interface) *GetIssueUseCase {
	return &GetIssueUseCase{
		issueRepo: issueRepo,
		stepRepo:  stepRepo,
		logger:    log,
	}
}

func (uc *GetIssueUseCase) Execute(ctx context.Context, issueID uint) (*GetIssueResult, error) {
	if issueID == 0 {
		return nil, apperrors.NewValidationError("issue ID is required")
	}

	iss, err := uc.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		uc.logger.Errorw("failed to load issue", "issue_id", issueID, "error", err)
		return nil, apperrors.NewInternalError("failed to load issue")
	}

	steps, err := uc.stepRepo.ListByIssue(ctx, issueID)
	if err != nil {
		uc.logger.Errorw("failed to load workflow steps", "issue_id", issueID, "error", err)
		return nil, apperrors.NewInternalError("failed to load workflow steps")
	}

	return &GetIssueResult{
		Issue: dto.IssueToDTOWithTransitions(iss),
		Steps: dto.StepsToDTO(steps),
	}, nil
}
