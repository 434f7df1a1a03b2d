package usecases

import (
	"context"

	"orbit/internal/application/issue/dto"
	"orbit/internal/domain/issue"
	vo "orbit/internal/domain/issue/valueobjects"
	"orbit/internal/domain/user"
	apperrors "orbit/internal/shared/errors"
	"orbit/internal/shared/logger"
)

type CreateIssueCommand struct {
	Title          string
	Description    string
	Type           string
	Priority       string
	CreatorID      uint
	AssigneeID     *uint
	EstimatedHours *float64
}

type CreateIssueUseCase struct {
	issueRepo issue.IssueRepository
	userRepo  user.UserRepository
	logger    logger.Interface
}

func NewCreateIssueUseCase(issueRepo issue.IssueRepository, userRepo user.UserRepository, log logger.Interface) *CreateIssueUseCase {
	return &CreateIssueUseCase{
		issueRepo: issueRepo,
		userRepo:  userRepo,
		logger:    log,
	}
}

func (uc *CreateIssueUseCase) Execute(ctx context.Context, cmd CreateIssueCommand) (*dto.IssueDTO, error) {
	if cmd.CreatorID == 0 {
		return nil, apperrors.NewValidationError("creator ID is required")
	}

	issueType, err := vo.NewIssueType(cmd.Type)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if cmd.AssigneeID != nil {
		if err := uc.ensureUserExists(ctx, *cmd.AssigneeID, "assignee"); err != nil {
			return nil, err
		}
	}

	iss, err := issue.NewIssue(cmd.Title, cmd.Description, issueType, priority, cmd.CreatorID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if cmd.AssigneeID != nil {
		if err := iss.AssignTo(*cmd.AssigneeID); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if cmd.EstimatedHours != nil {
		if err := iss.RecordHours(cmd.EstimatedHours, nil); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if err := uc.issueRepo.Save(ctx, iss); err != nil {
		uc.logger.Errorw("failed to save issue", "title", cmd.Title, "error", err)
		return nil, apperrors.NewInternalError("failed to create issue")
	}

	uc.logger.Infow("issue created", "issue_id", iss.ID(), "type", issueType.String(), "creator_id", cmd.CreatorID)

	return dto.IssueToDTOWithTransitions(iss), nil
}

func (uc *CreateIssueUseCase) ensureUserExists(ctx context.Context, userID uint, label string) error {
	exists, err := uc.userRepo.Exists(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to check user existence", "user_id", userID, "error", err)
		return apperrors.NewInternalError("failed to validate " + label)
	}
	if !exists {
		return apperrors.NewValidationError(label + " does not exist")
	}
	return nil
}
