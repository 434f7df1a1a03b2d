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

type UpdateIssueCommand struct {
	IssueID     uint
	Title       *string
	Description *string
	Priority    *string
	// Hour fields update independently of the detail fields.
	EstimatedHours *float64
	ActualHours    *float64
}

type UpdateIssueUseCase struct {
	issueRepo issue.IssueRepository
	logger    logger.Interface
}

func NewUpdateIssueUseCase(issueRepo issue.IssueRepository, log logger.Interface) *UpdateIssueUseCase {
	return &UpdateIssueUseCase{issueRepo: issueRepo, logger: log}
}

func (uc *UpdateIssueUseCase) Execute(ctx context.Context, cmd UpdateIssueCommand) (*dto.IssueDTO, error) {
	if cmd.IssueID == 0 {
		return nil, apperrors.NewValidationError("issue ID is required")
	}

	iss, err := uc.issueRepo.GetByID(ctx, cmd.IssueID)
	if err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		uc.logger.Errorw("failed to load issue", "issue_id", cmd.IssueID, "error", err)
		return nil, apperrors.NewInternalError("failed to load issue")
	}

	if cmd.Title != nil || cmd.Description != nil || cmd.Priority != nil {
		title := iss.Title()
		if cmd.Title != nil {
			title = *cmd.Title
		}
		description := iss.Description()
		if cmd.Description != nil {
			description = *cmd.Description
		}
		priority := iss.Priority()
		if cmd.Priority != nil {
			priority, err = vo.NewPriority(*cmd.Priority)
			if err != nil {
				return nil, apperrors.NewValidationError(err.Error())
			}
		}
		if err := iss.UpdateDetails(title, description, priority); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if cmd.EstimatedHours != nil || cmd.ActualHours != nil {
		if err := iss.RecordHours(cmd.EstimatedHours, cmd.ActualHours); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if err := uc.issueRepo.Update(ctx, iss); err != nil {
		uc.logger.Errorw("failed to update issue", "issue_id", cmd.IssueID, "error", err)
		return nil, apperrors.NewInternalError("failed to update issue")
	}

	uc.logger.Infow("issue updated", "issue_id", cmd.IssueID)

	return dto.IssueToDTOWithTransitions(iss), nil
}

type AssignIssueCommand struct {
	IssueID    uint
	AssigneeID *uint
}

// AssignIssueUseCase assigns or unassigns an issue. A nil assignee clears
// the assignment.
type AssignIssueUseCase struct {
	issueRepo issue.IssueRepository
	userRepo  user.UserRepository
	logger    logger.Interface
}

func NewAssignIssueUseCase(issueRepo issue.IssueRepository, userRepo user.UserRepository, log logger.Interface) *AssignIssueUseCase {
	return &AssignIssueUseCase{issueRepo: issueRepo, userRepo: userRepo, logger: log}
}

func (uc *AssignIssueUseCase) Execute(ctx context.Context, cmd AssignIssueCommand) (*dto.IssueDTO, error) {
	if cmd.IssueID == 0 {
		return nil, apperrors.NewValidationError("issue ID is required")
	}

	iss, err := uc.issueRepo.GetByID(ctx, cmd.IssueID)
	if err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		uc.logger.Errorw("failed to load issue", "issue_id", cmd.IssueID, "error", err)
		return nil, apperrors.NewInternalError("failed to load issue")
	}

	if cmd.AssigneeID == nil {
		iss.Unassign()
	} else {
		exists, err := uc.userRepo.Exists(ctx, *cmd.AssigneeID)
		if err != nil {
			uc.logger.Errorw("failed to check assignee existence", "user_id", *cmd.AssigneeID, "error", err)
			return nil, apperrors.NewInternalError("failed to validate assignee")
		}
		if !exists {
			return nil, apperrors.NewValidationError("assignee does not exist")
		}
		if err := iss.AssignTo(*cmd.AssigneeID); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if err := uc.issueRepo.Update(ctx, iss); err != nil {
		uc.logger.Errorw("failed to update issue assignment", "issue_id", cmd.IssueID, "error", err)
		return nil, apperrors.NewInternalError("failed to update issue")
	}

	uc.logger.Infow("issue assignment changed", "issue_id", cmd.IssueID, "assignee_id", cmd.AssigneeID)

	return dto.IssueToDTOWithTransitions(iss), nil
}
