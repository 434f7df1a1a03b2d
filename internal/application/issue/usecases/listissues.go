package usecases

import (
	"context"

	"orbit/internal/application/issue/dto"
	"orbit/internal/domain/issue"
	vo "orbit/internal/domain/issue/valueobjects"
	apperrors "orbit/internal/shared/errors"
	"orbit/internal/shared/logger"
)

type ListIssuesCommand struct {
	Status     string
	Type       string
	Priority   string
	CreatorID  *uint
	AssigneeID *uint
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

type ListIssuesResult struct {
	Issues []*dto.IssueDTO `json:"issues"`
	Total  int64           `json:"total"`
}

type ListIssuesUseCase struct {
	issueRepo issue.IssueRepository
	logger    logger.Interface
}

func NewListIssuesUseCase(issueRepo issue.IssueRepository, log logger.Interface) *ListIssuesUseCase {
	return &ListIssuesUseCase{issueRepo: issueRepo, logger: log}
}

func (uc *ListIssuesUseCase) Execute(ctx context.Context, cmd ListIssuesCommand) (*ListIssuesResult, error) {
	filter := issue.IssueFilter{
		CreatorID:  cmd.CreatorID,
		AssigneeID: cmd.AssigneeID,
		Page:       cmd.Page,
		PageSize:   cmd.PageSize,
		SortBy:     cmd.SortBy,
		SortOrder:  cmd.SortOrder,
	}

	if cmd.Status != "" {
		status, err := vo.NewIssueStatus(cmd.Status)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if cmd.Type != "" {
		issueType, err := vo.NewIssueType(cmd.Type)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Type = &issueType
	}
	if cmd.Priority != "" {
		priority, err := vo.NewPriority(cmd.Priority)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Priority = &priority
	}

	issues, total, err := uc.issueRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list issues", "error", err)
		return nil, apperrors.NewInternalError("failed to list issues")
	}

	out := make([]*dto.IssueDTO, len(issues))
	for i, iss := range issues {
		out[i] = dto.IssueToDTO(iss)
	}

	return &ListIssuesResult{Issues: out, Total: total}, nil
}
