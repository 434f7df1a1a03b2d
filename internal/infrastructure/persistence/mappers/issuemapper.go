package mappers

import (
	"fmt"

	"orbit/internal/domain/issue"
	vo "orbit/internal/domain/issue/valueobjects"
	"orbit/internal/infrastructure/persistence/models"
	"orbit/internal/shared/biztime"
)

// IssueMapper handles the conversion between issue domain entities and
// persistence models.
type IssueMapper interface {
	ToModel(i *issue.Issue) *models.IssueModel
	ToDomain(model *models.IssueModel) (*issue.Issue, error)
	StepToModel(s *issue.WorkflowStep) *models.WorkflowStepModel
	StepToDomain(model *models.WorkflowStepModel) (*issue.WorkflowStep, error)
	CommentToModel(c *issue.Comment) *models.IssueCommentModel
	CommentToDomain(model *models.IssueCommentModel) (*issue.Comment, error)
}

type IssueMapperImpl struct{}

func NewIssueMapper() IssueMapper {
	return &IssueMapperImpl{}
}

func (m *IssueMapperImpl) ToModel(i *issue.Issue) *models.IssueModel {
	return &models.IssueModel{
		ID:             i.ID(),
		Title:          i.Title(),
		Description:    i.Description(),
		Type:           i.Type().String(),
		Priority:       i.Priority().String(),
		Status:         i.Status().String(),
		CreatorID:      i.CreatorID(),
		AssigneeID:     i.AssigneeID(),
		EstimatedHours: i.EstimatedHours(),
		ActualHours:    i.ActualHours(),
		Version:        i.Version(),
		CreatedAt:      biztime.ToUnixMilli(i.CreatedAt()),
		UpdatedAt:      biztime.ToUnixMilli(i.UpdatedAt()),
		ResolvedAt:     biztime.ToUnixMilliPtr(i.ResolvedAt()),
	}
}

func (m *IssueMapperImpl) ToDomain(model *models.IssueModel) (*issue.Issue, error) {
	issueType, err := vo.NewIssueType(model.Type)
	if err != nil {
		return nil, fmt.Errorf("invalid issue type in issue %d: %w", model.ID, err)
	}
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("invalid priority in issue %d: %w", model.ID, err)
	}
	status, err := vo.NewIssueStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid status in issue %d: %w", model.ID, err)
	}

	return issue.ReconstructIssue(
		model.ID,
		model.Title,
		model.Description,
		issueType,
		priority,
		status,
		model.CreatorID,
		model.AssigneeID,
		model.EstimatedHours,
		model.ActualHours,
		model.Version,
		biztime.FromUnixMilli(model.CreatedAt),
		biztime.FromUnixMilli(model.UpdatedAt),
		biztime.FromUnixMilliPtr(model.ResolvedAt),
	)
}

func (m *IssueMapperImpl) StepToModel(s *issue.WorkflowStep) *models.WorkflowStepModel {
	return &models.WorkflowStepModel{
		ID:          s.ID(),
		IssueID:     s.IssueID(),
		StepType:    s.StepType().String(),
		Status:      s.Status().String(),
		ApproverID:  s.ApproverID(),
		Comments:    s.Comments(),
		CreatedAt:   biztime.ToUnixMilli(s.CreatedAt()),
		CompletedAt: biztime.ToUnixMilliPtr(s.CompletedAt()),
	}
}

func (m *IssueMapperImpl) StepToDomain(model *models.WorkflowStepModel) (*issue.WorkflowStep, error) {
	stepType, err := vo.NewWorkflowStepType(model.StepType)
	if err != nil {
		return nil, fmt.Errorf("invalid step type in step %d: %w", model.ID, err)
	}
	status, err := vo.NewWorkflowStepStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid step status in step %d: %w", model.ID, err)
	}

	return issue.ReconstructWorkflowStep(
		model.ID,
		model.IssueID,
		stepType,
		status,
		model.ApproverID,
		model.Comments,
		biztime.FromUnixMilli(model.CreatedAt),
		biztime.FromUnixMilliPtr(model.CompletedAt),
	)
}

func (m *IssueMapperImpl) CommentToModel(c *issue.Comment) *models.IssueCommentModel {
	return &models.IssueCommentModel{
		ID:        c.ID(),
		IssueID:   c.IssueID(),
		AuthorID:  c.AuthorID(),
		Content:   c.Content(),
		CreatedAt: biztime.ToUnixMilli(c.CreatedAt()),
	}
}

func (m *IssueMapperImpl) CommentToDomain(model *models.IssueCommentModel) (*issue.Comment, error) {
	return issue.ReconstructComment(
		model.ID,
		model.IssueID,
		model.AuthorID,
		model.Content,
		biztime.FromUnixMilli(model.CreatedAt),
	), nil
}
