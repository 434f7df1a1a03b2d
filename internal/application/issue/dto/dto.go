package dto

import (
	"time"

	"orbit/internal/domain/issue"
)

type IssueDTO struct {
	ID                   uint       `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Type                 string     `json:"type"`
	Priority             string     `json:"priority"`
	Status               string     `json:"status"`
	CreatorID            uint       `json:"creator_id"`
	AssigneeID           *uint      `json:"assignee_id,omitempty"`
	EstimatedHours       *float64   `json:"estimated_hours,omitempty"`
	ActualHours          *float64   `json:"actual_hours,omitempty"`
	AvailableTransitions []string   `json:"available_transitions,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	ResolvedAt           *time.Time `json:"resolved_at,omitempty"`
}

type WorkflowStepDTO struct {
	ID          uint       `json:"id"`
	IssueID     uint       `json:"issue_id"`
	StepType    string     `json:"step_type"`
	Status      string     `json:"status"`
	ApproverID  *uint      `json:"approver_id,omitempty"`
	Comments    string     `json:"comments,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func IssueToDTO(i *issue.Issue) *IssueDTO {
	return &IssueDTO{
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
		CreatedAt:      i.CreatedAt(),
		UpdatedAt:      i.UpdatedAt(),
		ResolvedAt:     i.ResolvedAt(),
	}
}

// IssueToDTOWithTransitions additionally includes the statuses reachable
// from the issue's current status, for transition pickers.
func IssueToDTOWithTransitions(i *issue.Issue) *IssueDTO {
	d := IssueToDTO(i)
	for _, s := range i.Status().AvailableTransitions() {
		d.AvailableTransitions = append(d.AvailableTransitions, s.String())
	}
	return d
}

func StepToDTO(s *issue.WorkflowStep) *WorkflowStepDTO {
	return &WorkflowStepDTO{
		ID:          s.ID(),
		IssueID:     s.IssueID(),
		StepType:    s.StepType().String(),
		Status:      s.Status().String(),
		ApproverID:  s.ApproverID(),
		Comments:    s.Comments(),
		CreatedAt:   s.CreatedAt(),
		CompletedAt: s.CompletedAt(),
	}
}

func StepsToDTO(steps []*issue.WorkflowStep) []*WorkflowStepDTO {
	out := make([]*WorkflowStepDTO, len(steps))
	for i, s := range steps {
		out[i] = StepToDTO(s)
	}
	return out
}
