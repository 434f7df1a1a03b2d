package issue

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"orbit/internal/application/issue/usecases"
	"orbit/internal/shared/errors"
	"orbit/internal/shared/utils"
)

type CreateIssueRequest struct {
	Title          string   `json:"title" binding:"required,max=200"`
	Description    string   `json:"description" binding:"required,max=5000"`
	Type           string   `json:"type" binding:"required"`
	Priority       string   `json:"priority" binding:"required"`
	AssigneeID     *uint    `json:"assignee_id,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
}

func (r *CreateIssueRequest) ToCommand(creatorID uint) usecases.CreateIssueCommand {
	return usecases.CreateIssueCommand{
		Title:          r.Title,
		Description:    r.Description,
		Type:           r.Type,
		Priority:       r.Priority,
		CreatorID:      creatorID,
		AssigneeID:     r.AssigneeID,
		EstimatedHours: r.EstimatedHours,
	}
}

type UpdateIssueRequest struct {
	Title          *string  `json:"title,omitempty" binding:"omitempty,max=200"`
	Description    *string  `json:"description,omitempty" binding:"omitempty,max=5000"`
	Priority       *string  `json:"priority,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	ActualHours    *float64 `json:"actual_hours,omitempty"`
}

func (r *UpdateIssueRequest) ToCommand(issueID uint) usecases.UpdateIssueCommand {
	return usecases.UpdateIssueCommand{
		IssueID:        issueID,
		Title:          r.Title,
		Description:    r.Description,
		Priority:       r.Priority,
		EstimatedHours: r.EstimatedHours,
		ActualHours:    r.ActualHours,
	}
}

type AssignIssueRequest struct {
	// A null assignee unassigns the issue.
	AssigneeID *uint `json:"assignee_id"`
}

type RequestTransitionRequest struct {
	ToStatus   string `json:"to_status" binding:"required"`
	Comment    string `json:"comment,omitempty" binding:"omitempty,max=2000"`
	ApproverID *uint  `json:"approver_id,omitempty"`
}

func (r *RequestTransitionRequest) ToCommand(issueID, requestedBy uint) usecases.RequestTransitionCommand {
	return usecases.RequestTransitionCommand{
		IssueID:     issueID,
		ToStatus:    r.ToStatus,
		RequestedBy: requestedBy,
		Comment:     r.Comment,
		ApproverID:  r.ApproverID,
	}
}

type CreateStepRequest struct {
	StepType   string `json:"step_type" binding:"required"`
	ApproverID *uint  `json:"approver_id,omitempty"`
}

type ResolveStepRequest struct {
	Comments string `json:"comments,omitempty" binding:"omitempty,max=2000"`
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type ListIssuesRequest struct {
	Page       int
	PageSize   int
	Status     string
	Type       string
	Priority   string
	CreatorID  *uint
	AssigneeID *uint
	SortBy     string `json:"sort_by" validate:"omitempty,oneof=id title type priority status creator_id assignee_id created_at updated_at resolved_at"`
	SortOrder  string `json:"sort_order" validate:"omitempty,oneof=asc desc"`
}

func (r *ListIssuesRequest) ToCommand() usecases.ListIssuesCommand {
	return usecases.ListIssuesCommand{
		Status:     r.Status,
		Type:       r.Type,
		Priority:   r.Priority,
		CreatorID:  r.CreatorID,
		AssigneeID: r.AssigneeID,
		Page:       r.Page,
		PageSize:   r.PageSize,
		SortBy:     r.SortBy,
		SortOrder:  r.SortOrder,
	}
}

func parseListIssuesRequest(c *gin.Context) (*ListIssuesRequest, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	pagination := utils.ValidatePagination(page, pageSize)

	req := &ListIssuesRequest{
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		Status:    c.Query("status"),
		Type:      c.Query("type"),
		Priority:  c.Query("priority"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if creatorIDStr := c.Query("creator_id"); creatorIDStr != "" {
		creatorID, err := strconv.ParseUint(creatorIDStr, 10, 32)
		if err != nil {
			return nil, errors.NewValidationError("invalid creator_id")
		}
		id := uint(creatorID)
		req.CreatorID = &id
	}

	if assigneeIDStr := c.Query("assignee_id"); assigneeIDStr != "" {
		assigneeID, err := strconv.ParseUint(assigneeIDStr, 10, 32)
		if err != nil {
			return nil, errors.NewValidationError("invalid assignee_id")
		}
		id := uint(assigneeID)
		req.AssigneeID = &id
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	return req, nil
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + name)
	}
	return uint(id), nil
}
