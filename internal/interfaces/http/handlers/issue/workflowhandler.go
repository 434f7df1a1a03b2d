package issue

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"orbit/internal/application/issue/usecases"
	"orbit/internal/shared/authorization"
	"orbit/internal/shared/constants"
	"orbit/internal/shared/logger"
	"orbit/internal/shared/utils"
)

// WorkflowHandler exposes the approval side of the workflow: step history,
// manual step creation, and step resolution.
type WorkflowHandler struct {
	listStepsUC   usecases.ListStepsExecutor
	createStepUC  usecases.CreateStepExecutor
	approveStepUC usecases.ApproveStepExecutor
	rejectStepUC  usecases.RejectStepExecutor
	logger        logger.Interface
}

func NewWorkflowHandler(
	listStepsUC usecases.ListStepsExecutor,
	createStepUC usecases.CreateStepExecutor,
	approveStepUC usecases.ApproveStepExecutor,
	rejectStepUC usecases.RejectStepExecutor,
) *WorkflowHandler {
	return &WorkflowHandler{
		listStepsUC:   listStepsUC,
		createStepUC:  createStepUC,
		approveStepUC: approveStepUC,
		rejectStepUC:  rejectStepUC,
		logger:        logger.NewLogger(),
	}
}

func currentUserRole(c *gin.Context) authorization.UserRole {
	return authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole))
}

// bindResolveStepRequest reads the optional resolution body. Comments are
// optional on approval, so a body-less POST binds to an empty request.
func bindResolveStepRequest(c *gin.Context) (ResolveStepRequest, error) {
	var req ResolveStepRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return ResolveStepRequest{}, err
	}
	return req, nil
}

// ListSteps handles GET /issues/:id/steps
func (h *WorkflowHandler) ListSteps(c *gin.Context) {
	issueID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	steps, err := h.listStepsUC.Execute(c.Request.Context(), issueID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", steps)
}

// CreateStep handles POST /issues/:id/steps
func (h *WorkflowHandler) CreateStep(c *gin.Context) {
	issueID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createStepUC.Execute(c.Request.Context(), usecases.CreateStepCommand{
		IssueID:    issueID,
		StepType:   req.StepType,
		ApproverID: req.ApproverID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Workflow step created successfully")
}

// ApproveStep handles POST /steps/:id/approve
func (h *WorkflowHandler) ApproveStep(c *gin.Context) {
	stepID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	req, err := bindResolveStepRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.approveStepUC.Execute(c.Request.Context(), usecases.ApproveStepCommand{
		StepID:       stepID,
		ApproverID:   currentUserID(c),
		ApproverRole: currentUserRole(c),
		Comments:     req.Comments,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Workflow step approved", result)
}

// RejectStep handles POST /steps/:id/reject
func (h *WorkflowHandler) RejectStep(c *gin.Context) {
	stepID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	req, err := bindResolveStepRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.rejectStepUC.Execute(c.Request.Context(), usecases.RejectStepCommand{
		StepID:       stepID,
		ApproverID:   currentUserID(c),
		ApproverRole: currentUserRole(c),
		Comments:     req.Comments,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Workflow step rejected", result)
}
