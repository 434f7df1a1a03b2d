package issue

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orbit/internal/application/issue/usecases"
	"orbit/internal/shared/constants"
	"orbit/internal/shared/logger"
	"orbit/internal/shared/utils"
)

type IssueHandler struct {
	createIssueUC usecases.CreateIssueExecutor
	getIssueUC    usecases.GetIssueExecutor
	listIssuesUC  usecases.ListIssuesExecutor
	updateIssueUC usecases.UpdateIssueExecutor
	assignIssueUC usecases.AssignIssueExecutor
	transitionUC  usecases.RequestTransitionExecutor
	addCommentUC  usecases.AddCommentExecutor
	listCommentUC usecases.ListCommentsExecutor
	logger        logger.Interface
}

func NewIssueHandler(
	createIssueUC usecases.CreateIssueExecutor,
	getIssueUC usecases.GetIssueExecutor,
	listIssuesUC usecases.ListIssuesExecutor,
	updateIssueUC usecases.UpdateIssueExecutor,
	assignIssueUC usecases.AssignIssueExecutor,
	transitionUC usecases.RequestTransitionExecutor,
	addCommentUC usecases.AddCommentExecutor,
	listCommentUC usecases.ListCommentsExecutor,
) *IssueHandler {
	return &IssueHandler{
		createIssueUC: createIssueUC,
		getIssueUC:    getIssueUC,
		listIssuesUC:  listIssuesUC,
		updateIssueUC: updateIssueUC,
		assignIssueUC: assignIssueUC,
		transitionUC:  transitionUC,
		addCommentUC:  addCommentUC,
		listCommentUC: listCommentUC,
		logger:        logger.NewLogger(),
	}
}

func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get(constants.ContextKeyUserID)
	id, _ := userID.(uint)
	return id
}

// CreateIssue handles POST /issues
func (h *IssueHandler) CreateIssue(c *gin.Context) {
	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create issue", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createIssueUC.Execute(c.Request.Context(), req.ToCommand(currentUserID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Issue created successfully")
}

// GetIssue handles GET /issues/:id
func (h *IssueHandler) GetIssue(c *gin.Context) {
	issueID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getIssueUC.Execute(c.Request.Context(), issueID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListIssues handles GET /issues
func (h *IssueHandler) ListIssues(c *gin.Context) {
	req, err := parseListIssuesRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listIssuesUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Issues, result.Total, req.Page, req.PageSize)
}

// UpdateIssue handles PATCH /issues/:id
func (h *IssueHandler) UpdateIssue(c *gin.Context) {
	issueID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateIssueUC.Execute(c.Request.Context(), req.ToCommand(issueID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Issue updated successfully", result)
}

// AssignIssue handles POST /issues/:id/assign
func (h *IssueHandler) AssignIssue(c *gin.Context) {
	issueID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.assignIssueUC.Execute(c.Request.Context(), usecases.AssignIssueCommand{
		IssueID:    issueID,
		AssigneeID: req.AssigneeID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Issue assignment updated", result)
}

// RequestTransition handles POST /issues/:id/transitions
func (h *IssueHandler) RequestTransition(c *gin.Context) {
	issueID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RequestTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for transition", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.transitionUC.Execute(c.Request.Context(), req.ToCommand(issueID, currentUserID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	status := http.StatusOK
	if result.Outcome == usecases.TransitionOutcomePendingApproval {
		status = http.StatusAccepted
	}
	utils.SuccessResponse(c, status, "", result)
}

// AddComment handles POST /issues/:id/comments
func (h *IssueHandler) AddComment(c *gin.Context) {
	issueID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.addCommentUC.Execute(c.Request.Context(), usecases.AddCommentCommand{
		IssueID:  issueID,
		AuthorID: currentUserID(c),
		Content:  req.Content,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// ListComments handles GET /issues/:id/comments
func (h *IssueHandler) ListComments(c *gin.Context) {
	issueID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)

	result, err := h.listCommentUC.Execute(c.Request.Context(), usecases.ListCommentsCommand{
		IssueID:  issueID,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Comments, result.Total, pagination.Page, pagination.PageSize)
}
