package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"orbit/internal/application/notification/usecases"
	"orbit/internal/shared/authorization"
	"orbit/internal/shared/constants"
	"orbit/internal/shared/errors"
	"orbit/internal/shared/logger"
	"orbit/internal/shared/utils"
)

type NotificationHandler struct {
	listUC        usecases.ListNotificationsExecutor
	markReadUC    usecases.MarkReadExecutor
	unreadCountUC usecases.UnreadCountExecutor
	logger        logger.Interface
}

func NewNotificationHandler(
	listUC usecases.ListNotificationsExecutor,
	markReadUC usecases.MarkReadExecutor,
	unreadCountUC usecases.UnreadCountExecutor,
) *NotificationHandler {
	return &NotificationHandler{
		listUC:        listUC,
		markReadUC:    markReadUC,
		unreadCountUC: unreadCountUC,
		logger:        logger.NewLogger(),
	}
}

func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get(constants.ContextKeyUserID)
	id, _ := userID.(uint)
	return id
}

// ListNotifications handles GET /notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	unreadOnly := c.Query("unread_only") == "true"

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListNotificationsCommand{
		UserID:     currentUserID(c),
		UnreadOnly: unreadOnly,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Notifications, result.Total, pagination.Page, pagination.PageSize)
}

// UnreadCount handles GET /notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.unreadCountUC.Execute(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"unread_count": count})
}

// MarkRead handles POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid id"))
		return
	}

	result, err := h.markReadUC.Execute(c.Request.Context(), usecases.MarkReadCommand{
		NotificationID: uint(id),
		UserID:         currentUserID(c),
		Role:           authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole)),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification marked as read", result)
}
