package usecases

import (
	"context"
	"time"

	"orbit/internal/domain/notification"
	apperrors "orbit/internal/shared/errors"
	"orbit/internal/shared/logger"
)

type NotificationDTO struct {
	ID        uint       `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	IssueID   uint       `json:"issue_id,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

type ListNotificationsCommand struct {
	UserID     uint
	UnreadOnly bool
	Page       int
	PageSize   int
}

type ListNotificationsResult struct {
	Notifications []*NotificationDTO `json:"notifications"`
	Total         int64              `json:"total"`
}

type ListNotificationsUseCase struct {
	repo   notification.NotificationRepository
	logger logger.Interface
}

func NewListNotificationsUseCase(repo notification.NotificationRepository, log logger.Interface) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{repo: repo, logger: log}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, cmd ListNotificationsCommand) (*ListNotificationsResult, error) {
	if cmd.UserID == 0 {
		return nil, apperrors.NewValidationError("user ID is required")
	}

	items, total, err := uc.repo.ListByUser(ctx, cmd.UserID, cmd.UnreadOnly, cmd.Page, cmd.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list notifications", "user_id", cmd.UserID, "error", err)
		return nil, apperrors.NewInternalError("failed to list notifications")
	}

	out := make([]*NotificationDTO, len(items))
	for i, n := range items {
		out[i] = notificationToDTO(n)
	}

	return &ListNotificationsResult{Notifications: out, Total: total}, nil
}

func notificationToDTO(n *notification.Notification) *NotificationDTO {
	return &NotificationDTO{
		ID:        n.ID(),
		Type:      n.Type().String(),
		Title:     n.Title(),
		Content:   n.Content(),
		IssueID:   n.IssueID(),
		Read:      n.IsRead(),
		CreatedAt: n.CreatedAt(),
		ReadAt:    n.ReadAt(),
	}
}
