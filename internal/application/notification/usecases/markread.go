package usecases

import (
	"context"
	"errors"

	"orbit/internal/domain/notification"
	"orbit/internal/shared/authorization"
	apperrors "orbit/internal/shared/errors"
	"orbit/internal/shared/logger"
)

type MarkReadCommand struct {
	NotificationID uint
	UserID         uint
	Role           authorization.UserRole
}

type MarkReadUseCase struct {
	repo   notification.NotificationRepository
	logger logger.Interface
}

func NewMarkReadUseCase(repo notification.NotificationRepository, log logger.Interface) *MarkReadUseCase {
	return &MarkReadUseCase{repo: repo, logger: log}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, cmd MarkReadCommand) (*NotificationDTO, error) {
	if cmd.NotificationID == 0 {
		return nil, apperrors.NewValidationError("notification ID is required")
	}
	if cmd.UserID == 0 {
		return nil, apperrors.NewValidationError("user ID is required")
	}

	n, err := uc.repo.GetByID(ctx, cmd.NotificationID)
	if err != nil {
		if errors.Is(err, notification.ErrNotificationNotFound) {
			return nil, apperrors.NewNotFoundError("notification not found")
		}
		uc.logger.Errorw("failed to load notification", "notification_id", cmd.NotificationID, "error", err)
		return nil, apperrors.NewInternalError("failed to load notification")
	}

	if !authorization.CanAccessResource(cmd.UserID, cmd.Role, n) {
		return nil, apperrors.NewAuthorizationError("notification belongs to another user")
	}

	if !n.IsRead() {
		n.MarkRead()
		if err := uc.repo.Update(ctx, n); err != nil {
			uc.logger.Errorw("failed to mark notification read", "notification_id", cmd.NotificationID, "error", err)
			return nil, apperrors.NewInternalError("failed to update notification")
		}
	}

	return notificationToDTO(n), nil
}

type UnreadCountUseCase struct {
	repo   notification.NotificationRepository
	logger logger.Interface
}

func NewUnreadCountUseCase(repo notification.NotificationRepository, log logger.Interface) *UnreadCountUseCase {
	return &UnreadCountUseCase{repo: repo, logger: log}
}

func (uc *UnreadCountUseCase) Execute(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, apperrors.NewValidationError("user ID is required")
	}

	count, err := uc.repo.CountUnread(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to count unread notifications", "user_id", userID, "error", err)
		return 0, apperrors.NewInternalError("failed to count unread notifications")
	}
	return count, nil
}
