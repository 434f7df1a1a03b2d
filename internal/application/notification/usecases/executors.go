package usecases

import "context"

type ListNotificationsExecutor interface {
	Execute(ctx context.Context, cmd ListNotificationsCommand) (*ListNotificationsResult, error)
}

type MarkReadExecutor interface {
	Execute(ctx context.Context, cmd MarkReadCommand) (*NotificationDTO, error)
}

type UnreadCountExecutor interface {
	Execute(ctx context.Context, userID uint) (int64, error)
}
