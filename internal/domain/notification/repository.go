package notification

import (
	"context"
	"errors"
)

// ErrNotificationNotFound is returned by repositories when no record matches.
var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Save(ctx context.Context, n *Notification) error
	Update(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id uint) (*Notification, error)
	ListByUser(ctx context.Context, userID uint, unreadOnly bool, page, pageSize int) ([]*Notification, int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
}
