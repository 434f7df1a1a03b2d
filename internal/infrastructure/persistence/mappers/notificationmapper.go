package mappers

import (
	"orbit/internal/domain/notification"
	"orbit/internal/infrastructure/persistence/models"
	"orbit/internal/shared/biztime"
)

type NotificationMapper interface {
	ToModel(n *notification.Notification) *models.NotificationModel
	ToDomain(model *models.NotificationModel) (*notification.Notification, error)
}

type NotificationMapperImpl struct{}

func NewNotificationMapper() NotificationMapper {
	return &NotificationMapperImpl{}
}

func (m *NotificationMapperImpl) ToModel(n *notification.Notification) *models.NotificationModel {
	return &models.NotificationModel{
		ID:        n.ID(),
		UserID:    n.UserID(),
		Type:      n.Type().String(),
		Title:     n.Title(),
		Content:   n.Content(),
		IssueID:   n.IssueID(),
		ReadAt:    biztime.ToUnixMilliPtr(n.ReadAt()),
		CreatedAt: biztime.ToUnixMilli(n.CreatedAt()),
	}
}

func (m *NotificationMapperImpl) ToDomain(model *models.NotificationModel) (*notification.Notification, error) {
	return notification.ReconstructNotification(
		model.ID,
		model.UserID,
		notification.Type(model.Type),
		model.Title,
		model.Content,
		model.IssueID,
		biztime.FromUnixMilliPtr(model.ReadAt),
		biztime.FromUnixMilli(model.CreatedAt),
	)
}
