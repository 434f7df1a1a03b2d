package models

import "orbit/internal/shared/constants"

type NotificationModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index:idx_notifications_user_read"`
	Type      string `gorm:"size:30;not null"`
	Title     string `gorm:"size:200;not null"`
	Content   string `gorm:"type:text"`
	IssueID   uint   `gorm:"index"`
	ReadAt    *int64 `gorm:"index:idx_notifications_user_read"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (NotificationModel) TableName() string {
	return constants.TableNotifications
}
