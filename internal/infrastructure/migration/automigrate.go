package migration

import (
	"fmt"

	"gorm.io/gorm"

	"orbit/internal/infrastructure/persistence/models"
	"orbit/internal/shared/logger"
)

// AutoMigrateModels lists every persistence model in migration order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.IssueModel{},
		&models.WorkflowStepModel{},
		&models.IssueCommentModel{},
		&models.NotificationModel{},
	}
}

// Run applies schema migrations for all models.
func Run(db *gorm.DB) error {
	for _, model := range AutoMigrateModels() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}
	logger.Info("database migrations applied", "models", len(AutoMigrateModels()))
	return nil
}
