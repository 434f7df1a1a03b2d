package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"orbit/internal/domain/issue"
	"orbit/internal/infrastructure/persistence/mappers"
	"orbit/internal/infrastructure/persistence/models"
	"orbit/internal/shared/db"
)

type CommentRepository struct {
	db     *gorm.DB
	mapper mappers.IssueMapper
}

func NewCommentRepository(gdb *gorm.DB) *CommentRepository {
	return &CommentRepository{
		db:     gdb,
		mapper: mappers.NewIssueMapper(),
	}
}

func (r *CommentRepository) Save(ctx context.Context, c *issue.Comment) error {
	model := r.mapper.CommentToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}

	return c.SetID(model.ID)
}

func (r *CommentRepository) ListByIssue(ctx context.Context, issueID uint, page, pageSize int) ([]*issue.Comment, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.IssueCommentModel{}).Where("issue_id = ?", issueID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	query = query.Order("created_at ASC, id ASC")
	if pageSize > 0 {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	var commentModels []models.IssueCommentModel
	if err := query.Find(&commentModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]*issue.Comment, len(commentModels))
	for i, model := range commentModels {
		c, err := r.mapper.CommentToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		comments[i] = c
	}

	return comments, total, nil
}
