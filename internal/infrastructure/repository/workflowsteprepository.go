package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"orbit/internal/domain/issue"
	vo "orbit/internal/domain/issue/valueobjects"
	"orbit/internal/infrastructure/persistence/mappers"
	"orbit/internal/infrastructure/persistence/models"
	"orbit/internal/shared/db"
)

type WorkflowStepRepository struct {
	db     *gorm.DB
	mapper mappers.IssueMapper
}

func NewWorkflowStepRepository(gdb *gorm.DB) *WorkflowStepRepository {
	return &WorkflowStepRepository{
		db:     gdb,
		mapper: mappers.NewIssueMapper(),
	}
}

func (r *WorkflowStepRepository) Save(ctx context.Context, s *issue.WorkflowStep) error {
	model := r.mapper.StepToModel(s)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save workflow step: %w", err)
	}

	return s.SetID(model.ID)
}

func (r *WorkflowStepRepository) Update(ctx context.Context, s *issue.WorkflowStep) error {
	model := r.mapper.StepToModel(s)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.WorkflowStepModel{}).
		Where("id = ?", model.ID).
		Select("status", "approver_id", "comments", "completed_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update workflow step: %w", result.Error)
	}

	return nil
}

func (r *WorkflowStepRepository) GetByID(ctx context.Context, stepID uint) (*issue.WorkflowStep, error) {
	var model models.WorkflowStepModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, stepID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, issue.ErrStepNotFound
		}
		return nil, fmt.Errorf("failed to find workflow step: %w", err)
	}

	return r.mapper.StepToDomain(&model)
}

func (r *WorkflowStepRepository) ListByIssue(ctx context.Context, issueID uint) ([]*issue.WorkflowStep, error) {
	var stepModels []models.WorkflowStepModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("issue_id = ?", issueID).
		Order("created_at ASC, id ASC").
		Find(&stepModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list workflow steps: %w", err)
	}

	steps := make([]*issue.WorkflowStep, len(stepModels))
	for i, model := range stepModels {
		s, err := r.mapper.StepToDomain(&model)
		if err != nil {
			return nil, err
		}
		steps[i] = s
	}

	return steps, nil
}

func (r *WorkflowStepRepository) FindPendingByIssue(ctx context.Context, issueID uint) (*issue.WorkflowStep, error) {
	var model models.WorkflowStepModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("issue_id = ? AND status = ?", issueID, vo.StepStatusPending.String()).
		Order("id ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find pending workflow step: %w", err)
	}

	return r.mapper.StepToDomain(&model)
}
