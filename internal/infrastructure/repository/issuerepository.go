package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"orbit/internal/domain/issue"
	vo "orbit/internal/domain/issue/valueobjects"
	"orbit/internal/infrastructure/persistence/mappers"
	"orbit/internal/infrastructure/persistence/models"
	"orbit/internal/shared/biztime"
	"orbit/internal/shared/db"
)

// allowedIssueOrderByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedIssueOrderByFields = map[string]bool{
	"id":          true,
	"title":       true,
	"type":        true,
	"priority":    true,
	"status":      true,
	"creator_id":  true,
	"assignee_id": true,
	"created_at":  true,
	"updated_at":  true,
	"resolved_at": true,
}

type IssueRepository struct {
	db     *gorm.DB
	mapper mappers.IssueMapper
}

func NewIssueRepository(gdb *gorm.DB) *IssueRepository {
	return &IssueRepository{
		db:     gdb,
		mapper: mappers.NewIssueMapper(),
	}
}

func (r *IssueRepository) Save(ctx context.Context, i *issue.Issue) error {
	model := r.mapper.ToModel(i)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save issue: %w", err)
	}

	return i.SetID(model.ID)
}

func (r *IssueRepository) Update(ctx context.Context, i *issue.Issue) error {
	model := r.mapper.ToModel(i)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.IssueModel{}).
		Where("id = ?", model.ID).
		Select("title", "description", "priority", "assignee_id", "estimated_hours", "actual_hours", "version", "updated_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update issue: %w", result.Error)
	}

	return nil
}

// UpdateStatus writes a status change guarded by the status the caller read.
// The WHERE clause on the old status makes concurrent transition requests
// serialize: the loser touches zero rows and gets ErrStaleStatus.
func (r *IssueRepository) UpdateStatus(ctx context.Context, issueID uint, fromStatus, toStatus vo.IssueStatus, updatedAt time.Time, resolvedAt *time.Time) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.IssueModel{}).
		Where("id = ? AND status = ?", issueID, fromStatus.String()).
		Updates(map[string]interface{}{
			"status":      toStatus.String(),
			"updated_at":  biztime.ToUnixMilli(updatedAt),
			"resolved_at": biztime.ToUnixMilliPtr(resolvedAt),
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update issue status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return issue.ErrStaleStatus
	}

	return nil
}

func (r *IssueRepository) GetByID(ctx context.Context, issueID uint) (*issue.Issue, error) {
	var model models.IssueModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, issueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, issue.ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *IssueRepository) List(ctx context.Context, filter issue.IssueFilter) ([]*issue.Issue, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.IssueModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Type != nil {
		query = query.Where("type = ?", filter.Type.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count issues: %w", err)
	}

	query = query.Order(issueOrderClause(filter.SortBy, filter.SortOrder))

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var issueModels []models.IssueModel
	if err := query.Find(&issueModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list issues: %w", err)
	}

	issues := make([]*issue.Issue, len(issueModels))
	for i, model := range issueModels {
		iss, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		issues[i] = iss
	}

	return issues, total, nil
}

// issueOrderClause builds the ORDER BY expression from whitelisted fields.
// Sorting by status orders by workflow position rather than alphabetically.
func issueOrderClause(sortBy, sortOrder string) string {
	sortBy = strings.ToLower(sortBy)
	order := strings.ToUpper(sortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	if sortBy == "status" {
		return statusRankExpr() + " " + order
	}
	if sortBy != "" && allowedIssueOrderByFields[sortBy] {
		return sortBy + " " + order
	}
	return "created_at DESC"
}

// statusRankExpr maps status values to their workflow rank in SQL so status
// ordering follows new through rejected instead of string collation.
func statusRankExpr() string {
	var b strings.Builder
	b.WriteString("CASE status")
	for _, s := range vo.AllIssueStatuses() {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", s.String(), s.Rank())
	}
	b.WriteString(" ELSE 99 END")
	return b.String()
}
