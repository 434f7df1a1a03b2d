package models

import "orbit/internal/shared/constants"

type IssueModel struct {
	ID             uint   `gorm:"primaryKey"`
	Title          string `gorm:"size:200;not null"`
	Description    string `gorm:"type:text;not null"`
	Type           string `gorm:"size:20;not null;index"`
	Priority       string `gorm:"size:20;not null;index"`
	Status         string `gorm:"size:20;not null;index"`
	CreatorID      uint   `gorm:"not null;index"`
	AssigneeID     *uint  `gorm:"index"`
	EstimatedHours *float64
	ActualHours    *float64
	Version        int   `gorm:"not null;default:1"`
	CreatedAt      int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt      int64 `gorm:"autoUpdateTime:milli;not null"`
	ResolvedAt     *int64

	// No foreign key constraints or associations. Relationships are
	// managed by application business logic.
}

func (IssueModel) TableName() string {
	return constants.TableIssues
}

type WorkflowStepModel struct {
	ID          uint   `gorm:"primaryKey"`
	IssueID     uint   `gorm:"not null;index"`
	StepType    string `gorm:"size:20;not null"`
	Status      string `gorm:"size:20;not null;index"`
	ApproverID  *uint  `gorm:"index"`
	Comments    string `gorm:"type:text"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
	CompletedAt *int64
}

func (WorkflowStepModel) TableName() string {
	return constants.TableWorkflowSteps
}

type IssueCommentModel struct {
	ID        uint   `gorm:"primaryKey"`
	IssueID   uint   `gorm:"not null;index"`
	AuthorID  uint   `gorm:"not null;index"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (IssueCommentModel) TableName() string {
	return constants.TableIssueComments
}
