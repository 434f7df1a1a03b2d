package issue

import (
	"fmt"
	"strings"
	"time"

	vo "orbit/internal/domain/issue/valueobjects"
	"orbit/internal/shared/biztime"
)

// MinRejectionCommentLength is the minimum length of the comment required
// when rejecting a workflow step.
const MinRejectionCommentLength = 5

// WorkflowStep is an approval record tied to a review stage of an issue.
// Steps are created pending and become immutable once approved or rejected.
// History is retained: many steps may exist per issue over its lifetime.
type WorkflowStep struct {
	id          uint
	issueID     uint
	stepType    vo.WorkflowStepType
	status      vo.WorkflowStepStatus
	approverID  *uint
	comments    string
	createdAt   time.Time
	completedAt *time.Time
}

// NewWorkflowStep creates a pending step for the given issue and review
// stage. approverID is the intended approver and may be nil when no active
// user holds the required role yet.
func NewWorkflowStep(issueID uint, stepType vo.WorkflowStepType, approverID *uint) (*WorkflowStep, error) {
	if issueID == 0 {
		return nil, fmt.Errorf("issue ID is required")
	}
	if !stepType.IsValid() {
		return nil, fmt.Errorf("invalid workflow step type")
	}
	if approverID != nil && *approverID == 0 {
		return nil, fmt.Errorf("approver ID cannot be zero")
	}

	return &WorkflowStep{
		issueID:    issueID,
		stepType:   stepType,
		status:     vo.StepStatusPending,
		approverID: approverID,
		createdAt:  biztime.NowUTC(),
	}, nil
}

func ReconstructWorkflowStep(
	id uint,
	issueID uint,
	stepType vo.WorkflowStepType,
	status vo.WorkflowStepStatus,
	approverID *uint,
	comments string,
	createdAt time.Time,
	completedAt *time.Time,
) (*WorkflowStep, error) {
	if id == 0 {
		return nil, fmt.Errorf("workflow step ID cannot be zero")
	}
	if issueID == 0 {
		return nil, fmt.Errorf("issue ID is required")
	}
	if !stepType.IsValid() {
		return nil, fmt.Errorf("invalid workflow step type")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid workflow step status")
	}

	return &WorkflowStep{
		id:          id,
		issueID:     issueID,
		stepType:    stepType,
		status:      status,
		approverID:  approverID,
		comments:    comments,
		createdAt:   createdAt,
		completedAt: completedAt,
	}, nil
}

func (s *WorkflowStep) ID() uint {
	return s.id
}

func (s *WorkflowStep) IssueID() uint {
	return s.issueID
}

func (s *WorkflowStep) StepType() vo.WorkflowStepType {
	return s.stepType
}

func (s *WorkflowStep) Status() vo.WorkflowStepStatus {
	return s.status
}

func (s *WorkflowStep) ApproverID() *uint {
	return s.approverID
}

func (s *WorkflowStep) Comments() string {
	return s.comments
}

func (s *WorkflowStep) CreatedAt() time.Time {
	return s.createdAt
}

func (s *WorkflowStep) CompletedAt() *time.Time {
	return s.completedAt
}

func (s *WorkflowStep) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("workflow step ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("workflow step ID cannot be zero")
	}
	s.id = id
	return nil
}

// Approve marks the step approved by the given user. Comments are optional.
// Whether the user is entitled to resolve the step is checked by the
// application layer; an admin may resolve a step designated to someone else.
func (s *WorkflowStep) Approve(approverID uint, comments string) error {
	if approverID == 0 {
		return fmt.Errorf("approver ID is required")
	}
	if !s.status.IsPending() {
		return fmt.Errorf("workflow step already %s", s.status)
	}

	now := biztime.NowUTC()
	s.status = vo.StepStatusApproved
	s.approverID = &approverID
	s.comments = comments
	s.completedAt = &now

	return nil
}

// Reject marks the step rejected by the given user. A comment explaining
// the rejection is required.
func (s *WorkflowStep) Reject(approverID uint, comments string) error {
	if approverID == 0 {
		return fmt.Errorf("approver ID is required")
	}
	if len(strings.TrimSpace(comments)) < MinRejectionCommentLength {
		return fmt.Errorf("rejection comments must be at least %d characters", MinRejectionCommentLength)
	}
	if !s.status.IsPending() {
		return fmt.Errorf("workflow step already %s", s.status)
	}

	now := biztime.NowUTC()
	s.status = vo.StepStatusRejected
	s.approverID = &approverID
	s.comments = comments
	s.completedAt = &now

	return nil
}
