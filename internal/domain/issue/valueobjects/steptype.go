package valueobjects

import (
	"fmt"

	"orbit/internal/shared/authorization"
)

// WorkflowStepType identifies the review stage an approval step belongs to.
// Each step type maps 1:1 to the role authorized to resolve it.
type WorkflowStepType string

const (
	StepTypeDevReview WorkflowStepType = "dev_review"
	StepTypeQAReview  WorkflowStepType = "qa_review"
	StepTypePMReview  WorkflowStepType = "pm_review"
)

var validStepTypes = map[WorkflowStepType]bool{
	StepTypeDevReview: true,
	StepTypeQAReview:  true,
	StepTypePMReview:  true,
}

var stepTypeRoles = map[WorkflowStepType]authorization.UserRole{
	StepTypeDevReview: authorization.RoleDeveloper,
	StepTypeQAReview:  authorization.RoleQA,
	StepTypePMReview:  authorization.RoleProductManager,
}

// stepTypeNextStatus maps an approved step to the status the issue advances to.
var stepTypeNextStatus = map[WorkflowStepType]IssueStatus{
	StepTypeDevReview: StatusQAReview,
	StepTypeQAReview:  StatusPMReview,
	StepTypePMReview:  StatusResolved,
}

// stepTypePreviousStatus maps a rejected step to the status the issue reverts to.
var stepTypePreviousStatus = map[WorkflowStepType]IssueStatus{
	StepTypeDevReview: StatusInProgress,
	StepTypeQAReview:  StatusDevReview,
	StepTypePMReview:  StatusQAReview,
}

func (t WorkflowStepType) String() string {
	return string(t)
}

func (t WorkflowStepType) IsValid() bool {
	return validStepTypes[t]
}

// RequiredRole returns the role authorized to resolve steps of this type.
func (t WorkflowStepType) RequiredRole() authorization.UserRole {
	return stepTypeRoles[t]
}

// NextStatus returns the status an issue advances to when a step of this
// type is approved.
func (t WorkflowStepType) NextStatus() IssueStatus {
	return stepTypeNextStatus[t]
}

// PreviousStatus returns the status an issue reverts to when a step of this
// type is rejected.
func (t WorkflowStepType) PreviousStatus() IssueStatus {
	return stepTypePreviousStatus[t]
}

func NewWorkflowStepType(s string) (WorkflowStepType, error) {
	t := WorkflowStepType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid workflow step type: %s", s)
	}
	return t, nil
}
