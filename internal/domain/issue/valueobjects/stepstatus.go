package valueobjects

import "fmt"

type WorkflowStepStatus string

const (
	StepStatusPending  WorkflowStepStatus = "pending"
	StepStatusApproved WorkflowStepStatus = "approved"
	StepStatusRejected WorkflowStepStatus = "rejected"
)

var validStepStatuses = map[WorkflowStepStatus]bool{
	StepStatusPending:  true,
	StepStatusApproved: true,
	StepStatusRejected: true,
}

func (s WorkflowStepStatus) String() string {
	return string(s)
}

func (s WorkflowStepStatus) IsValid() bool {
	return validStepStatuses[s]
}

func (s WorkflowStepStatus) IsPending() bool {
	return s == StepStatusPending
}

// IsResolved reports whether the step reached a terminal state.
func (s WorkflowStepStatus) IsResolved() bool {
	return s == StepStatusApproved || s == StepStatusRejected
}

func NewWorkflowStepStatus(s string) (WorkflowStepStatus, error) {
	status := WorkflowStepStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid workflow step status: %s", s)
	}
	return status, nil
}
