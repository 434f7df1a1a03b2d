package valueobjects

import "orbit/internal/shared/authorization"

// TransitionRequirement describes whether a status graph edge is gated by an
// approval step, and if so which role approves it.
type TransitionRequirement struct {
	RequiresApproval bool
	ApproverRole     authorization.UserRole
	StepType         WorkflowStepType
}

// transitionApprovals lists the forward-progress edges that hand off to a new
// reviewer role. All other edges apply directly. Each review stage is entered
// on approval by the role leaving it: dev_review entry by developer, pm_review
// entry by qa, resolution by product_manager.
var transitionApprovals = map[IssueStatus]map[IssueStatus]TransitionRequirement{
	StatusInProgress: {
		StatusDevReview: {
			RequiresApproval: true,
			ApproverRole:     authorization.RoleDeveloper,
			StepType:         StepTypeDevReview,
		},
	},
	StatusQAReview: {
		StatusPMReview: {
			RequiresApproval: true,
			ApproverRole:     authorization.RoleQA,
			StepType:         StepTypeQAReview,
		},
	},
	StatusPMReview: {
		StatusResolved: {
			RequiresApproval: true,
			ApproverRole:     authorization.RoleProductManager,
			StepType:         StepTypePMReview,
		},
	},
}

// RequirementFor returns the approval requirement for the (from, to) edge.
// It reports a zero requirement for direct edges and for pairs that are not
// edges at all; callers must check CanTransitionTo first.
func RequirementFor(from, to IssueStatus) TransitionRequirement {
	if byTarget, ok := transitionApprovals[from]; ok {
		if req, ok := byTarget[to]; ok {
			return req
		}
	}
	return TransitionRequirement{}
}
