package valueobjects

import "fmt"

type IssueStatus string

const (
	StatusNew        IssueStatus = "new"
	StatusInProgress IssueStatus = "in_progress"
	StatusDevReview  IssueStatus = "dev_review"
	StatusQAReview   IssueStatus = "qa_review"
	StatusPMReview   IssueStatus = "pm_review"
	StatusResolved   IssueStatus = "resolved"
	StatusRejected   IssueStatus = "rejected"
)

var validIssueStatuses = map[IssueStatus]bool{
	StatusNew:        true,
	StatusInProgress: true,
	StatusDevReview:  true,
	StatusQAReview:   true,
	StatusPMReview:   true,
	StatusResolved:   true,
	StatusRejected:   true,
}

// issueStatusTransitions is the static adjacency list of legal status
// transitions. Forward hand-offs to a new reviewer role are additionally
// gated by an approval step; see transitionRequirements.
var issueStatusTransitions = map[IssueStatus][]IssueStatus{
	StatusNew: {
		StatusInProgress,
	},
	StatusInProgress: {
		StatusDevReview,
		StatusNew,
	},
	StatusDevReview: {
		StatusQAReview,
		StatusInProgress,
		StatusRejected,
	},
	StatusQAReview: {
		StatusPMReview,
		StatusDevReview,
		StatusRejected,
	},
	StatusPMReview: {
		StatusResolved,
		StatusQAReview,
		StatusRejected,
	},
	StatusResolved: {
		StatusNew,
	},
	StatusRejected: {
		StatusNew,
	},
}

// issueStatusRanks orders statuses for display sorting only; it carries no
// transition semantics.
var issueStatusRanks = map[IssueStatus]int{
	StatusNew:        1,
	StatusInProgress: 2,
	StatusDevReview:  3,
	StatusQAReview:   4,
	StatusPMReview:   5,
	StatusResolved:   6,
	StatusRejected:   7,
}

func (s IssueStatus) String() string {
	return string(s)
}

func (s IssueStatus) IsValid() bool {
	return validIssueStatuses[s]
}

func (s IssueStatus) CanTransitionTo(newStatus IssueStatus) bool {
	allowed, ok := issueStatusTransitions[s]
	if !ok {
		return false
	}

	for _, to := range allowed {
		if to == newStatus {
			return true
		}
	}
	return false
}

// AvailableTransitions returns the statuses directly reachable from s.
// The returned slice is a copy; callers may mutate it freely.
func (s IssueStatus) AvailableTransitions() []IssueStatus {
	allowed := issueStatusTransitions[s]
	out := make([]IssueStatus, len(allowed))
	copy(out, allowed)
	return out
}

func (s IssueStatus) Rank() int {
	rank, ok := issueStatusRanks[s]
	if !ok {
		return len(issueStatusRanks) + 1
	}
	return rank
}

func (s IssueStatus) IsNew() bool {
	return s == StatusNew
}

func (s IssueStatus) IsResolved() bool {
	return s == StatusResolved
}

func (s IssueStatus) IsRejected() bool {
	return s == StatusRejected
}

func (s IssueStatus) IsTerminal() bool {
	return s == StatusResolved || s == StatusRejected
}

func NewIssueStatus(s string) (IssueStatus, error) {
	status := IssueStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid issue status: %s", s)
	}
	return status, nil
}

// AllIssueStatuses returns every defined status in rank order.
func AllIssueStatuses() []IssueStatus {
	return []IssueStatus{
		StatusNew,
		StatusInProgress,
		StatusDevReview,
		StatusQAReview,
		StatusPMReview,
		StatusResolved,
		StatusRejected,
	}
}
