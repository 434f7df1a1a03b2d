package issue

import "errors"

var (
	// ErrIssueNotFound is returned by repositories when no issue matches.
	ErrIssueNotFound = errors.New("issue not found")

	// ErrStepNotFound is returned by repositories when no workflow step matches.
	ErrStepNotFound = errors.New("workflow step not found")

	// ErrTransitionNotAllowed is returned by Issue.TransitionTo when the
	// requested status is not an edge of the status graph.
	ErrTransitionNotAllowed = errors.New("transition not allowed")

	// ErrStaleStatus is returned by IssueRepository.UpdateStatus when the
	// compare-and-swap write touched zero rows because a concurrent request
	// already moved the issue off the expected status.
	ErrStaleStatus = errors.New("issue status changed concurrently")
)
