package usecases

import (
	"context"
	"errors"

	"orbit/internal/domain/issue"
	vo "orbit/internal/domain/issue/valueobjects"
	apperrors "orbit/internal/shared/errors"
	"orbit/internal/shared/logger"
)

// transitionApplier is the single path through which issue status actually
// changes. Direct transitions go through the status graph; approval
// resolutions apply the step's mapped status unconditionally, since the
// mapped target is not always an edge of the graph (approving a dev_review
// step moves an in_progress issue straight to qa_review).
type transitionApplier struct {
	issueRepo issue.IssueRepository
	notifier  NotificationDispatcher
	logger    logger.Interface
}

func newTransitionApplier(issueRepo issue.IssueRepository, notifier NotificationDispatcher, log logger.Interface) *transitionApplier {
	return &transitionApplier{
		issueRepo: issueRepo,
		notifier:  notifier,
		logger:    log,
	}
}

// apply moves iss to newStatus and persists the change with a
// compare-and-swap on the status the issue held when it was loaded. A lost
// race surfaces as a conflict error so the caller can retry against fresh
// state.
func (a *transitionApplier) apply(ctx context.Context, iss *issue.Issue, newStatus vo.IssueStatus, viaGraph bool) error {
	from := iss.Status()

	var err error
	if viaGraph {
		err = iss.TransitionTo(newStatus)
	} else {
		err = iss.ApplyStatus(newStatus)
	}
	if err != nil {
		if errors.Is(err, issue.ErrTransitionNotAllowed) {
			return apperrors.NewInvalidTransitionError(from.String(), newStatus.String())
		}
		return apperrors.NewValidationError(err.Error())
	}

	if err := a.issueRepo.UpdateStatus(ctx, iss.ID(), from, newStatus, iss.UpdatedAt(), iss.ResolvedAt()); err != nil {
		if errors.Is(err, issue.ErrStaleStatus) {
			return apperrors.NewConflictError("issue status changed concurrently, reload and retry")
		}
		a.logger.Errorw("failed to persist status change", "issue_id", iss.ID(), "from", from.String(), "to", newStatus.String(), "error", err)
		return apperrors.NewInternalError("failed to update issue status")
	}

	a.logger.Infow("issue status changed", "issue_id", iss.ID(), "from", from.String(), "to", newStatus.String())

	if a.notifier != nil {
		if assignee := iss.AssigneeID(); assignee != nil {
			a.notifier.NotifyStatusChanged(ctx, *assignee, iss, from.String(), newStatus.String())
		}
		if iss.CreatorID() != 0 {
			if assignee := iss.AssigneeID(); assignee == nil || *assignee != iss.CreatorID() {
				a.notifier.NotifyStatusChanged(ctx, iss.CreatorID(), iss, from.String(), newStatus.String())
			}
		}
	}

	return nil
}
