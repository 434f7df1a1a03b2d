package usecases

import (
	"context"
	"errors"

	"orbit/internal/domain/issue"
	vo "orbit/internal/domain/issue/valueobjects"
	apperrors "orbit/internal/shared/errors"
	"orbit/internal/shared/logger"
)

// approvalResolver finalizes a resolved workflow step against its issue.
// Approval advances the issue to the step type's next status, rejection
// reverts it to the previous one. Both paths bypass the status graph: the
// mapped status is derived from the step, not requested by a user, and is
// not always a graph edge of the status the issue currently holds.
type approvalResolver struct {
	issueRepo issue.IssueRepository
	applier   *transitionApplier
	logger    logger.Interface
}

func newApprovalResolver(issueRepo issue.IssueRepository, notifier NotificationDispatcher, log logger.Interface) *approvalResolver {
	return &approvalResolver{
		issueRepo: issueRepo,
		applier:   newTransitionApplier(issueRepo, notifier, log),
		logger:    log,
	}
}

func (r *approvalResolver) onApproved(ctx context.Context, step *issue.WorkflowStep) (*issue.Issue, error) {
	return r.finalize(ctx, step, step.StepType().NextStatus())
}

func (r *approvalResolver) onRejected(ctx context.Context, step *issue.WorkflowStep) (*issue.Issue, error) {
	return r.finalize(ctx, step, step.StepType().PreviousStatus())
}

func (r *approvalResolver) finalize(ctx context.Context, step *issue.WorkflowStep, to vo.IssueStatus) (*issue.Issue, error) {
	iss, err := r.issueRepo.GetByID(ctx, step.IssueID())
	if err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		r.logger.Errorw("failed to load issue for step resolution", "issue_id", step.IssueID(), "step_id", step.ID(), "error", err)
		return nil, apperrors.NewInternalError("failed to load issue")
	}

	if err := r.applier.apply(ctx, iss, to, false); err != nil {
		return nil, err
	}
	return iss, nil
}
