package usecases

import (
	"context"

	"orbit/internal/domain/issue"
)

// NotificationDispatcher delivers workflow notifications. Implementations
// must not let delivery failures surface here; a lost notification never
// fails the transition that produced it.
type NotificationDispatcher interface {
	NotifyApprovalRequired(ctx context.Context, approverID uint, iss *issue.Issue, step *issue.WorkflowStep)
	NotifyStatusChanged(ctx context.Context, userID uint, iss *issue.Issue, from, to string)
}

// CommentCreator records a free-form comment against an issue. Transition
// comments on direct moves are forwarded here.
type CommentCreator interface {
	AddComment(ctx context.Context, issueID, authorID uint, content string) error
}

// TransactionManager runs a function inside a database transaction carried
// through the context. Satisfied by db.TransactionManager.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
