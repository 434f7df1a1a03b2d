package usecases

import (
	"context"

	"orbit/internal/application/issue/dto"
)

type CreateIssueExecutor interface {
	Execute(ctx context.Context, cmd CreateIssueCommand) (*dto.IssueDTO, error)
}

type GetIssueExecutor interface {
	Execute(ctx context.Context, issueID uint) (*GetIssueResult, error)
}

type ListIssuesExecutor interface {
	Execute(ctx context.Context, cmd ListIssuesCommand) (*ListIssuesResult, error)
}

type UpdateIssueExecutor interface {
	Execute(ctx context.Context, cmd UpdateIssueCommand) (*dto.IssueDTO, error)
}

type AssignIssueExecutor interface {
	Execute(ctx context.Context, cmd AssignIssueCommand) (*dto.IssueDTO, error)
}

type RequestTransitionExecutor interface {
	Execute(ctx context.Context, cmd RequestTransitionCommand) (*RequestTransitionResult, error)
}

type CreateStepExecutor interface {
	Execute(ctx context.Context, cmd CreateStepCommand) (*dto.WorkflowStepDTO, error)
}

type ApproveStepExecutor interface {
	Execute(ctx context.Context, cmd ApproveStepCommand) (*ResolveStepResult, error)
}

type RejectStepExecutor interface {
	Execute(ctx context.Context, cmd RejectStepCommand) (*ResolveStepResult, error)
}

type ListStepsExecutor interface {
	Execute(ctx context.Context, issueID uint) ([]*dto.WorkflowStepDTO, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*CommentDTO, error)
}

type ListCommentsExecutor interface {
	Execute(ctx context.Context, cmd ListCommentsCommand) (*ListCommentsResult, error)
}
