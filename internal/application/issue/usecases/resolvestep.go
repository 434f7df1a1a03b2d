package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orbit/internal/application/issue/dto"
	"orbit/internal/domain/issue"
	"orbit/internal/shared/authorization"
	apperrors "orbit/internal/shared/errors"
	"orbit/internal/shared/logger"
)

type ResolveStepResult struct {
	Step  *dto.WorkflowStepDTO `json:"step"`
	Issue *dto.IssueDTO        `json:"issue"`
}

// resolveStepBase holds the collaborators shared by the approve and reject
// usecases and the precondition checks common to both.
type resolveStepBase struct {
	issueRepo issue.IssueRepository
	stepRepo  issue.WorkflowStepRepository
	resolver  *approvalResolver
	txManager TransactionManager
	logger    logger.Interface
}

// loadResolvableStep fetches the step and verifies the resolving user may
// act on it. The role check is a safety net behind the HTTP middleware: the
// resolver must hold the role the step type requires unless they are an
// admin or the step's designated approver.
func (b *resolveStepBase) loadResolvableStep(ctx context.Context, stepID, resolverID uint, resolverRole authorization.UserRole) (*issue.WorkflowStep, error) {
	step, err := b.stepRepo.GetByID(ctx, stepID)
	if err != nil {
		if errors.Is(err, issue.ErrStepNotFound) {
			return nil, apperrors.NewNotFoundError("workflow step not found")
		}
		b.logger.Errorw("failed to load workflow step", "step_id", stepID, "error", err)
		return nil, apperrors.NewInternalError("failed to load workflow step")
	}

	if step.ApproverID() != nil {
		if *step.ApproverID() != resolverID && resolverRole != authorization.RoleAdmin {
			return nil, apperrors.NewAuthorizationError("only the designated approver can resolve this step")
		}
	} else if resolverRole != authorization.RoleAdmin && resolverRole != step.StepType().RequiredRole() {
		return nil, apperrors.NewAuthorizationError("resolving this step requires the " + string(step.StepType().RequiredRole()) + " role")
	}

	if !step.Status().IsPending() {
		return nil, apperrors.NewConflictError("workflow step already " + step.Status().String())
	}

	return step, nil
}

// persistResolution writes the resolved step and the resulting issue status
// change atomically.
func (b *resolveStepBase) persistResolution(ctx context.Context, step *issue.WorkflowStep, finalize func(context.Context, *issue.WorkflowStep) (*issue.Issue, error)) (*issue.Issue, error) {
	var iss *issue.Issue
	err := b.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := b.stepRepo.Update(txCtx, step); err != nil {
			b.logger.Errorw("failed to update workflow step", "step_id", step.ID(), "error", err)
			return apperrors.NewInternalError("failed to update workflow step")
		}
		var err error
		iss, err = finalize(txCtx, step)
		return err
	})
	if err != nil {
		return nil, err
	}
	return iss, nil
}

func newResolveStepBase(
	issueRepo issue.IssueRepository,
	stepRepo issue.WorkflowStepRepository,
	notifier NotificationDispatcher,
	txManager TransactionManager,
	log logger.Interface,
) resolveStepBase {
	return resolveStepBase{
		issueRepo: issueRepo,
		stepRepo:  stepRepo,
		resolver:  newApprovalResolver(issueRepo, notifier, log),
		txManager: txManager,
		logger:    log,
	}
}

type ApproveStepCommand struct {
	StepID       uint
	ApproverID   uint
	ApproverRole authorization.UserRole
	Comments     string
}

type ApproveStepUseCase struct {
	resolveStepBase
}

func NewApproveStepUseCase(
	issueRepo issue.IssueRepository,
	stepRepo issue.WorkflowStepRepository,
	notifier NotificationDispatcher,
	txManager TransactionManager,
	log logger.Interface,
) *ApproveStepUseCase {
	return &ApproveStepUseCase{
		resolveStepBase: newResolveStepBase(issueRepo, stepRepo, notifier, txManager, log),
	}
}

func (uc *ApproveStepUseCase) Execute(ctx context.Context, cmd ApproveStepCommand) (*ResolveStepResult, error) {
	if cmd.StepID == 0 {
		return nil, apperrors.NewValidationError("step ID is required")
	}
	if cmd.ApproverID == 0 {
		return nil, apperrors.NewValidationError("approver ID is required")
	}

	step, err := uc.loadResolvableStep(ctx, cmd.StepID, cmd.ApproverID, cmd.ApproverRole)
	if err != nil {
		return nil, err
	}

	if err := step.Approve(cmd.ApproverID, cmd.Comments); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	iss, err := uc.persistResolution(ctx, step, uc.resolver.onApproved)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("workflow step approved", "step_id", step.ID(), "issue_id", step.IssueID(), "approver_id", cmd.ApproverID)

	return &ResolveStepResult{
		Step:  dto.StepToDTO(step),
		Issue: dto.IssueToDTOWithTransitions(iss),
	}, nil
}

type RejectStepCommand struct {
	StepID       uint
	ApproverID   uint
	ApproverRole authorization.UserRole
	Comments     string
}

type RejectStepUseCase struct {
	resolveStepBase
}

func NewRejectStepUseCase(
	issueRepo issue.IssueRepository,
	stepRepo issue.WorkflowStepRepository,
	notifier NotificationDispatcher,
	txManager TransactionManager,
	log logger.Interface,
) *RejectStepUseCase {
	return &RejectStepUseCase{
		resolveStepBase: newResolveStepBase(issueRepo, stepRepo, notifier, txManager, log),
	}
}

func (uc *RejectStepUseCase) Execute(ctx context.Context, cmd RejectStepCommand) (*ResolveStepResult, error) {
	if cmd.StepID == 0 {
		return nil, apperrors.NewValidationError("step ID is required")
	}
	if cmd.ApproverID == 0 {
		return nil, apperrors.NewValidationError("approver ID is required")
	}
	if len(strings.TrimSpace(cmd.Comments)) < issue.MinRejectionCommentLength {
		return nil, apperrors.NewValidationError("rejection comments are required",
			fmt.Sprintf("comments must be at least %d characters", issue.MinRejectionCommentLength))
	}

	step, err := uc.loadResolvableStep(ctx, cmd.StepID, cmd.ApproverID, cmd.ApproverRole)
	if err != nil {
		return nil, err
	}

	if err := step.Reject(cmd.ApproverID, cmd.Comments); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	iss, err := uc.persistResolution(ctx, step, uc.resolver.onRejected)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("workflow step rejected", "step_id", step.ID(), "issue_id", step.IssueID(), "approver_id", cmd.ApproverID)

	return &ResolveStepResult{
		Step:  dto.StepToDTO(step),
		Issue: dto.IssueToDTOWithTransitions(iss),
	}, nil
}
