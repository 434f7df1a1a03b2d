package usecases

import (
	"context"
	"errors"
	"fmt"

	"orbit/internal/application/issue/dto"
	"orbit/internal/domain/issue"
	vo "orbit/internal/domain/issue/valueobjects"
	"orbit/internal/domain/user"
	apperrors "orbit/internal/shared/errors"
	"orbit/internal/shared/logger"
)

// Transition outcomes. A request either lands immediately or parks behind a
// pending approval step.
const (
	TransitionOutcomeApplied         = "applied"
	TransitionOutcomePendingApproval = "pending_approval"
)

type RequestTransitionCommand struct {
	IssueID     uint
	ToStatus    string
	RequestedBy uint
	Comment     string
	// ApproverID overrides automatic approver selection for gated
	// transitions. Ignored for direct ones.
	ApproverID *uint
}

type RequestTransitionResult struct {
	Outcome    string               `json:"outcome"`
	Issue      *dto.IssueDTO        `json:"issue"`
	Step       *dto.WorkflowStepDTO `json:"step,omitempty"`
	FromStatus string               `json:"from_status"`
	ToStatus   string               `json:"to_status"`
}

// RequestTransitionUseCase decides whether a requested status change applies
// immediately or requires an approval step first, and performs whichever
// applies.
type RequestTransitionUseCase struct {
	issueRepo issue.IssueRepository
	stepRepo  issue.WorkflowStepRepository
	applier   *transitionApplier
	steps     *stepManager
	comments  CommentCreator
	logger    logger.Interface
}

func NewRequestTransitionUseCase(
	issueRepo issue.IssueRepository,
	stepRepo issue.WorkflowStepRepository,
	userRepo user.UserRepository,
	comments CommentCreator,
	notifier NotificationDispatcher,
	log logger.Interface,
) *RequestTransitionUseCase {
	return &RequestTransitionUseCase{
		issueRepo: issueRepo,
		stepRepo:  stepRepo,
		applier:   newTransitionApplier(issueRepo, notifier, log),
		steps:     newStepManager(stepRepo, userRepo, notifier, log),
		comments:  comments,
		logger:    log,
	}
}

func (uc *RequestTransitionUseCase) Execute(ctx context.Context, cmd RequestTransitionCommand) (*RequestTransitionResult, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	toStatus, err := vo.NewIssueStatus(cmd.ToStatus)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	iss, err := uc.issueRepo.GetByID(ctx, cmd.IssueID)
	if err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		uc.logger.Errorw("failed to load issue", "issue_id", cmd.IssueID, "error", err)
		return nil, apperrors.NewInternalError("failed to load issue")
	}

	from := iss.Status()
	if !from.CanTransitionTo(toStatus) {
		return nil, apperrors.NewInvalidTransitionError(from.String(), toStatus.String())
	}

	// Any pending step blocks further transition requests, gated or direct.
	// A direct move while an approval is in flight would let the eventual
	// resolution apply a status the issue never legally reached.
	pending, err := uc.stepRepo.FindPendingByIssue(ctx, iss.ID())
	if err != nil {
		uc.logger.Errorw("failed to check pending steps", "issue_id", iss.ID(), "error", err)
		return nil, apperrors.NewInternalError("failed to check pending workflow steps")
	}
	if pending != nil {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("issue already has a pending %s step", pending.StepType()))
	}

	req := vo.RequirementFor(from, toStatus)
	if req.RequiresApproval {
		return uc.requestApproval(ctx, iss, req, cmd)
	}

	if err := uc.applier.apply(ctx, iss, toStatus, true); err != nil {
		return nil, err
	}

	if cmd.Comment != "" && uc.comments != nil {
		if err := uc.comments.AddComment(ctx, iss.ID(), cmd.RequestedBy, cmd.Comment); err != nil {
			uc.logger.Warnw("failed to record transition comment", "issue_id", iss.ID(), "error", err)
		}
	}

	return &RequestTransitionResult{
		Outcome:    TransitionOutcomeApplied,
		Issue:      dto.IssueToDTOWithTransitions(iss),
		FromStatus: from.String(),
		ToStatus:   toStatus.String(),
	}, nil
}

// requestApproval parks the transition behind a pending step. The issue
// keeps its current status until the step is resolved. Execute has already
// refused the request if another step is still pending.
func (uc *RequestTransitionUseCase) requestApproval(ctx context.Context, iss *issue.Issue, req vo.TransitionRequirement, cmd RequestTransitionCommand) (*RequestTransitionResult, error) {
	step, err := uc.steps.createStep(ctx, iss, req.StepType, cmd.ApproverID)
	if err != nil {
		return nil, err
	}

	return &RequestTransitionResult{
		Outcome:    TransitionOutcomePendingApproval,
		Issue:      dto.IssueToDTOWithTransitions(iss),
		Step:       dto.StepToDTO(step),
		FromStatus: iss.Status().String(),
		ToStatus:   cmd.ToStatus,
	}, nil
}

func (uc *RequestTransitionUseCase) validateCommand(cmd RequestTransitionCommand) error {
	if cmd.IssueID == 0 {
		return apperrors.NewValidationError("issue ID is required")
	}
	if cmd.ToStatus == "" {
		return apperrors.NewValidationError("target status is required")
	}
	if cmd.RequestedBy == 0 {
		return apperrors.NewValidationError("requesting user ID is required")
	}
	return nil
}
