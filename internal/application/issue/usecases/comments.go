package usecases

import (
	"context"
	"errors"
	"time"

	"orbit/internal/domain/issue"
	apperrors "orbit/internal/shared/errors"
	"orbit/internal/shared/logger"
)

type CommentDTO struct {
	ID        uint      `json:"id"`
	IssueID   uint      `json:"issue_id"`
	AuthorID  uint      `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type AddCommentCommand struct {
	IssueID  uint
	AuthorID uint
	Content  string
}

type AddCommentUseCase struct {
	issueRepo   issue.IssueRepository
	commentRepo issue.CommentRepository
	logger      logger.Interface
}

func NewAddCommentUseCase(issueRepo issue.IssueRepository, commentRepo issue.CommentRepository, log logger.Interface) *AddCommentUseCase {
	return &AddCommentUseCase{
		issueRepo:   issueRepo,
		commentRepo: commentRepo,
		logger:      log,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*CommentDTO, error) {
	if _, err := uc.issueRepo.GetByID(ctx, cmd.IssueID); err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		uc.logger.Errorw("failed to load issue", "issue_id", cmd.IssueID, "error", err)
		return nil, apperrors.NewInternalError("failed to load issue")
	}

	comment, err := issue.NewComment(cmd.IssueID, cmd.AuthorID, cmd.Content)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.commentRepo.Save(ctx, comment); err != nil {
		uc.logger.Errorw("failed to save comment", "issue_id", cmd.IssueID, "error", err)
		return nil, apperrors.NewInternalError("failed to save comment")
	}

	return commentToDTO(comment), nil
}

// AddComment satisfies the CommentCreator collaborator so the transition
// engine can record transition comments through the same path.
func (uc *AddCommentUseCase) AddComment(ctx context.Context, issueID, authorID uint, content string) error {
	_, err := uc.Execute(ctx, AddCommentCommand{IssueID: issueID, AuthorID: authorID, Content: content})
	return err
}

type ListCommentsCommand struct {
	IssueID  uint
	Page     int
	PageSize int
}

type ListCommentsResult struct {
	Comments []*CommentDTO `json:"comments"`
	Total    int64         `json:"total"`
}

type ListCommentsUseCase struct {
	issueRepo   issue.IssueRepository
	commentRepo issue.CommentRepository
	logger      logger.Interface
}

func NewListCommentsUseCase(issueRepo issue.IssueRepository, commentRepo issue.CommentRepository, log logger.Interface) *ListCommentsUseCase {
	return &ListCommentsUseCase{
		issueRepo:   issueRepo,
		commentRepo: commentRepo,
		logger:      log,
	}
}

func (uc *ListCommentsUseCase) Execute(ctx context.Context, cmd ListCommentsCommand) (*ListCommentsResult, error) {
	if cmd.IssueID == 0 {
		return nil, apperrors.NewValidationError("issue ID is required")
	}

	if _, err := uc.issueRepo.GetByID(ctx, cmd.IssueID); err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		uc.logger.Errorw("failed to load issue", "issue_id", cmd.IssueID, "error", err)
		return nil, apperrors.NewInternalError("failed to load issue")
	}

	comments, total, err := uc.commentRepo.ListByIssue(ctx, cmd.IssueID, cmd.Page, cmd.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list comments", "issue_id", cmd.IssueID, "error", err)
		return nil, apperrors.NewInternalError("failed to list comments")
	}

	out := make([]*CommentDTO, len(comments))
	for i, c := range comments {
		out[i] = commentToDTO(c)
	}

	return &ListCommentsResult{Comments: out, Total: total}, nil
}

func commentToDTO(c *issue.Comment) *CommentDTO {
	return &CommentDTO{
		ID:        c.ID(),
		IssueID:   c.IssueID(),
		AuthorID:  c.AuthorID(),
		Content:   c.Content(),
		CreatedAt: c.CreatedAt(),
	}
}
