package notify

import (
	"context"
	"fmt"

	"orbit/internal/domain/issue"
	"orbit/internal/domain/notification"
	"orbit/internal/domain/user"
	"orbit/internal/infrastructure/email"
	"orbit/internal/shared/logger"
	"orbit/internal/shared/services/markdown"
)

// Dispatcher records in-app notifications and, when an email service is
// configured, mirrors them by mail. Delivery failures are logged and
// swallowed; a lost notification must never fail the workflow operation
// that produced it.
type Dispatcher struct {
	notifRepo notification.NotificationRepository
	userRepo  user.UserRepository
	email     *email.SMTPEmailService
	markdown  markdown.MarkdownService
	logger    logger.Interface
}

func NewDispatcher(
	notifRepo notification.NotificationRepository,
	userRepo user.UserRepository,
	emailService *email.SMTPEmailService,
	log logger.Interface,
) *Dispatcher {
	return &Dispatcher{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		email:     emailService,
		markdown:  markdown.NewMarkdownService(),
		logger:    log,
	}
}

func (d *Dispatcher) NotifyApprovalRequired(ctx context.Context, approverID uint, iss *issue.Issue, step *issue.WorkflowStep) {
	title := fmt.Sprintf("Approval required: %s", iss.Title())
	content := fmt.Sprintf("Issue **%s** (#%d) is waiting on a %s approval from you.",
		iss.Title(), iss.ID(), step.StepType().String())

	d.record(ctx, approverID, notification.TypeApprovalRequired, title, content, iss.ID())
	d.mail(ctx, approverID, iss.Title(), content, true)
}

func (d *Dispatcher) NotifyStatusChanged(ctx context.Context, userID uint, iss *issue.Issue, from, to string) {
	title := fmt.Sprintf("Issue updated: %s", iss.Title())
	content := fmt.Sprintf("Issue **%s** (#%d) moved from %s to %s.",
		iss.Title(), iss.ID(), from, to)

	d.record(ctx, userID, notification.TypeStatusChanged, title, content, iss.ID())
	d.mail(ctx, userID, iss.Title(), content, false)
}

func (d *Dispatcher) record(ctx context.Context, userID uint, notifType notification.Type, title, content string, issueID uint) {
	n, err := notification.NewNotification(userID, notifType, title, content, issueID)
	if err != nil {
		d.logger.Warnw("failed to build notification", "user_id", userID, "error", err)
		return
	}
	if err := d.notifRepo.Save(ctx, n); err != nil {
		d.logger.Warnw("failed to save notification", "user_id", userID, "issue_id", issueID, "error", err)
	}
}

func (d *Dispatcher) mail(ctx context.Context, userID uint, issueTitle, markdownBody string, approval bool) {
	if d.email == nil {
		return
	}

	u, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		d.logger.Warnw("failed to load notification recipient", "user_id", userID, "error", err)
		return
	}

	htmlBody, err := d.markdown.ToHTMLSanitized(markdownBody)
	if err != nil {
		d.logger.Warnw("failed to render notification email", "user_id", userID, "error", err)
		return
	}

	if approval {
		err = d.email.SendApprovalRequiredEmail(u.Email(), issueTitle, htmlBody, markdownBody)
	} else {
		err = d.email.SendStatusChangedEmail(u.Email(), issueTitle, htmlBody, markdownBody)
	}
	if err != nil {
		d.logger.Warnw("failed to send notification email", "user_id", userID, "error", err)
	}
}
