package notification

import (
	"fmt"
	"time"

	"orbit/internal/shared/biztime"
)

type Type string

const (
	// TypeApprovalRequired notifies a reviewer that a pending workflow step
	// awaits their approval.
	TypeApprovalRequired Type = "approval_required"
	// TypeStatusChanged notifies an issue's assignee that its status moved.
	TypeStatusChanged Type = "status_changed"
)

func (t Type) IsValid() bool {
	return t == TypeApprovalRequired || t == TypeStatusChanged
}

func (t Type) String() string {
	return string(t)
}

// Notification is a persisted in-app notification record. Delivery beyond
// storage (email) is handled by the dispatcher and is fire-and-forget.
type Notification struct {
	id        uint
	userID    uint
	notifType Type
	title     string
	content   string
	issueID   uint
	readAt    *time.Time
	createdAt time.Time
}

func NewNotification(userID uint, notifType Type, title, content string, issueID uint) (*Notification, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !notifType.IsValid() {
		return nil, fmt.Errorf("invalid notification type")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if issueID == 0 {
		return nil, fmt.Errorf("issue ID is required")
	}

	return &Notification{
		userID:    userID,
		notifType: notifType,
		title:     title,
		content:   content,
		issueID:   issueID,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructNotification(
	id uint,
	userID uint,
	notifType Type,
	title string,
	content string,
	issueID uint,
	readAt *time.Time,
	createdAt time.Time,
) (*Notification, error) {
	if id == 0 {
		return nil, fmt.Errorf("notification ID cannot be zero")
	}
	if !notifType.IsValid() {
		return nil, fmt.Errorf("invalid notification type")
	}

	return &Notification{
		id:        id,
		userID:    userID,
		notifType: notifType,
		title:     title,
		content:   content,
		issueID:   issueID,
		readAt:    readAt,
		createdAt: createdAt,
	}, nil
}

func (n *Notification) ID() uint {
	return n.id
}

func (n *Notification) UserID() uint {
	return n.userID
}

// GetOwnerID satisfies authorization.OwnedResource.
func (n *Notification) GetOwnerID() uint {
	return n.userID
}

func (n *Notification) Type() Type {
	return n.notifType
}

func (n *Notification) Title() string {
	return n.title
}

func (n *Notification) Content() string {
	return n.content
}

func (n *Notification) IssueID() uint {
	return n.issueID
}

func (n *Notification) ReadAt() *time.Time {
	return n.readAt
}

func (n *Notification) IsRead() bool {
	return n.readAt != nil
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

func (n *Notification) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("notification ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("notification ID cannot be zero")
	}
	n.id = id
	return nil
}

func (n *Notification) MarkRead() {
	if n.readAt != nil {
		return
	}
	now := biztime.NowUTC()
	n.readAt = &now
}
