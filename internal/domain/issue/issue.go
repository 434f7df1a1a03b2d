package issue

import (
	"fmt"
	"time"

	vo "orbit/internal/domain/issue/valueobjects"
	"orbit/internal/shared/biztime"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 5000
)

type Issue struct {
	id             uint
	title          string
	description    string
	issueType      vo.IssueType
	priority       vo.Priority
	status         vo.IssueStatus
	creatorID      uint
	assigneeID     *uint
	estimatedHours *float64
	actualHours    *float64
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	resolvedAt     *time.Time
}

func NewIssue(
	title string,
	description string,
	issueType vo.IssueType,
	priority vo.Priority,
	creatorID uint,
) (*Issue, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLength {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > maxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	if !issueType.IsValid() {
		return nil, fmt.Errorf("invalid issue type")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	now := biztime.NowUTC()

	return &Issue{
		title:       title,
		description: description,
		issueType:   issueType,
		priority:    priority,
		status:      vo.StatusNew,
		creatorID:   creatorID,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructIssue(
	id uint,
	title string,
	description string,
	issueType vo.IssueType,
	priority vo.Priority,
	status vo.IssueStatus,
	creatorID uint,
	assigneeID *uint,
	estimatedHours *float64,
	actualHours *float64,
	version int,
	createdAt, updatedAt time.Time,
	resolvedAt *time.Time,
) (*Issue, error) {
	if id == 0 {
		return nil, fmt.Errorf("issue ID cannot be zero")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !issueType.IsValid() {
		return nil, fmt.Errorf("invalid issue type")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	return &Issue{
		id:             id,
		title:          title,
		description:    description,
		issueType:      issueType,
		priority:       priority,
		status:         status,
		creatorID:      creatorID,
		assigneeID:     assigneeID,
		estimatedHours: estimatedHours,
		actualHours:    actualHours,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		resolvedAt:     resolvedAt,
	}, nil
}

func (i *Issue) ID() uint {
	return i.id
}

func (i *Issue) Title() string {
	return i.title
}

func (i *Issue) Description() string {
	return i.description
}

func (i *Issue) Type() vo.IssueType {
	return i.issueType
}

func (i *Issue) Priority() vo.Priority {
	return i.priority
}

func (i *Issue) Status() vo.IssueStatus {
	return i.status
}

func (i *Issue) CreatorID() uint {
	return i.creatorID
}

func (i *Issue) AssigneeID() *uint {
	return i.assigneeID
}

func (i *Issue) EstimatedHours() *float64 {
	return i.estimatedHours
}

func (i *Issue) ActualHours() *float64 {
	return i.actualHours
}

func (i *Issue) Version() int {
	return i.version
}

func (i *Issue) CreatedAt() time.Time {
	return i.createdAt
}

func (i *Issue) UpdatedAt() time.Time {
	return i.updatedAt
}

func (i *Issue) ResolvedAt() *time.Time {
	return i.resolvedAt
}

func (i *Issue) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("issue ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("issue ID cannot be zero")
	}
	i.id = id
	return nil
}

// TransitionTo changes the issue status along a legal status graph edge.
// It does not consult approval requirements; the transition engine decides
// whether a requested change may be applied directly.
func (i *Issue) TransitionTo(newStatus vo.IssueStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}

	if !i.status.CanTransitionTo(newStatus) {
		return fmt.Errorf("%w: %s to %s", ErrTransitionNotAllowed, i.status, newStatus)
	}

	i.applyStatus(newStatus)
	return nil
}

// ApplyStatus sets the status without consulting the status graph. It is
// reserved for finalizing an approval outcome, where the target status is
// computed from the resolved step rather than requested by a caller.
func (i *Issue) ApplyStatus(newStatus vo.IssueStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}

	i.applyStatus(newStatus)
	return nil
}

func (i *Issue) applyStatus(newStatus vo.IssueStatus) {
	leavingResolved := i.status.IsResolved() && !newStatus.IsResolved()

	i.status = newStatus
	i.updatedAt = biztime.NowUTC()
	i.version++

	if newStatus.IsResolved() {
		now := biztime.NowUTC()
		i.resolvedAt = &now
	} else if leavingResolved {
		i.resolvedAt = nil
	}
}

func (i *Issue) AssignTo(assigneeID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}

	i.assigneeID = &assigneeID
	i.updatedAt = biztime.NowUTC()
	i.version++

	return nil
}

func (i *Issue) Unassign() {
	i.assigneeID = nil
	i.updatedAt = biztime.NowUTC()
	i.version++
}

func (i *Issue) UpdateDetails(title, description string, priority vo.Priority) error {
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	if len(description) == 0 {
		return fmt.Errorf("description is required")
	}
	if len(description) > maxDescriptionLength {
		return fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	if !priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}

	i.title = title
	i.description = description
	i.priority = priority
	i.updatedAt = biztime.NowUTC()
	i.version++

	return nil
}

// RecordHours updates the estimate and actuals. Either argument may be nil
// to leave the current value unchanged.
func (i *Issue) RecordHours(estimated, actual *float64) error {
	if estimated != nil && *estimated <= 0 {
		return fmt.Errorf("estimated hours must be positive")
	}
	if actual != nil && *actual <= 0 {
		return fmt.Errorf("actual hours must be positive")
	}

	if estimated != nil {
		i.estimatedHours = estimated
	}
	if actual != nil {
		i.actualHours = actual
	}
	i.updatedAt = biztime.NowUTC()
	i.version++

	return nil
}

func (i *Issue) Validate() error {
	if len(i.title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(i.description) == 0 {
		return fmt.Errorf("description is required")
	}
	if !i.issueType.IsValid() {
		return fmt.Errorf("invalid issue type")
	}
	if !i.priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}
	if !i.status.IsValid() {
		return fmt.Errorf("invalid status")
	}
	if i.creatorID == 0 {
		return fmt.Errorf("creator ID is required")
	}
	return nil
}
