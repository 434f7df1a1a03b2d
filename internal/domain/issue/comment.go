package issue

import (
	"fmt"
	"strings"
	"time"

	"orbit/internal/shared/biztime"
)

const MaxCommentLength = 2000

// Comment is a free-form note on an issue. Transition comments on direct
// status moves are recorded here as well.
type Comment struct {
	id        uint
	issueID   uint
	authorID  uint
	content   string
	createdAt time.Time
}

func NewComment(issueID, authorID uint, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if issueID == 0 {
		return nil, fmt.Errorf("issue ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if content == "" {
		return nil, fmt.Errorf("comment content cannot be empty")
	}
	if len(content) > MaxCommentLength {
		return nil, fmt.Errorf("comment content cannot exceed %d characters", MaxCommentLength)
	}

	return &Comment{
		issueID:   issueID,
		authorID:  authorID,
		content:   content,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructComment(id, issueID, authorID uint, content string, createdAt time.Time) *Comment {
	return &Comment{
		id:        id,
		issueID:   issueID,
		authorID:  authorID,
		content:   content,
		createdAt: createdAt,
	}
}

func (c *Comment) ID() uint             { return c.id }
func (c *Comment) IssueID() uint        { return c.issueID }
func (c *Comment) AuthorID() uint       { return c.authorID }
func (c *Comment) Content() string      { return c.content }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID already set")
	}
	if id == 0 {
		return fmt.Errorf("invalid comment ID")
	}
	c.id = id
	return nil
}
