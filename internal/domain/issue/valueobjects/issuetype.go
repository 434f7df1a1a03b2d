package valueobjects

import "fmt"

type IssueType string

const (
	TypeBug     IssueType = "bug"
	TypeFeature IssueType = "feature"
)

func (t IssueType) String() string {
	return string(t)
}

func (t IssueType) IsValid() bool {
	return t == TypeBug || t == TypeFeature
}

func NewIssueType(s string) (IssueType, error) {
	t := IssueType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid issue type: %s", s)
	}
	return t, nil
}
