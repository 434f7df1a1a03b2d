package constants

// Gin context keys set by the auth middleware.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// Database table names.
const (
	TableUsers         = "users"
	TableIssues        = "issues"
	TableWorkflowSteps = "workflow_steps"
	TableIssueComments = "issue_comments"
	TableNotifications = "notifications"
)
