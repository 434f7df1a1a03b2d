package routes

import (
	"github.com/gin-gonic/gin"

	issuehandlers "orbit/internal/interfaces/http/handlers/issue"
	"orbit/internal/interfaces/http/middleware"
	"orbit/internal/shared/authorization"
)

type IssueRouteConfig struct {
	IssueHandler    *issuehandlers.IssueHandler
	WorkflowHandler *issuehandlers.WorkflowHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func SetupIssueRoutes(engine *gin.Engine, config *IssueRouteConfig) {
	issues := engine.Group("/issues")
	issues.Use(config.AuthMiddleware.RequireAuth())
	{
		// Register specific paths before parameterized paths to avoid
		// route conflicts.
		issues.POST("", config.IssueHandler.CreateIssue)
		issues.GET("", config.IssueHandler.ListIssues)

		issues.POST("/:id/assign", config.IssueHandler.AssignIssue)
		issues.POST("/:id/transitions", config.IssueHandler.RequestTransition)
		issues.POST("/:id/comments", config.IssueHandler.AddComment)
		issues.GET("/:id/comments", config.IssueHandler.ListComments)
		issues.GET("/:id/steps", config.WorkflowHandler.ListSteps)
		issues.POST("/:id/steps",
			authorization.RequireAdmin(),
			config.WorkflowHandler.CreateStep)

		issues.GET("/:id", config.IssueHandler.GetIssue)
		issues.PATCH("/:id", config.IssueHandler.UpdateIssue)
	}

	steps := engine.Group("/steps")
	steps.Use(config.AuthMiddleware.RequireAuth())
	{
		steps.POST("/:id/approve",
			authorization.RequireReviewer(),
			config.WorkflowHandler.ApproveStep)
		steps.POST("/:id/reject",
			authorization.RequireReviewer(),
			config.WorkflowHandler.RejectStep)
	}
}
