package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	issueusecases "orbit/internal/application/issue/usecases"
	notificationusecases "orbit/internal/application/notification/usecases"
	userusecases "orbit/internal/application/user/usecases"
	"orbit/internal/infrastructure/auth"
	"orbit/internal/infrastructure/config"
	"orbit/internal/infrastructure/email"
	"orbit/internal/infrastructure/notify"
	"orbit/internal/infrastructure/ratelimit"
	"orbit/internal/infrastructure/repository"
	authhandlers "orbit/internal/interfaces/http/handlers/auth"
	issuehandlers "orbit/internal/interfaces/http/handlers/issue"
	notificationhandlers "orbit/internal/interfaces/http/handlers/notification"
	"orbit/internal/interfaces/http/middleware"
	"orbit/internal/interfaces/http/routes"
	"orbit/internal/shared/db"
	"orbit/internal/shared/logger"
)

// Router wires repositories, usecases, handlers and routes onto a gin
// engine.
type Router struct {
	engine *gin.Engine
}

func NewRouter(cfg *config.Config, gdb *gorm.DB, log logger.Interface) *Router {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))

	if cfg.RateLimit.Enabled && cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter := ratelimit.NewRedisRateLimiter(redisClient)
		engine.Use(middleware.RateLimit(limiter, ratelimit.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		}, log))
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	txManager := db.NewTransactionManager(gdb)

	var emailService *email.SMTPEmailService
	if cfg.Email.Enabled {
		emailService = email.NewSMTPEmailService(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUser,
			Password:    cfg.Email.SMTPPassword,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
			BaseURL:     cfg.Server.BaseURL,
		})
	}

	// Repositories
	issueRepo := repository.NewIssueRepository(gdb)
	stepRepo := repository.NewWorkflowStepRepository(gdb)
	commentRepo := repository.NewCommentRepository(gdb)
	userRepo := repository.NewUserRepository(gdb)
	notifRepo := repository.NewNotificationRepository(gdb)

	dispatcher := notify.NewDispatcher(notifRepo, userRepo, emailService, log)

	// Usecases
	addCommentUC := issueusecases.NewAddCommentUseCase(issueRepo, commentRepo, log)

	issueHandler := issuehandlers.NewIssueHandler(
		issueusecases.NewCreateIssueUseCase(issueRepo, userRepo, log),
		issueusecases.NewGetIssueUseCase(issueRepo, stepRepo, log),
		issueusecases.NewListIssuesUseCase(issueRepo, log),
		issueusecases.NewUpdateIssueUseCase(issueRepo, log),
		issueusecases.NewAssignIssueUseCase(issueRepo, userRepo, log),
		issueusecases.NewRequestTransitionUseCase(issueRepo, stepRepo, userRepo, addCommentUC, dispatcher, log),
		addCommentUC,
		issueusecases.NewListCommentsUseCase(issueRepo, commentRepo, log),
	)

	workflowHandler := issuehandlers.NewWorkflowHandler(
		issueusecases.NewListStepsUseCase(issueRepo, stepRepo, log),
		issueusecases.NewCreateStepUseCase(issueRepo, stepRepo, userRepo, dispatcher, log),
		issueusecases.NewApproveStepUseCase(issueRepo, stepRepo, dispatcher, txManager, log),
		issueusecases.NewRejectStepUseCase(issueRepo, stepRepo, dispatcher, txManager, log),
	)

	authHandler := authhandlers.NewAuthHandler(
		userusecases.NewLoginUseCase(userRepo, hasher, jwtService, log),
	)

	notificationHandler := notificationhandlers.NewNotificationHandler(
		notificationusecases.NewListNotificationsUseCase(notifRepo, log),
		notificationusecases.NewMarkReadUseCase(notifRepo, log),
		notificationusecases.NewUnreadCountUseCase(notifRepo, log),
	)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	routes.SetupAuthRoutes(engine, &routes.AuthRouteConfig{
		AuthHandler: authHandler,
	})
	routes.SetupIssueRoutes(engine, &routes.IssueRouteConfig{
		IssueHandler:    issueHandler,
		WorkflowHandler: workflowHandler,
		AuthMiddleware:  authMiddleware,
	})
	routes.SetupNotificationRoutes(engine, &routes.NotificationRouteConfig{
		NotificationHandler: notificationHandler,
		AuthMiddleware:      authMiddleware,
	})

	return &Router{engine: engine}
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
