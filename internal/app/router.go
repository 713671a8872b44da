package app

import (
	"hiregate_backend/internal/config"
	"hiregate_backend/internal/middleware"
	"hiregate_backend/internal/model"
	"hiregate_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// Account auth
		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)

		// Job board: open to anonymous visitors, applied flags when a token
		// is present.
		api.GET("/jobs", middleware.TryAuthMiddleware(cfg), c.job.List)
		api.GET("/jobs/:id", c.job.Get)
	}

	// Applicant routes
	applicant := router.Group("/api")
	applicant.Use(middleware.AuthMiddleware(cfg),
		middleware.RoleMiddleware(model.Applicant),
		middleware.ActivityMiddleware(repos.user))
	{
		applicant.POST("/applications", c.application.Apply)
		applicant.GET("/applications/mine", c.application.ListMine)
	}

	// Candidate exam flow: credential login is public, everything after it
	// runs on a candidate token pinned to one exam.
	exam := router.Group("/api/exam")
	{
		exam.POST("/login", c.session.Login)

		gated := exam.Group("/")
		gated.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Candidate))
		{
			gated.GET("/precheck", c.session.PreCheck)
			gated.GET("/instructions", c.session.Instructions)
			gated.GET("/paper", c.session.Paper)
			gated.POST("/poll-face", c.session.PollFace)
			gated.POST("/report-violation", c.session.ReportViolation)
			gated.POST("/submit", c.session.Submit)
			gated.POST("/logout", c.session.Logout)
		}
	}

	// Admin routes
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg),
		middleware.RoleMiddleware(model.Admin),
		middleware.ActivityMiddleware(repos.user))
	{
		admin.POST("/jobs", c.job.Create)
		admin.PUT("/jobs/:id", c.job.Update)
		admin.DELETE("/jobs/:id", c.job.Delete)

		admin.GET("/jobs/:id/applicants", c.application.ListByJob)
		admin.GET("/applications/:id/resume", c.application.DownloadResume)

		admin.POST("/exams", c.exam.Create)
		admin.GET("/exams", c.exam.List)
		admin.GET("/exams/:id/paper", c.exam.GetPaper)

		admin.POST("/invitations/prepare", c.invite.Prepare)
		admin.POST("/invitations/send", c.invite.Send)

		admin.GET("/exams/:id/results", c.result.List)
		admin.POST("/terminations/:id/restore", c.result.Restore)
		admin.POST("/results/decisions", c.result.SendDecisions)
	}
}
