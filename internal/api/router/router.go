package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hireloop/backend/config"
	"hireloop/backend/internal/api/handler"
	"hireloop/backend/internal/api/middleware"
	"hireloop/backend/pkg/jwt"
	"hireloop/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RoleAuth("admin"), h.User.ListUsers)
				users.GET("/:id", h.User.GetUser)
				users.PUT("/:id", h.User.UpdateUser) // admin 或本人（Service 层鉴权）
				users.DELETE("/:id", middleware.RoleAuth("admin"), h.User.DeleteUser)
				users.POST("/import", middleware.RoleAuth("admin"), h.User.ImportUsers)
			}

			// 职位模块
			jobs := authorized.Group("/jobs")
			{
				jobs.GET("", h.Job.ListJobs)
				jobs.GET("/mine", middleware.RoleAuth("employer"), h.Job.ListMyJobs)
				jobs.GET("/:id", h.Job.GetJob)
				jobs.POST("", middleware.RoleAuth("employer"), h.Job.CreateJob)
				jobs.PUT("/:id", middleware.RoleAuth("employer", "admin"), h.Job.UpdateJob)
				jobs.DELETE("/:id", middleware.RoleAuth("employer", "admin"), h.Job.DeleteJob)
			}

			// 委托模块（核心状态机）
			assignments := authorized.Group("/assignments")
			{
				assignments.GET("", h.Assignment.ListAssignments)
				assignments.GET("/:id", h.Assignment.GetAssignment)
				assignments.POST("", middleware.RoleAuth("employer"), h.Assignment.HireRecruiter)
				assignments.POST("/:id/respond", middleware.RoleAuth("recruiter"), h.Assignment.Respond)
				assignments.POST("/:id/complete", middleware.RoleAuth("employer"), h.Assignment.Complete)
			}

			// 推荐模块
			submissions := authorized.Group("/submissions")
			{
				submissions.GET("", h.Submission.ListSubmissions)
				submissions.GET("/:id", h.Submission.GetSubmission)
				submissions.POST("", middleware.RoleAuth("recruiter"), h.Submission.SubmitCandidate)
			}

			// 人脉模块
			contacts := authorized.Group("/contacts")
			{
				contacts.GET("", h.Contact.ListContacts)
				contacts.POST("", middleware.RoleAuth("employer"), h.Contact.RequestContact)
				contacts.POST("/:id/accept", middleware.RoleAuth("recruiter"), h.Contact.AcceptContact)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.ListNotifications)
				notifications.GET("/unread-count", h.Notification.UnreadCount)
				notifications.PUT("/read-all", h.Notification.MarkAllRead)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
			}

			// 报表导出
			authorized.GET("/export/report", middleware.RoleAuth("employer", "recruiter", "admin"), h.Export.ExportReport)

			// 管理模块（旧表迁移）
			admin := authorized.Group("/admin", middleware.RoleAuth("admin"))
			{
				admin.GET("/migrations/job-recruiters", h.Admin.PreviewMigration)
				admin.POST("/migrations/job-recruiters", h.Admin.RunMigration)
			}
		}
	}

	return r
}
