package router

import (
	"github.com/gin-gonic/gin"
	"github.com/manu-acho/wamngo-sub000/internal/cache"
	"github.com/manu-acho/wamngo-sub000/internal/config"
	"github.com/manu-acho/wamngo-sub000/internal/handler"
	"github.com/manu-acho/wamngo-sub000/internal/mailer"
	"github.com/manu-acho/wamngo-sub000/internal/middleware"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, statsCache *cache.Cache, m *mailer.Mailer, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "wam-platform-service",
		})
	})

	api := r.Group("/api")
	{
		// 前端应用配置
		api.GET("/config", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"appUrl":                 cfg.App.URL,
				"walletConnectProjectId": cfg.App.WalletConnectProjectId,
			})
		})

		// 治理相关路由
		governanceHandler := handler.NewGovernanceHandler(db)
		governance := api.Group("/governance")
		{
			governance.GET("/proposals", governanceHandler.GetProposals)
			governance.POST("/proposals", governanceHandler.CreateProposal)
			governance.GET("/proposals/:id", governanceHandler.GetProposal)
			governance.POST("/proposals/:id/vote", governanceHandler.CastVote)
			governance.GET("/members", governanceHandler.GetMembers)
			governance.GET("/stats", governanceHandler.GetStats)
		}

		// 项目相关路由
		projectHandler := handler.NewProjectHandler(db, m)
		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.GetProjects)
			// 直接 POST 项目同样进入审核队列
			projects.POST("", projectHandler.CreateSubmission)
			projects.GET("/submissions", projectHandler.GetSubmissions)
			projects.POST("/submissions", projectHandler.CreateSubmission)
			projects.GET("/:id", projectHandler.GetProject)
			projects.GET("/:id/updates", projectHandler.GetProjectUpdates)
			projects.POST("/:id/updates", projectHandler.AddProjectUpdate)
		}

		// 合作伙伴相关路由
		partnerHandler := handler.NewPartnerHandler(db, m)
		partners := api.Group("/partners")
		{
			partners.GET("", partnerHandler.GetPartners)
			partners.POST("/apply", partnerHandler.Apply)
			partners.GET("/:id", partnerHandler.GetPartner)
		}

		// 联系表单
		contactHandler := handler.NewContactHandler(db, m)
		api.POST("/contact", contactHandler.SubmitContact)

		// 用户相关路由
		userHandler := handler.NewUserHandler(db)
		users := api.Group("/users")
		{
			users.GET("/:wallet", userHandler.GetUser)
			users.PUT("/:wallet", userHandler.UpdateUser)
			users.GET("/:wallet/notifications", userHandler.GetNotifications)
			users.PUT("/:wallet/notifications/:id/read", userHandler.MarkNotificationRead)
		}

		// 代币相关路由
		tokenHandler := handler.NewTokenHandler(db)
		tokens := api.Group("/tokens")
		{
			tokens.POST("/purchase", tokenHandler.CreatePurchase)
			tokens.PUT("/purchase/:id/confirm", tokenHandler.ConfirmPurchase)
			tokens.GET("/purchases", tokenHandler.GetPurchases)
			tokens.POST("/stake", tokenHandler.CreateStake)
			tokens.GET("/stakes", tokenHandler.GetStakes)
			tokens.PUT("/stakes/:id/unstake", tokenHandler.Unstake)
			tokens.GET("/stats", tokenHandler.GetTokenStats)
		}

		// 分析统计
		analyticsHandler := handler.NewAnalyticsHandler(db, statsCache)
		api.GET("/analytics", analyticsHandler.GetAnalytics)

		// 管理端路由（守卫保护）
		guard := middleware.NewAdminGuard(db)
		adminHandler := handler.NewAdminHandler(db, statsCache)
		admin := api.Group("/admin", guard.RequireAdmin())
		{
			admin.GET("/proposals/:id", adminHandler.GetProposal)
			admin.PUT("/proposals/:id", adminHandler.UpdateProposal)
			admin.DELETE("/proposals/:id", adminHandler.DeleteProposal)

			admin.GET("/projects/:id", adminHandler.GetProject)
			admin.PUT("/projects/:id", adminHandler.UpdateProject)
			admin.DELETE("/projects/:id", adminHandler.DeleteProject)

			admin.GET("/partners/:id", adminHandler.GetPartner)
			admin.PUT("/partners/:id", adminHandler.UpdatePartner)
			admin.DELETE("/partners/:id", adminHandler.DeletePartner)

			admin.PUT("/project-submissions/:id", adminHandler.ReviewSubmission)
			admin.GET("/partner-applications", adminHandler.GetApplications)
			admin.PUT("/partner-applications/:id", adminHandler.ReviewApplication)

			admin.GET("/dashboard", adminHandler.GetDashboard)
			admin.GET("/audit-log", adminHandler.GetAuditLog)
			admin.GET("/contact-submissions", adminHandler.GetContactSubmissions)

			admin.GET("/roles", adminHandler.GetRoles)
			admin.POST("/roles", adminHandler.CreateRole)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, x-wallet-address")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
