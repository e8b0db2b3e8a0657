package app

import (
	"exam_prep_backend/docs"
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/middleware"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/invite-codes/:code/validate", c.inviteCode.Validate)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/questions", c.question.List)
		authGroup.GET("/questions/:id", c.question.Get)

		authGroup.POST("/practice/answers", c.practice.SubmitAnswer)
		authGroup.GET("/practice/tasks", c.practice.ListTasks)
		authGroup.POST("/practice/tasks", c.practice.CreateTask)
		authGroup.PUT("/practice/tasks/:id/status", c.practice.UpdateTaskStatus)

		authGroup.GET("/wrong-questions", c.wrong.List)
		authGroup.GET("/wrong-questions/:id", c.wrong.Get)
		authGroup.PUT("/wrong-questions/:id/mastered", c.wrong.SetMastered)
		authGroup.DELETE("/wrong-questions/:id", c.wrong.Delete)

		authGroup.GET("/progress", c.progress.Get)
		authGroup.POST("/progress/sync", c.progress.Sync)

		authGroup.POST("/analysis", c.analysis.Run)
		authGroup.GET("/analysis/latest", c.analysis.GetLatest)
		authGroup.GET("/analysis/history", c.analysis.History)
	}

	// 管理员相关接口
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		adminGroup.POST("/questions", c.question.Create)
		adminGroup.POST("/invite-codes", c.inviteCode.Generate)
		adminGroup.GET("/invite-codes", c.inviteCode.List)
	}
}
