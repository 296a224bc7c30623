package app

import (
	"elearning_backend/docs"
	"elearning_backend/internal/config"
	"elearning_backend/internal/middleware"
	"elearning_backend/internal/model"
	"elearning_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 学员接口
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 3. 管理员接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	courses := rg.Group("/courses")
	{
		courses.GET("", c.course.Index)
		courses.GET("/available", c.course.Available)
		courses.GET("/locked", c.course.Locked)
		courses.GET("/:id", c.course.Show)
		courses.GET("/:id/progress", c.course.Progress)
		courses.POST("/:id/enroll", c.course.Enroll)
	}

	rg.GET("/my/courses", c.course.MyCourses)

	tasks := rg.Group("/tasks")
	{
		tasks.POST("/:id/submit", c.taskSubmission.Submit)
		tasks.GET("/:id/submissions", c.taskSubmission.History)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/courses", c.adminCourse.CreateCourse)
		admin.PUT("/courses/:id", c.adminCourse.UpdateCourse)
		admin.DELETE("/courses/:id", c.adminCourse.DeleteCourse)
		admin.POST("/courses/:id/publish", c.adminCourse.PublishCourse)
		admin.POST("/courses/:id/unpublish", c.adminCourse.UnpublishCourse)
		admin.POST("/courses/:id/archive", c.adminCourse.ArchiveCourse)
		admin.POST("/courses/:id/prerequisites", c.adminCourse.SyncPrerequisites)
		admin.POST("/courses/:id/chapters", c.adminCourse.CreateChapter)

		admin.PUT("/chapters/:id", c.adminCourse.UpdateChapter)
		admin.DELETE("/chapters/:id", c.adminCourse.DeleteChapter)
		admin.POST("/chapters/:id/tasks", c.adminCourse.CreateTask)

		admin.PUT("/tasks/:id", c.adminCourse.UpdateTask)
		admin.DELETE("/tasks/:id", c.adminCourse.DeleteTask)
		admin.POST("/tasks/:id/options/sync", c.adminCourse.SyncOptions)
	}
}
