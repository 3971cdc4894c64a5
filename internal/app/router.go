package app

import (
	"course_catalog_backend/docs"
	"course_catalog_backend/internal/config"
	"course_catalog_backend/internal/middleware"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/internal/urls"
	"course_catalog_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	if cfg.Storage.Type == "local" {
		router.Static("/media", cfg.Storage.LocalPath)
	}

	// 课程详情页，Course.AbsoluteURL 反解的就是这条路由
	router.GET(urls.Path(urls.CourseDetail), c.course.GetCourseBySlug)

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		authGroup.POST("/courses/:id/rating", c.rating.RateCourse)
		authGroup.GET("/courses/:id/rating/me", c.rating.GetMyRating)

		// 教师相关接口，课程归属在 service 层校验
		a.registerInstructorRoutes(authGroup, c)

		// 管理员相关接口
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/categories", c.category.ListCategories)

		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:id", c.course.GetCourse)
		public.GET("/courses/:id/lessons", c.lesson.ListCourseLessons)
		public.GET("/courses/:id/rating", c.rating.GetCourseRating)

		public.GET("/lessons/:id", c.lesson.GetLesson)

		public.GET("/lesson-contents", c.lesson.ListContents)
		public.GET("/lesson-contents/:id", c.lesson.GetContent)
	}
}

func (a *App) registerInstructorRoutes(group *gin.RouterGroup, c *controllers) {
	instructor := group.Group("")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.PUT("/courses/:id", c.course.UpdateCourse)
		instructor.DELETE("/courses/:id", c.course.DeleteCourse)

		instructor.POST("/courses/:id/lessons", c.lesson.CreateLesson)
		instructor.PUT("/lessons/:id", c.lesson.RenameLesson)
		instructor.DELETE("/lessons/:id", c.lesson.DeleteLesson)
		instructor.POST("/lessons/:id/contents", c.lesson.AttachContents)
		instructor.DELETE("/lessons/:id/contents", c.lesson.DetachContents)
		instructor.PUT("/lessons/:id/contents", c.lesson.ReplaceContents)

		instructor.POST("/lesson-contents", c.lesson.CreateContent)
		instructor.PUT("/lesson-contents/:id", c.lesson.UpdateContent)
		instructor.DELETE("/lesson-contents/:id", c.lesson.DeleteContent)
	}
}

func (a *App) registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	admin := group.Group("")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/categories", c.category.CreateCategory)
		admin.PUT("/categories/:id", c.category.UpdateCategory)
		admin.DELETE("/categories/:id", c.category.DeleteCategory)
	}
}
