package app

import (
	"educonnect_backend/docs"
	"educonnect_backend/internal/config"
	"educonnect_backend/internal/middleware"
	"educonnect_backend/internal/model"
	"educonnect_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	a.registerPublicRoutes(router, c, cfg)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTutorRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// The catalog and course detail allow guests; a token, when present,
		// lets tutors see their own unpublished material.
		public.GET("/courses", middleware.TryAuthMiddleware(cfg), c.course.Catalog)
		public.GET("/courses/:id", middleware.TryAuthMiddleware(cfg), c.course.Get)
		public.GET("/assessments", c.assessment.List)

		public.GET("/certificates/verify/:credentialId", c.certificate.Verify)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/profile", c.auth.Profile)
	rg.PUT("/users/profile", c.user.UpdateProfile)
	rg.POST("/users/avatar", c.user.UploadAvatar)

	rg.POST("/courses/:id/enroll", c.course.Enroll)
	rg.GET("/courses/:id/lessons", c.course.Lessons)
	rg.POST("/lessons/:id/complete", c.course.CompleteLesson)

	rg.GET("/assessments/:id", c.assessment.Get)
	rg.POST("/assessments/:id/submit", c.assessment.Submit)
	rg.GET("/assessments/:id/results", c.assessment.MyResult)
	rg.POST("/certificates/generate-from-assessment/:assessmentId", c.certificate.Generate)

	rg.GET("/live-classes/:id", c.liveClass.Get)
	rg.POST("/live-classes/:id/join", c.liveClass.Join)

	student := rg.Group("/student")
	{
		student.GET("/courses", c.course.MyCourses)
		student.GET("/certificates", c.certificate.Mine)
		student.GET("/live-classes", c.liveClass.Upcoming)
		student.GET("/dashboard", c.dashboard.Student)
	}
}

func (a *App) registerTutorRoutes(rg *gin.RouterGroup, c *controllers) {
	tutor := rg.Group("/tutor")
	tutor.Use(middleware.RoleMiddleware(model.Tutor))
	{
		tutor.GET("/courses", c.course.TutorCourses)
		tutor.POST("/courses", c.course.Create)
		tutor.PUT("/courses/:id", c.course.Update)
		tutor.PUT("/courses/:id/publish", c.course.Publish)
		tutor.POST("/courses/:id/lessons", c.course.CreateLesson)
		tutor.PUT("/lessons/:id", c.course.UpdateLesson)
		tutor.DELETE("/lessons/:id", c.course.DeleteLesson)

		tutor.GET("/assessments", c.assessment.Mine)
		tutor.POST("/assessments", c.assessment.Create)
		tutor.PUT("/assessments/:id", c.assessment.Update)
		tutor.PUT("/assessments/:id/status", c.assessment.SetStatus)
		tutor.GET("/assessments/:id/questions", c.assessment.QuestionsWithKeys)
		tutor.POST("/assessments/:id/questions", c.assessment.CreateQuestion)
		tutor.PUT("/questions/:id", c.assessment.UpdateQuestion)
		tutor.DELETE("/questions/:id", c.assessment.DeleteQuestion)
		tutor.GET("/assessments/:id/submissions", c.assessment.Submissions)

		tutor.POST("/live-classes", c.liveClass.Schedule)
		tutor.GET("/live-classes", c.liveClass.Hosted)
		tutor.PUT("/live-classes/:id", c.liveClass.Update)
		tutor.PUT("/live-classes/:id/status", c.liveClass.SetStatus)
		tutor.DELETE("/live-classes/:id", c.liveClass.Delete)

		tutor.GET("/dashboard", c.dashboard.Tutor)
	}

	rg.GET("/submissions/:id", c.assessment.SubmissionDetail)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)

		admin.GET("/courses", c.course.AllCourses)
		admin.DELETE("/courses/:id", c.course.Delete)
		admin.DELETE("/assessments/:id", c.assessment.Delete)

		admin.GET("/certificates", c.certificate.List)
		admin.PUT("/certificates/:id/revoke", c.certificate.Revoke)

		admin.GET("/dashboard", c.dashboard.Admin)
	}
}
