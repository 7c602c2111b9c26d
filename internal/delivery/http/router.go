package http

import (
	"time"

	"github.com/sathaneem/aadhi-academy/internal/delivery/http/controllers"
	"github.com/sathaneem/aadhi-academy/internal/delivery/http/controllers/middleware"
	"github.com/sathaneem/aadhi-academy/internal/service"
	"github.com/sathaneem/aadhi-academy/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(l logger.Log, jwtSecret string, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(cors.New(config))

	auth := middleware.NewAuthMiddlewareProvider(l, jwtSecret)

	statusController := controllers.NewStatusHandler()
	courseController := controllers.NewCourseHandler(l, u.CatalogService)
	lessonController := controllers.NewLessonHandler(l, u.CatalogService, u.AccessService)
	enrollmentController := controllers.NewEnrollmentHandler(l, u.EnrollmentService)
	accessController := controllers.NewAccessHandler(l, u.AccessService, u.ProgressService)

	v1 := r.Group("/v1", middleware.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		courses := v1.Group("/courses", auth.AuthMiddleware)
		{
			courses.GET("/:course_id", accessController.CourseView)
			courses.GET("/:course_id/progress", accessController.Progress)

			admin := courses.Group("", middleware.RequireAdmin())
			{
				admin.GET("", courseController.ListCourses)
				admin.GET("/search", courseController.SearchCourses)
				admin.POST("", courseController.CreateCourse)
				admin.GET("/:course_id/info", courseController.CourseByID)
				admin.PATCH("/:course_id", courseController.UpdateCourse)
				admin.POST("/:course_id/thumbnail", courseController.UploadThumbnail)
				admin.DELETE("/:course_id", courseController.DeleteCourse)
				admin.GET("/:course_id/lessons", lessonController.ListLessons)
				admin.POST("/:course_id/lessons", lessonController.AddTextLesson)
				admin.POST("/:course_id/lessons/file", lessonController.AddFileLesson)
				admin.GET("/:course_id/students", enrollmentController.Roster)
				admin.POST("/:course_id/students", enrollmentController.EnrollStudent)
			}
		}

		lessons := v1.Group("/lessons", auth.AuthMiddleware)
		{
			lessons.POST("/:lesson_id/complete", accessController.MarkCompleted)
			lessons.GET("/:lesson_id/file", lessonController.LessonFileURL)
			lessons.DELETE("/:lesson_id", middleware.RequireAdmin(), lessonController.DeleteLesson)
		}

		enrollments := v1.Group("/enrollments", auth.AuthMiddleware, middleware.RequireAdmin())
		{
			enrollments.DELETE("/:enrollment_id", enrollmentController.RemoveStudent)
		}

		v1.GET("/dashboard", auth.AuthMiddleware, accessController.Dashboard)
	}
	return r
}
