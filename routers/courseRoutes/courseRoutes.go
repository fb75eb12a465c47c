package courseRoutes

import (
	controllers "learnix/controllers/course"
	"learnix/middleware"
	validators "learnix/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course, enrollment and certificate routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Teacher course management
	courseGroup.Post("/create", middleware.JWTMiddleware, validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Post("/:id/publish", middleware.JWTMiddleware, validators.CourseID(), controllers.PublishCourse)
	courseGroup.Post("/:id/lesson", middleware.JWTMiddleware, validators.AddLesson(), controllers.AddLesson)

	// Student-facing
	courseGroup.Get("/list", middleware.JWTMiddleware, controllers.GetCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)

	enrollmentGroup := app.Group("/enrollments")
	enrollmentGroup.Get("/", middleware.JWTMiddleware, controllers.GetEnrollments)

	// Certificates
	certGroup := app.Group("/certification")
	certGroup.Get("/:id/certificate", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCertificateData)

	app.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
