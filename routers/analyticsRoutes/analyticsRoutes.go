package analyticsRoutes

import (
	controllers "learnix/controllers/analytics"
	"learnix/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupAnalyticsRoutes sets up the dashboard aggregation routes
func SetupAnalyticsRoutes(app *fiber.App) {
	analyticsGroup := app.Group("/analytics")

	analyticsGroup.Get("/activity", middleware.JWTMiddleware, controllers.StudentActivity)
	analyticsGroup.Get("/trends", middleware.JWTMiddleware, controllers.EnrollmentTrends)
	analyticsGroup.Get("/scores", middleware.JWTMiddleware, controllers.ScoreDistribution)
	analyticsGroup.Get("/streak", middleware.JWTMiddleware, controllers.LearningStreak)
	analyticsGroup.Get("/overview", middleware.JWTMiddleware, controllers.Overview)
}
