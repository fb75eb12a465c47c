package lessonRoutes

import (
	controllers "learnix/controllers/lesson"
	"learnix/middleware"
	validators "learnix/validators/lesson"

	"github.com/gofiber/fiber/v2"
)

// SetupLessonRoutes sets up the generation and progress-tracking routes
func SetupLessonRoutes(app *fiber.App) {
	lessonGroup := app.Group("/lesson")

	// Generation pipeline
	lessonGroup.Post("/generate-script", middleware.JWTMiddleware, validators.GenerateScript(), controllers.GenerateScript)
	lessonGroup.Post("/generate-quiz", middleware.JWTMiddleware, validators.GenerateQuiz(), controllers.GenerateQuiz)
	lessonGroup.Post("/:lesson_id/quiz/generate", middleware.JWTMiddleware, validators.GenerateLessonQuiz(), controllers.GenerateLessonQuiz)
	lessonGroup.Post("/:lesson_id/quiz/submit", middleware.JWTMiddleware, validators.SubmitQuizScore(), controllers.SubmitQuizScore)
	lessonGroup.Post("/:lesson_id/flashcards/generate", middleware.JWTMiddleware, validators.GenerateFlashcards(), controllers.GenerateFlashcards)

	// Avatar conversation
	lessonGroup.Post("/:lesson_id/conversation", middleware.JWTMiddleware, validators.StartConversation(), controllers.StartConversation)

	// Progress tracking
	lessonGroup.Get("/:lesson_id/progress", middleware.JWTMiddleware, validators.LessonID(), controllers.GetProgress)
	lessonGroup.Post("/:lesson_id/progress", middleware.JWTMiddleware, validators.UpdateProgress(), controllers.UpdateProgress)
}
