package controllers

import (
	"log"

	"learnix/database"
	"learnix/middleware"
	"learnix/models"
	lessonModels "learnix/models/lesson"
	"learnix/services"

	"github.com/gofiber/fiber/v2"
)

// GenerateScript turns raw uploaded/typed text into a structured lesson
// script. Provider failures are invisible here: the local fallback always
// produces a script.
func GenerateScript(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedScript").(*struct {
		ContentRaw string `json:"content_raw"`
		Topic      string `json:"topic"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	provider := services.NewAIProvider()
	script := services.GenerateLessonScript(provider, reqData.ContentRaw, reqData.Topic)

	title := services.ScriptTitle(script)
	if title == "" {
		title = reqData.Topic
	}

	// Persist as a personal lesson so quizzes, flashcards and conversations
	// can reference it later
	lesson := lessonModels.Lesson{
		OwnerID:          userID,
		Title:            title,
		ScriptText:       script,
		DurationEstimate: services.SegmentCount(script) * 5,
	}
	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		log.Printf("Error saving lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson script generated!", fiber.Map{
		"lesson_id":     lesson.ID,
		"lesson_script": script,
	})
}
