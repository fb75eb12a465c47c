package controllers

import (
	"learnix/database"
	"learnix/middleware"
	"learnix/models"
	lessonModels "learnix/models/lesson"
	"learnix/services"

	"github.com/gofiber/fiber/v2"
)

// StartConversation starts an avatar video session for a lesson, resuming
// from the caller's last completed segment unless a restart is requested.
// Enrollment is checked before the provider is contacted; provider failures
// are surfaced verbatim since there is no local substitute for a live
// session.
func StartConversation(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedConversation").(*struct {
		StartFromBeginning bool `json:"start_from_beginning"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	lesson, status, message := loadAccessibleLesson(userID, lessonID)
	if lesson == nil {
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	// Defaults to segment 0 when the learner has no progress record yet
	lastIndex := 0
	var progress lessonModels.LessonProgress
	if err := database.Database.Db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lesson.ID, false).First(&progress).Error; err == nil {
		lastIndex = progress.LastCompletedSegmentIndex
	}

	context, greeting, resuming := services.BuildConversationContext(lesson.ScriptText, lastIndex, reqData.StartFromBeginning)

	session, err := services.StartConversation(lesson.Title, context, greeting)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Conversation started!", fiber.Map{
		"conversation_url": session.ConversationURL,
		"conversation_id":  session.ConversationID,
		"lesson_title":     lesson.Title,
		"resuming":         resuming,
	})
}
