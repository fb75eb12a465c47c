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

// GenerateFlashcards generates and persists a flashcard set for a stored
// lesson. Enrollment/ownership is checked before any generation happens.
func GenerateFlashcards(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedFlashcards").(*struct {
		NumCards int `json:"num_cards"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	lesson, status, message := loadAccessibleLesson(userID, lessonID)
	if lesson == nil {
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	provider := services.NewAIProvider()
	cards := services.GenerateFlashcards(provider, lesson.ScriptText, reqData.NumCards)

	set := lessonModels.FlashcardSet{LessonID: lesson.ID}
	if err := database.Database.Db.Create(&set).Error; err != nil {
		log.Printf("Error saving flashcard set: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save flashcards!", nil)
	}

	for _, card := range cards {
		record := lessonModels.Flashcard{
			SetID:  set.ID,
			CardID: card.ID,
			Front:  card.Front,
			Back:   card.Back,
		}
		if err := database.Database.Db.Create(&record).Error; err != nil {
			log.Printf("Error saving flashcard: %v", err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Flashcards generated!", fiber.Map{
		"set_id":     set.ID,
		"flashcards": cards,
	})
}
