package controllers

import (
	"encoding/json"
	"log"

	"learnix/database"
	"learnix/middleware"
	"learnix/models"
	lessonModels "learnix/models/lesson"
	"learnix/services"

	"github.com/gofiber/fiber/v2"
)

// GenerateQuiz generates questions straight from a supplied lesson script.
// Stateless: nothing is persisted.
func GenerateQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*struct {
		LessonScript string `json:"lesson_script"`
		NumQuestions int    `json:"num_questions"`
		QuestionType string `json:"question_type"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	provider := services.NewAIProvider()
	questions := services.GenerateQuiz(provider, reqData.LessonScript, reqData.NumQuestions, reqData.QuestionType)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz generated!", fiber.Map{
		"questions": questions,
	})
}

// GenerateLessonQuiz generates and persists a quiz for a stored lesson
func GenerateLessonQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedLessonQuiz").(*struct {
		NumQuestions int    `json:"num_questions"`
		QuestionType string `json:"question_type"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	lesson, status, message := loadAccessibleLesson(userID, lessonID)
	if lesson == nil {
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	provider := services.NewAIProvider()
	questions := services.GenerateQuiz(provider, lesson.ScriptText, reqData.NumQuestions, reqData.QuestionType)

	quiz := lessonModels.Quiz{
		LessonID:     lesson.ID,
		QuestionType: reqData.QuestionType,
	}
	if err := database.Database.Db.Create(&quiz).Error; err != nil {
		log.Printf("Error saving quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz!", nil)
	}

	for _, q := range questions {
		optionsJSON, _ := json.Marshal(q.Options)
		record := lessonModels.QuizQuestion{
			QuizID:        quiz.ID,
			QuestionID:    q.ID,
			QuestionText:  q.Question,
			QuestionType:  q.Type,
			Options:       string(optionsJSON),
			CorrectAnswer: *q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
		if err := database.Database.Db.Create(&record).Error; err != nil {
			log.Printf("Error saving quiz question: %v", err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz generated!", fiber.Map{
		"quiz_id":   quiz.ID,
		"questions": questions,
	})
}

// SubmitQuizScore records a scored attempt. A passing score (>= 70) on a
// lesson marks it complete and runs the enrollment/certificate cascade.
func SubmitQuizScore(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedQuizScore").(*struct {
		Score    int `json:"score"`
		MaxScore int `json:"max_score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	lesson, status, message := loadAccessibleLesson(userID, lessonID)
	if lesson == nil {
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	var attemptCount int64
	database.Database.Db.Model(&lessonModels.QuizAttempt{}).
		Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lesson.ID, false).
		Count(&attemptCount)

	attempt := lessonModels.QuizAttempt{
		UserID:        userID,
		LessonID:      lesson.ID,
		Score:         reqData.Score,
		MaxScore:      reqData.MaxScore,
		AttemptNumber: int(attemptCount) + 1,
	}
	if err := database.Database.Db.Create(&attempt).Error; err != nil {
		log.Printf("Error saving quiz attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record attempt!", nil)
	}

	passed := reqData.Score >= PassingQuizScore
	if passed {
		if err := RecordQuizPass(database.Database.Db, userID, lesson, reqData.Score); err != nil {
			log.Printf("Error applying quiz completion: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt recorded!", fiber.Map{
		"attempt": attempt,
		"passed":  passed,
	})
}
