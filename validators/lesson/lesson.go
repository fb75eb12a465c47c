package lessonValidator

import (
	"strconv"
	"strings"

	"learnix/middleware"
	"learnix/services"

	"github.com/gofiber/fiber/v2"
)

// lessonID parses and validates the :lesson_id route parameter
func lessonID(c *fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("lesson_id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func GenerateScript() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ContentRaw string `json:"content_raw"`
			Topic      string `json:"topic"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		// Empty input is rejected before any generation is attempted
		if strings.TrimSpace(reqData.ContentRaw) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson content is required!", nil)
		}

		c.Locals("validatedScript", reqData)
		return c.Next()
	}
}

func GenerateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			LessonScript string `json:"lesson_script"`
			NumQuestions int    `json:"num_questions"`
			QuestionType string `json:"question_type"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.LessonScript) == "" {
			errors["lesson_script"] = "Lesson script is required!"
		}
		if reqData.NumQuestions < services.MinQuizQuestions || reqData.NumQuestions > services.MaxQuizQuestions {
			errors["num_questions"] = "Number of questions must be between 1 and 20!"
		}
		if reqData.QuestionType != services.QuestionTypeMCQ && reqData.QuestionType != services.QuestionTypeTrueFalse {
			errors["question_type"] = "Question type must be mcq or true_false!"
		}

		if len(errors) > 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

func GenerateLessonQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := lessonID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson ID!", nil)
		}

		reqData := new(struct {
			NumQuestions int    `json:"num_questions"`
			QuestionType string `json:"question_type"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.NumQuestions < services.MinQuizQuestions || reqData.NumQuestions > services.MaxQuizQuestions {
			errors["num_questions"] = "Number of questions must be between 1 and 20!"
		}
		if reqData.QuestionType != services.QuestionTypeMCQ && reqData.QuestionType != services.QuestionTypeTrueFalse {
			errors["question_type"] = "Question type must be mcq or true_false!"
		}

		if len(errors) > 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
		}

		c.Locals("lessonID", id)
		c.Locals("validatedLessonQuiz", reqData)
		return c.Next()
	}
}

func SubmitQuizScore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := lessonID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson ID!", nil)
		}

		reqData := new(struct {
			Score    int `json:"score"`
			MaxScore int `json:"max_score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Score < 0 || reqData.Score > 100 {
			errors["score"] = "Score must be between 0 and 100!"
		}
		if reqData.MaxScore < 1 {
			errors["max_score"] = "Max score must be at least 1!"
		}

		if len(errors) > 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
		}

		c.Locals("lessonID", id)
		c.Locals("validatedQuizScore", reqData)
		return c.Next()
	}
}

func GenerateFlashcards() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := lessonID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson ID!", nil)
		}

		reqData := new(struct {
			NumCards int `json:"num_cards"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.NumCards < services.MinFlashcards || reqData.NumCards > services.MaxFlashcards {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Number of cards must be between 1 and 20!", nil)
		}

		c.Locals("lessonID", id)
		c.Locals("validatedFlashcards", reqData)
		return c.Next()
	}
}

func StartConversation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := lessonID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson ID!", nil)
		}

		reqData := new(struct {
			StartFromBeginning bool `json:"start_from_beginning"`
		})

		// Body is optional; an empty body means resume
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		c.Locals("lessonID", id)
		c.Locals("validatedConversation", reqData)
		return c.Next()
	}
}

func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := lessonID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson ID!", nil)
		}

		c.Locals("lessonID", id)
		return c.Next()
	}
}

func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := lessonID(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson ID!", nil)
		}

		reqData := new(struct {
			Completed                 bool    `json:"completed"`
			LastCompletedSegmentIndex *int    `json:"last_completed_segment_index"`
			Notes                     *string `json:"notes"`
			QuizScore                 *int    `json:"quiz_score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.LastCompletedSegmentIndex != nil && *reqData.LastCompletedSegmentIndex < 0 {
			errors["last_completed_segment_index"] = "Segment index must be 0 or greater!"
		}
		if reqData.QuizScore != nil && (*reqData.QuizScore < 0 || *reqData.QuizScore > 100) {
			errors["quiz_score"] = "Quiz score must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
		}

		c.Locals("lessonID", id)
		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
