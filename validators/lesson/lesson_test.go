package lessonValidator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestGenerateScriptRejectsEmptyContent(t *testing.T) {
	app := fiber.New()
	reached := false
	app.Post("/lesson/generate-script", GenerateScript(), func(c *fiber.Ctx) error {
		reached = true
		return c.SendStatus(fiber.StatusOK)
	})

	status := postJSON(t, app, "/lesson/generate-script", `{"content_raw": ""}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, reached, "handler must not run for empty input")

	status = postJSON(t, app, "/lesson/generate-script", `{"content_raw": "   \n\t"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, reached, "whitespace-only input must be rejected")

	status = postJSON(t, app, "/lesson/generate-script", `{"content_raw": "Photosynthesis basics."}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, reached)
}

func TestGenerateQuizBounds(t *testing.T) {
	app := fiber.New()
	app.Post("/lesson/generate-quiz", GenerateQuiz(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"valid mcq", `{"lesson_script":"# T\n\n## A\n\nBody.","num_questions":5,"question_type":"mcq"}`, fiber.StatusOK},
		{"valid true_false", `{"lesson_script":"# T\n\n## A\n\nBody.","num_questions":1,"question_type":"true_false"}`, fiber.StatusOK},
		{"zero questions", `{"lesson_script":"# T","num_questions":0,"question_type":"mcq"}`, fiber.StatusBadRequest},
		{"too many questions", `{"lesson_script":"# T","num_questions":21,"question_type":"mcq"}`, fiber.StatusBadRequest},
		{"unknown type", `{"lesson_script":"# T","num_questions":5,"question_type":"essay"}`, fiber.StatusBadRequest},
		{"missing script", `{"num_questions":5,"question_type":"mcq"}`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, postJSON(t, app, "/lesson/generate-quiz", tt.body))
		})
	}
}

func TestLessonIDParam(t *testing.T) {
	app := fiber.New()
	app.Get("/lesson/:lesson_id/progress", LessonID(), func(c *fiber.Ctx) error {
		assert.Equal(t, 7, c.Locals("lessonID").(int))
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/lesson/7/progress", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/lesson/abc/progress", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
