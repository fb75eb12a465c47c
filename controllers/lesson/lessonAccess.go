package controllers

import (
	"learnix/database"
	courseModels "learnix/models/course"
	lessonModels "learnix/models/lesson"

	"github.com/gofiber/fiber/v2"
)

// loadAccessibleLesson loads a lesson and checks the caller may use it:
// either the caller owns it (personal lesson) or is enrolled in its parent
// course/certification. The lookup runs before any external call is made.
func loadAccessibleLesson(userID uint, lessonID int) (*lessonModels.Lesson, int, string) {
	var lesson lessonModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return nil, fiber.StatusNotFound, "Lesson not found!"
	}

	if lesson.OwnerID == userID {
		return &lesson, fiber.StatusOK, ""
	}

	if lesson.CourseID == nil {
		return nil, fiber.StatusForbidden, "You do not have access to this lesson!"
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, *lesson.CourseID, false).First(&enrollment).Error; err != nil {
		return nil, fiber.StatusForbidden, "You are not enrolled in this lesson's course!"
	}

	return &lesson, fiber.StatusOK, ""
}
