package controllers

import (
	"log"
	"math"
	"time"

	courseControllers "learnix/controllers/course"
	"learnix/database"
	"learnix/middleware"
	"learnix/models"
	courseModels "learnix/models/course"
	lessonModels "learnix/models/lesson"
	"learnix/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PassingQuizScore is the threshold at which a quiz submission marks the
// lesson complete
const PassingQuizScore = 70

// GetProgress returns the caller's progress record for a lesson, or null
func GetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	var progress lessonModels.LessonProgress
	if err := database.Database.Db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No progress recorded yet.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched!", progress)
}

// UpdateProgress upserts the caller's progress record, keyed by the
// (user, lesson) pair. Supplied fields overwrite prior values entirely; the
// segment index is not validated against the lesson's segment count. A quiz
// score >= 70 marks the lesson complete, and any completion runs the
// enrollment/certificate cascade in the same transaction as the save.
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedProgress").(*struct {
		Completed                 bool    `json:"completed"`
		LastCompletedSegmentIndex *int    `json:"last_completed_segment_index"`
		Notes                     *string `json:"notes"`
		QuizScore                 *int    `json:"quiz_score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	lesson, status, message := loadAccessibleLesson(userID, lessonID)
	if lesson == nil {
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	passed := reqData.QuizScore != nil && *reqData.QuizScore >= PassingQuizScore

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		// Created on first interaction with the lesson
		var progress lessonModels.LessonProgress
		if err := tx.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lesson.ID, false).First(&progress).Error; err != nil {
			progress = lessonModels.LessonProgress{UserID: userID, LessonID: lesson.ID}
		}

		progress.Completed = reqData.Completed || passed
		if progress.Completed && progress.CompletedAt == nil {
			now := time.Now()
			progress.CompletedAt = &now
		}
		if reqData.LastCompletedSegmentIndex != nil {
			progress.LastCompletedSegmentIndex = *reqData.LastCompletedSegmentIndex
		}
		if reqData.Notes != nil {
			progress.Notes = *reqData.Notes
		}
		if reqData.QuizScore != nil {
			progress.LastQuizScore = reqData.QuizScore
		}

		if err := tx.Save(&progress).Error; err != nil {
			return err
		}

		if progress.Completed {
			return runCompletionCascade(tx, userID, lesson)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error updating lesson progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated!", nil)
}

// RecordQuizPass marks the lesson complete after a passing quiz score and
// runs the enrollment/certificate cascade. The save and the cascade share one
// transaction so a cascade failure rolls the completion mark back.
func RecordQuizPass(db *gorm.DB, userID uint, lesson *lessonModels.Lesson, score int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var progress lessonModels.LessonProgress
		if err := tx.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lesson.ID, false).First(&progress).Error; err != nil {
			progress = lessonModels.LessonProgress{UserID: userID, LessonID: lesson.ID}
		}

		progress.Completed = true
		progress.LastQuizScore = &score
		if progress.CompletedAt == nil {
			now := time.Now()
			progress.CompletedAt = &now
		}
		if err := tx.Save(&progress).Error; err != nil {
			return err
		}

		return runCompletionCascade(tx, userID, lesson)
	})
}

// runCompletionCascade recomputes the parent enrollment's aggregate progress
// and, at 100% on a certification, stamps completion and lazily issues the
// certificate. It runs inside the caller's transaction, alongside the
// progress save, so a failure cannot leave the lesson complete but the
// enrollment stale.
func runCompletionCascade(tx *gorm.DB, userID uint, lesson *lessonModels.Lesson) error {
	if lesson.CourseID == nil {
		return nil // personal lessons have no enrollment to recompute
	}
	courseID := *lesson.CourseID

	var course courseModels.Course
	if err := tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return err
	}

	var enrollment courseModels.Enrollment
	if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return nil // not enrolled, nothing to recompute
	}

	var totalLessons int64
	tx.Model(&lessonModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&totalLessons)

	var completedLessons int64
	tx.Model(&lessonModels.LessonProgress{}).
		Where("user_id = ? AND completed = ? AND is_deleted = ?", userID, true, false).
		Where("lesson_id IN (?)", tx.Model(&lessonModels.Lesson{}).Select("id").
			Where("course_id = ? AND is_deleted = ?", courseID, false)).
		Count(&completedLessons)

	enrollment.CompletedLessons = int(completedLessons)
	enrollment.TotalLessons = int(totalLessons)
	if totalLessons > 0 {
		enrollment.Progress = int(math.Round(100 * float64(completedLessons) / float64(totalLessons)))
	}

	if enrollment.Progress >= 100 {
		enrollment.Status = "COMPLETED"
		if enrollment.CompletedAt == nil {
			now := time.Now()
			enrollment.CompletedAt = &now
		}
	} else if enrollment.Progress > 0 {
		enrollment.Status = "IN_PROGRESS"
	}

	if err := tx.Save(&enrollment).Error; err != nil {
		return err
	}

	if enrollment.Progress >= 100 && course.Kind == "CERTIFICATION" {
		cert, created, err := courseControllers.IssueCertificate(tx, userID, courseID)
		if err != nil {
			return err
		}
		if created {
			var user models.User
			if err := tx.Where("id = ?", userID).First(&user).Error; err == nil {
				utils.SendCertificateEmail(user.Email, user.Name, course.Title, cert.CertificateNumber)
			}
		}
	}

	return nil
}
