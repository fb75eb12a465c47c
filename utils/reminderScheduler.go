package utils

import (
	"log"
	"time"

	"learnix/database"
	"learnix/models"
	courseModels "learnix/models/course"

	"github.com/robfig/cron/v3"
)

// InitializeReminderScheduler sets up the weekly learning-reminder scheduler
func InitializeReminderScheduler() {
	log.Println("[REMINDER-SCHEDULER] Initializing reminder scheduler...")

	c := cron.New()

	// Run every Monday at 9 AM
	c.AddFunc("0 9 * * 1", func() {
		log.Println("[REMINDER-SCHEDULER] Running weekly reminder check...")
		ProcessIdleEnrollments()
	})

	c.Start()
	log.Println("[REMINDER-SCHEDULER] Reminder scheduler started - runs Mondays at 9 AM")
}

// ProcessIdleEnrollments emails students whose in-progress enrollments have
// not moved in a week
func ProcessIdleEnrollments() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -7)

	var idleEnrollments []courseModels.Enrollment
	if err := db.
		Where("status IN ? AND is_deleted = ?", []string{"ENROLLED", "IN_PROGRESS"}, false).
		Where("updated_at < ?", cutoff).
		Preload("Course").
		Find(&idleEnrollments).Error; err != nil {
		log.Printf("[REMINDER-SCHEDULER] Error fetching idle enrollments: %v", err)
		return
	}

	log.Printf("[REMINDER-SCHEDULER] Found %d idle enrollments", len(idleEnrollments))

	for _, enrollment := range idleEnrollments {
		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", enrollment.UserID, false).First(&user).Error; err != nil {
			log.Printf("[REMINDER-SCHEDULER] Error fetching user %d: %v", enrollment.UserID, err)
			continue
		}

		SendLearningReminderEmail(user.Email, user.Name, enrollment.Course.Title)
	}
}
