package controllers

import (
	"time"

	"learnix/database"
	"learnix/middleware"
	"learnix/models"
	courseModels "learnix/models/course"
	lessonModels "learnix/models/lesson"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

const (
	activityWindowDays = 30
	trendWindowMonths  = 12
)

// StudentActivity buckets the caller's completed lessons and quiz attempts
// into calendar days over the trailing 30-day window
func StudentActivity(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	windowStart := now.BeginningOfDay().AddDate(0, 0, -(activityWindowDays - 1))

	var completions []lessonModels.LessonProgress
	database.Database.Db.Where("user_id = ? AND completed = ? AND is_deleted = ? AND completed_at >= ?", userID, true, false, windowStart).
		Find(&completions)

	var attempts []lessonModels.QuizAttempt
	database.Database.Db.Where("user_id = ? AND is_deleted = ? AND created_at >= ?", userID, false, windowStart).
		Find(&attempts)

	type dayActivity struct {
		Date             string `json:"date"`
		LessonsCompleted int    `json:"lessons_completed"`
		QuizAttempts     int    `json:"quiz_attempts"`
	}

	// One bucket per calendar day, oldest first
	buckets := make([]dayActivity, activityWindowDays)
	index := make(map[string]int, activityWindowDays)
	for i := 0; i < activityWindowDays; i++ {
		key := windowStart.AddDate(0, 0, i).Format("2006-01-02")
		buckets[i] = dayActivity{Date: key}
		index[key] = i
	}

	for _, p := range completions {
		if p.CompletedAt == nil {
			continue
		}
		if i, found := index[p.CompletedAt.Format("2006-01-02")]; found {
			buckets[i].LessonsCompleted++
		}
	}
	for _, a := range attempts {
		if i, found := index[a.CreatedAt.Format("2006-01-02")]; found {
			buckets[i].QuizAttempts++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Activity fetched successfully!", fiber.Map{
		"days": buckets,
	})
}

// EnrollmentTrends buckets the caller's enrollments into calendar months
// over the trailing 12-month window
func EnrollmentTrends(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	windowStart := now.BeginningOfMonth().AddDate(0, -(trendWindowMonths - 1), 0)

	var enrollments []courseModels.Enrollment
	database.Database.Db.Where("user_id = ? AND is_deleted = ? AND enrolled_at >= ?", userID, false, windowStart).
		Find(&enrollments)

	type monthTrend struct {
		Month       string `json:"month"`
		Enrollments int    `json:"enrollments"`
		Completions int    `json:"completions"`
	}

	buckets := make([]monthTrend, trendWindowMonths)
	index := make(map[string]int, trendWindowMonths)
	for i := 0; i < trendWindowMonths; i++ {
		key := windowStart.AddDate(0, i, 0).Format("2006-01")
		buckets[i] = monthTrend{Month: key}
		index[key] = i
	}

	for _, e := range enrollments {
		if i, found := index[e.EnrolledAt.Format("2006-01")]; found {
			buckets[i].Enrollments++
		}
		if e.CompletedAt != nil {
			if i, found := index[e.CompletedAt.Format("2006-01")]; found {
				buckets[i].Completions++
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trends fetched successfully!", fiber.Map{
		"months": buckets,
	})
}

// ScoreDistribution buckets the caller's quiz scores into fixed percentage
// ranges
func ScoreDistribution(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var attempts []lessonModels.QuizAttempt
	database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Find(&attempts)

	scores := make([]int, len(attempts))
	total := 0
	for i, a := range attempts {
		scores[i] = a.Score
		total += a.Score
	}

	average := 0
	if len(scores) > 0 {
		average = total / len(scores)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Score distribution fetched successfully!", fiber.Map{
		"distribution":   BucketScores(scores),
		"average_score":  average,
		"total_attempts": len(scores),
	})
}

// LearningStreak returns the caller's consecutive-day completion streak
func LearningStreak(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var completions []lessonModels.LessonProgress
	database.Database.Db.Where("user_id = ? AND completed = ? AND is_deleted = ? AND completed_at IS NOT NULL", userID, true, false).
		Order("completed_at desc").Find(&completions)

	dates := make([]time.Time, 0, len(completions))
	for _, p := range completions {
		dates = append(dates, *p.CompletedAt)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Streak fetched successfully!", fiber.Map{
		"streak_days": StreakFromDates(dates, time.Now()),
	})
}

// Overview returns platform-wide totals (teachers/admins only)
func Overview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "TEACHER" && user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	var totalStudents, totalCourses, totalEnrollments, completedEnrollments int64
	db := database.Database.Db
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "STUDENT", false).Count(&totalStudents)
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("status = ? AND is_deleted = ?", "COMPLETED", false).Count(&completedEnrollments)

	completionRate := 0
	if totalEnrollments > 0 {
		completionRate = int(100 * completedEnrollments / totalEnrollments)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Overview fetched successfully!", fiber.Map{
		"total_students":    totalStudents,
		"total_courses":     totalCourses,
		"total_enrollments": totalEnrollments,
		"completion_rate":   completionRate,
	})
}

// BucketScores groups percentage scores into the fixed ranges used by the
// dashboard charts
func BucketScores(scores []int) map[string]int {
	buckets := map[string]int{
		"0-25":   0,
		"26-50":  0,
		"51-75":  0,
		"76-100": 0,
	}
	for _, score := range scores {
		switch {
		case score <= 25:
			buckets["0-25"]++
		case score <= 50:
			buckets["26-50"]++
		case score <= 75:
			buckets["51-75"]++
		default:
			buckets["76-100"]++
		}
	}
	return buckets
}

// StreakFromDates counts consecutive calendar days with at least one
// completion, walking backward from the most recent. The streak is zero
// unless the latest completion was today or yesterday.
func StreakFromDates(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}

	// Distinct completion days, newest first (input is ordered desc)
	seen := make(map[string]bool)
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		key := d.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			days = append(days, day(d))
		}
	}

	anchor := day(today)
	if !days[0].Equal(anchor) && !days[0].Equal(anchor.AddDate(0, 0, -1)) {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		// Calendar-day step, not a fixed 24h, so DST transitions don't
		// break the chain
		if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			streak++
			continue
		}
		break
	}
	return streak
}
