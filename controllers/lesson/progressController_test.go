package controllers

import (
	"fmt"
	"testing"
	"time"

	"learnix/config"
	"learnix/database"
	"learnix/models"
	courseModels "learnix/models/course"
	lessonModels "learnix/models/lesson"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	return db
}

func seedCertification(t *testing.T, db *gorm.DB, lessonCount int) (models.User, courseModels.Course, []lessonModels.Lesson) {
	t.Helper()

	user := models.User{Name: "Asha Verma", Email: "asha@example.com", Role: "STUDENT"}
	require.NoError(t, db.Create(&user).Error)

	course := courseModels.Course{
		Title:  "Cloud Fundamentals",
		Kind:   "CERTIFICATION",
		Status: "ACTIVE",
		Skills: `["Networking","Storage"]`,
	}
	require.NoError(t, db.Create(&course).Error)

	lessons := make([]lessonModels.Lesson, lessonCount)
	for i := range lessons {
		lessons[i] = lessonModels.Lesson{
			CourseID:   &course.ID,
			OwnerID:    user.ID,
			Title:      fmt.Sprintf("Lesson %d", i+1),
			ScriptText: "# Lesson\n\nIntro.\n\n## Part one\n\nBody.",
			OrderIndex: i,
		}
		require.NoError(t, db.Create(&lessons[i]).Error)
	}

	enrollment := courseModels.Enrollment{
		UserID:       user.ID,
		CourseID:     course.ID,
		Status:       "ENROLLED",
		TotalLessons: lessonCount,
		EnrolledAt:   time.Now(),
	}
	require.NoError(t, db.Create(&enrollment).Error)

	return user, course, lessons
}

func TestRecordQuizPassCascadesToEnrollment(t *testing.T) {
	db := setupTestDB(t)
	user, course, lessons := seedCertification(t, db, 2)

	require.NoError(t, RecordQuizPass(db, user.ID, &lessons[0], 85))

	var progress lessonModels.LessonProgress
	require.NoError(t, db.Where("user_id = ? AND lesson_id = ?", user.ID, lessons[0].ID).First(&progress).Error)
	assert.True(t, progress.Completed)
	require.NotNil(t, progress.LastQuizScore)
	assert.Equal(t, 85, *progress.LastQuizScore)
	assert.NotNil(t, progress.CompletedAt)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error)
	assert.Equal(t, 50, enrollment.Progress)
	assert.Equal(t, 1, enrollment.CompletedLessons)
	assert.Equal(t, 2, enrollment.TotalLessons)
	assert.Equal(t, "IN_PROGRESS", enrollment.Status)
	assert.Nil(t, enrollment.CompletedAt)

	// Certificate only at full completion
	var certCount int64
	db.Model(&courseModels.Certificate{}).Where("user_id = ?", user.ID).Count(&certCount)
	assert.Equal(t, int64(0), certCount)
}

func TestCompletingAllLessonsIssuesCertificate(t *testing.T) {
	db := setupTestDB(t)
	user, course, lessons := seedCertification(t, db, 2)

	require.NoError(t, RecordQuizPass(db, user.ID, &lessons[0], 90))
	require.NoError(t, RecordQuizPass(db, user.ID, &lessons[1], 75))

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error)
	assert.Equal(t, 100, enrollment.Progress)
	assert.Equal(t, "COMPLETED", enrollment.Status)
	require.NotNil(t, enrollment.CompletedAt)

	var certs []courseModels.Certificate
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).Find(&certs).Error)
	require.Len(t, certs, 1)
	assert.Contains(t, certs[0].CertificateNumber, "CERT-")
}

func TestRepeatedCompletionKeepsOneCertificate(t *testing.T) {
	db := setupTestDB(t)
	user, course, lessons := seedCertification(t, db, 1)

	require.NoError(t, RecordQuizPass(db, user.ID, &lessons[0], 80))

	var first courseModels.Certificate
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&first).Error)

	// Re-submitting a passing score must not mint a second certificate
	require.NoError(t, RecordQuizPass(db, user.ID, &lessons[0], 95))

	var certs []courseModels.Certificate
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).Find(&certs).Error)
	require.Len(t, certs, 1)
	assert.Equal(t, first.CertificateNumber, certs[0].CertificateNumber)
}

func TestCourseCompletionSkipsCertificate(t *testing.T) {
	db := setupTestDB(t)
	user, course, lessons := seedCertification(t, db, 1)
	require.NoError(t, db.Model(&course).Update("kind", "COURSE").Error)

	require.NoError(t, RecordQuizPass(db, user.ID, &lessons[0], 100))

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error)
	assert.Equal(t, "COMPLETED", enrollment.Status)

	var certCount int64
	db.Model(&courseModels.Certificate{}).Where("user_id = ?", user.ID).Count(&certCount)
	assert.Equal(t, int64(0), certCount)
}

func TestPersonalLessonHasNoCascade(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{Name: "Ravi Iyer", Email: "ravi@example.com", Role: "STUDENT"}
	require.NoError(t, db.Create(&user).Error)

	lesson := lessonModels.Lesson{
		OwnerID:    user.ID,
		Title:      "Personal study",
		ScriptText: "# Personal study\n\nIntro.\n\n## Only part\n\nBody.",
	}
	require.NoError(t, db.Create(&lesson).Error)

	require.NoError(t, RecordQuizPass(db, user.ID, &lesson, 88))

	var progress lessonModels.LessonProgress
	require.NoError(t, db.Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).First(&progress).Error)
	assert.True(t, progress.Completed)

	var enrollCount int64
	db.Model(&courseModels.Enrollment{}).Count(&enrollCount)
	assert.Equal(t, int64(0), enrollCount)
}

func TestFailedCascadeRollsBackProgress(t *testing.T) {
	db := setupTestDB(t)
	user, course, lessons := seedCertification(t, db, 1)

	// Course row gone out from under the cascade: the whole pass must fail,
	// including the completion mark saved in the same transaction
	require.NoError(t, db.Delete(&course).Error)

	err := RecordQuizPass(db, user.ID, &lessons[0], 90)
	require.Error(t, err)

	var count int64
	db.Model(&lessonModels.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ?", user.ID, lessons[0].ID).
		Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCascadeWithoutEnrollmentIsNoop(t *testing.T) {
	db := setupTestDB(t)
	user, course, lessons := seedCertification(t, db, 1)
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).Delete(&courseModels.Enrollment{}).Error)

	require.NoError(t, RecordQuizPass(db, user.ID, &lessons[0], 90))

	var certCount int64
	db.Model(&courseModels.Certificate{}).Count(&certCount)
	assert.Equal(t, int64(0), certCount)
}
