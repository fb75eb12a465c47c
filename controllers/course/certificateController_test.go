package controllers

import (
	"fmt"
	"testing"

	"learnix/database"
	"learnix/models"
	courseModels "learnix/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	return db
}

func TestIssueCertificateCreatesOnce(t *testing.T) {
	db := openTestDB(t)

	user := models.User{Name: "Meera Nair", Email: "meera@example.com"}
	require.NoError(t, db.Create(&user).Error)

	certification := courseModels.Course{Title: "Data Engineering", Kind: "CERTIFICATION", Status: "ACTIVE"}
	require.NoError(t, db.Create(&certification).Error)

	cert, created, err := IssueCertificate(db, user.ID, certification.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, cert.CertificateNumber)
	assert.True(t, len(cert.CertificateNumber) > len("CERT-"))

	again, created, err := IssueCertificate(db, user.ID, certification.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, cert.CertificateNumber, again.CertificateNumber)
	assert.Equal(t, cert.ID, again.ID)

	var count int64
	db.Model(&courseModels.Certificate{}).Where("user_id = ? AND course_id = ?", user.ID, certification.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestIssueCertificatePerCourse(t *testing.T) {
	db := openTestDB(t)

	user := models.User{Name: "Meera Nair", Email: "meera@example.com"}
	require.NoError(t, db.Create(&user).Error)

	first := courseModels.Course{Title: "Data Engineering", Kind: "CERTIFICATION"}
	second := courseModels.Course{Title: "ML Foundations", Kind: "CERTIFICATION"}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	certA, _, err := IssueCertificate(db, user.ID, first.ID)
	require.NoError(t, err)
	certB, _, err := IssueCertificate(db, user.ID, second.ID)
	require.NoError(t, err)

	assert.NotEqual(t, certA.CertificateNumber, certB.CertificateNumber)
}
