package controllers

import (
	"encoding/json"
	"strings"
	"time"

	"learnix/database"
	"learnix/middleware"
	"learnix/models"
	courseModels "learnix/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IssueCertificate creates a certificate for a completed certification if
// one does not already exist. Idempotent via existence check; returns the
// certificate and whether it was newly created.
func IssueCertificate(tx *gorm.DB, userID uint, courseID uint) (*courseModels.Certificate, bool, error) {
	var existing courseModels.Certificate
	if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error; err == nil {
		return &existing, false, nil
	}

	cert := courseModels.Certificate{
		UserID:            userID,
		CourseID:          courseID,
		CertificateNumber: "CERT-" + strings.ToUpper(uuid.NewString()[:8]),
		IssuedAt:          time.Now(),
	}
	if err := tx.Create(&cert).Error; err != nil {
		return nil, false, err
	}
	return &cert, true, nil
}

// GetCertificateData returns certificate details for a completed
// certification, lazily issuing the certificate on first request
func GetCertificateData(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	certificationID := c.Locals("courseID").(int)

	var certification courseModels.Course
	if err := database.Database.Db.Where("id = ? AND kind = ? AND is_deleted = ?", certificationID, "CERTIFICATION", false).First(&certification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certification not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, certificationID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this certification!", nil)
	}

	if enrollment.CompletedAt == nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please complete the certification before requesting a certificate!", nil)
	}

	cert, _, err := IssueCertificate(database.Database.Db, userID, uint(certificationID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	var skills []string
	if certification.Skills != "" {
		_ = json.Unmarshal([]byte(certification.Skills), &skills)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", fiber.Map{
		"certificate": fiber.Map{
			"id":                  cert.CertificateNumber,
			"student_name":        user.Name,
			"certification_title": certification.Title,
			"issue_date":          cert.IssuedAt,
			"skills":              skills,
			"certification_id":    certification.ID,
		},
	})
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CertificationTitle string `json:"certification_title"`
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var certification courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&certification)
		result[i] = CertificateWithCourse{
			Certificate:        cert,
			CertificationTitle: certification.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}
