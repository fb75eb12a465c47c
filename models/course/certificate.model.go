package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate represents an issued certificate for certification completion.
// Created lazily the first time certificate data is requested after the
// enrollment completes; existence-checked so repeated requests reuse the row.
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"index;not null"`
	CourseID          uint      `json:"course_id" gorm:"index;not null"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique"`
	IssuedAt          time.Time `json:"issued_at"`
	IsDeleted         bool      `gorm:"default:false"`
}
