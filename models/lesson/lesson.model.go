package lesson

import "gorm.io/gorm"

// Lesson holds a generated lesson script. ScriptText follows the platform
// convention: a "# " title line, an introduction, then "## "-headed segments.
// Segment 0 is the content before the first heading.
type Lesson struct {
	gorm.Model
	CourseID         *uint  `json:"course_id" gorm:"index"` // nil for personal lessons
	OwnerID          uint   `json:"owner_id" gorm:"index;not null"`
	Title            string `json:"title"`
	ScriptText       string `json:"script_text" gorm:"type:text"`
	DurationEstimate int    `json:"duration_estimate" gorm:"default:0"` // minutes
	OrderIndex       int    `json:"order_index" gorm:"default:0"`
	IsPublished      bool   `json:"is_published" gorm:"default:false"`
	IsDeleted        bool   `gorm:"default:false"`
}
