package course

import "gorm.io/gorm"

// Course represents a learning course or a certification track
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	Author       string `json:"author"`
	Kind         string `json:"kind" gorm:"default:'COURSE'"`  // COURSE, CERTIFICATION
	Skills       string `json:"skills" gorm:"type:text"`       // JSON array of skill names (certifications)
	Duration     int64  `json:"duration" gorm:"default:0"`     // duration in hours
	Status       string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	ThumbnailURL string `json:"thumbnail_url"`
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	IsDeleted    bool   `gorm:"default:false"`
}
