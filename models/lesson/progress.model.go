package lesson

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress tracks per-(user, lesson) completion state. The segment
// index is 0-based and monotonically advances as the learner progresses;
// it is not validated against the lesson's actual segment count.
type LessonProgress struct {
	gorm.Model
	UserID                    uint       `json:"user_id" gorm:"index:idx_user_lesson,unique;not null"`
	LessonID                  uint       `json:"lesson_id" gorm:"index:idx_user_lesson,unique;not null"`
	Completed                 bool       `json:"completed" gorm:"default:false"`
	CompletedAt               *time.Time `json:"completed_at"`
	LastCompletedSegmentIndex int        `json:"last_completed_segment_index" gorm:"default:0"`
	Notes                     string     `json:"notes" gorm:"type:text"`
	LastQuizScore             *int       `json:"last_quiz_score"`
	IsDeleted                 bool       `gorm:"default:false"`
}
