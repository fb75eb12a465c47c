package lesson

import "gorm.io/gorm"

// Quiz groups generated questions for a lesson
type Quiz struct {
	gorm.Model
	LessonID     uint   `json:"lesson_id" gorm:"index;not null"`
	QuestionType string `json:"question_type" gorm:"default:'mcq'"` // mcq, true_false
	IsDeleted    bool   `gorm:"default:false"`
}

// QuizQuestion represents a single generated question
type QuizQuestion struct {
	gorm.Model
	QuizID        uint   `json:"quiz_id" gorm:"index;not null"`
	QuestionID    string `json:"question_id"` // generator-assigned id, e.g. q1
	QuestionText  string `json:"question_text" gorm:"type:text"`
	QuestionType  string `json:"question_type" gorm:"default:'mcq'"`
	Options       string `json:"options" gorm:"type:text"` // JSON array of option strings
	CorrectAnswer int    `json:"correct_answer" gorm:"default:0"`
	Explanation   string `json:"explanation" gorm:"type:text"`
	IsDeleted     bool   `gorm:"default:false"`
}

// QuizAttempt represents a student's scored attempt at a lesson quiz
type QuizAttempt struct {
	gorm.Model
	UserID        uint `json:"user_id" gorm:"index;not null"`
	LessonID      uint `json:"lesson_id" gorm:"index;not null"`
	Score         int  `json:"score"`     // percentage 0-100
	MaxScore      int  `json:"max_score"` // number of questions
	AttemptNumber int  `json:"attempt_number" gorm:"default:1"`
	IsDeleted     bool `gorm:"default:false"`
}
